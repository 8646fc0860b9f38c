// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/go-a2a/adk-patterns/internal/telemetry"
	"github.com/go-a2a/adk-patterns/types"
)

func TestOutcome(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"nil":        {err: nil, want: telemetry.OutcomeOK},
		"canceled":   {err: fmt.Errorf("wrap: %w", context.Canceled), want: telemetry.OutcomeCanceled},
		"invocation": {err: &types.InvocationError{Agent: "a", Err: errors.New("503")}, want: telemetry.OutcomeInvocationError},
		"schema":     {err: &types.SchemaValidationError{Agent: "a", Err: errors.New("bad")}, want: telemetry.OutcomeSchemaError},
		"other":      {err: errors.New("boom"), want: telemetry.OutcomeError},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := telemetry.Outcome(tt.err); got != tt.want {
				t.Fatalf("Outcome() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetrics_ObserveInvocation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := telemetry.NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	m.ObserveInvocation("writer", time.Second, types.Usage{InputTokens: 10, OutputTokens: 3}, nil)
	m.ObserveInvocation("writer", time.Second, types.Usage{}, &types.InvocationError{Agent: "writer", Err: errors.New("x")})
	m.ObserveToolCall("writer", "search", nil)
	m.ObserveWorkflow("parallel", "topic", nil)
	m.ObserveReflection("notes", "accepted", 2)

	const want = `
# HELP adk_invocations_total Total agent invocations by outcome.
# TYPE adk_invocations_total counter
adk_invocations_total{agent="writer",outcome="invocation_error"} 1
adk_invocations_total{agent="writer",outcome="ok"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "adk_invocations_total"); err != nil {
		t.Fatal(err)
	}
	if n := testutil.CollectAndCount(reg, "adk_tokens_total"); n != 2 {
		t.Fatalf("token series = %d, want 2", n)
	}
	if n := testutil.CollectAndCount(reg, "adk_workflow_runs_total"); n != 1 {
		t.Fatalf("workflow series = %d, want 1", n)
	}

	if _, err := telemetry.NewMetrics(reg); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestMetrics_Nil(t *testing.T) {
	var m *telemetry.Metrics
	m.ObserveInvocation("a", time.Second, types.Usage{}, nil)
	m.ObserveToolCall("a", "t", nil)
	m.ObserveWorkflow("p", "w", nil)
	m.ObserveReflection("w", "exhausted", 3)
}
