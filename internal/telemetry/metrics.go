// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-a2a/adk-patterns/types"
)

const namespace = "adk"

// Outcome label values.
const (
	OutcomeOK              = "ok"
	OutcomeInvocationError = "invocation_error"
	OutcomeSchemaError     = "schema_error"
	OutcomeCanceled        = "canceled"
	OutcomeError           = "error"
)

// Outcome classifies err into an outcome label value.
func Outcome(err error) string {
	var (
		invErr    *types.InvocationError
		schemaErr *types.SchemaValidationError
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	case errors.As(err, &schemaErr):
		return OutcomeSchemaError
	case errors.As(err, &invErr):
		return OutcomeInvocationError
	default:
		return OutcomeError
	}
}

// Metrics holds the collectors of one registry.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	invocations        *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
	tokens             *prometheus.CounterVec
	toolCalls          *prometheus.CounterVec
	workflowRuns       *prometheus.CounterVec
	reflectionRounds   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invocations_total",
			Help:      "Total agent invocations by outcome.",
		}, []string{"agent", "outcome"}),
		invocationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invocation_duration_seconds",
			Help:      "Agent invocation duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"agent"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_total",
			Help:      "Total model tokens by direction.",
		}, []string{"agent", "direction"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total tool calls made inside invocations.",
		}, []string{"agent", "tool", "outcome"}),
		workflowRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_runs_total",
			Help:      "Total workflow runs by pattern and outcome.",
		}, []string{"pattern", "workflow", "outcome"}),
		reflectionRounds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reflection_iterations",
			Help:      "Draft/critique round trips per reflection run.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}, []string{"workflow", "outcome"}),
	}

	for _, c := range []prometheus.Collector{
		m.invocations,
		m.invocationDuration,
		m.tokens,
		m.toolCalls,
		m.workflowRuns,
		m.reflectionRounds,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return m, nil
}

// ObserveInvocation records one finished invocation.
func (m *Metrics) ObserveInvocation(agent string, d time.Duration, usage types.Usage, err error) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(agent, Outcome(err)).Inc()
	m.invocationDuration.WithLabelValues(agent).Observe(d.Seconds())
	if usage.InputTokens > 0 {
		m.tokens.WithLabelValues(agent, "input").Add(float64(usage.InputTokens))
	}
	if usage.OutputTokens > 0 {
		m.tokens.WithLabelValues(agent, "output").Add(float64(usage.OutputTokens))
	}
}

// ObserveToolCall records one tool call.
func (m *Metrics) ObserveToolCall(agent, tool string, err error) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(agent, tool, Outcome(err)).Inc()
}

// ObserveWorkflow records one finished workflow run.
func (m *Metrics) ObserveWorkflow(pattern, workflow string, err error) {
	if m == nil {
		return
	}
	m.workflowRuns.WithLabelValues(pattern, workflow, Outcome(err)).Inc()
}

// ObserveReflection records the iteration count of a finished reflection run.
func (m *Metrics) ObserveReflection(workflow, outcome string, iterations int) {
	if m == nil {
		return
	}
	m.reflectionRounds.WithLabelValues(workflow, outcome).Observe(float64(iterations))
}
