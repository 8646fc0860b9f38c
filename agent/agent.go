// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-a2a/adk-patterns/internal/telemetry"
	"github.com/go-a2a/adk-patterns/pkg/logging"
	"github.com/go-a2a/adk-patterns/types"
)

// errNilInvoker is returned by constructors given a nil [types.Invoker].
var errNilInvoker = errors.New("nil invoker")

// startRun opens the span and logger of one executor run.
func startRun(ctx context.Context, kind, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span, *slog.Logger) {
	runID := uuid.NewString()

	attrs = append(attrs,
		telemetry.AttrWorkflow.String(name),
		telemetry.AttrRunID.String(runID),
	)
	ctx, span := telemetry.StartSpan(ctx, kind, attrs...)

	logger := logging.FromContext(ctx).With(kind, name, "run_id", runID)
	return logging.NewContext(ctx, logger), span, logger
}

// invoke calls invoker and guards against a nil result.
func invoke(ctx context.Context, invoker types.Invoker, agent *types.AgentDescriptor, input string) (*types.InvocationResult, error) {
	result, err := invoker.Invoke(ctx, agent, input)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, &types.InvocationError{Agent: agent.Name(), Err: errors.New("invoker returned no result")}
	}
	return result, nil
}
