// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/go-a2a/adk-patterns"

// Attribute keys shared by the spans of this module.
const (
	AttrAgent     = attribute.Key("adk.agent")
	AttrBranch    = attribute.Key("adk.branch")
	AttrStage     = attribute.Key("adk.stage")
	AttrIteration = attribute.Key("adk.iteration")
	AttrRunID     = attribute.Key("adk.run_id")
	AttrWorkflow  = attribute.Key("adk.workflow")
)

// Tracer returns the tracer of the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartSpan starts a span named name with attrs.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
