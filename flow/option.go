// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"context"
	"log/slog"

	"github.com/go-a2a/adk-patterns/internal/telemetry"
	"github.com/go-a2a/adk-patterns/model"
)

// DefaultMaxToolRounds is the number of tool round trips allowed per invocation.
const DefaultMaxToolRounds = 8

// ModelResolver returns the model for a descriptor's model name.
type ModelResolver func(ctx context.Context, name string) (model.Model, error)

// Option configures an [LLMInvoker].
type Option interface {
	apply(*LLMInvoker)
}

type optionFunc func(*LLMInvoker)

func (o optionFunc) apply(f *LLMInvoker) { o(f) }

// WithModelResolver sets the resolver used for descriptors that name a model.
func WithModelResolver(resolver ModelResolver) Option {
	return optionFunc(func(f *LLMInvoker) {
		f.resolver = resolver
	})
}

// WithModelFactory resolves descriptor models through factory.
func WithModelFactory(factory model.ModelFactory) Option {
	return optionFunc(func(f *LLMInvoker) {
		f.resolver = factory.CreateModel
	})
}

// WithMaxToolRounds sets the number of tool round trips allowed per invocation.
func WithMaxToolRounds(n int) Option {
	return optionFunc(func(f *LLMInvoker) {
		if n > 0 {
			f.maxToolRounds = n
		}
	})
}

// WithMetrics sets the metrics recorded for each invocation.
func WithMetrics(metrics *telemetry.Metrics) Option {
	return optionFunc(func(f *LLMInvoker) {
		f.metrics = metrics
	})
}

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(f *LLMInvoker) {
		f.logger = logger
	})
}
