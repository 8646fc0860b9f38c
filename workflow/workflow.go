// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/internal/telemetry"
	"github.com/go-a2a/adk-patterns/schema"
	"github.com/go-a2a/adk-patterns/types"
)

// Option configures a workflow.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (o optionFunc) apply(opts *options) { o(opts) }

type options struct {
	model          string
	metrics        *telemetry.Metrics
	targetScore    int
	maxIterations  int
	maxConcurrency int
	partial        bool
	routingMode    agent.RoutingMode
}

func newOptions(opts []Option) *options {
	o := &options{
		targetScore:   agent.DefaultTargetScore,
		maxIterations: agent.DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt.apply(o)
	}
	return o
}

// descriptor builds an agent descriptor carrying the configured model.
func (o *options) descriptor(name string, opts ...types.DescriptorOption) *types.AgentDescriptor {
	if o.model != "" {
		opts = append(opts, types.WithModel(o.model))
	}
	return types.MustAgentDescriptor(name, opts...)
}

// WithModel sets the model every agent of the workflow runs on.
func WithModel(name string) Option {
	return optionFunc(func(o *options) {
		o.model = name
	})
}

// WithMetrics sets the metrics the workflow reports to.
func WithMetrics(m *telemetry.Metrics) Option {
	return optionFunc(func(o *options) {
		o.metrics = m
	})
}

// WithReflection sets the acceptance score and iteration cap of reflection loops.
func WithReflection(targetScore, maxIterations int) Option {
	return optionFunc(func(o *options) {
		o.targetScore = targetScore
		o.maxIterations = maxIterations
	})
}

// WithParallelism sets the branch concurrency limit and whether partial results are kept.
func WithParallelism(maxConcurrency int, partial bool) Option {
	return optionFunc(func(o *options) {
		o.maxConcurrency = maxConcurrency
		o.partial = partial
	})
}

// WithRoutingMode sets how routers pick a specialist.
func WithRoutingMode(mode agent.RoutingMode) Option {
	return optionFunc(func(o *options) {
		o.routingMode = mode
	})
}

// decode returns the structured value of res, decoding the raw text with s
// when the invoker did not.
func decode[T any](s *schema.Schema[T], res *types.InvocationResult) (*T, error) {
	if v, ok := types.StructuredAs[T](res); ok {
		return &v, nil
	}
	v, err := s.Decode(res.RawText)
	if err != nil {
		return nil, &types.SchemaValidationError{
			Agent:  res.Agent,
			Schema: s.Name(),
			Raw:    res.RawText,
			Err:    err,
		}
	}
	return v, nil
}
