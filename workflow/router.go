// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/types"
)

// Router delegates a request to one specialist.
type Router struct {
	router *agent.RouterAgent
	policy *agent.KeywordPolicy
}

func newRouter(invoker types.Invoker, o *options, name, instruction string, policy *agent.KeywordPolicy, specialists []*types.AgentDescriptor) (*Router, error) {
	desc := o.descriptor(name,
		types.WithInstruction(agent.RouterInstructions(instruction, policy, specialists)),
		types.WithHandoffs(specialists...),
	)
	r, err := agent.NewRouterAgent(desc, invoker,
		agent.WithKeywordPolicy(policy),
		agent.WithRoutingMode(o.routingMode),
	)
	if err != nil {
		return nil, err
	}

	return &Router{
		router: r.WithMetrics(o.metrics),
		policy: policy,
	}, nil
}

// Route delegates request to the matching specialist, or returns the router's
// clarifying question.
func (r *Router) Route(ctx context.Context, request string) (*types.DelegationResult, error) {
	return r.router.Route(ctx, request)
}

// Specialists returns the specialists in declaration order.
func (r *Router) Specialists() []*types.AgentDescriptor {
	return r.router.Specialists()
}

// Policy returns the keyword policy of the router.
func (r *Router) Policy() *agent.KeywordPolicy { return r.policy }
