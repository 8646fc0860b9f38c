// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/types"
)

type reply func(ctx context.Context, input string) (*types.InvocationResult, error)

// stubInvoker answers each agent with its registered reply and records every call.
type stubInvoker struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []call
}

type call struct {
	Agent string
	Input string
}

var _ types.Invoker = (*stubInvoker)(nil)

func newStubInvoker() *stubInvoker {
	return &stubInvoker{replies: make(map[string]reply)}
}

func (s *stubInvoker) on(agentName string, fn reply) *stubInvoker {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[agentName] = fn
	return s
}

func (s *stubInvoker) text(agentName, text string) *stubInvoker {
	return s.on(agentName, func(context.Context, string) (*types.InvocationResult, error) {
		return &types.InvocationResult{Agent: agentName, RawText: text, IsFinal: true}, nil
	})
}

// Invoke implements [types.Invoker].
func (s *stubInvoker) Invoke(ctx context.Context, a *types.AgentDescriptor, input string) (*types.InvocationResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call{Agent: a.Name(), Input: input})
	fn, ok := s.replies[a.Name()]
	s.mu.Unlock()

	if !ok {
		return nil, &types.InvocationError{Agent: a.Name(), Err: fmt.Errorf("no reply for %q", a.Name())}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fn(ctx, input)
}

func (s *stubInvoker) callsTo(agentName string) []call {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []call
	for _, c := range s.calls {
		if c.Agent == agentName {
			out = append(out, c)
		}
	}
	return out
}

func (s *stubInvoker) agents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.Agent
	}
	return out
}

func critiqueResult(c agent.Critique) *types.InvocationResult {
	return &types.InvocationResult{
		Agent:      "critic",
		RawText:    fmt.Sprintf(`{"score":%d,"strengths":%q,"issues":%q,"actionable_improvements":%q}`, c.Score, c.Strengths, c.Issues, c.ActionableImprovements),
		Structured: &types.Structured{Schema: "Critique", Value: &c},
		IsFinal:    true,
	}
}
