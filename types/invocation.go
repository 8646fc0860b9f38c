// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
)

// Invoker is the Agent Invocation Service.
//
// Invoke executes one descriptor against an input. Implementations must be safe for
// concurrent use; a single Invoker is shared by every branch of a fan-out.
//
// Invoke fails with [*InvocationError] on transport, auth or backend failure, and with
// [*SchemaValidationError] when the descriptor declares an output schema but the model
// output cannot be parsed into it.
type Invoker interface {
	Invoke(ctx context.Context, agent *AgentDescriptor, input string) (*InvocationResult, error)
}

// InvokerFunc adapts a function to [Invoker].
type InvokerFunc func(ctx context.Context, agent *AgentDescriptor, input string) (*InvocationResult, error)

// Invoke implements [Invoker].
func (f InvokerFunc) Invoke(ctx context.Context, agent *AgentDescriptor, input string) (*InvocationResult, error) {
	return f(ctx, agent, input)
}

// Structured is the decoded value of a schema-validated response.
type Structured struct {
	// Schema is the name of the schema the value conforms to.
	Schema string
	Value  any
}

// Usage is the token accounting of one invocation.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// InvocationResult is the outcome of one invocation.
type InvocationResult struct {
	// Agent is the name of the agent that produced the result.
	Agent string

	// RawText is the model's final text.
	RawText string

	// Structured is set only when the agent declares an output schema and validation
	// succeeded. It is nil otherwise.
	Structured *Structured

	// IsFinal reports whether the result answers the request. It is false for a
	// handoff request or a clarifying question.
	IsFinal bool

	// TransferTo is the name of the handoff target the model selected, if any.
	TransferTo string

	Usage Usage
}

// HasStructured reports whether r carries a structured value.
func (r *InvocationResult) HasStructured() bool {
	return r != nil && r.Structured != nil
}

// StructuredAs returns the structured value of r as T.
//
// It accepts both T and *T values.
func StructuredAs[T any](r *InvocationResult) (T, bool) {
	var zero T
	if !r.HasStructured() {
		return zero, false
	}
	switch v := r.Structured.Value.(type) {
	case T:
		return v, true
	case *T:
		if v == nil {
			return zero, false
		}
		return *v, true
	}
	return zero, false
}

// DelegationResult is the outcome of routing a request.
type DelegationResult struct {
	// Selected is the specialist the request was delegated to, or nil when the router
	// asked a clarifying question instead.
	Selected *AgentDescriptor

	// Result is the specialist's result, or the router's clarifying question.
	Result *InvocationResult
}

// Clarification returns the router's clarifying question when no specialist was selected.
func (d *DelegationResult) Clarification() (string, bool) {
	if d.Selected != nil || d.Result == nil {
		return "", false
	}
	return d.Result.RawText, true
}
