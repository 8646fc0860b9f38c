// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package flow provides [LLMInvoker], the model-backed implementation of [types.Invoker].
//
// One invocation assembles a request from an [types.AgentDescriptor]:
//
//   - the system instruction is the descriptor's instruction, followed by the list of
//     handoff targets and, when an output schema is declared, the JSON schema the final
//     answer must conform to
//   - the tools are the descriptor's tools, plus transfer_to_agent when it has handoffs
//
// The model is then called in a loop. Tool calls run sequentially in model order and
// their responses are sent back; a transfer_to_agent call ends the invocation with
// [types.InvocationResult.TransferTo] set. The final text is validated against the
// output schema, if any.
//
// Backend failures surface as [*types.InvocationError] and invalid structured output
// as [*types.SchemaValidationError]. [WithRetry] wraps any invoker with a bounded retry
// of invocation errors.
//
//	m, err := model.NewClaude(ctx, apiKey, model.ClaudeDefaultModel)
//	if err != nil {
//		return err
//	}
//	invoker := flow.WithRetry(flow.NewLLMInvoker(m, flow.WithMaxToolRounds(4)), 3, time.Second)
package flow
