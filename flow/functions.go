// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/pkg/logging"
	"github.com/go-a2a/adk-patterns/types"
)

// FunctionCallIDPrefix prefixes the IDs generated for function calls that arrive without one.
const FunctionCallIDPrefix = "adk-"

// GenerateClientFunctionCallID generates a unique function call ID for the client.
func GenerateClientFunctionCallID() string {
	return FunctionCallIDPrefix + uuid.NewString()
}

// populateClientFunctionCallID assigns an ID to every function call that lacks one.
func populateClientFunctionCallID(calls []*genai.FunctionCall) {
	for _, call := range calls {
		if call.ID == "" {
			call.ID = GenerateClientFunctionCallID()
		}
	}
}

// handleFunctionCalls runs calls sequentially in model order and returns their responses.
//
// Tool failures are reported back to the model as an "error" member rather than
// failing the invocation.
func (f *LLMInvoker) handleFunctionCalls(ctx context.Context, agent *types.AgentDescriptor, calls []*genai.FunctionCall) ([]*genai.Part, error) {
	logger := logging.FromContext(ctx)

	parts := make([]*genai.Part, 0, len(calls))
	for _, call := range calls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		response, err := f.runTool(ctx, agent, call)
		f.metrics.ObserveToolCall(agent.Name(), call.Name, err)
		if err != nil {
			logger.WarnContext(ctx, "tool call failed", "tool", call.Name, "error", err)
			response = map[string]any{"error": err.Error()}
		} else {
			logger.DebugContext(ctx, "tool call", "tool", call.Name, "args", call.Args)
		}

		part := genai.NewPartFromFunctionResponse(call.Name, response)
		part.FunctionResponse.ID = call.ID
		parts = append(parts, part)
	}

	return parts, nil
}

func (f *LLMInvoker) runTool(ctx context.Context, agent *types.AgentDescriptor, call *genai.FunctionCall) (map[string]any, error) {
	tool, ok := agent.Tool(call.Name)
	if !ok {
		return nil, fmt.Errorf("tool %q is not available to agent %s", call.Name, agent.Name())
	}

	result, err := tool.Run(ctx, call.Args)
	if err != nil {
		return nil, err
	}

	// function responses must be objects
	if m, ok := result.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{"result": result}, nil
}
