// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/types"
)

// TransferToAgentName is the name of the handoff tool.
const TransferToAgentName = "transfer_to_agent"

// TransferTool lets a model select one agent of a handoff set.
//
// The invocation service intercepts calls to it and surfaces the selection as
// [types.InvocationResult.TransferTo]; Run only echoes the selection.
type TransferTool struct {
	targets []string
}

var _ types.Tool = (*TransferTool)(nil)

// NewTransferTool returns the handoff tool for targets.
func NewTransferTool(targets []*types.AgentDescriptor) *TransferTool {
	names := make([]string, len(targets))
	for i, target := range targets {
		names[i] = target.Name()
	}
	return &TransferTool{targets: names}
}

// Name implements [types.Tool].
func (t *TransferTool) Name() string { return TransferToAgentName }

// Description implements [types.Tool].
func (t *TransferTool) Description() string {
	return "Transfer the question to another agent."
}

// Declaration implements [types.Tool].
func (t *TransferTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        TransferToAgentName,
		Description: t.Description(),
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"agent_name": {
					Type:        genai.TypeString,
					Description: "the agent name to transfer to.",
					Enum:        t.targets,
				},
			},
			Required: []string{"agent_name"},
		},
	}
}

// Run implements [types.Tool].
func (t *TransferTool) Run(ctx context.Context, args map[string]any) (any, error) {
	name, err := TransferTarget(args)
	if err != nil {
		return nil, err
	}
	return map[string]any{"transferred_to": name}, nil
}

// TransferTarget extracts the agent name from transfer_to_agent call arguments.
func TransferTarget(args map[string]any) (string, error) {
	name, ok := args["agent_name"].(string)
	if !ok || name == "" {
		return "", errors.New("transfer_to_agent: missing agent_name")
	}
	return name, nil
}
