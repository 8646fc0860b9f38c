// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/bytedance/sonic"

	"github.com/go-a2a/adk-patterns/internal/pool"
	"github.com/go-a2a/adk-patterns/tool/tools"
	"github.com/go-a2a/adk-patterns/types"
)

// buildTargetAgentsInfo renders the name and description of one handoff target.
func buildTargetAgentsInfo(target *types.AgentDescriptor) string {
	return heredoc.Docf(`
		Agent name: %s
		Agent description: %s
	`, target.Name(), target.Description())
}

// buildTargetAgentsInstructions renders the handoff block of the system instruction.
func buildTargetAgentsInstructions(targets []*types.AgentDescriptor) string {
	if len(targets) == 0 {
		return ""
	}

	sb := pool.String.Get()
	defer pool.String.Put(sb)

	sb.WriteString("You have a list of other agents to transfer to:\n\n")
	for _, target := range targets {
		sb.WriteString(buildTargetAgentsInfo(target))
		sb.WriteByte('\n')
	}
	sb.WriteString(heredoc.Docf(`
		If you are the best to answer the question according to your description, you
		can answer it.

		If another agent is better for answering the question according to its
		description, call %s function to transfer the
		question to that agent. When transferring, do not generate any text other than
		the function call.
	`, tools.TransferToAgentName))

	return sb.String()
}

// buildOutputSchemaInstructions renders the structured output contract of schema.
func buildOutputSchemaInstructions(schema types.OutputSchema) (string, error) {
	if schema == nil {
		return "", nil
	}

	doc, err := sonic.ConfigStd.MarshalIndent(schema.JSONSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s schema: %w", schema.Name(), err)
	}

	return heredoc.Docf(`
		Your final answer must be a single JSON object conforming to the %s JSON schema below.
		Do not add prose or Markdown around the object.

		%s
	`, schema.Name(), strings.TrimSpace(string(doc))), nil
}
