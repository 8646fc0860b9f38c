// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"

	"google.golang.org/genai"
)

// Tool is a named function the invocation service may call on an agent's behalf.
type Tool interface {
	// Name returns the name of the tool. It is unique within one [AgentDescriptor].
	Name() string

	// Description returns the description of the tool.
	Description() string

	// Declaration returns the tool's input schema in the form of a [*genai.FunctionDeclaration].
	Declaration() *genai.FunctionDeclaration

	// Run runs the tool with the arguments chosen by the model.
	Run(ctx context.Context, args map[string]any) (any, error)
}

// OutputSchema is a structured-output schema attached to an [AgentDescriptor].
type OutputSchema interface {
	// Name returns a short name of the schema, usually the Go type name.
	Name() string

	// JSONSchema returns the schema as a JSON Schema document.
	JSONSchema() map[string]any

	// GenAISchema returns the schema in the [*genai.Schema] dialect.
	GenAISchema() *genai.Schema

	// Validate parses raw model output and returns the decoded value.
	Validate(raw string) (any, error)
}
