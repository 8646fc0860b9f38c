// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"fmt"
	"regexp"

	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/types"
)

var nameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Tool holds the name and description shared by all tool implementations.
type Tool struct {
	// The name of the tool.
	name string

	// The description of the tool.
	description string
}

// NewTool returns the tool with the given name and description.
//
// The name must be accepted by every model backend: 1 to 64 letters, digits, '_' or '-'.
func NewTool(name, description string) (*Tool, error) {
	if !nameRe.MatchString(name) {
		return nil, fmt.Errorf("tool name %q: %w", name, types.ErrInvalidName)
	}
	return &Tool{
		name:        name,
		description: description,
	}, nil
}

// Name implements [types.Tool].
func (t *Tool) Name() string {
	return t.name
}

// Description implements [types.Tool].
func (t *Tool) Description() string {
	return t.description
}

// Declarations collects the function declarations of tools, skipping tools that declare none.
func Declarations(tools []types.Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		if decl := t.Declaration(); decl != nil {
			decls = append(decls, decl)
		}
	}
	return decls
}
