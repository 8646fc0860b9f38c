// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/schema"
	"github.com/go-a2a/adk-patterns/tool"
	"github.com/go-a2a/adk-patterns/types"
)

// FunctionTool wraps a typed Go function as a tool.
//
// The input schema is reflected from Args, so Args must be a struct. Its fields follow
// the json and jsonschema struct tags.
type FunctionTool[Args, Result any] struct {
	*tool.Tool

	args *schema.Schema[Args]
	fn   func(context.Context, Args) (Result, error)
}

var _ types.Tool = (*FunctionTool[struct{}, any])(nil)

// NewFunctionTool returns the new FunctionTool with the given name, description and function.
func NewFunctionTool[Args, Result any](name, description string, fn func(context.Context, Args) (Result, error)) (*FunctionTool[Args, Result], error) {
	base, err := tool.NewTool(name, description)
	if err != nil {
		return nil, err
	}
	args, err := schema.Of[Args]()
	if err != nil {
		return nil, fmt.Errorf("tool %q: %w", name, err)
	}

	return &FunctionTool[Args, Result]{
		Tool: base,
		args: args,
		fn:   fn,
	}, nil
}

// MustFunctionTool is like [NewFunctionTool] but panics on error.
func MustFunctionTool[Args, Result any](name, description string, fn func(context.Context, Args) (Result, error)) *FunctionTool[Args, Result] {
	t, err := NewFunctionTool(name, description, fn)
	if err != nil {
		panic(err)
	}
	return t
}

// Declaration implements [types.Tool].
func (t *FunctionTool[Args, Result]) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.args.GenAISchema(),
	}
}

// Run implements [types.Tool].
func (t *FunctionTool[Args, Result]) Run(ctx context.Context, args map[string]any) (any, error) {
	a, err := t.args.DecodeMap(args)
	if err != nil {
		return nil, fmt.Errorf("tool %s: invalid arguments: %w", t.Name(), err)
	}
	return t.fn(ctx, *a)
}
