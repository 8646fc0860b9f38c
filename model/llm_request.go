// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/types"
)

// LLMRequest represents a request to a language model.
type LLMRequest struct {
	// Model is the model name. Empty means the model's own default.
	Model string

	// SystemInstruction is the system prompt.
	SystemInstruction string

	Contents []*genai.Content

	// Tools are the functions the model may call.
	Tools []*genai.FunctionDeclaration

	// ResponseSchema constrains the final answer when set.
	ResponseSchema types.OutputSchema

	// Config carries sampling parameters. Tools, system instruction and response schema
	// set on it are ignored in favor of the fields above.
	Config *genai.GenerateContentConfig
}

// NewLLMRequest creates a new LLMRequest.
func NewLLMRequest(contents ...*genai.Content) *LLMRequest {
	return &LLMRequest{
		Contents: contents,
	}
}

// UserContent creates a new user content.
func UserContent(parts ...string) *genai.Content {
	contentParts := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		contentParts = append(contentParts, genai.NewPartFromText(part))
	}
	return genai.NewContentFromParts(contentParts, genai.RoleUser)
}

// ModelContent creates a new model content.
func ModelContent(parts ...string) *genai.Content {
	contentParts := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		contentParts = append(contentParts, genai.NewPartFromText(part))
	}
	return genai.NewContentFromParts(contentParts, genai.RoleModel)
}

// AppendInstructions adds system instructions to the request, separated by blank lines.
func (r *LLMRequest) AppendInstructions(instructions ...string) *LLMRequest {
	parts := make([]string, 0, len(instructions)+1)
	if r.SystemInstruction != "" {
		parts = append(parts, r.SystemInstruction)
	}
	for _, inst := range instructions {
		if inst = strings.TrimSpace(inst); inst != "" {
			parts = append(parts, inst)
		}
	}
	r.SystemInstruction = strings.Join(parts, "\n\n")
	return r
}

// AppendTools adds the function declarations of tools to the request.
func (r *LLMRequest) AppendTools(tools ...types.Tool) *LLMRequest {
	for _, t := range tools {
		if decl := t.Declaration(); decl != nil {
			r.Tools = append(r.Tools, decl)
		}
	}
	return r
}

// AppendContents appends contents to the conversation.
func (r *LLMRequest) AppendContents(contents ...*genai.Content) *LLMRequest {
	r.Contents = append(r.Contents, contents...)
	return r
}
