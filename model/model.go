// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"

	"google.golang.org/genai"
)

// Role is the author of a [genai.Content] turn.
type Role = string

// Conversation roles. Claude calls the model turn "assistant"; both spellings
// are accepted when converting history.
const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = genai.RoleUser
	RoleModel     Role = genai.RoleModel
)

// Model is one LLM backend. The invocation service sends it a single request
// per round and expects one complete response; streaming is not used.
//
// Implementations must be safe for concurrent use by parallel branches.
type Model interface {
	Name() string
	GenerateContent(ctx context.Context, request *LLMRequest) (*LLMResponse, error)
}
