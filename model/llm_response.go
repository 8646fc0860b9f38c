// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/types"
)

// LLMResponse represents a response from a language model.
type LLMResponse struct {
	// Content is the content of the response.
	Content *genai.Content

	// FinishReason is the reason the model stopped generating.
	FinishReason genai.FinishReason

	// Usage is the token usage of the request.
	Usage types.Usage

	// ErrorCode is the error code if the response is an error. Code varies by model.
	ErrorCode string

	// ErrorMessage is the error message if the response is an error.
	ErrorMessage string
}

// CreateLLMResponse creates an [LLMResponse] from a [*genai.GenerateContentResponse].
func CreateLLMResponse(resp *genai.GenerateContentResponse) *LLMResponse {
	response := &LLMResponse{}

	if resp == nil {
		response.ErrorCode = "UNKNOWN_ERROR"
		response.ErrorMessage = "Generate content response is nil."
		return response
	}

	if usage := resp.UsageMetadata; usage != nil {
		response.Usage = types.Usage{
			InputTokens:  int64(usage.PromptTokenCount),
			OutputTokens: int64(usage.CandidatesTokenCount),
		}
	}

	switch {
	case len(resp.Candidates) > 0:
		candidate := resp.Candidates[0]
		response.FinishReason = candidate.FinishReason
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			response.Content = candidate.Content
		} else {
			response.ErrorCode = string(candidate.FinishReason)
			response.ErrorMessage = candidate.FinishMessage
		}

	case resp.PromptFeedback != nil:
		response.ErrorCode = string(resp.PromptFeedback.BlockReason)
		response.ErrorMessage = resp.PromptFeedback.BlockReasonMessage

	default:
		response.ErrorCode = "UNKNOWN_ERROR"
		response.ErrorMessage = "Unknown error."
	}

	return response
}

// Err returns the error reported by the model, if any.
func (r *LLMResponse) Err() error {
	if r.ErrorCode == "" {
		return nil
	}
	if r.ErrorMessage == "" {
		return fmt.Errorf("model error %s", r.ErrorCode)
	}
	return fmt.Errorf("model error %s: %s", r.ErrorCode, r.ErrorMessage)
}

// Text returns the concatenated text parts of the response.
func (r *LLMResponse) Text() string {
	if r.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// FunctionCalls returns the function calls of the response in model order.
func (r *LLMResponse) FunctionCalls() []*genai.FunctionCall {
	if r.Content == nil {
		return nil
	}
	var calls []*genai.FunctionCall
	for _, part := range r.Content.Parts {
		if part != nil && part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}
