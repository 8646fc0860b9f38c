// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"google.golang.org/genai"
)

const (
	// GeminiDefaultModel is the default model name for [Gemini].
	GeminiDefaultModel = "gemini-2.0-flash"

	// EnvGoogleAPIKey is the environment variable name for the Google AI API key.
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
)

// Gemini represents a Google Gemini Large Language Model.
type Gemini struct {
	model  string
	config Config

	genAIClient *genai.Client
}

var _ Model = (*Gemini)(nil)

// NewGemini creates a new [Gemini] instance.
func NewGemini(ctx context.Context, apiKey string, modelName string, opts ...Option) (*Gemini, error) {
	// Use default model if none provided
	if modelName == "" {
		modelName = GeminiDefaultModel
	}

	// Check API key and use [EnvGoogleAPIKey] environment variable if not provided
	if apiKey == "" {
		envAPIKey := os.Getenv(EnvGoogleAPIKey)
		if envAPIKey == "" {
			return nil, fmt.Errorf("either apiKey arg or %q environment variable must be set", EnvGoogleAPIKey)
		}
		apiKey = envAPIKey
	}

	config := newConfig(opts)
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: config.httpClient,
	}
	if config.baseURL != "" {
		cc.HTTPOptions.BaseURL = config.baseURL
	}

	genAIClient, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		model:       modelName,
		config:      config,
		genAIClient: genAIClient,
	}, nil
}

// Name implements [Model].
func (m *Gemini) Name() string {
	return m.model
}

// appendUserContent checks if the last message is from the user and if not, appends a user message.
//
// The returned slice never aliases contents.
func (m *Gemini) appendUserContent(contents []*genai.Content) []*genai.Content {
	contents = slices.Clip(contents)

	switch {
	case len(contents) == 0:
		return append(contents, genai.NewContentFromText(
			`Handle the requests as specified in the System Instruction.`, genai.RoleUser))

	case strings.ToLower(contents[len(contents)-1].Role) != genai.RoleUser:
		return append(contents, genai.NewContentFromText(
			`Continue processing previous requests as instructed. Exit or provide a summary if no more outputs are needed.`, genai.RoleUser))

	default:
		return contents
	}
}

// buildConfig translates the request into a [*genai.GenerateContentConfig].
func (m *Gemini) buildConfig(request *LLMRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(m.config.maxTokens),
	}

	// Apply generation config if provided
	if rc := request.Config; rc != nil {
		config.Temperature = rc.Temperature
		config.TopP = rc.TopP
		config.TopK = rc.TopK
		config.StopSequences = rc.StopSequences
		config.SafetySettings = rc.SafetySettings
		if rc.MaxOutputTokens > 0 {
			config.MaxOutputTokens = rc.MaxOutputTokens
		}
	}

	if request.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(request.SystemInstruction, genai.RoleUser)
	}

	if len(request.Tools) > 0 {
		config.Tools = []*genai.Tool{
			{FunctionDeclarations: request.Tools},
		}
	}

	// Gemini rejects a response schema combined with function calling.
	if request.ResponseSchema != nil && len(request.Tools) == 0 {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = request.ResponseSchema.GenAISchema()
	}

	return config
}

// GenerateContent implements [Model].
func (m *Gemini) GenerateContent(ctx context.Context, request *LLMRequest) (*LLMResponse, error) {
	modelName := m.model
	if request.Model != "" {
		modelName = request.Model
	}

	// Ensure the last message is from the user
	contents := m.appendUserContent(request.Contents)

	response, err := m.genAIClient.Models.GenerateContent(ctx, modelName, contents, m.buildConfig(request))
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	m.config.logger.DebugContext(ctx, "gemini response", buildResponseLog(response))

	return CreateLLMResponse(response), nil
}

const responseLogFmt = `
LLM Response:
-----------------------------------------------------------
Text:
%s
-----------------------------------------------------------
Function calls:
%s
-----------------------------------------------------------
`

func buildResponseLog(resp *genai.GenerateContentResponse) slog.Attr {
	functionCalls := resp.FunctionCalls()
	functionCallsText := make([]string, len(functionCalls))
	for i, funcCall := range functionCalls {
		functionCallsText[i] = fmt.Sprintf("name: %s, args: %v", funcCall.Name, funcCall.Args)
	}

	return slog.String("response", fmt.Sprintf(responseLogFmt, resp.Text(), strings.Join(functionCallsText, "\n")))
}
