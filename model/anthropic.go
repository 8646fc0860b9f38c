// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bytedance/sonic"
	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/types"
)

const (
	// ClaudeDefaultModel is the default model name for [Claude].
	ClaudeDefaultModel = string(anthropic.ModelClaudeSonnet4_5)

	// EnvAnthropicAPIKey is the environment variable name for the Anthropic API key.
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// Claude represents a Claude Large Language Model.
type Claude struct {
	model  string
	config Config

	anthropicClient anthropic.Client
}

var _ Model = (*Claude)(nil)

// NewClaude creates a new Claude LLM instance.
func NewClaude(ctx context.Context, apiKey string, modelName string, opts ...Option) (*Claude, error) {
	// Check API key and use [EnvAnthropicAPIKey] environment variable if not provided
	if apiKey == "" {
		envAPIKey := os.Getenv(EnvAnthropicAPIKey)
		if envAPIKey == "" {
			return nil, fmt.Errorf("either apiKey arg or %q environment variable must be set", EnvAnthropicAPIKey)
		}
		apiKey = envAPIKey
	}

	// Use default model if none provided
	if modelName == "" {
		modelName = ClaudeDefaultModel
	}

	config := newConfig(opts)
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if config.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(config.baseURL))
	}
	if config.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(config.httpClient))
	}

	return &Claude{
		model:           modelName,
		config:          config,
		anthropicClient: anthropic.NewClient(reqOpts...),
	}, nil
}

// Name implements [Model].
func (m *Claude) Name() string {
	return m.model
}

// GenerateContent implements [Model].
func (m *Claude) GenerateContent(ctx context.Context, request *LLMRequest) (*LLMResponse, error) {
	params, err := m.buildParams(request)
	if err != nil {
		return nil, err
	}

	m.config.logger.DebugContext(ctx, "claude request",
		"model", params.Model,
		"messages", len(params.Messages),
		"tools", len(params.Tools),
	)

	message, err := m.anthropicClient.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude API error: %w", err)
	}

	return claudeMessageToLLMResponse(message), nil
}

func (m *Claude) buildParams(request *LLMRequest) (anthropic.MessageNewParams, error) {
	modelName := m.model
	if request.Model != "" {
		modelName = request.Model
	}

	messages := make([]anthropic.MessageParam, 0, len(request.Contents))
	for _, content := range request.Contents {
		if content == nil || content.Role == RoleSystem {
			continue
		}
		msg, err := contentToClaudeMessageParam(content)
		if err != nil {
			return anthropic.MessageNewParams{}, err
		}
		if len(msg.Content) > 0 {
			messages = append(messages, msg)
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelName),
		Messages:  messages,
		MaxTokens: m.config.maxTokens,
	}

	// Apply generation config if provided
	if config := request.Config; config != nil {
		if config.MaxOutputTokens > 0 {
			params.MaxTokens = int64(config.MaxOutputTokens)
		}
		if config.Temperature != nil {
			params.Temperature = anthropic.Float(float64(*config.Temperature))
		}
		if config.TopK != nil {
			params.TopK = anthropic.Int(int64(*config.TopK))
		}
		if config.TopP != nil {
			params.TopP = anthropic.Float(float64(*config.TopP))
		}
		params.StopSequences = config.StopSequences
	}

	if request.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: request.SystemInstruction},
		}
	}

	if len(request.Tools) > 0 {
		params.Tools = make([]anthropic.ToolUnionParam, 0, len(request.Tools))
		for _, decl := range request.Tools {
			toolUnion, err := functionDeclarationToToolParam(decl)
			if err != nil {
				return anthropic.MessageNewParams{}, err
			}
			params.Tools = append(params.Tools, toolUnion)
		}
	}

	return params, nil
}

func functionDeclarationToToolParam(funcDeclaration *genai.FunctionDeclaration) (toolUnion anthropic.ToolUnionParam, err error) {
	if funcDeclaration.Name == "" {
		return toolUnion, errors.New("functionDeclaration name is empty")
	}

	inputSchema := anthropic.ToolInputSchemaParam{
		Properties: map[string]any{},
	}
	if params := funcDeclaration.Parameters; params != nil {
		props := make(map[string]any, len(params.Properties))
		for name, prop := range params.Properties {
			props[name] = genaiSchemaToJSON(prop)
		}
		inputSchema.Properties = props
		inputSchema.Required = params.Required
	}

	toolUnion = anthropic.ToolUnionParamOfTool(inputSchema, funcDeclaration.Name)
	if funcDeclaration.Description != "" {
		toolUnion.OfTool.Description = anthropic.String(funcDeclaration.Description)
	}

	return toolUnion, nil
}

// genaiSchemaToJSON converts a [*genai.Schema] back to a JSON Schema document.
func genaiSchemaToJSON(s *genai.Schema) map[string]any {
	if s == nil {
		return map[string]any{}
	}

	doc := make(map[string]any)
	if s.Type != "" {
		doc["type"] = strings.ToLower(string(s.Type))
	}
	if s.Description != "" {
		doc["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		doc["enum"] = s.Enum
	}
	if s.Minimum != nil {
		doc["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		doc["maximum"] = *s.Maximum
	}
	if s.MinItems != nil {
		doc["minItems"] = *s.MinItems
	}
	if s.MaxItems != nil {
		doc["maxItems"] = *s.MaxItems
	}
	if s.Items != nil {
		doc["items"] = genaiSchemaToJSON(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = genaiSchemaToJSON(prop)
		}
		doc["properties"] = props
	}
	if len(s.Required) > 0 {
		doc["required"] = s.Required
	}
	return doc
}

var genAIRoles = []Role{
	RoleModel,
	RoleAssistant,
}

func asClaudeRole(role string) anthropic.MessageParamRole {
	if slices.Contains(genAIRoles, role) {
		return anthropic.MessageParamRoleAssistant
	}
	return anthropic.MessageParamRoleUser
}

var claudeStopReasons = []anthropic.StopReason{
	anthropic.StopReasonEndTurn,
	anthropic.StopReasonStopSequence,
	anthropic.StopReasonToolUse,
}

func asClaudeToFinishReason(stopReason anthropic.StopReason) genai.FinishReason {
	if slices.Contains(claudeStopReasons, stopReason) {
		return genai.FinishReasonStop
	}

	if stopReason == anthropic.StopReasonMaxTokens {
		return genai.FinishReasonMaxTokens
	}

	return genai.FinishReasonUnspecified
}

func partToClaudeMessageBlock(part *genai.Part) (anthropic.ContentBlockParamUnion, error) {
	switch {
	case part.FunctionCall != nil:
		funcCall := part.FunctionCall
		if funcCall.Name == "" {
			return anthropic.ContentBlockParamUnion{}, errors.New("FunctionCall name is empty")
		}
		args := funcCall.Args
		if args == nil {
			args = map[string]any{}
		}
		return anthropic.NewToolUseBlock(funcCall.ID, args, funcCall.Name), nil

	case part.FunctionResponse != nil:
		funcResp := part.FunctionResponse
		content, err := sonic.ConfigFastest.MarshalToString(funcResp.Response)
		if err != nil {
			return anthropic.ContentBlockParamUnion{}, fmt.Errorf("marshal function response %s: %w", funcResp.Name, err)
		}
		_, isError := funcResp.Response["error"]
		return anthropic.NewToolResultBlock(funcResp.ID, content, isError), nil

	case part.Text != "":
		return anthropic.NewTextBlock(part.Text), nil
	}

	return anthropic.ContentBlockParamUnion{}, errNoClaudeBlock
}

var errNoClaudeBlock = errors.New("part has no Claude equivalent")

// contentToClaudeMessageParam converts [*genai.Content] to [anthropic.MessageParam].
func contentToClaudeMessageParam(content *genai.Content) (msgParam anthropic.MessageParam, err error) {
	msgParam.Role = asClaudeRole(content.Role)
	msgParam.Content = make([]anthropic.ContentBlockParamUnion, 0, len(content.Parts))
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		msgBlock, err := partToClaudeMessageBlock(part)
		if errors.Is(err, errNoClaudeBlock) {
			continue
		}
		if err != nil {
			return msgParam, err
		}
		msgParam.Content = append(msgParam.Content, msgBlock)
	}

	return msgParam, nil
}

func claudeContentBlockToPart(contentBlock anthropic.ContentBlockUnion) (*genai.Part, error) {
	switch cBlock := contentBlock.AsAny().(type) {
	case anthropic.TextBlock:
		return genai.NewPartFromText(cBlock.Text), nil

	case anthropic.ToolUseBlock:
		args := make(map[string]any)
		if len(cBlock.Input) > 0 {
			if err := sonic.ConfigFastest.Unmarshal(cBlock.Input, &args); err != nil {
				return nil, fmt.Errorf("unmarshal ToolUseBlock input: %w", err)
			}
		}
		part := genai.NewPartFromFunctionCall(cBlock.Name, args)
		part.FunctionCall.ID = cBlock.ID
		return part, nil
	}

	return nil, fmt.Errorf("not supported yet converts %q content block", contentBlock.Type)
}

func claudeMessageToLLMResponse(message *anthropic.Message) *LLMResponse {
	parts := make([]*genai.Part, 0, len(message.Content))
	for _, mcontent := range message.Content {
		part, err := claudeContentBlockToPart(mcontent)
		if err != nil {
			continue
		}
		parts = append(parts, part)
	}

	return &LLMResponse{
		Content: &genai.Content{
			Role:  RoleModel,
			Parts: parts,
		},
		FinishReason: asClaudeToFinishReason(message.StopReason),
		Usage: types.Usage{
			InputTokens:  message.Usage.InputTokens,
			OutputTokens: message.Usage.OutputTokens,
		},
	}
}
