// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model provides the LLM backends behind the agent invocation service.
//
// Every backend implements [Model] over a provider-neutral [LLMRequest] and
// [LLMResponse] built from google.golang.org/genai content types.
//
// # Supported Providers
//
//   - Anthropic Claude through github.com/anthropics/anthropic-sdk-go
//   - Google Gemini through google.golang.org/genai
//
// # Model Registry
//
// Model names are resolved to a backend by regex pattern, so claude-sonnet-4-5
// is served by Claude and gemini-2.0-flash by Gemini.
//
// A [DefaultModelFactory] resolves names through the registry and reuses the
// created client for each name:
//
//	factory := model.NewModelFactory(nil, map[model.ModelType]string{
//		model.ModelTypeClaude: os.Getenv(model.EnvAnthropicAPIKey),
//	})
//	m, err := factory.CreateModel(ctx, "claude-sonnet-4-5")
//
// Custom backends are added with [LLMRegistry.Register].
package model
