// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"sync"
)

// ModelType names the provider behind a model. [DefaultModelFactory] keys API
// keys by it.
type ModelType = string

const (
	// ModelTypeGemini represents Gemini models.
	ModelTypeGemini ModelType = "gemini"
	// ModelTypeClaude represents Claude models.
	ModelTypeClaude ModelType = "claude"
)

// ModelFactory creates the models named by agent descriptors.
type ModelFactory interface {
	CreateModel(ctx context.Context, modelName string) (Model, error)
}

// DefaultModelFactory resolves model names through an [LLMRegistry] and reuses
// the created clients.
type DefaultModelFactory struct {
	registry *LLMRegistry
	apiKeys  map[ModelType]string
	opts     []Option

	mu     sync.Mutex
	models map[string]Model
}

var _ ModelFactory = (*DefaultModelFactory)(nil)

// NewModelFactory returns a factory creating models from registry.
//
// apiKeys maps a [ModelType] to its key. A missing key falls back to the
// provider's environment variable. A nil registry uses [GetRegistry].
func NewModelFactory(registry *LLMRegistry, apiKeys map[ModelType]string, opts ...Option) *DefaultModelFactory {
	if registry == nil {
		registry = GetRegistry()
	}
	return &DefaultModelFactory{
		registry: registry,
		apiKeys:  apiKeys,
		opts:     opts,
		models:   make(map[string]Model),
	}
}

// CreateModel implements [ModelFactory].
func (f *DefaultModelFactory) CreateModel(ctx context.Context, modelName string) (Model, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if m, ok := f.models[modelName]; ok {
		return m, nil
	}

	typ, err := f.registry.Provider(modelName)
	if err != nil {
		return nil, err
	}
	m, err := f.registry.NewLLM(ctx, f.apiKeys[typ], modelName, f.opts...)
	if err != nil {
		return nil, err
	}
	f.models[modelName] = m

	return m, nil
}
