// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ErrUnknownModel is returned when no registered pattern matches a model name.
var ErrUnknownModel = errors.New("unknown model")

// ModelCreatorFunc creates a model instance.
type ModelCreatorFunc func(ctx context.Context, apiKey string, modelName string, opts ...Option) (Model, error)

type provider struct {
	typ      ModelType
	patterns []*regexp.Regexp
	creator  ModelCreatorFunc
}

func (p *provider) match(modelName string) bool {
	for _, re := range p.patterns {
		if re.MatchString(modelName) {
			return true
		}
	}
	return false
}

// LLMRegistry maps model names to the provider that serves them.
//
// Providers are consulted in registration order; the first whose pattern
// matches the whole name wins.
type LLMRegistry struct {
	mu        sync.RWMutex
	providers []*provider
}

// NewLLMRegistry returns an empty registry.
func NewLLMRegistry() *LLMRegistry {
	return &LLMRegistry{}
}

var defaultRegistry = sync.OnceValue(func() *LLMRegistry {
	r := NewLLMRegistry()
	r.mustRegister(ModelTypeClaude, func(ctx context.Context, apiKey, modelName string, opts ...Option) (Model, error) {
		return NewClaude(ctx, apiKey, modelName, opts...)
	}, `claude-.*`)
	r.mustRegister(ModelTypeGemini, func(ctx context.Context, apiKey, modelName string, opts ...Option) (Model, error) {
		return NewGemini(ctx, apiKey, modelName, opts...)
	}, `gemini-.*`)
	return r
})

// GetRegistry returns the process-wide registry with the Claude and Gemini
// backends registered.
func GetRegistry() *LLMRegistry {
	return defaultRegistry()
}

// Register adds a provider of typ serving every model name that fully matches
// one of patterns.
func (r *LLMRegistry) Register(typ ModelType, creator ModelCreatorFunc, patterns ...string) error {
	if creator == nil {
		return errors.New("register model: nil creator")
	}
	if len(patterns) == 0 {
		return errors.New("register model: no patterns")
	}

	p := &provider{
		typ:      typ,
		patterns: make([]*regexp.Regexp, 0, len(patterns)),
		creator:  creator,
	}
	for _, pattern := range patterns {
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return fmt.Errorf("compile model pattern %q: %w", pattern, err)
		}
		p.patterns = append(p.patterns, re)
	}

	r.mu.Lock()
	r.providers = append(r.providers, p)
	r.mu.Unlock()

	return nil
}

func (r *LLMRegistry) mustRegister(typ ModelType, creator ModelCreatorFunc, patterns ...string) {
	if err := r.Register(typ, creator, patterns...); err != nil {
		panic(err)
	}
}

// RegisterLLM registers creator for model names matching pattern, with no
// provider type.
func (r *LLMRegistry) RegisterLLM(pattern string, creator ModelCreatorFunc) error {
	return r.Register("", creator, pattern)
}

func (r *LLMRegistry) resolve(modelName string) (*provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.providers {
		if p.match(modelName) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, modelName)
}

// Provider returns the type of the provider serving modelName.
func (r *LLMRegistry) Provider(modelName string) (ModelType, error) {
	p, err := r.resolve(modelName)
	if err != nil {
		return "", err
	}
	return p.typ, nil
}

// NewLLM creates a model instance for modelName.
func (r *LLMRegistry) NewLLM(ctx context.Context, apiKey string, modelName string, opts ...Option) (Model, error) {
	p, err := r.resolve(modelName)
	if err != nil {
		return nil, err
	}
	return p.creator(ctx, apiKey, modelName, opts...)
}

// RegisterLLM registers a model pattern on the process-wide registry.
func RegisterLLM(pattern string, creator ModelCreatorFunc) error {
	return GetRegistry().RegisterLLM(pattern, creator)
}

// NewLLM creates a model instance from the process-wide registry.
func NewLLM(ctx context.Context, apiKey string, modelName string, opts ...Option) (Model, error) {
	return GetRegistry().NewLLM(ctx, apiKey, modelName, opts...)
}
