// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"slices"
	"unicode"

	"google.golang.org/genai"
)

// AgentDescriptor is the immutable definition of one invocation unit.
//
// Construct it with [NewAgentDescriptor]; the zero value is not usable.
type AgentDescriptor struct {
	// The agent's name.
	//
	// Name must be unique within the handoff set of any router that references it.
	name string

	// Description about the agent's capability.
	//
	// Routers embed it in their instructions to decide where to delegate.
	description string

	// Instructions for the LLM model, guiding the agent's behavior.
	instruction string

	// Name of the model to use. Empty means the invocation service default.
	model string

	tools        []Tool
	outputSchema OutputSchema
	handoffs     []*AgentDescriptor

	generateConfig *genai.GenerateContentConfig
}

// DescriptorOption configures an [AgentDescriptor].
type DescriptorOption interface {
	apply(*AgentDescriptor)
}

type descriptorOptionFunc func(*AgentDescriptor)

func (o descriptorOptionFunc) apply(d *AgentDescriptor) { o(d) }

// WithDescription sets the capability description.
func WithDescription(description string) DescriptorOption {
	return descriptorOptionFunc(func(d *AgentDescriptor) {
		d.description = description
	})
}

// WithInstruction sets the instruction.
func WithInstruction(instruction string) DescriptorOption {
	return descriptorOptionFunc(func(d *AgentDescriptor) {
		d.instruction = instruction
	})
}

// WithModel sets the model name used for this agent.
func WithModel(model string) DescriptorOption {
	return descriptorOptionFunc(func(d *AgentDescriptor) {
		d.model = model
	})
}

// WithTools adds tools to the agent.
func WithTools(tools ...Tool) DescriptorOption {
	return descriptorOptionFunc(func(d *AgentDescriptor) {
		d.tools = append(d.tools, tools...)
	})
}

// WithOutputSchema sets the structured-output schema.
func WithOutputSchema(schema OutputSchema) DescriptorOption {
	return descriptorOptionFunc(func(d *AgentDescriptor) {
		d.outputSchema = schema
	})
}

// WithHandoffs adds downstream agents this agent may delegate to.
func WithHandoffs(targets ...*AgentDescriptor) DescriptorOption {
	return descriptorOptionFunc(func(d *AgentDescriptor) {
		d.handoffs = append(d.handoffs, targets...)
	})
}

// WithGenerateConfig sets the additional content generation configuration.
//
// Tools, system instruction and response schema are always derived from the descriptor and
// override the corresponding fields of config.
func WithGenerateConfig(config *genai.GenerateContentConfig) DescriptorOption {
	return descriptorOptionFunc(func(d *AgentDescriptor) {
		d.generateConfig = config
	})
}

// NewAgentDescriptor creates a new [AgentDescriptor] with the given name and options.
func NewAgentDescriptor(name string, opts ...DescriptorOption) (*AgentDescriptor, error) {
	if !validName(name) {
		return nil, fmt.Errorf("agent %q: %w", name, ErrInvalidName)
	}

	d := &AgentDescriptor{
		name: name,
	}
	for _, opt := range opts {
		opt.apply(d)
	}

	toolNames := make(map[string]bool, len(d.tools))
	for _, tool := range d.tools {
		if tool == nil {
			return nil, fmt.Errorf("agent %q: nil tool", name)
		}
		if toolNames[tool.Name()] {
			return nil, fmt.Errorf("agent %q: tool %q: %w", name, tool.Name(), ErrDuplicateName)
		}
		toolNames[tool.Name()] = true
	}

	handoffNames := make(map[string]bool, len(d.handoffs))
	for _, target := range d.handoffs {
		if target == nil {
			return nil, fmt.Errorf("agent %q: nil handoff target", name)
		}
		if target.name == name {
			return nil, fmt.Errorf("agent %q: cannot hand off to itself", name)
		}
		if handoffNames[target.name] {
			return nil, fmt.Errorf("agent %q: handoff %q: %w", name, target.name, ErrDuplicateName)
		}
		handoffNames[target.name] = true
	}

	return d, nil
}

// MustAgentDescriptor is like [NewAgentDescriptor] but panics on error.
func MustAgentDescriptor(name string, opts ...DescriptorOption) *AgentDescriptor {
	d, err := NewAgentDescriptor(name, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

func validName(name string) bool {
	if name == "" || name == "user" {
		return false
	}
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-', r == ' ':
		default:
			return false
		}
	}
	return name[0] != ' ' && name[len(name)-1] != ' '
}

// Name returns the agent's name.
func (d *AgentDescriptor) Name() string { return d.name }

// Description returns the agent's capability description.
func (d *AgentDescriptor) Description() string { return d.description }

// Instruction returns the agent's instruction.
func (d *AgentDescriptor) Instruction() string { return d.instruction }

// Model returns the model name, or empty for the invocation service default.
func (d *AgentDescriptor) Model() string { return d.model }

// Tools returns a copy of the agent's tool set.
func (d *AgentDescriptor) Tools() []Tool { return slices.Clone(d.tools) }

// Tool finds a tool by name.
func (d *AgentDescriptor) Tool(name string) (Tool, bool) {
	for _, tool := range d.tools {
		if tool.Name() == name {
			return tool, true
		}
	}
	return nil, false
}

// OutputSchema returns the output schema, or nil when the agent replies in free text.
func (d *AgentDescriptor) OutputSchema() OutputSchema { return d.outputSchema }

// Handoffs returns a copy of the ordered handoff set.
func (d *AgentDescriptor) Handoffs() []*AgentDescriptor { return slices.Clone(d.handoffs) }

// FindHandoff finds a handoff target by name.
func (d *AgentDescriptor) FindHandoff(name string) (*AgentDescriptor, bool) {
	for _, target := range d.handoffs {
		if target.name == name {
			return target, true
		}
	}
	return nil, false
}

// GenerateConfig returns the additional content generation configuration, which may be nil.
func (d *AgentDescriptor) GenerateConfig() *genai.GenerateContentConfig { return d.generateConfig }
