// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/types"
)

type stubTool struct{ name string }

func (t stubTool) Name() string        { return t.name }
func (t stubTool) Description() string { return "" }
func (t stubTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{Name: t.name}
}
func (t stubTool) Run(context.Context, map[string]any) (any, error) { return nil, nil }

func TestNewAgentDescriptor(t *testing.T) {
	logs := types.MustAgentDescriptor("Logs Investigator", types.WithDescription("log errors"))
	cost := types.MustAgentDescriptor("Cloud Cost Analyst", types.WithDescription("billing"))

	tests := []struct {
		name    string
		agent   string
		opts    []types.DescriptorOption
		wantErr error
	}{
		{
			name:  "valid",
			agent: "Incident Triage",
			opts: []types.DescriptorOption{
				types.WithInstruction("route"),
				types.WithHandoffs(logs, cost),
				types.WithTools(stubTool{"a"}, stubTool{"b"}),
			},
		},
		{
			name:    "empty name",
			agent:   "",
			wantErr: types.ErrInvalidName,
		},
		{
			name:    "reserved name",
			agent:   "user",
			wantErr: types.ErrInvalidName,
		},
		{
			name:    "punctuation",
			agent:   "a/b",
			wantErr: types.ErrInvalidName,
		},
		{
			name:    "duplicate tool",
			agent:   "calc",
			opts:    []types.DescriptorOption{types.WithTools(stubTool{"a"}, stubTool{"a"})},
			wantErr: types.ErrDuplicateName,
		},
		{
			name:    "duplicate handoff",
			agent:   "router",
			opts:    []types.DescriptorOption{types.WithHandoffs(logs, logs)},
			wantErr: types.ErrDuplicateName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := types.NewAgentDescriptor(tt.agent, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewAgentDescriptor() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && d.Name() != tt.agent {
				t.Fatalf("Name() = %q, want %q", d.Name(), tt.agent)
			}
		})
	}
}

func TestAgentDescriptor_Immutable(t *testing.T) {
	logs := types.MustAgentDescriptor("logs")
	cost := types.MustAgentDescriptor("cost")
	router := types.MustAgentDescriptor("router", types.WithHandoffs(logs, cost))

	handoffs := router.Handoffs()
	handoffs[0] = cost

	var got []string
	for _, h := range router.Handoffs() {
		got = append(got, h.Name())
	}
	if diff := cmp.Diff([]string{"logs", "cost"}, got); diff != "" {
		t.Fatalf("Handoffs() mismatch (-want +got):\n%s", diff)
	}

	if target, ok := router.FindHandoff("cost"); !ok || target != cost {
		t.Fatalf("FindHandoff(cost) = %v, %v", target, ok)
	}
	if _, ok := router.FindHandoff("network"); ok {
		t.Fatal("FindHandoff(network) should not be found")
	}
}

func TestAgentDescriptor_SelfHandoff(t *testing.T) {
	a := types.MustAgentDescriptor("a")
	if _, err := types.NewAgentDescriptor("a", types.WithHandoffs(a)); err == nil {
		t.Fatal("expected error for self handoff")
	}
}
