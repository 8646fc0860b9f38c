// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/tool/tools"
	"github.com/go-a2a/adk-patterns/types"
)

type bmiArgs struct {
	WeightKg float64 `json:"weight_kg" jsonschema:"description=Body weight in kilograms,minimum=1"`
	HeightCm float64 `json:"height_cm" jsonschema:"description=Height in centimeters,minimum=1"`
}

func calculateBMI(_ context.Context, a bmiArgs) (float64, error) {
	m := a.HeightCm / 100
	return a.WeightKg / (m * m), nil
}

func TestFunctionTool_Run(t *testing.T) {
	bmi, err := tools.NewFunctionTool("calculate_bmi", "Computes the body mass index.", calculateBMI)
	if err != nil {
		t.Fatalf("NewFunctionTool: %v", err)
	}

	got, err := bmi.Run(t.Context(), map[string]any{"weight_kg": 80.0, "height_cm": 200.0})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 20.0 {
		t.Fatalf("Run() = %v, want 20", got)
	}

	if _, err := bmi.Run(t.Context(), map[string]any{"weight_kg": 80.0}); err == nil {
		t.Fatal("Run() with missing argument should fail")
	}
	if _, err := bmi.Run(t.Context(), map[string]any{"weight_kg": 0.0, "height_cm": 180.0}); err == nil {
		t.Fatal("Run() below minimum should fail")
	}
}

func TestFunctionTool_Declaration(t *testing.T) {
	bmi := tools.MustFunctionTool("calculate_bmi", "Computes the body mass index.", calculateBMI)

	decl := bmi.Declaration()
	if decl.Name != "calculate_bmi" {
		t.Fatalf("Name = %q", decl.Name)
	}
	if diff := cmp.Diff([]string{"weight_kg", "height_cm"}, decl.Parameters.Required); diff != "" {
		t.Fatalf("Required mismatch (-want +got):\n%s", diff)
	}
	if got := decl.Parameters.Properties["weight_kg"].Type; got != genai.TypeNumber {
		t.Fatalf("weight_kg type = %v, want %v", got, genai.TypeNumber)
	}
}

func TestNewFunctionTool_InvalidName(t *testing.T) {
	_, err := tools.NewFunctionTool("calculate bmi", "", calculateBMI)
	if !errors.Is(err, types.ErrInvalidName) {
		t.Fatalf("NewFunctionTool() error = %v, want %v", err, types.ErrInvalidName)
	}
}

func TestTransferTool(t *testing.T) {
	logs := types.MustAgentDescriptor("Logs Investigator")
	cost := types.MustAgentDescriptor("Cloud Cost Analyst")
	transfer := tools.NewTransferTool([]*types.AgentDescriptor{logs, cost})

	decl := transfer.Declaration()
	if diff := cmp.Diff([]string{"Logs Investigator", "Cloud Cost Analyst"}, decl.Parameters.Properties["agent_name"].Enum); diff != "" {
		t.Fatalf("Enum mismatch (-want +got):\n%s", diff)
	}

	name, err := tools.TransferTarget(map[string]any{"agent_name": "Cloud Cost Analyst"})
	if err != nil || name != "Cloud Cost Analyst" {
		t.Fatalf("TransferTarget() = %q, %v", name, err)
	}
	if _, err := tools.TransferTarget(map[string]any{}); err == nil {
		t.Fatal("TransferTarget() without agent_name should fail")
	}
}
