// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tool provides the base of tool implementations.
//
// Tools are named functions with a declared input schema. The invocation service decides
// when to call them and feeds their results back to the model; workflows never see tool
// calls directly.
//
// Concrete tools live in the tools subpackage:
//
//	type args struct {
//		Weight float64 `json:"weight_kg"`
//		Height float64 `json:"height_cm"`
//	}
//
//	bmi, err := tools.NewFunctionTool("calculate_bmi", "Computes the body mass index.",
//		func(ctx context.Context, a args) (float64, error) {
//			m := a.Height / 100
//			return a.Weight / (m * m), nil
//		})
package tool
