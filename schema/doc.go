// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema derives structured-output and tool-input schemas from Go types.
//
// A [Schema] is built once per type with [Of] and implements [types.OutputSchema]:
//
//	type Critique struct {
//		Score int `json:"score" jsonschema:"minimum=0,maximum=10"`
//	}
//
//	critiqueSchema := schema.MustOf[Critique]()
//	critic, err := types.NewAgentDescriptor("critic", types.WithOutputSchema(critiqueSchema))
//
// Model output is validated against the reflected JSON Schema document with
// github.com/google/jsonschema-go and then decoded strictly into the Go type,
// rejecting unknown members. A failure is reported as a [*ValidationError].
package schema
