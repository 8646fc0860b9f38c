// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

var genaiTypes = map[string]genai.Type{
	"object":  genai.TypeObject,
	"array":   genai.TypeArray,
	"string":  genai.TypeString,
	"integer": genai.TypeInteger,
	"number":  genai.TypeNumber,
	"boolean": genai.TypeBoolean,
}

// GenAI converts a JSON Schema to the [*genai.Schema] dialect.
//
// Property order is kept in PropertyOrdering. A type union with "null" becomes a
// nullable schema of the remaining type.
func GenAI(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Title:       s.Title,
		Description: s.Description,
		Pattern:     s.Pattern,
		Required:    slices.Clone(s.Required),
	}

	switch {
	case s.Type != "":
		out.Type = genaiTypes[s.Type]
	case len(s.AnyOf) == 2:
		// ["T", "null"]
		for _, sub := range s.AnyOf {
			if sub.Type == "null" {
				out.Nullable = genai.Ptr(true)
				continue
			}
			inner := GenAI(sub)
			inner.Nullable = genai.Ptr(true)
			if out.Description != "" {
				inner.Description = out.Description
			}
			out = inner
		}
	}

	if s.Format == "date-time" || s.Format == "enum" {
		out.Format = s.Format
	}
	for _, e := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(e))
	}
	if s.Minimum != "" {
		if f, err := s.Minimum.Float64(); err == nil {
			out.Minimum = genai.Ptr(f)
		}
	}
	if s.Maximum != "" {
		if f, err := s.Maximum.Float64(); err == nil {
			out.Maximum = genai.Ptr(f)
		}
	}
	if s.MinItems != nil {
		out.MinItems = genai.Ptr(int64(*s.MinItems))
	}
	if s.MaxItems != nil {
		out.MaxItems = genai.Ptr(int64(*s.MaxItems))
	}
	if s.MinLength != nil {
		out.MinLength = genai.Ptr(int64(*s.MinLength))
	}
	if s.MaxLength != nil {
		out.MaxLength = genai.Ptr(int64(*s.MaxLength))
	}
	if s.Items != nil {
		out.Items = GenAI(s.Items)
	}

	if s.Properties != nil && s.Properties.Len() > 0 {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = GenAI(pair.Value)
			out.PropertyOrdering = append(out.PropertyOrdering, pair.Key)
		}
	}

	return out
}
