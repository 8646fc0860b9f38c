// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"reflect"

	"github.com/bytedance/sonic"
	"github.com/go-json-experiment/json"
	jsonschemago "github.com/google/jsonschema-go/jsonschema"
	"github.com/invopop/jsonschema"
	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/types"
)

// Schema is the schema of the Go type T.
type Schema[T any] struct {
	name     string
	js       *jsonschema.Schema
	doc      map[string]any
	genai    *genai.Schema
	resolved *jsonschemago.Resolved
}

var _ types.OutputSchema = (*Schema[struct{}])(nil)

// Of reflects the schema of T.
//
// T must be a struct type. Field names follow the json struct tags, and constraints
// follow the jsonschema struct tags.
func Of[T any]() (*Schema[T], error) {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %s is not a struct type", typ)
	}

	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	js := r.ReflectFromType(typ)
	js.Version = ""

	data, err := sonic.ConfigFastest.Marshal(js)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal %s: %w", typ, err)
	}
	var doc map[string]any
	if err := sonic.ConfigFastest.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: unmarshal %s: %w", typ, err)
	}
	resolved, err := resolve(data)
	if err != nil {
		return nil, fmt.Errorf("schema: resolve %s: %w", typ, err)
	}

	return &Schema[T]{
		name:     typ.Name(),
		js:       js,
		doc:      doc,
		genai:    GenAI(js),
		resolved: resolved,
	}, nil
}

// MustOf is like [Of] but panics on error.
func MustOf[T any]() *Schema[T] {
	s, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// Name implements [types.OutputSchema].
func (s *Schema[T]) Name() string { return s.name }

// JSONSchema implements [types.OutputSchema].
func (s *Schema[T]) JSONSchema() map[string]any { return s.doc }

// GenAISchema implements [types.OutputSchema].
func (s *Schema[T]) GenAISchema() *genai.Schema { return s.genai }

// Reflected returns the reflected JSON Schema.
func (s *Schema[T]) Reflected() *jsonschema.Schema { return s.js }

// Validate implements [types.OutputSchema].
//
// The returned value is a *T.
func (s *Schema[T]) Validate(raw string) (any, error) {
	return s.Decode(raw)
}

// Decode validates raw against the schema and decodes it into a *T.
func (s *Schema[T]) Decode(raw string) (*T, error) {
	text, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := sonic.ConfigFastest.UnmarshalFromString(text, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := s.resolved.Validate(doc); err != nil {
		return nil, &ValidationError{Schema: s.name, Err: err}
	}

	v := new(T)
	if err := json.Unmarshal([]byte(text), v, json.RejectUnknownMembers(true)); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.name, err)
	}
	return v, nil
}

// DecodeMap decodes args, as produced by a model function call, into a *T.
func (s *Schema[T]) DecodeMap(args map[string]any) (*T, error) {
	data, err := sonic.ConfigFastest.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode args: %w", err)
	}
	if args == nil {
		data = []byte("{}")
	}
	return s.Decode(string(data))
}
