// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	jsonschemago "github.com/google/jsonschema-go/jsonschema"
)

// ErrNoJSON is returned when the model output holds no JSON object.
var ErrNoJSON = errors.New("no JSON object in output")

// ValidationError reports model output that does not conform to the schema named Schema.
type ValidationError struct {
	Schema string
	Err    error
}

// Error implements [error].
func (e *ValidationError) Error() string {
	return "schema " + e.Schema + ": " + e.Err.Error()
}

// Unwrap returns the underlying validation failure.
func (e *ValidationError) Unwrap() error { return e.Err }

// ExtractJSON returns the JSON object held in raw model output.
//
// Markdown code fences are removed. When prose surrounds the object, the text from the
// first '{' to the last '}' is used.
func ExtractJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(text, "```"); ok {
		// drop the info string, e.g. ```json
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			rest = rest[i+1:]
		} else {
			rest = ""
		}
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "```"))
	}
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return text, nil
	}

	start, end := strings.IndexByte(text, '{'), strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}

// resolve compiles a reflected JSON Schema document for validation.
func resolve(data []byte) (*jsonschemago.Resolved, error) {
	var s jsonschemago.Schema
	if err := sonic.ConfigStd.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s.Resolve(nil)
}
