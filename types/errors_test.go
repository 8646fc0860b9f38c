// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-a2a/adk-patterns/types"
)

func TestErrors_Message(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"incomplete loop": {
			err:  &types.IncompleteLoopError{Iterations: 2},
			want: "reflection loop ended after 2 iteration(s) without a critique",
		},
		"undefined stage": {
			err:  &types.UndefinedStageError{Stage: "review", Ref: "draft"},
			want: `stage "review" references undefined prior stage "draft"`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIncompleteLoopError_As(t *testing.T) {
	err := fmt.Errorf("reflection %q: %w", "writer", &types.IncompleteLoopError{Iterations: 3})

	var incomplete *types.IncompleteLoopError
	if !errors.As(err, &incomplete) {
		t.Fatalf("errors.As(%v) = false", err)
	}
	if incomplete.Iterations != 3 {
		t.Fatalf("Iterations = %d, want 3", incomplete.Iterations)
	}

	var undefined *types.UndefinedStageError
	if errors.As(err, &undefined) {
		t.Fatalf("errors.As matched *types.UndefinedStageError")
	}
}
