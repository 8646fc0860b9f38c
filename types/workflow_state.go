// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/tiendc/go-deepcopy"
)

// InputStage is the name under which workflows record their initial input.
const InputStage = "input"

// StateReader is a read-only view of the results recorded by a workflow run.
type StateReader interface {
	// Get returns the result recorded for stage.
	Get(stage string) (*InvocationResult, bool)

	// Require returns the result recorded for ref on behalf of stage, or an [*UndefinedStageError].
	Require(stage, ref string) (*InvocationResult, error)

	// Text returns the raw text recorded for stage, or empty.
	Text(stage string) string
}

var _ StateReader = (*WorkflowState)(nil)

// WorkflowState maps stage names to the results recorded by one workflow run.
//
// It is append-only: a recorded stage is never overwritten. A WorkflowState is owned by
// exactly one run and is not safe for concurrent mutation.
type WorkflowState struct {
	order   []string
	results map[string]*InvocationResult
}

// NewWorkflowState returns an empty [WorkflowState].
func NewWorkflowState() *WorkflowState {
	return &WorkflowState{
		results: make(map[string]*InvocationResult),
	}
}

// Append records the result of stage.
//
// It returns [ErrStageRecorded] if stage already has a result.
func (s *WorkflowState) Append(stage string, result *InvocationResult) error {
	if _, ok := s.results[stage]; ok {
		return fmt.Errorf("stage %q: %w", stage, ErrStageRecorded)
	}
	s.order = append(s.order, stage)
	s.results[stage] = result
	return nil
}

// Get returns the result recorded for stage.
func (s *WorkflowState) Get(stage string) (*InvocationResult, bool) {
	r, ok := s.results[stage]
	return r, ok
}

// Text returns the raw text recorded for stage, or empty.
func (s *WorkflowState) Text(stage string) string {
	if r, ok := s.results[stage]; ok && r != nil {
		return r.RawText
	}
	return ""
}

// Require returns the result recorded for ref on behalf of stage, or an [*UndefinedStageError].
func (s *WorkflowState) Require(stage, ref string) (*InvocationResult, error) {
	r, ok := s.results[ref]
	if !ok {
		return nil, &UndefinedStageError{Stage: stage, Ref: ref}
	}
	return r, nil
}

// Has reports whether stage has been recorded.
func (s *WorkflowState) Has(stage string) bool {
	_, ok := s.results[stage]
	return ok
}

// Names returns the recorded stage names in recording order.
func (s *WorkflowState) Names() []string {
	return slices.Clone(s.order)
}

// Len returns the number of recorded stages.
func (s *WorkflowState) Len() int {
	return len(s.order)
}

// All iterates over the recorded stages in recording order.
func (s *WorkflowState) All() iter.Seq2[string, *InvocationResult] {
	return func(yield func(string, *InvocationResult) bool) {
		for _, name := range s.order {
			if !yield(name, s.results[name]) {
				return
			}
		}
	}
}

// Map returns a shallow copy of the recorded results keyed by stage name.
func (s *WorkflowState) Map() map[string]*InvocationResult {
	return maps.Clone(s.results)
}

// Snapshot returns a deep copy of s.
func (s *WorkflowState) Snapshot() (*WorkflowState, error) {
	snap := &WorkflowState{
		order:   slices.Clone(s.order),
		results: make(map[string]*InvocationResult, len(s.results)),
	}
	for name, r := range s.results {
		if r == nil {
			snap.results[name] = nil
			continue
		}
		cp := new(InvocationResult)
		if err := deepcopy.Copy(cp, r); err != nil {
			return nil, fmt.Errorf("copy stage %q: %w", name, err)
		}
		snap.results[name] = cp
	}
	return snap, nil
}
