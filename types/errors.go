// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// Caller misuse errors. These are returned by constructors before any invocation is made.
var (
	// ErrEmptyBranchSet is returned when a fan-out is built without branches.
	ErrEmptyBranchSet = errors.New("empty branch set")

	// ErrEmptyStageList is returned when a pipeline is built without stages.
	ErrEmptyStageList = errors.New("empty stage list")

	// ErrNonPositiveMaxIters is returned when a reflection loop cap is < 1.
	ErrNonPositiveMaxIters = errors.New("max iterations must be positive")

	// ErrInvalidTargetScore is returned when a target score falls outside [0, 10].
	ErrInvalidTargetScore = errors.New("target score must be within [0, 10]")

	// ErrDuplicateName is returned when two tools, handoffs, branches or stages share a name.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrInvalidName is returned for an empty or malformed agent name.
	ErrInvalidName = errors.New("invalid name")

	// ErrNoHandoffs is returned when a router descriptor has no handoff targets.
	ErrNoHandoffs = errors.New("router has no handoff targets")

	// ErrMissingOutputSchema is returned when a descriptor must declare an output schema but does not.
	ErrMissingOutputSchema = errors.New("output schema required")

	// ErrUnknownHandoff is returned when a model transfers to an agent outside the handoff set.
	ErrUnknownHandoff = errors.New("unknown handoff target")

	// ErrStageRecorded is returned when a stage result would overwrite an existing one.
	ErrStageRecorded = errors.New("stage already recorded")
)

// InvocationError reports a transport, auth or backend failure of a single invocation.
type InvocationError struct {
	Agent string
	Err   error
}

// Error implements [error].
func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke %s: %v", e.Agent, e.Err)
}

// Unwrap returns the underlying error.
func (e *InvocationError) Unwrap() error { return e.Err }

// SchemaValidationError reports model output that does not conform to the declared output schema.
type SchemaValidationError struct {
	Agent  string
	Schema string
	// Raw is the model output that failed validation.
	Raw string
	Err error
}

// Error implements [error].
func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("agent %s: output does not match schema %s: %v", e.Agent, e.Schema, e.Err)
}

// Unwrap returns the underlying error.
func (e *SchemaValidationError) Unwrap() error { return e.Err }

// BranchFailure is one failed branch of a fan-out.
type BranchFailure struct {
	Branch string
	Err    error
}

// AggregateInvocationError reports every failed branch of a fan-out.
//
// Failures are listed in branch declaration order. Partial is nil unless the caller
// asked for partial results.
type AggregateInvocationError struct {
	Failures []BranchFailure
	Partial  map[string]*InvocationResult
}

// Error implements [error].
func (e *AggregateInvocationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d branch(es) failed:", len(e.Failures))
	for i, f := range e.Failures {
		if i > 0 {
			sb.WriteByte(';')
		}
		fmt.Fprintf(&sb, " %s: %v", f.Branch, f.Err)
	}
	return sb.String()
}

// Unwrap exposes the branch errors to [errors.Is] and [errors.As].
func (e *AggregateInvocationError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// Failed returns the names of the failed branches.
func (e *AggregateInvocationError) Failed() []string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.Branch
	}
	return names
}

// IncompleteLoopError reports a reflection loop that terminated without a critique to report.
type IncompleteLoopError struct {
	Iterations int
}

// Error implements [error].
func (e *IncompleteLoopError) Error() string {
	return fmt.Sprintf("reflection loop ended after %d iteration(s) without a critique", e.Iterations)
}

// UndefinedStageError reports a pipeline stage that depends on a stage not recorded before it.
type UndefinedStageError struct {
	Stage string
	Ref   string
}

// Error implements [error].
func (e *UndefinedStageError) Error() string {
	return fmt.Sprintf("stage %q references undefined prior stage %q", e.Stage, e.Ref)
}
