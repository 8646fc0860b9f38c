// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/go-a2a/adk-patterns/internal/pool"
	"github.com/go-a2a/adk-patterns/internal/telemetry"
	"github.com/go-a2a/adk-patterns/internal/xiter"
	"github.com/go-a2a/adk-patterns/types"
)

// Branch is one named, independent agent of a fan-out.
type Branch struct {
	Name  string
	Agent *types.AgentDescriptor
}

// BranchResult is the outcome of one branch.
type BranchResult struct {
	Branch string
	// Index is the declaration index of the branch.
	Index  int
	Result *types.InvocationResult
	Err    error
}

// SynthesisPrompt renders the prompt of the synthesis agent from the merged branch outputs.
type SynthesisPrompt func(merged map[string]string) string

// FanInResult is the merged outcome of a fan-out.
type FanInResult struct {
	// Branches holds every branch result keyed by branch name.
	Branches map[string]*types.InvocationResult

	// Merged holds the raw text of every branch keyed by branch name, plus
	// the shared context under [types.InputStage].
	Merged map[string]string

	// Synthesis is the result of the synthesis agent, if one was configured.
	Synthesis *types.InvocationResult

	order []string
}

// Ordered returns the branch results in declaration order.
func (r *FanInResult) Ordered() []*types.InvocationResult {
	out := make([]*types.InvocationResult, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.Branches[name])
	}
	return out
}

// ParallelOption configures a [ParallelAgent].
type ParallelOption interface {
	apply(*ParallelAgent)
}

type parallelOptionFunc func(*ParallelAgent)

func (o parallelOptionFunc) apply(a *ParallelAgent) { o(a) }

// WithSynthesis runs agent once after every branch succeeded, with the prompt
// rendered by prompt. A nil prompt uses [DefaultSynthesisPrompt].
func WithSynthesis(agent *types.AgentDescriptor, prompt SynthesisPrompt) ParallelOption {
	return parallelOptionFunc(func(a *ParallelAgent) {
		a.synthesizer = agent
		a.synthesisPrompt = prompt
	})
}

// WithPartialResults keeps the results of the succeeded branches in
// [types.AggregateInvocationError.Partial].
func WithPartialResults() ParallelOption {
	return parallelOptionFunc(func(a *ParallelAgent) {
		a.partial = true
	})
}

// WithMaxConcurrency limits the number of branches invoked at once.
// A value < 1 means no limit.
func WithMaxConcurrency(n int) ParallelOption {
	return parallelOptionFunc(func(a *ParallelAgent) {
		a.maxConcurrency = n
	})
}

// ParallelAgent invokes a set of independent agents concurrently against the
// same context and merges their outputs.
//
// Every branch runs to completion; a failing branch does not cancel the others.
type ParallelAgent struct {
	name            string
	invoker         types.Invoker
	branches        []Branch
	synthesizer     *types.AgentDescriptor
	synthesisPrompt SynthesisPrompt
	partial         bool
	maxConcurrency  int
	metrics         *telemetry.Metrics
}

// NewParallelAgent returns a [ParallelAgent] over branches.
func NewParallelAgent(name string, invoker types.Invoker, branches []Branch, opts ...ParallelOption) (*ParallelAgent, error) {
	if invoker == nil {
		return nil, errNilInvoker
	}
	if len(branches) == 0 {
		return nil, types.ErrEmptyBranchSet
	}

	seen := make(map[string]bool, len(branches))
	for i, b := range branches {
		switch {
		case b.Name == "" || b.Name == types.InputStage:
			return nil, fmt.Errorf("branch %d: %w: %q", i, types.ErrInvalidName, b.Name)
		case b.Agent == nil:
			return nil, fmt.Errorf("branch %q: nil agent", b.Name)
		case seen[b.Name]:
			return nil, fmt.Errorf("branch %q: %w", b.Name, types.ErrDuplicateName)
		}
		seen[b.Name] = true
	}

	a := &ParallelAgent{
		name:     name,
		invoker:  invoker,
		branches: append([]Branch(nil), branches...),
	}
	for _, o := range opts {
		o.apply(a)
	}
	if a.synthesizer != nil && a.synthesisPrompt == nil {
		a.synthesisPrompt = DefaultSynthesisPrompt(a.BranchNames())
	}

	return a, nil
}

// WithMetrics sets the metrics the agent reports to and returns a.
func (a *ParallelAgent) WithMetrics(m *telemetry.Metrics) *ParallelAgent {
	a.metrics = m
	return a
}

// Name returns the name of the fan-out.
func (a *ParallelAgent) Name() string { return a.name }

// BranchNames returns the branch names in declaration order.
func (a *ParallelAgent) BranchNames() []string {
	names := make([]string, len(a.branches))
	for i, b := range a.branches {
		names[i] = b.Name
	}
	return names
}

// Stream invokes every branch and yields each [BranchResult] as it completes.
//
// Breaking out of the loop cancels the outstanding branches.
func (a *ParallelAgent) Stream(ctx context.Context, input string) iter.Seq2[*BranchResult, error] {
	if err := ctx.Err(); err != nil {
		return xiter.Error[BranchResult](err)
	}

	return func(yield func(*BranchResult, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		resultCh := make(chan *BranchResult)

		// errgroup.Group without WithContext: one failing branch must not cancel its siblings.
		var g errgroup.Group
		if a.maxConcurrency > 0 {
			g.SetLimit(a.maxConcurrency)
		}

		go func() {
			for i, b := range a.branches {
				g.Go(func() error {
					res := a.runBranch(ctx, i, b, input)
					select {
					case resultCh <- res:
					case <-ctx.Done():
					}
					return nil
				})
			}
			g.Wait()
			close(resultCh)
		}()

		for res := range resultCh {
			if !yield(res, nil) {
				return
			}
		}
	}
}

func (a *ParallelAgent) runBranch(ctx context.Context, index int, b Branch, input string) *BranchResult {
	ctx, span := telemetry.StartSpan(ctx, "branch",
		telemetry.AttrBranch.String(b.Name),
		telemetry.AttrAgent.String(b.Agent.Name()),
	)
	res, err := invoke(ctx, a.invoker, b.Agent, input)
	telemetry.EndSpan(span, err)

	return &BranchResult{
		Branch: b.Name,
		Index:  index,
		Result: res,
		Err:    err,
	}
}

// Run invokes every branch, waits for all of them, and merges the outputs.
//
// If any branch fails, Run returns a [*types.AggregateInvocationError] listing
// the failed branches in declaration order and no merged result.
func (a *ParallelAgent) Run(ctx context.Context, input string) (_ *FanInResult, err error) {
	ctx, span, logger := startRun(ctx, "parallel", a.name)
	defer func() {
		telemetry.EndSpan(span, err)
		a.metrics.ObserveWorkflow("parallel", a.name, err)
	}()

	results := make([]*BranchResult, len(a.branches))
	for res := range a.Stream(ctx, input) {
		logger.DebugContext(ctx, "branch done", "branch", res.Branch, "error", res.Err)
		results[res.Index] = res
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &FanInResult{
		Branches: make(map[string]*types.InvocationResult, len(results)),
		Merged:   make(map[string]string, len(results)+1),
		order:    a.BranchNames(),
	}
	out.Merged[types.InputStage] = input

	var failures []types.BranchFailure
	for i, res := range results {
		if res == nil {
			// unreachable unless the stream was cut short by cancellation
			res = &BranchResult{Branch: a.branches[i].Name, Index: i, Err: context.Canceled}
		}
		if res.Err != nil {
			failures = append(failures, types.BranchFailure{Branch: res.Branch, Err: res.Err})
			continue
		}
		out.Branches[res.Branch] = res.Result
		out.Merged[res.Branch] = res.Result.RawText
	}

	if len(failures) > 0 {
		aggErr := &types.AggregateInvocationError{Failures: failures}
		if a.partial {
			aggErr.Partial = out.Branches
		}
		logger.WarnContext(ctx, "fan-out failed", "failed", aggErr.Failed())
		return nil, aggErr
	}

	if a.synthesizer != nil {
		prompt := a.synthesisPrompt(out.Merged)
		synth, err := invoke(ctx, a.invoker, a.synthesizer, prompt)
		if err != nil {
			return nil, fmt.Errorf("synthesis: %w", err)
		}
		out.Synthesis = synth
	}

	logger.InfoContext(ctx, "fan-out complete", "branches", len(out.Branches))
	return out, nil
}

// DefaultSynthesisPrompt returns a [SynthesisPrompt] that lists the shared
// context and each branch output under its name, in the order of names.
func DefaultSynthesisPrompt(names []string) SynthesisPrompt {
	names = append([]string(nil), names...)
	return func(merged map[string]string) string {
		sb := pool.String.Get()
		defer pool.String.Put(sb)

		if in, ok := merged[types.InputStage]; ok && in != "" {
			sb.WriteString("Context:\n")
			sb.WriteString(in)
			sb.WriteString("\n\n")
		}
		sb.WriteString("Combine the following results into a single coherent response.\n")
		for _, name := range names {
			fmt.Fprintf(sb, "\n%s:\n%s\n", name, merged[name])
		}
		return sb.String()
	}
}

// IsAggregate reports whether err is a fan-out failure and returns it.
func IsAggregate(err error) (*types.AggregateInvocationError, bool) {
	var agg *types.AggregateInvocationError
	ok := errors.As(err, &agg)
	return agg, ok
}
