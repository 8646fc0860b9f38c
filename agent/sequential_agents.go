// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"regexp"
	"slices"

	"github.com/go-a2a/adk-patterns/internal/telemetry"
	"github.com/go-a2a/adk-patterns/types"
)

// StageFunc builds the agent and prompt of a stage from the results recorded so far.
//
// The view only exposes the stages listed in [Stage.Requires]. Every read must
// be declared there so that [NewSequentialAgent] can check it at construction;
// reading an undeclared stage finds nothing.
type StageFunc func(state types.StateReader) (*types.AgentDescriptor, string, error)

// Stage is one step of a [SequentialAgent].
type Stage struct {
	Name string

	// Requires lists the prior stages the stage reads. Each must be declared
	// strictly before the stage, or be [types.InputStage].
	Requires []string

	Build StageFunc
}

// StageResult is the recorded outcome of one stage.
type StageResult struct {
	Stage  string
	Index  int
	Result *types.InvocationResult
}

// SequentialAgent runs its stages one after another, recording each named
// result in a [types.WorkflowState] that later stages read.
type SequentialAgent struct {
	name    string
	invoker types.Invoker
	stages  []Stage
	metrics *telemetry.Metrics
}

// NewSequentialAgent returns a [SequentialAgent] over stages.
//
// It fails with [*types.UndefinedStageError] when a stage requires a stage
// that is not declared before it.
func NewSequentialAgent(name string, invoker types.Invoker, stages ...Stage) (*SequentialAgent, error) {
	if invoker == nil {
		return nil, errNilInvoker
	}
	if len(stages) == 0 {
		return nil, types.ErrEmptyStageList
	}

	prior := map[string]bool{types.InputStage: true}
	for i, st := range stages {
		switch {
		case st.Name == "" || st.Name == types.InputStage:
			return nil, fmt.Errorf("stage %d: %w: %q", i, types.ErrInvalidName, st.Name)
		case st.Build == nil:
			return nil, fmt.Errorf("stage %q: nil build func", st.Name)
		case prior[st.Name]:
			return nil, fmt.Errorf("stage %q: %w", st.Name, types.ErrDuplicateName)
		}
		for _, ref := range st.Requires {
			if !prior[ref] {
				return nil, &types.UndefinedStageError{Stage: st.Name, Ref: ref}
			}
		}
		prior[st.Name] = true
	}

	return &SequentialAgent{
		name:    name,
		invoker: invoker,
		stages:  slices.Clone(stages),
	}, nil
}

// WithMetrics sets the metrics the agent reports to and returns a.
func (a *SequentialAgent) WithMetrics(m *telemetry.Metrics) *SequentialAgent {
	a.metrics = m
	return a
}

// Name returns the name of the pipeline.
func (a *SequentialAgent) Name() string { return a.name }

// StageNames returns the stage names in execution order.
func (a *SequentialAgent) StageNames() []string {
	names := make([]string, len(a.stages))
	for i, st := range a.stages {
		names[i] = st.Name
	}
	return names
}

// Run executes every stage in order and returns the final state.
//
// The state is seeded with input under [types.InputStage]. A failed or
// canceled stage stops the run; no later stage starts.
func (a *SequentialAgent) Run(ctx context.Context, input string) (*types.WorkflowState, error) {
	state := types.NewWorkflowState()
	for _, err := range a.run(ctx, state, input) {
		if err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Stream executes every stage in order, yielding each [StageResult] once it is recorded.
func (a *SequentialAgent) Stream(ctx context.Context, input string) iter.Seq2[*StageResult, error] {
	return a.run(ctx, types.NewWorkflowState(), input)
}

func (a *SequentialAgent) run(ctx context.Context, state *types.WorkflowState, input string) iter.Seq2[*StageResult, error] {
	return func(yield func(*StageResult, error) bool) {
		ctx, span, logger := startRun(ctx, "sequential", a.name)
		var err error
		defer func() {
			telemetry.EndSpan(span, err)
			a.metrics.ObserveWorkflow("sequential", a.name, err)
		}()

		if err = state.Append(types.InputStage, &types.InvocationResult{
			Agent:   types.InputStage,
			RawText: input,
			IsFinal: true,
		}); err != nil {
			yield(nil, err)
			return
		}

		for i, st := range a.stages {
			if err = ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			var res *StageResult
			res, err = a.runStage(ctx, state, i, st)
			if err != nil {
				logger.WarnContext(ctx, "stage failed", "stage", st.Name, "error", err)
				yield(nil, err)
				return
			}
			logger.DebugContext(ctx, "stage recorded", "stage", st.Name, "agent", res.Result.Agent)

			if !yield(res, nil) {
				return
			}
		}
	}
}

func (a *SequentialAgent) runStage(ctx context.Context, state *types.WorkflowState, index int, st Stage) (_ *StageResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "stage", telemetry.AttrStage.String(st.Name))
	defer func() { telemetry.EndSpan(span, err) }()

	for _, ref := range st.Requires {
		if _, err := state.Require(st.Name, ref); err != nil {
			return nil, err
		}
	}

	agent, prompt, err := st.Build(stageView{state: state, requires: st.Requires})
	if err != nil {
		return nil, fmt.Errorf("stage %q: %w", st.Name, err)
	}
	if agent == nil {
		return nil, fmt.Errorf("stage %q: build returned no agent", st.Name)
	}
	span.SetAttributes(telemetry.AttrAgent.String(agent.Name()))

	result, err := invoke(ctx, a.invoker, agent, prompt)
	if err != nil {
		return nil, err
	}
	if err := state.Append(st.Name, result); err != nil {
		return nil, err
	}

	return &StageResult{Stage: st.Name, Index: index, Result: result}, nil
}

// stageView is the [types.StateReader] handed to a stage. It hides every
// stage not in requires.
type stageView struct {
	state    *types.WorkflowState
	requires []string
}

func (v stageView) Get(stage string) (*types.InvocationResult, bool) {
	if !slices.Contains(v.requires, stage) {
		return nil, false
	}
	return v.state.Get(stage)
}

func (v stageView) Require(stage, ref string) (*types.InvocationResult, error) {
	if !slices.Contains(v.requires, ref) {
		return nil, &types.UndefinedStageError{Stage: stage, Ref: ref}
	}
	return v.state.Require(stage, ref)
}

func (v stageView) Text(stage string) string {
	if !slices.Contains(v.requires, stage) {
		return ""
	}
	return v.state.Text(stage)
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_\-]+)\s*\}\}`)

// PromptStage returns a [Stage] that invokes agent with template rendered
// against the recorded state.
//
// Each {{name}} placeholder is replaced with the raw text of the stage name;
// {{input}} is the pipeline input. Referenced stages are added to Requires.
func PromptStage(name string, agent *types.AgentDescriptor, template string, requires ...string) Stage {
	refs := slices.Clone(requires)
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		if !slices.Contains(refs, m[1]) {
			refs = append(refs, m[1])
		}
	}

	return Stage{
		Name:     name,
		Requires: refs,
		Build: func(state types.StateReader) (*types.AgentDescriptor, string, error) {
			var errs []error
			prompt := placeholderRe.ReplaceAllStringFunc(template, func(s string) string {
				ref := placeholderRe.FindStringSubmatch(s)[1]
				res, err := state.Require(name, ref)
				if err != nil {
					errs = append(errs, err)
					return s
				}
				return res.RawText
			})
			if len(errs) > 0 {
				return nil, "", errors.Join(errs...)
			}
			return agent, prompt, nil
		},
	}
}
