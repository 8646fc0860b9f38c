// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/go-a2a/adk-patterns/internal/telemetry"
	"github.com/go-a2a/adk-patterns/schema"
	"github.com/go-a2a/adk-patterns/types"
)

// Reflection loop defaults.
const (
	DefaultTargetScore   = 8
	DefaultMaxIterations = 3
)

// Critique is the structured review of one draft.
type Critique struct {
	Score                  int    `json:"score" jsonschema:"minimum=0,maximum=10,description=Overall quality from 0 to 10."`
	Strengths              string `json:"strengths" jsonschema:"description=What the draft does well."`
	Issues                 string `json:"issues" jsonschema:"description=Problems found in the draft."`
	ActionableImprovements string `json:"actionable_improvements" jsonschema:"description=Concrete edits that would raise the score."`
}

var critiqueSchema = sync.OnceValue(schema.MustOf[Critique])

// CritiqueSchema returns the output schema a critic agent declares.
func CritiqueSchema() *schema.Schema[Critique] {
	return critiqueSchema()
}

// ReflectionState is a state of the reflection loop.
type ReflectionState int

const (
	StateDrafting ReflectionState = iota
	StateCritiquing
	StateRevising
	StateAccepted
	StateExhausted
)

// String returns a string representation of the [ReflectionState].
func (s ReflectionState) String() string {
	switch s {
	case StateDrafting:
		return "DRAFTING"
	case StateCritiquing:
		return "CRITIQUING"
	case StateRevising:
		return "REVISING"
	case StateAccepted:
		return "ACCEPTED"
	case StateExhausted:
		return "EXHAUSTED"
	default:
		return fmt.Sprintf("ReflectionState(%d)", int(s))
	}
}

// Transition is one state change of the reflection loop.
type Transition struct {
	From, To  ReflectionState
	Iteration int
	// Score is the latest critique score, or -1 before the first critique.
	Score int
}

// Iteration is one draft and its critique.
type Iteration struct {
	Number   int
	Draft    string
	Critique Critique
}

// ReflectionResult is the outcome of a reflection loop.
type ReflectionResult struct {
	// Outcome is either StateAccepted or StateExhausted.
	Outcome ReflectionState

	// Draft is the accepted draft, or the last draft when the loop was exhausted.
	Draft      string
	Iterations int
	Score      int

	// Reflection is the improvement notes of the last critique.
	Reflection string
	Critique   Critique
	History    []Iteration
}

// Accepted reports whether the draft reached the target score.
func (r *ReflectionResult) Accepted() bool { return r.Outcome == StateAccepted }

// ReflectionOption configures a [ReflectionAgent].
type ReflectionOption interface {
	apply(*ReflectionAgent)
}

type reflectionOptionFunc func(*ReflectionAgent)

func (o reflectionOptionFunc) apply(a *ReflectionAgent) { o(a) }

// WithTargetScore sets the score in [0, 10] at which a draft is accepted.
func WithTargetScore(score int) ReflectionOption {
	return reflectionOptionFunc(func(a *ReflectionAgent) {
		a.targetScore = score
	})
}

// WithMaxIterations sets the maximum number of draft and critique round trips.
func WithMaxIterations(n int) ReflectionOption {
	return reflectionOptionFunc(func(a *ReflectionAgent) {
		a.maxIterations = n
	})
}

// WithCritiquePrompt sets the prompt sent to the critic for a draft.
func WithCritiquePrompt(fn func(draft string) string) ReflectionOption {
	return reflectionOptionFunc(func(a *ReflectionAgent) {
		a.critiquePrompt = fn
	})
}

// WithRevisionPrompt sets the prompt sent to the drafter to revise a draft.
func WithRevisionPrompt(fn func(draft string, critique Critique) string) ReflectionOption {
	return reflectionOptionFunc(func(a *ReflectionAgent) {
		a.revisionPrompt = fn
	})
}

// WithObserver registers fn to be called on every state transition.
func WithObserver(fn func(Transition)) ReflectionOption {
	return reflectionOptionFunc(func(a *ReflectionAgent) {
		a.observer = fn
	})
}

// ReflectionAgent drafts with one agent and critiques with another until the
// critique score reaches the target or the iteration cap is hit.
//
//	DRAFTING -> CRITIQUING -> ACCEPTED
//	                       -> REVISING -> DRAFTING
//	                       -> EXHAUSTED
//
// Every draft is critiqued exactly once, the last one included.
type ReflectionAgent struct {
	name           string
	drafter        *types.AgentDescriptor
	critic         *types.AgentDescriptor
	invoker        types.Invoker
	targetScore    int
	maxIterations  int
	critiquePrompt func(draft string) string
	revisionPrompt func(draft string, critique Critique) string
	observer       func(Transition)
	metrics        *telemetry.Metrics
}

// NewReflectionAgent returns a [ReflectionAgent].
//
// The critic must declare an output schema that decodes into a [Critique].
func NewReflectionAgent(drafter, critic *types.AgentDescriptor, invoker types.Invoker, opts ...ReflectionOption) (*ReflectionAgent, error) {
	if invoker == nil {
		return nil, errNilInvoker
	}
	if drafter == nil || critic == nil {
		return nil, errors.New("reflection needs both a drafter and a critic")
	}
	if critic.OutputSchema() == nil {
		return nil, fmt.Errorf("critic %q: %w", critic.Name(), types.ErrMissingOutputSchema)
	}

	a := &ReflectionAgent{
		name:           drafter.Name(),
		drafter:        drafter,
		critic:         critic,
		invoker:        invoker,
		targetScore:    DefaultTargetScore,
		maxIterations:  DefaultMaxIterations,
		critiquePrompt: DefaultCritiquePrompt,
		revisionPrompt: DefaultRevisionPrompt,
	}
	for _, o := range opts {
		o.apply(a)
	}

	if a.targetScore < 0 || a.targetScore > 10 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidTargetScore, a.targetScore)
	}
	if a.maxIterations < 1 {
		return nil, fmt.Errorf("%w: %d", types.ErrNonPositiveMaxIters, a.maxIterations)
	}

	return a, nil
}

// WithName sets the name the loop reports in logs and metrics and returns a.
func (a *ReflectionAgent) WithName(name string) *ReflectionAgent {
	a.name = name
	return a
}

// WithMetrics sets the metrics the agent reports to and returns a.
func (a *ReflectionAgent) WithMetrics(m *telemetry.Metrics) *ReflectionAgent {
	a.metrics = m
	return a
}

// TargetScore returns the acceptance score.
func (a *ReflectionAgent) TargetScore() int { return a.targetScore }

// MaxIterations returns the iteration cap.
func (a *ReflectionAgent) MaxIterations() int { return a.maxIterations }

// Run drafts from prompt and refines the draft until it is accepted or the
// iteration cap is reached.
//
// Exhausting the cap is not an error: the last draft is returned with
// Outcome set to StateExhausted. Cancellation between iterations returns
// the context error and no result.
func (a *ReflectionAgent) Run(ctx context.Context, prompt string) (_ *ReflectionResult, err error) {
	ctx, span, logger := startRun(ctx, "reflection", a.name)
	var result *ReflectionResult
	defer func() {
		telemetry.EndSpan(span, err)
		a.metrics.ObserveWorkflow("reflection", a.name, err)
		if result != nil {
			a.metrics.ObserveReflection(a.name, result.Outcome.String(), result.Iterations)
		}
	}()

	var (
		state   = StateDrafting
		latest  *Critique
		draft   string
		history []Iteration
	)
	transition := func(to ReflectionState, iteration int) {
		if a.observer != nil {
			score := -1
			if latest != nil {
				score = latest.Score
			}
			a.observer(Transition{From: state, To: to, Iteration: iteration, Score: score})
		}
		state = to
	}

	input := prompt
	for i := 1; i <= a.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		drafted, err := invoke(ctx, a.invoker, a.drafter, input)
		if err != nil {
			return nil, err
		}
		draft = drafted.RawText

		transition(StateCritiquing, i)
		reviewed, err := invoke(ctx, a.invoker, a.critic, a.critiquePrompt(draft))
		if err != nil {
			return nil, err
		}
		critique, err := a.decodeCritique(reviewed)
		if err != nil {
			return nil, err
		}
		latest = critique
		history = append(history, Iteration{Number: i, Draft: draft, Critique: *critique})
		logger.InfoContext(ctx, "draft critiqued", "iteration", i, "score", critique.Score, "target", a.targetScore)

		if critique.Score >= a.targetScore {
			transition(StateAccepted, i)
			break
		}
		if i == a.maxIterations {
			transition(StateExhausted, i)
			break
		}

		transition(StateRevising, i)
		input = a.revisionPrompt(draft, *critique)
		transition(StateDrafting, i+1)
	}

	if latest == nil {
		return nil, &types.IncompleteLoopError{Iterations: len(history)}
	}

	result = &ReflectionResult{
		Outcome:    state,
		Draft:      draft,
		Iterations: len(history),
		Score:      latest.Score,
		Reflection: latest.ActionableImprovements,
		Critique:   *latest,
		History:    history,
	}
	return result, nil
}

func (a *ReflectionAgent) decodeCritique(res *types.InvocationResult) (*Critique, error) {
	if c, ok := types.StructuredAs[Critique](res); ok {
		return &c, nil
	}

	// the critic's schema may be a type other than Critique with the same shape
	c, err := CritiqueSchema().Decode(res.RawText)
	if err != nil {
		return nil, &types.SchemaValidationError{
			Agent:  a.critic.Name(),
			Schema: a.critic.OutputSchema().Name(),
			Raw:    res.RawText,
			Err:    err,
		}
	}
	return c, nil
}

// DefaultCritiquePrompt asks the critic to review draft.
func DefaultCritiquePrompt(draft string) string {
	return heredoc.Docf(`
		Draft to review:
		%s

		Return structured critique JSON per the schema.`, draft)
}

// DefaultRevisionPrompt asks the drafter to apply the critique's actionable
// improvements to draft, embedding draft verbatim.
func DefaultRevisionPrompt(draft string, critique Critique) string {
	return heredoc.Docf(`
		Revise the draft strictly following the actionable improvements below, keeping
		correct content and structure intact where possible.

		Current draft:
		%s

		Actionable improvements:
		%s

		Return only the revised draft.`, draft, critique.ActionableImprovements)
}
