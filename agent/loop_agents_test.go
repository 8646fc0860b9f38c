// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/types"
)

// scoredLoop returns an invoker whose drafter numbers its drafts and whose
// critic returns scores in order.
func scoredLoop(scores ...int) *stubInvoker {
	var drafts, critiques int
	return newStubInvoker().
		on("drafter", func(context.Context, string) (*types.InvocationResult, error) {
			drafts++
			return &types.InvocationResult{Agent: "drafter", RawText: fmt.Sprintf("draft %d", drafts), IsFinal: true}, nil
		}).
		on("critic", func(context.Context, string) (*types.InvocationResult, error) {
			s := scores[critiques]
			critiques++
			return critiqueResult(agent.Critique{
				Score:                  s,
				Strengths:              "clear",
				Issues:                 "vague",
				ActionableImprovements: fmt.Sprintf("fix %d", critiques),
			}), nil
		})
}

func newLoop(t *testing.T, inv types.Invoker, opts ...agent.ReflectionOption) *agent.ReflectionAgent {
	t.Helper()

	drafter := types.MustAgentDescriptor("drafter")
	critic := types.MustAgentDescriptor("critic", types.WithOutputSchema(agent.CritiqueSchema()))
	loop, err := agent.NewReflectionAgent(drafter, critic, inv, opts...)
	if err != nil {
		t.Fatalf("NewReflectionAgent: %v", err)
	}
	return loop
}

func TestReflectionAgent_Run(t *testing.T) {
	tests := map[string]struct {
		scores         []int
		maxIters       int
		wantOutcome    agent.ReflectionState
		wantIterations int
		wantDraft      string
		wantScore      int
	}{
		"accepted first draft": {
			scores:         []int{9},
			maxIters:       3,
			wantOutcome:    agent.StateAccepted,
			wantIterations: 1,
			wantDraft:      "draft 1",
			wantScore:      9,
		},
		"accepted on first score at target": {
			scores:         []int{4, 8, 10},
			maxIters:       3,
			wantOutcome:    agent.StateAccepted,
			wantIterations: 2,
			wantDraft:      "draft 2",
			wantScore:      8,
		},
		"exhausted": {
			scores:         []int{3, 5, 7},
			maxIters:       3,
			wantOutcome:    agent.StateExhausted,
			wantIterations: 3,
			wantDraft:      "draft 3",
			wantScore:      7,
		},
		"single iteration exhausted": {
			scores:         []int{2},
			maxIters:       1,
			wantOutcome:    agent.StateExhausted,
			wantIterations: 1,
			wantDraft:      "draft 1",
			wantScore:      2,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv := scoredLoop(tt.scores...)
			loop := newLoop(t, inv, agent.WithTargetScore(8), agent.WithMaxIterations(tt.maxIters))

			got, err := loop.Run(t.Context(), "Changelog: fixed a crash")
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got.Outcome != tt.wantOutcome {
				t.Fatalf("Outcome = %v, want %v", got.Outcome, tt.wantOutcome)
			}
			if got.Iterations != tt.wantIterations {
				t.Fatalf("Iterations = %d, want %d", got.Iterations, tt.wantIterations)
			}
			if got.Draft != tt.wantDraft {
				t.Fatalf("Draft = %q, want %q", got.Draft, tt.wantDraft)
			}
			if got.Score != tt.wantScore {
				t.Fatalf("Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Reflection != got.Critique.ActionableImprovements {
				t.Fatalf("Reflection = %q, want the last actionable improvements", got.Reflection)
			}

			drafts, critiques := len(inv.callsTo("drafter")), len(inv.callsTo("critic"))
			if drafts != tt.wantIterations || critiques != tt.wantIterations {
				t.Fatalf("drafter/critic invoked %d/%d times, want %d each", drafts, critiques, tt.wantIterations)
			}
			if len(got.History) != tt.wantIterations {
				t.Fatalf("History has %d entries, want %d", len(got.History), tt.wantIterations)
			}
		})
	}
}

func TestReflectionAgent_RevisionPrompt(t *testing.T) {
	inv := scoredLoop(3, 9)
	loop := newLoop(t, inv)

	if _, err := loop.Run(t.Context(), "initial prompt"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	drafts := inv.callsTo("drafter")
	if len(drafts) != 2 {
		t.Fatalf("drafter invoked %d times, want 2", len(drafts))
	}
	if got := drafts[0].Input; got != "initial prompt" {
		t.Fatalf("first drafter input = %q", got)
	}
	for _, want := range []string{"Current draft:\ndraft 1\n", "Actionable improvements:\nfix 1\n"} {
		if !strings.Contains(drafts[1].Input, want) {
			t.Fatalf("revision prompt %q does not contain %q", drafts[1].Input, want)
		}
	}
	if got := inv.callsTo("critic")[1].Input; !strings.Contains(got, "draft 2") {
		t.Fatalf("critique prompt %q does not embed the revised draft", got)
	}
}

func TestReflectionAgent_Observer(t *testing.T) {
	var got []string
	loop := newLoop(t, scoredLoop(5, 9),
		agent.WithObserver(func(tr agent.Transition) {
			got = append(got, fmt.Sprintf("%d:%s->%s", tr.Iteration, tr.From, tr.To))
		}),
	)
	if _, err := loop.Run(t.Context(), "p"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		"1:DRAFTING->CRITIQUING",
		"1:CRITIQUING->REVISING",
		"2:REVISING->DRAFTING",
		"2:DRAFTING->CRITIQUING",
		"2:CRITIQUING->ACCEPTED",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestReflectionAgent_UnstructuredCritique(t *testing.T) {
	inv := newStubInvoker().
		text("drafter", "draft").
		text("critic", "```json\n{\"score\": 9, \"strengths\": \"s\", \"issues\": \"i\", \"actionable_improvements\": \"a\"}\n```")

	got, err := newLoop(t, inv).Run(t.Context(), "p")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Score != 9 || !got.Accepted() {
		t.Fatalf("got score %d outcome %v, want 9 ACCEPTED", got.Score, got.Outcome)
	}
}

func TestReflectionAgent_Errors(t *testing.T) {
	tests := map[string]struct {
		inv  *stubInvoker
		want func(error) bool
	}{
		"critic output outside schema": {
			inv: newStubInvoker().text("drafter", "draft").text("critic", `{"score": 42}`),
			want: func(err error) bool {
				var schemaErr *types.SchemaValidationError
				return errors.As(err, &schemaErr)
			},
		},
		"drafter failure": {
			inv: newStubInvoker(),
			want: func(err error) bool {
				var invErr *types.InvocationError
				return errors.As(err, &invErr)
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := newLoop(t, tt.inv).Run(t.Context(), "p")
			if got != nil || !tt.want(err) {
				t.Fatalf("Run() = %v, %v", got, err)
			}
		})
	}
}

func TestReflectionAgent_IncompleteLoop(t *testing.T) {
	inv := scoredLoop(9)
	loop := newLoop(t, inv)
	loop.SetMaxIterations(0)

	got, err := loop.Run(t.Context(), "p")
	if got != nil {
		t.Fatalf("Run() result = %+v, want nil", got)
	}
	var incomplete *types.IncompleteLoopError
	if !errors.As(err, &incomplete) {
		t.Fatalf("Run() error = %v, want *types.IncompleteLoopError", err)
	}
	if incomplete.Iterations != 0 {
		t.Fatalf("Iterations = %d, want 0", incomplete.Iterations)
	}
	if n := len(inv.callsTo("drafter")); n != 0 {
		t.Fatalf("drafter invoked %d times, want 0", n)
	}
}

func TestReflectionAgent_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	inv := scoredLoop(1, 1, 1)
	loop := newLoop(t, inv, agent.WithObserver(func(tr agent.Transition) {
		if tr.To == agent.StateRevising {
			cancel()
		}
	}))

	got, err := loop.Run(ctx, "p")
	if !errors.Is(err, context.Canceled) || got != nil {
		t.Fatalf("Run() = %v, %v; want nil, context.Canceled", got, err)
	}
	if n := len(inv.callsTo("critic")); n != 1 {
		t.Fatalf("critic invoked %d times, want 1", n)
	}
}

func TestNewReflectionAgent_Errors(t *testing.T) {
	inv := newStubInvoker()
	drafter := types.MustAgentDescriptor("drafter")
	critic := types.MustAgentDescriptor("critic", types.WithOutputSchema(agent.CritiqueSchema()))

	tests := map[string]struct {
		critic *types.AgentDescriptor
		opts   []agent.ReflectionOption
		want   error
	}{
		"critic without schema": {
			critic: types.MustAgentDescriptor("critic"),
			want:   types.ErrMissingOutputSchema,
		},
		"zero iterations": {
			critic: critic,
			opts:   []agent.ReflectionOption{agent.WithMaxIterations(0)},
			want:   types.ErrNonPositiveMaxIters,
		},
		"target above range": {
			critic: critic,
			opts:   []agent.ReflectionOption{agent.WithTargetScore(11)},
			want:   types.ErrInvalidTargetScore,
		},
		"negative target": {
			critic: critic,
			opts:   []agent.ReflectionOption{agent.WithTargetScore(-1)},
			want:   types.ErrInvalidTargetScore,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := agent.NewReflectionAgent(drafter, tt.critic, inv, tt.opts...); !errors.Is(err, tt.want) {
				t.Fatalf("NewReflectionAgent error = %v, want %v", err, tt.want)
			}
		})
	}
}
