// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/schema"
	"github.com/go-a2a/adk-patterns/types"
)

// Draft review stage names.
const (
	StageDraftText    = "draft_text"
	StageReviewOutput = "review_output"
)

// Review is the fact checker's verdict.
type Review struct {
	Status    string `json:"status" jsonschema:"enum=ACCURATE,enum=INACCURATE"`
	Reasoning string `json:"reasoning"`
}

// Accurate reports whether the draft passed the fact check.
func (r *Review) Accurate() bool { return r.Status == "ACCURATE" }

var reviewSchema = schema.MustOf[Review]()

// DraftResult is the outcome of a [DraftReview].
type DraftResult struct {
	Draft  string
	Review *Review
	State  *types.WorkflowState
}

// DraftReview writes a short paragraph about a subject and fact checks it.
type DraftReview struct {
	seq *agent.SequentialAgent
}

// NewDraftReview returns a [DraftReview] running on invoker.
func NewDraftReview(invoker types.Invoker, opts ...Option) (*DraftReview, error) {
	o := newOptions(opts)

	writer := o.descriptor("DraftWriter",
		types.WithDescription("Generates initial draft content on a given subject."),
		types.WithInstruction("Write a short, informative paragraph about the user's subject."),
	)
	checker := o.descriptor("FactChecker",
		types.WithDescription("Reviews a given text for factual accuracy and provides a structured critique."),
		types.WithInstruction(heredoc.Doc(`
			You are a meticulous fact-checker.
			1. Read the text provided.
			2. Carefully verify the factual accuracy of all claims.
			3. Your final output must contain two keys:
			   - "status": either "ACCURATE" or "INACCURATE".
			   - "reasoning": a clear explanation for your status, citing specific issues if any are found.`)),
		types.WithOutputSchema(reviewSchema),
	)

	seq, err := agent.NewSequentialAgent("draft_review", invoker,
		agent.PromptStage(StageDraftText, writer, "{{input}}"),
		agent.PromptStage(StageReviewOutput, checker, "Text to fact check:\n{{draft_text}}"),
	)
	if err != nil {
		return nil, err
	}

	return &DraftReview{seq: seq.WithMetrics(o.metrics)}, nil
}

// Run drafts a paragraph about subject and reviews it.
func (w *DraftReview) Run(ctx context.Context, subject string) (*DraftResult, error) {
	state, err := w.seq.Run(ctx, subject)
	if err != nil {
		return nil, err
	}

	res, _ := state.Get(StageReviewOutput)
	review, err := decode(reviewSchema, res)
	if err != nil {
		return nil, err
	}

	return &DraftResult{
		Draft:  state.Text(StageDraftText),
		Review: review,
		State:  state,
	}, nil
}
