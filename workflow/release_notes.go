// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/types"
)

const (
	releaseNotesDrafterInstruction = "Write clear, concise release notes from the provided changelog for a technical audience. " +
		"Use crisp headings, bullet points, and avoid marketing fluff. " +
		"Do not invent features or dates. Keep to facts present in the changelog."

	releaseNotesCriticInstruction = "Critique the provided release notes for accuracy, completeness, clarity, and structure. " +
		"Check for: unsupported claims, missing key changes, duplicated points, and vague phrasing. " +
		"Return a JSON object matching the output schema with: score (0-10), strengths, issues, " +
		"and actionable_improvements with concrete edits. Higher score means publish-ready."
)

// ReleaseNotes drafts release notes from a changelog and revises them until a
// technical editor scores them publish-ready.
type ReleaseNotes struct {
	loop *agent.ReflectionAgent
}

// NewReleaseNotes returns a [ReleaseNotes] running on invoker.
func NewReleaseNotes(invoker types.Invoker, opts ...Option) (*ReleaseNotes, error) {
	o := newOptions(opts)

	drafter := o.descriptor("Release Notes Drafter",
		types.WithDescription("Creates a professional first draft of release notes from a changelog."),
		types.WithInstruction(releaseNotesDrafterInstruction),
	)
	critic := o.descriptor("Technical Editor Critic",
		types.WithDescription("Scores drafts and proposes actionable, concrete improvements."),
		types.WithInstruction(releaseNotesCriticInstruction),
		types.WithOutputSchema(agent.CritiqueSchema()),
	)

	loop, err := agent.NewReflectionAgent(drafter, critic, invoker,
		agent.WithTargetScore(o.targetScore),
		agent.WithMaxIterations(o.maxIterations),
		agent.WithRevisionPrompt(releaseNotesRevisionPrompt),
	)
	if err != nil {
		return nil, err
	}

	return &ReleaseNotes{
		loop: loop.WithName("release_notes").WithMetrics(o.metrics),
	}, nil
}

// ReleaseNotesPrompt returns the initial drafting prompt for changelog.
func ReleaseNotesPrompt(changelog string) string {
	return heredoc.Docf(`
		Changelog:
		%s

		Task: Draft publish-ready release notes for developers. Include only what is present in the changelog. Avoid hype and speculation.`,
		changelog)
}

func releaseNotesRevisionPrompt(draft string, critique agent.Critique) string {
	return heredoc.Docf(`
		Revise these release notes strictly following the actionable improvements below, keeping correct content and structure intact where possible.

		Current draft:
		%s

		Actionable improvements:
		%s

		Return only the revised release notes.`,
		draft, critique.ActionableImprovements)
}

// Run drafts and refines release notes for changelog.
func (w *ReleaseNotes) Run(ctx context.Context, changelog string) (*agent.ReflectionResult, error) {
	return w.loop.Run(ctx, ReleaseNotesPrompt(changelog))
}
