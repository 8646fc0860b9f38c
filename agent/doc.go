// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent provides the orchestration patterns that compose agent invocations.
//
// Every pattern takes an explicit [types.Invoker] and never retries a failed invocation:
//
//   - ParallelAgent: invokes independent branches concurrently against the same context,
//     waits for all of them, and merges their outputs by branch name. An optional synthesis
//     agent runs once over the merged outputs.
//   - SequentialAgent: runs stages in order, recording each named result in a
//     [types.WorkflowState] that later stages read to build their prompts.
//   - ReflectionAgent: drafts, critiques the draft into a [Critique], and revises until the
//     score reaches a target or an iteration cap is hit.
//   - RouterAgent: asks a router agent to pick one of its handoff targets and delegates the
//     request to it, or surfaces the router's clarifying question.
//
// # Basic Usage
//
// Fan-out with synthesis:
//
//	fan, err := agent.NewParallelAgent("topic", invoker,
//		[]agent.Branch{
//			{Name: "summary", Agent: summarizer},
//			{Name: "questions", Agent: questioner},
//		},
//		agent.WithSynthesis(synthesizer, nil),
//	)
//	res, err := fan.Run(ctx, "topic: solar sails")
//
// A two stage pipeline:
//
//	seq, err := agent.NewSequentialAgent("review", invoker,
//		agent.PromptStage("draft_text", writer, "Write about {{input}}."),
//		agent.PromptStage("review_output", checker, "Fact check:\n{{draft_text}}"),
//	)
//	state, err := seq.Run(ctx, "the moon landing")
//
// A reflection loop:
//
//	critic := types.MustAgentDescriptor("critic", types.WithOutputSchema(agent.CritiqueSchema()))
//	loop, err := agent.NewReflectionAgent(drafter, critic, invoker, agent.WithTargetScore(8))
//	res, err := loop.Run(ctx, prompt)
//
// Routing:
//
//	router, err := agent.NewRouterAgent(triage, invoker)
//	delegation, err := router.Route(ctx, "billing anomaly, spend up 40%")
//	if q, ok := delegation.Clarification(); ok {
//		// ask the user q
//	}
package agent
