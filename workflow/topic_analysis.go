// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/types"
)

// Topic analysis branch names.
const (
	BranchSummary   = "summary"
	BranchQuestions = "questions"
	BranchKeyTerms  = "key_terms"
)

// TopicReport is the outcome of a [TopicAnalysis].
type TopicReport struct {
	Topic     string
	Summary   string
	Questions string
	KeyTerms  string
	Synthesis string
}

// TopicAnalysis summarizes a topic, asks questions about it and extracts its
// key terms in parallel, then synthesizes the three into one answer.
type TopicAnalysis struct {
	fan *agent.ParallelAgent
}

// NewTopicAnalysis returns a [TopicAnalysis] running on invoker.
func NewTopicAnalysis(invoker types.Invoker, opts ...Option) (*TopicAnalysis, error) {
	o := newOptions(opts)

	branches := []agent.Branch{
		{
			Name:  BranchSummary,
			Agent: o.descriptor("Summarizer", types.WithInstruction("Summarize the following topic concisely:")),
		},
		{
			Name:  BranchQuestions,
			Agent: o.descriptor("Question Generator", types.WithInstruction("Generate three interesting questions about the following topic:")),
		},
		{
			Name:  BranchKeyTerms,
			Agent: o.descriptor("Key Term Extractor", types.WithInstruction("Identify 5-10 key terms from the following topic, separated by commas:")),
		},
	}
	synthesizer := o.descriptor("Synthesizer",
		types.WithDescription("Combines parallel topic analyses into one answer."),
	)

	fanOpts := []agent.ParallelOption{
		agent.WithSynthesis(synthesizer, topicSynthesisPrompt),
		agent.WithMaxConcurrency(o.maxConcurrency),
	}
	if o.partial {
		fanOpts = append(fanOpts, agent.WithPartialResults())
	}
	fan, err := agent.NewParallelAgent("topic_analysis", invoker, branches, fanOpts...)
	if err != nil {
		return nil, err
	}

	return &TopicAnalysis{fan: fan.WithMetrics(o.metrics)}, nil
}

func topicSynthesisPrompt(merged map[string]string) string {
	return heredoc.Docf(`
		Based on the following information:
		Summary: %s
		Related Questions: %s
		Key Terms: %s
		Synthesize a comprehensive answer.

		Original topic: %s`,
		merged[BranchSummary],
		merged[BranchQuestions],
		merged[BranchKeyTerms],
		merged[types.InputStage],
	)
}

// Run analyzes topic.
func (w *TopicAnalysis) Run(ctx context.Context, topic string) (*TopicReport, error) {
	res, err := w.fan.Run(ctx, topic)
	if err != nil {
		return nil, err
	}

	return &TopicReport{
		Topic:     topic,
		Summary:   res.Merged[BranchSummary],
		Questions: res.Merged[BranchQuestions],
		KeyTerms:  res.Merged[BranchKeyTerms],
		Synthesis: res.Synthesis.RawText,
	}, nil
}
