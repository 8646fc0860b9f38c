// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/types"
)

// Creative director specialists.
const (
	PoetAgent         = "Poet Agent"
	ScriptwriterAgent = "Scriptwriter Agent"
	AdCopywriterAgent = "Ad Copywriter Agent"
)

// CreativePolicy returns the keyword guidelines of the creative director.
func CreativePolicy() *agent.KeywordPolicy {
	return agent.MustKeywordPolicy(
		agent.KeywordRule{Target: PoetAgent, Keywords: []string{"poem", "poetry", "haiku", "sonnet", "verse", "limerick"}},
		agent.KeywordRule{Target: ScriptwriterAgent, Keywords: []string{"script", "video", "scene", "dialogue", "screenplay"}},
		agent.KeywordRule{Target: AdCopywriterAgent, Keywords: []string{"ads", "advert", "copy", "slogan", "tagline", "campaign"}},
	)
}

// NewCreativeDirector returns a [Router] that hands a creative brief to the
// matching writer.
func NewCreativeDirector(invoker types.Invoker, opts ...Option) (*Router, error) {
	o := newOptions(opts)

	specialists := []*types.AgentDescriptor{
		o.descriptor(PoetAgent,
			types.WithDescription("This agent is a master of poetic forms and styles. Use it for any requests related to poetry."),
			types.WithInstruction("You are a world-renowned poet. Your purpose is to craft beautiful and evocative poetry in the style requested by the user. Pay close attention to rhythm, meter, and imagery."),
		),
		o.descriptor(ScriptwriterAgent,
			types.WithDescription("This agent specializes in writing scripts for short videos. It understands pacing, dialogue, and visual storytelling."),
			types.WithInstruction("You are a professional scriptwriter. Your task is to write a compelling script based on the user's prompt. Include scene headings, character actions, and dialogue."),
		),
		o.descriptor(AdCopywriterAgent,
			types.WithDescription("This agent is an expert in crafting persuasive and engaging advertising copy."),
			types.WithInstruction("You are a senior advertising copywriter. Your goal is to write concise, impactful, and persuasive copy that grabs the reader's attention and drives them to action."),
		),
	}

	return newRouter(invoker, o, "Creative Director",
		"You are the Creative Director of a content agency. Your job is to analyze the user's request and delegate it to the most appropriate specialist on your team.",
		CreativePolicy(), specialists)
}
