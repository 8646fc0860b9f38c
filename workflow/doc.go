// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package workflow provides ready-made workflows built on the [agent] patterns.
//
//   - TopicAnalysis: summary, questions and key terms in parallel, then a synthesis.
//   - ReleaseNotes: a release notes drafter refined by a technical editor critic.
//   - IncidentTriage: routes a DevOps incident to one of four specialists.
//   - CreativeDirector: routes a creative brief to a poet, a scriptwriter or an ad copywriter.
//   - MarketResearch: plan, execute with research tools, and synthesize a launch report.
//   - DraftReview: writes a paragraph and fact checks it.
//   - FitnessPlan: calculates body metrics with tools, plans training and diet, and integrates both.
//
// Every workflow takes the [types.Invoker] it runs on.
package workflow
