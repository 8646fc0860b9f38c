// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package adk composes LLM agents into workflows: parallel fan-out with
// synthesis, sequential pipelines over shared state, reflection loops that
// revise a draft until a critic accepts it, and routers that delegate a request
// to exactly one specialist.
//
// The patterns live in the agent package, the ready-made workflows in the
// workflow package and the model-backed invoker in the flow package.
package adk

// Version is the version of adk-patterns.
var Version = "v0.1.0"
