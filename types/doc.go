// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types defines the data model shared by the workflow executors and the
// invocation service: agent descriptors, tools, output schemas, invocation results,
// workflow state and the error taxonomy.
package types
