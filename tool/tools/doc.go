// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools provides the concrete tool implementations.
//
//   - FunctionTool: wraps a typed Go function; the input schema is reflected from its argument struct
//   - TransferTool: the transfer_to_agent handoff tool offered to agents with handoff targets
package tools
