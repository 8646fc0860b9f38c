// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package xiter contains [iter] helpers shared by the streaming agents.
package xiter
