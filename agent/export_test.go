// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

// SetMaxIterations overrides the iteration cap after construction, bypassing
// the validation in [NewReflectionAgent].
func (a *ReflectionAgent) SetMaxIterations(n int) { a.maxIterations = n }
