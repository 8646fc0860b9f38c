// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides typed object pools.
//
// Prompt rendering borrows a builder and returns it when done:
//
//	sb := pool.String.Get()
//	defer pool.String.Put(sb)
//
// Put resets the builder, so a value must not be used after it is returned.
package pool
