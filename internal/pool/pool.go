// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"strings"
	"sync"
)

// Pool is a strongly-typed [sync.Pool] that resets values as they are returned.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New returns a [Pool] that constructs values with fn and clears them with
// reset on [Pool.Put]. A nil reset leaves returned values untouched.
func New[T any](fn func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return fn()
			},
		},
		reset: reset,
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put resets x and returns it to the pool.
func (p *Pool[T]) Put(x T) {
	if p.reset != nil {
		p.reset(x)
	}
	p.pool.Put(x)
}

// String pools the builders used to render prompts and instructions.
var String = New(
	func() *strings.Builder { return &strings.Builder{} },
	(*strings.Builder).Reset,
)
