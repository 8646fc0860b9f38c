// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"context"
	"errors"
	"time"

	"github.com/go-a2a/adk-patterns/pkg/logging"
	"github.com/go-a2a/adk-patterns/types"
)

// retryInvoker retries transient invocation failures of inner.
type retryInvoker struct {
	inner    types.Invoker
	attempts int
	backoff  time.Duration
}

// WithRetry returns an [types.Invoker] that retries [*types.InvocationError] failures of
// inner up to attempts times in total, doubling backoff between attempts.
//
// Schema validation failures, caller errors and cancellation are never retried.
// An attempts value below 2 returns inner unchanged.
func WithRetry(inner types.Invoker, attempts int, backoff time.Duration) types.Invoker {
	if attempts < 2 {
		return inner
	}
	return &retryInvoker{
		inner:    inner,
		attempts: attempts,
		backoff:  backoff,
	}
}

// Invoke implements [types.Invoker].
func (r *retryInvoker) Invoke(ctx context.Context, agent *types.AgentDescriptor, input string) (*types.InvocationResult, error) {
	delay := r.backoff
	for attempt := 1; ; attempt++ {
		result, err := r.inner.Invoke(ctx, agent, input)
		if err == nil || attempt == r.attempts || !retryable(ctx, err) {
			return result, err
		}

		logging.FromContext(ctx).WarnContext(ctx, "retrying invocation",
			"agent", agent.Name(),
			"attempt", attempt,
			"backoff", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &types.InvocationError{Agent: agent.Name(), Err: ctx.Err()}
		case <-timer.C:
		}
		delay *= 2
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var invErr *types.InvocationError
	return errors.As(err, &invErr) && !errors.Is(err, types.ErrUnknownHandoff)
}
