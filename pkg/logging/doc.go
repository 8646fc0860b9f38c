// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from [context.Context] values so that every
// executor and invocation logs through the logger of the run that started it.
//
// # Basic Usage
//
//	logger, err := logging.New(slog.LevelDebug, logging.FormatText, os.Stderr)
//	if err != nil {
//		return err
//	}
//	ctx = logging.NewContext(ctx, logger.With("run_id", runID))
//
// Retrieving the logger further down the call chain:
//
//	logging.FromContext(ctx).Info("stage recorded", "stage", name)
//
// # Default Behavior
//
// When no logger is found in the context, FromContext returns a JSON logger that writes
// to stderr at info level.
package logging
