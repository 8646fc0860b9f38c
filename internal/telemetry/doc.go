// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry provides the Prometheus metrics and OpenTelemetry spans recorded
// around agent invocations and workflow runs.
package telemetry
