// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/config"
	"github.com/go-a2a/adk-patterns/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "adk.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_ADK_KEY", "sk-from-env")
	path := writeConfig(t, `
model:
  name: gemini-2.0-flash
  api_key: ${TEST_ADK_KEY}
reflection:
  target_score: 9
  max_iters: 5
parallel:
  max_concurrency: 2
  partial_results: true
routing:
  mode: keyword
invocation:
  retry_backoff: 2s
log:
  level: debug
  format: json
`)

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := config.Default()
	want.Model.Name = "gemini-2.0-flash"
	want.Model.APIKey = "sk-from-env"
	want.Reflection = config.ReflectionConfig{TargetScore: 9, MaxIters: 5}
	want.Parallel = config.ParallelConfig{MaxConcurrency: 2, PartialResults: true}
	want.Routing.Mode = "keyword"
	want.Invocation.RetryBackoff = 2 * time.Second
	want.Log = config.LogConfig{Level: "debug", Format: "json"}

	if diff := cmp.Diff(&want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if got.RoutingMode() != agent.RoutingModeKeyword {
		t.Fatalf("RoutingMode() = %v, want keyword", got.RoutingMode())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	got, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := config.Default()
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADK_MODEL", "claude-haiku-4-5")
	t.Setenv("ADK_MAX_ITERS", "7")
	t.Setenv("ADK_METRICS", "true")
	path := writeConfig(t, "reflection:\n  max_iters: 2\n")

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Model.Name != "claude-haiku-4-5" || got.Reflection.MaxIters != 7 || !got.Metrics.Enabled {
		t.Fatalf("env overrides not applied: %+v", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		body    string
		env     map[string]string
		wantErr error
	}{
		"zero max iters": {
			body:    "reflection:\n  max_iters: 0\n",
			wantErr: types.ErrNonPositiveMaxIters,
		},
		"target out of range": {
			body:    "reflection:\n  target_score: 11\n",
			wantErr: types.ErrInvalidTargetScore,
		},
		"unknown routing mode": {
			body: "routing:\n  mode: random\n",
		},
		"unknown key": {
			body: "modle:\n  name: x\n",
		},
		"bad env int": {
			env: map[string]string{"ADK_RETRIES": "many"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
