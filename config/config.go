// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the run configuration of the workflows.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/flow"
	"github.com/go-a2a/adk-patterns/model"
	"github.com/go-a2a/adk-patterns/pkg/logging"
	"github.com/go-a2a/adk-patterns/types"
)

// EnvConfigPath names the config file when no path is given.
const EnvConfigPath = "ADK_CONFIG"

// Config is the run configuration.
type Config struct {
	Model      ModelConfig      `yaml:"model"`
	Reflection ReflectionConfig `yaml:"reflection"`
	Parallel   ParallelConfig   `yaml:"parallel"`
	Routing    RoutingConfig    `yaml:"routing"`
	Invocation InvocationConfig `yaml:"invocation"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

type ModelConfig struct {
	Name      string `yaml:"name"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
}

type ReflectionConfig struct {
	TargetScore int `yaml:"target_score"`
	MaxIters    int `yaml:"max_iters"`
}

type ParallelConfig struct {
	MaxConcurrency int  `yaml:"max_concurrency"`
	PartialResults bool `yaml:"partial_results"`
}

type RoutingConfig struct {
	Mode string `yaml:"mode"`
}

type InvocationConfig struct {
	MaxToolRounds int           `yaml:"max_tool_rounds"`
	// Retries is the total number of attempts per invocation.
	Retries       int           `yaml:"retries"`
	RetryBackoff  time.Duration `yaml:"retry_backoff"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Model: ModelConfig{
			Name:      model.ClaudeDefaultModel,
			MaxTokens: model.DefaultMaxTokens,
		},
		Reflection: ReflectionConfig{
			TargetScore: agent.DefaultTargetScore,
			MaxIters:    agent.DefaultMaxIterations,
		},
		Routing: RoutingConfig{
			Mode: agent.RoutingModeLLM.String(),
		},
		Invocation: InvocationConfig{
			MaxToolRounds: flow.DefaultMaxToolRounds,
			Retries:       1,
			RetryBackoff:  500 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
	}
}

// Load reads the YAML file at path over the defaults, expanding ${VAR}
// references, then applies ADK_* environment overrides and validates.
//
// An empty path falls back to $ADK_CONFIG. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := Parse(data, &cfg); err != nil {
				return nil, err
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Parse decodes YAML data into cfg, expanding ${VAR} references first.
// Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))

	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ADK_MODEL"); v != "" {
		cfg.Model.Name = v
	}
	if v := os.Getenv("ADK_API_KEY"); v != "" {
		cfg.Model.APIKey = v
	}
	if v := os.Getenv("ADK_BASE_URL"); v != "" {
		cfg.Model.BaseURL = v
	}
	if v := os.Getenv("ADK_ROUTING_MODE"); v != "" {
		cfg.Routing.Mode = v
	}
	if v := os.Getenv("ADK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ADK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"ADK_MAX_TOKENS", &cfg.Model.MaxTokens},
		{"ADK_TARGET_SCORE", &cfg.Reflection.TargetScore},
		{"ADK_MAX_ITERS", &cfg.Reflection.MaxIters},
		{"ADK_MAX_CONCURRENCY", &cfg.Parallel.MaxConcurrency},
		{"ADK_MAX_TOOL_ROUNDS", &cfg.Invocation.MaxToolRounds},
		{"ADK_RETRIES", &cfg.Invocation.Retries},
	}
	for _, e := range ints {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("ADK_METRICS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ADK_METRICS: %w", err)
		}
		cfg.Metrics.Enabled = b
	}

	return nil
}

// Validate reports every invalid field of c.
func (c *Config) Validate() error {
	var errs []error
	if c.Model.Name == "" {
		errs = append(errs, errors.New("model.name is required"))
	}
	if c.Model.MaxTokens < 1 {
		errs = append(errs, fmt.Errorf("model.max_tokens must be positive, got %d", c.Model.MaxTokens))
	}
	if c.Reflection.TargetScore < 0 || c.Reflection.TargetScore > 10 {
		errs = append(errs, fmt.Errorf("reflection.target_score: %w", types.ErrInvalidTargetScore))
	}
	if c.Reflection.MaxIters < 1 {
		errs = append(errs, fmt.Errorf("reflection.max_iters: %w", types.ErrNonPositiveMaxIters))
	}
	if c.Parallel.MaxConcurrency < 0 {
		errs = append(errs, fmt.Errorf("parallel.max_concurrency must not be negative, got %d", c.Parallel.MaxConcurrency))
	}
	if _, err := agent.ParseRoutingMode(c.Routing.Mode); err != nil {
		errs = append(errs, fmt.Errorf("routing.mode: %w", err))
	}
	if c.Invocation.MaxToolRounds < 1 {
		errs = append(errs, fmt.Errorf("invocation.max_tool_rounds must be positive, got %d", c.Invocation.MaxToolRounds))
	}
	if c.Invocation.Retries < 1 {
		errs = append(errs, fmt.Errorf("invocation.retries must be positive, got %d", c.Invocation.Retries))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch logging.Format(c.Log.Format) {
	case logging.FormatJSON, logging.FormatText:
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// RoutingMode returns the parsed routing mode.
func (c *Config) RoutingMode() agent.RoutingMode {
	mode, _ := agent.ParseRoutingMode(c.Routing.Mode)
	return mode
}
