// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/go-a2a/adk-patterns/config"
	"github.com/go-a2a/adk-patterns/flow"
	"github.com/go-a2a/adk-patterns/internal/telemetry"
	"github.com/go-a2a/adk-patterns/model"
	"github.com/go-a2a/adk-patterns/pkg/logging"
	"github.com/go-a2a/adk-patterns/types"
	"github.com/go-a2a/adk-patterns/workflow"
)

// app holds what every workflow command needs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	invoker types.Invoker
	opts    []workflow.Option
}

// newApp loads the configuration and wires the model, invoker and metrics. It
// replaces the command's context with one carrying the logger.
func newApp(cmd *cobra.Command) (*app, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if modelName != "" {
		cfg.Model.Name = modelName
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(level, logging.Format(cfg.Log.Format), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	ctx := logging.NewContext(cmd.Context(), logger)
	cmd.SetContext(ctx)

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		if metrics, err = telemetry.NewMetrics(reg); err != nil {
			return nil, err
		}
		go serveMetrics(ctx, cfg.Metrics.Addr, reg, logger)
	}

	modelOpts := []model.Option{
		model.WithMaxTokens(int64(cfg.Model.MaxTokens)),
		model.WithLogger(logger),
	}
	if cfg.Model.BaseURL != "" {
		modelOpts = append(modelOpts, model.WithBaseURL(cfg.Model.BaseURL))
	}
	llm, err := model.NewLLM(ctx, cfg.Model.APIKey, cfg.Model.Name, modelOpts...)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", cfg.Model.Name, err)
	}

	invoker := flow.NewLLMInvoker(llm,
		flow.WithModelFactory(model.NewModelFactory(model.GetRegistry(), nil, modelOpts...)),
		flow.WithMaxToolRounds(cfg.Invocation.MaxToolRounds),
		flow.WithMetrics(metrics),
		flow.WithLogger(logger),
	)

	logger.DebugContext(ctx, "configured",
		slog.String("model", llm.Name()),
		slog.String("routing_mode", cfg.RoutingMode().String()),
		slog.Int("target_score", cfg.Reflection.TargetScore),
		slog.Int("max_iters", cfg.Reflection.MaxIters),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		invoker: flow.WithRetry(invoker, cfg.Invocation.Retries, cfg.Invocation.RetryBackoff),
		opts: []workflow.Option{
			workflow.WithMetrics(metrics),
			workflow.WithReflection(cfg.Reflection.TargetScore, cfg.Reflection.MaxIters),
			workflow.WithParallelism(cfg.Parallel.MaxConcurrency, cfg.Parallel.PartialResults),
			workflow.WithRoutingMode(cfg.RoutingMode()),
		},
	}, nil
}

func serveMetrics(ctx context.Context, addr string, g prometheus.Gatherer, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	logger.InfoContext(ctx, "serving metrics", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.ErrorContext(ctx, "metrics server stopped", slog.Any("error", err))
	}
}
