// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"log/slog"
	"net/http"
)

// DefaultMaxTokens is the output token limit used when the request does not set one.
const DefaultMaxTokens = 4096

// Config holds the backend settings shared by [Claude] and [Gemini].
type Config struct {
	// baseURL overrides the API endpoint.
	baseURL string

	// maxTokens is the default output token limit.
	maxTokens int64

	httpClient *http.Client

	// logger is the logger used for logging.
	logger *slog.Logger
}

func newConfig(opts []Option) Config {
	c := Config{
		maxTokens: DefaultMaxTokens,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		c = opt.apply(c)
	}
	return c
}

// Option is a function that modifies the [Config] model.
type Option interface {
	apply(base Config) Config
}

type baseURLOption string

func (o baseURLOption) apply(base Config) Config {
	base.baseURL = string(o)
	return base
}

// WithBaseURL sets the API endpoint, e.g. for a proxy or a test server.
func WithBaseURL(url string) Option {
	return baseURLOption(url)
}

type maxTokensOption int64

func (o maxTokensOption) apply(base Config) Config {
	if o > 0 {
		base.maxTokens = int64(o)
	}
	return base
}

// WithMaxTokens sets the default output token limit.
func WithMaxTokens(n int64) Option {
	return maxTokensOption(n)
}

type httpClientOption struct{ *http.Client }

func (o httpClientOption) apply(base Config) Config {
	base.httpClient = o.Client
	return base
}

// WithHTTPClient sets the HTTP client used by the backend.
func WithHTTPClient(client *http.Client) Option {
	return httpClientOption{client}
}

type loggerOption struct{ *slog.Logger }

func (o loggerOption) apply(base Config) Config {
	base.logger = o.Logger
	return base
}

// WithLogger sets the logger for the model.
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}
