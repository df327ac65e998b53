// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// SummaryHost is the base URL for the generative summarization API.
	// Example: "https://api.openai.com/v1"
	SummaryHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "all-minilm", "text-embedding-3-small"
	EmbeddingModel string

	// SummaryModel is the model identifier to use for meeting summaries.
	// Leave empty to disable generative summaries; the deterministic
	// fallback summary is used instead.
	// Example: "gpt-3.5-turbo", "qwen2.5:3b"
	SummaryModel string

	// Token is the API key sent to both services.
	// Local OpenAI-compatible servers accept any value.
	// Default: "none"
	Token string

	// SummaryTimeout bounds a single summarization call.
	// Default: 30s
	SummaryTimeout time.Duration

	// SummaryMaxTokens caps the length of the generated summary.
	// Default: 500
	SummaryMaxTokens int

	// SummaryTemperature is the sampling temperature for summaries.
	// Default: 0.3
	SummaryTemperature float64

	// MaxRetries is the number of attempts for an embedding request.
	// Default: 3
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff between attempts.
	// Default: 500ms
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithSummaryHost sets the summarization service host URL.
func WithSummaryHost(host string) ConfigOption {
	return func(c *Config) {
		c.SummaryHost = host
	}
}

// WithHost sets both embedding and summary hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.SummaryHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithSummaryModel sets the summary model identifier.
// An empty model disables generative summaries.
func WithSummaryModel(model string) ConfigOption {
	return func(c *Config) {
		c.SummaryModel = model
	}
}

// WithToken sets the API key.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithSummaryTimeout sets the per-call summarization timeout.
func WithSummaryTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.SummaryTimeout = timeout
	}
}

// WithRetries sets the embedding retry policy.
func WithRetries(maxRetries int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both services use the same host and summaries are disabled.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:      defaultHost,
		SummaryHost:        defaultHost,
		EmbeddingModel:     "all-minilm",
		Token:              "none",
		SummaryTimeout:     30 * time.Second,
		SummaryMaxTokens:   500,
		SummaryTemperature: 0.3,
		MaxRetries:         3,
		RetryDelay:         500 * time.Millisecond,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithEmbeddingModel("text-embedding-3-small"),
//       WithSummaryModel("gpt-3.5-turbo"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// SummariesEnabled reports whether a generative summary model is configured.
func (c *Config) SummariesEnabled() bool {
	return c.SummaryModel != ""
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	c.EmbeddingHost = normalizeHost(c.EmbeddingHost)
	c.SummaryHost = normalizeHost(c.SummaryHost)
	if c.Token == "" {
		c.Token = "none"
	}
}

func normalizeHost(host string) string {
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	// Remove trailing slash if present before adding /v1
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	// Normalize first to ensure hosts are in correct format
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.SummariesEnabled() {
		if c.SummaryHost == "" {
			return errors.New("ai config: SummaryHost is required when SummaryModel is set")
		}
		if c.SummaryTimeout <= 0 {
			return errors.New("ai config: SummaryTimeout must be positive")
		}
		if c.SummaryMaxTokens <= 0 {
			return errors.New("ai config: SummaryMaxTokens must be positive")
		}
	}
	if c.MaxRetries < 1 {
		return errors.New("ai config: MaxRetries must be at least 1")
	}
	return nil
}
