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
package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/minutes/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptySummary is returned when the model produces no usable text.
var ErrEmptySummary = errors.New("model returned an empty summary")

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client      llms.Model
	timeout     time.Duration
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.SummaryHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.SummaryModel),
	)
	if err != nil {
		return nil, err
	}

	return newSummarizerWithModel(client, config), nil
}

// newSummarizerWithModel wraps an already constructed model.
func newSummarizerWithModel(client llms.Model, config *ai.Config) *Summarizer {
	return &Summarizer{
		client:      client,
		timeout:     config.SummaryTimeout,
		maxTokens:   config.SummaryMaxTokens,
		temperature: config.SummaryTemperature,
		logger:      slog.Default().With("component", "openai-summarizer"),
	}
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	if !config.SummariesEnabled() {
		return nil, errors.New("ai config: SummaryModel is required for summarization")
	}
	return newSummarizer(config)
}

// Summarize sends the prompt to the chat model and returns its trimmed output.
// The call is bounded by the configured timeout.
func (s *Summarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, summarySystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, scrubString(prompt)),
	}

	start := time.Now()
	response, err := s.client.GenerateContent(ctx, content,
		llms.WithTemperature(s.temperature),
		llms.WithMaxTokens(s.maxTokens),
	)
	if err != nil {
		s.logger.Warn("summary generation failed", "elapsed", time.Since(start), "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ErrEmptySummary
	}

	text := strings.TrimSpace(response.Choices[0].Content)
	if text == "" {
		return "", ErrEmptySummary
	}

	s.logger.Debug("generated summary", "chars", len(text), "elapsed", time.Since(start))
	return text, nil
}
