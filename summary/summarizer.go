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


package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/minutes/ai"
	"github.com/poiesic/minutes/core"
)

// ErrEmptySummary is reported when the model returns only whitespace.
var ErrEmptySummary = errors.New("empty summary")

// StageName identifies the summary stage in artifact reports.
const StageName = "summary"

// Summarizer produces a meeting summary, preferring a generative model and
// falling back to a deterministic template.
type Summarizer struct {
	generator ai.Summarizer
	logger    *slog.Logger
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Summarizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Summarizer. generator may be nil, in which case every
// summary comes from the fallback template.
func New(generator ai.Summarizer, opts ...Option) *Summarizer {
	s := &Summarizer{
		generator: generator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "summarizer")
	return s
}

// Summarize returns the meeting summary and a report saying which path produced it.
// It never returns an error: generation failures fall back to the template.
func (s *Summarizer) Summarize(ctx context.Context, title string, segments []*core.Segment) (string, core.StageReport) {
	report := core.StageReport{Stage: StageName, Outcome: core.StageFallback}

	switch {
	case s.generator == nil:
		report.Reason = "no summary model configured"
	case len(segments) == 0:
		report.Reason = "no segments"
	default:
		text, err := s.generate(ctx, title, segments)
		if err == nil {
			report.Outcome = core.StageOK
			return text, report
		}
		s.logger.Warn("generative summary failed, using fallback", "title", title, "err", err)
		report.Reason = err.Error()
	}

	return Fallback(title, segments), report
}

func (s *Summarizer) generate(ctx context.Context, title string, segments []*core.Segment) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("summarizer panicked: %v", r)
		}
	}()
	text, err = s.generator.Summarize(ctx, BuildPrompt(title, segments))
	if err != nil {
		return "", err
	}
	if text = strings.TrimSpace(text); text == "" {
		return "", ErrEmptySummary
	}
	return text, nil
}
