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

package notes

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/minutes/ai"
	"github.com/poiesic/minutes/core"
	"github.com/poiesic/minutes/metrics"
	"github.com/poiesic/minutes/storage"
	"github.com/poiesic/minutes/summary"
	"github.com/poiesic/minutes/themes"
)

// DefaultArtifactTTL is how long a finished artifact stays in the cache.
const DefaultArtifactTTL = 24 * time.Hour

// TitleResolver maps a meeting ID to the title used in summaries.
type TitleResolver func(meetingID string) string

// DefaultTitle returns "Meeting <id>".
func DefaultTitle(meetingID string) string {
	return "Meeting " + meetingID
}

// Pipeline orchestrates processing runs for meetings.
type Pipeline struct {
	segments    storage.SegmentRepository
	artifacts   storage.ArtifactRepository
	pool        *ants.Pool
	pending     sync.WaitGroup
	locks       meetingLocks
	clusterer   *themes.Clusterer
	summarizer  *summary.Summarizer
	themeCount  int
	artifactTTL time.Duration
	now         func() time.Time
	title       TitleResolver
	metrics     *metrics.Metrics
	logger      *slog.Logger

	// mu guards closed and scheduled. A scheduled value of true marks a
	// trigger that arrived while the meeting's background run was queued
	// or in flight.
	mu        sync.Mutex
	closed    bool
	scheduled map[string]bool
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for background runs.
// Default is runtime.NumCPU() / 2, with a minimum of 1. The pool never
// blocks: triggers that find every worker busy are rejected and counted.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := newPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithThemeCount sets the number of themes requested from the clusterer.
// Default is themes.DefaultThemeCount.
func WithThemeCount(k int) Option {
	return func(p *Pipeline) error {
		p.themeCount = k
		return nil
	}
}

// WithArtifactTTL sets how long artifacts live in the cache.
// Default is DefaultArtifactTTL.
func WithArtifactTTL(ttl time.Duration) Option {
	return func(p *Pipeline) error {
		if ttl <= 0 {
			return errors.New("artifact TTL must be positive")
		}
		p.artifactTTL = ttl
		return nil
	}
}

// WithClock replaces the source of processed_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) error {
		if now != nil {
			p.now = now
		}
		return nil
	}
}

// WithTitleResolver sets how meeting titles are derived for summaries.
// Default is DefaultTitle.
func WithTitleResolver(resolve TitleResolver) Option {
	return func(p *Pipeline) error {
		if resolve != nil {
			p.title = resolve
		}
		return nil
	}
}

// WithMetrics sets the metrics sink.
// Default is metrics.DefaultMetrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) error {
		if m != nil {
			p.metrics = m
		}
		return nil
	}
}

// NewPipeline creates a processing pipeline over the given transcript store
// and artifact cache. The provider's embedder feeds the theme clusterer; its
// summarizer, when present, feeds the generative summary path.
func NewPipeline(
	segments storage.SegmentRepository,
	artifacts storage.ArtifactRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if segments == nil {
		return nil, ErrSegmentRepositoryRequired
	}
	if artifacts == nil {
		return nil, ErrArtifactRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := newPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		segments:    segments,
		artifacts:   artifacts,
		pool:        pool,
		themeCount:  themes.DefaultThemeCount,
		artifactTTL: DefaultArtifactTTL,
		now:         time.Now,
		title:       DefaultTitle,
		metrics:     metrics.DefaultMetrics,
		logger:      slog.Default(),
		scheduled:   make(map[string]bool),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Stages are built after options so they pick up the final config.
	clusterer, err := themes.NewClusterer(provider.Embedder(),
		themes.WithThemeCount(p.themeCount), themes.WithLogger(p.logger))
	if err != nil {
		p.Release()
		return nil, err
	}
	p.clusterer = clusterer
	p.summarizer = summary.New(provider.Summarizer(), summary.WithLogger(p.logger))
	p.logger = p.logger.With("component", "notes-pipeline")

	return p, nil
}

// Process runs the pipeline for one meeting and returns the stored artifact.
// A meeting without segments yields ErrNoTranscripts and leaves the cache
// untouched. Runs for the same meeting are serialized: a call made while
// another run is in flight waits for it, then reads the transcript afresh.
func (p *Pipeline) Process(ctx context.Context, meetingID string) (*core.Artifact, error) {
	if strings.TrimSpace(meetingID) == "" {
		return nil, core.ErrEmptyMeetingID
	}

	release, waited, err := p.locks.acquire(ctx, meetingID)
	if waited {
		p.metrics.RunsWaited.Inc()
	}
	if err != nil {
		return nil, err
	}
	defer release()

	return p.run(ctx, meetingID)
}

// StartProcessing schedules a background run for the meeting and returns
// immediately. A trigger for a meeting that already has a run queued or in
// flight is folded into one trailing run, so the last trigger always sees
// the segments appended before it. Triggers rejected by a saturated or
// released pool are logged and counted.
func (p *Pipeline) StartProcessing(meetingID string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.metrics.SubmitErrors.Inc()
		p.logger.Error("failed to schedule processing", "meeting", meetingID, "err", ants.ErrPoolClosed)
		return
	}
	if _, ok := p.scheduled[meetingID]; ok {
		p.scheduled[meetingID] = true
		p.mu.Unlock()
		p.metrics.TriggersCoalesced.Inc()
		p.logger.Debug("processing already scheduled", "meeting", meetingID)
		return
	}
	p.scheduled[meetingID] = false
	p.pending.Add(1)
	p.mu.Unlock()

	err := p.pool.Submit(func() {
		defer p.pending.Done()
		p.background(meetingID)
	})
	if err != nil {
		p.mu.Lock()
		delete(p.scheduled, meetingID)
		p.mu.Unlock()
		p.pending.Done()
		p.metrics.SubmitErrors.Inc()
		if errors.Is(err, ants.ErrPoolOverload) {
			p.logger.Warn("worker pool saturated, dropping trigger", "meeting", meetingID)
			return
		}
		p.logger.Error("failed to schedule processing", "meeting", meetingID, "err", err)
	}
}

// background processes the meeting until no trigger is left pending.
func (p *Pipeline) background(meetingID string) {
	for {
		_, err := p.Process(context.Background(), meetingID)
		switch {
		case err == nil:
		case errors.Is(err, ErrNoTranscripts):
			p.logger.Debug("nothing to process", "meeting", meetingID)
		default:
			p.logger.Error("background processing failed", "meeting", meetingID, "err", err)
		}

		p.mu.Lock()
		if p.scheduled[meetingID] {
			p.scheduled[meetingID] = false
			p.mu.Unlock()
			continue
		}
		delete(p.scheduled, meetingID)
		p.mu.Unlock()
		return
	}
}

// GetArtifact returns the cached artifact for a meeting, or storage.ErrNotFound.
func (p *Pipeline) GetArtifact(ctx context.Context, meetingID string) (*core.Artifact, error) {
	return p.artifacts.GetArtifact(ctx, meetingID)
}

// DeleteArtifact removes the cached artifact and reports whether one existed.
func (p *Pipeline) DeleteArtifact(ctx context.Context, meetingID string) (bool, error) {
	return p.artifacts.DeleteArtifact(ctx, meetingID)
}

// Release rejects further background triggers, waits for scheduled runs to
// finish and releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.pending.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}

func newPool(size int) (*ants.Pool, error) {
	return ants.NewPool(size, ants.WithNonblocking(true))
}
