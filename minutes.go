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


package minutes

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/minutes/ai"
	"github.com/poiesic/minutes/ai/openai"
	"github.com/poiesic/minutes/core"
	"github.com/poiesic/minutes/notes"
	"github.com/poiesic/minutes/storage"
	"github.com/poiesic/minutes/storage/badger"
)

// DefaultSegmentTTL is how long appended transcript segments are retained.
const DefaultSegmentTTL = time.Hour

// Service wires the transcript store, artifact cache, AI provider and
// processing pipeline together.
type Service struct {
	backend    *badger.Backend
	segments   storage.SegmentRepository
	artifacts  storage.ArtifactRepository
	provider   ai.AIProvider
	pipeline   *notes.Pipeline
	segmentTTL time.Duration
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig        *ai.Config
	provider        ai.AIProvider
	inMemory        bool
	segmentTTL      time.Duration
	pipelineOptions []notes.Option
	logger          *slog.Logger
}

// WithAIConfig sets the configuration for the OpenAI-compatible provider.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a ready-made AI provider instead of building one
// from the AI config. The service takes ownership and closes it.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps all data in memory. The path argument is ignored.
func WithInMemory() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithSegmentTTL sets the retention window for appended segments.
// Zero keeps segments until they are deleted.
func WithSegmentTTL(ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.segmentTTL = ttl
	}
}

// WithPipelineOptions passes options through to the processing pipeline.
func WithPipelineOptions(opts ...notes.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.pipelineOptions = append(o.pipelineOptions, opts...)
	}
}

// WithServiceLogger sets the logger for the service and its pipeline.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewService opens the Badger database at filePath and builds the pipeline.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig:   ai.DefaultConfig(),
		segmentTTL: DefaultSegmentTTL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	segments, err := badger.NewSegmentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	artifacts := badger.NewArtifactRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			artifacts.Close()
			segments.Close()
			backend.Close()
			return nil, err
		}
	}

	pipelineOpts := append([]notes.Option{notes.WithLogger(options.logger)}, options.pipelineOptions...)
	pipeline, err := notes.NewPipeline(segments, artifacts, provider, pipelineOpts...)
	if err != nil {
		provider.Close()
		artifacts.Close()
		segments.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:    backend,
		segments:   segments,
		artifacts:  artifacts,
		provider:   provider,
		pipeline:   pipeline,
		segmentTTL: options.segmentTTL,
		logger:     options.logger,
	}, nil
}

// Close drains background runs and releases every resource.
func (s *Service) Close() error {
	s.pipeline.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.artifacts.Close(); err != nil {
		s.logger.Error("error closing artifact repository", "err", err)
		return err
	}
	if err := s.segments.Close(); err != nil {
		s.logger.Error("error closing segment repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// AppendSegments stores transcript segments with the service's retention window.
func (s *Service) AppendSegments(ctx context.Context, segments ...*core.Segment) ([]*core.Segment, error) {
	return s.segments.AppendSegments(ctx, s.segmentTTL, segments...)
}

// ListMeetings returns the IDs of meetings with stored segments.
func (s *Service) ListMeetings(ctx context.Context) ([]string, error) {
	return s.segments.ListMeetings(ctx)
}

// DeleteTranscript removes every stored segment for a meeting.
func (s *Service) DeleteTranscript(ctx context.Context, meetingID string) (int, error) {
	return s.segments.DeleteSegments(ctx, meetingID)
}

// Process runs the pipeline for a meeting synchronously.
func (s *Service) Process(ctx context.Context, meetingID string) (*core.Artifact, error) {
	return s.pipeline.Process(ctx, meetingID)
}

// StartProcessing schedules a background run for a meeting.
func (s *Service) StartProcessing(meetingID string) {
	s.pipeline.StartProcessing(meetingID)
}

// GetArtifact returns the cached artifact for a meeting.
func (s *Service) GetArtifact(ctx context.Context, meetingID string) (*core.Artifact, error) {
	return s.pipeline.GetArtifact(ctx, meetingID)
}

// DeleteArtifact removes the cached artifact for a meeting.
func (s *Service) DeleteArtifact(ctx context.Context, meetingID string) (bool, error) {
	return s.pipeline.DeleteArtifact(ctx, meetingID)
}

func (s *Service) SegmentRepository() storage.SegmentRepository {
	return s.segments
}

func (s *Service) ArtifactRepository() storage.ArtifactRepository {
	return s.artifacts
}
