package notes

import "errors"

var (
	// ErrSegmentRepositoryRequired is returned when a transcript store is not provided.
	ErrSegmentRepositoryRequired = errors.New("segment repository required")

	// ErrArtifactRepositoryRequired is returned when an artifact cache is not provided.
	ErrArtifactRepositoryRequired = errors.New("artifact repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrNoTranscripts is returned when a meeting has no stored segments.
	// No artifact is written in that case.
	ErrNoTranscripts = errors.New("no transcripts for meeting")

	// ErrPersistFailed wraps a failure to write the finished artifact.
	ErrPersistFailed = errors.New("failed to persist artifact")
)
