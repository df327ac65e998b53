package storage

import (
	"context"
	"time"

	"github.com/poiesic/minutes/core"
)

// SegmentRepository is the transcript store: an append-only, per-meeting log
// of segments written by the transcription service and read by the pipeline.
// Implementations must be thread-safe and support concurrent access.
type SegmentRepository interface {
	// AppendSegments stores segments for their meetings in the given order.
	// Each segment gets a store-assigned ID and InsertedAt timestamp.
	// A ttl of zero keeps the segments until they are deleted.
	// Invalid segments fail the whole batch and nothing is written.
	AppendSegments(ctx context.Context, ttl time.Duration, segments ...*core.Segment) ([]*core.Segment, error)

	// ListSegments returns every unexpired segment for a meeting in insertion order.
	// Returns an empty slice (not an error) for unknown meetings.
	ListSegments(ctx context.Context, meetingID string) ([]*core.Segment, error)

	// DeleteSegments removes all segments for a meeting and returns how many were removed.
	DeleteSegments(ctx context.Context, meetingID string) (int, error)

	// ListMeetings returns the IDs of meetings that currently have segments, sorted.
	ListMeetings(ctx context.Context) ([]string, error)

	// Close releases resources held by the repository.
	Close() error
}

// ArtifactRepository is the artifact cache: at most one artifact per meeting,
// replaced on every processing run and expiring after a fixed TTL.
// Implementations must be thread-safe and support concurrent access.
type ArtifactRepository interface {
	// SaveArtifact stores the artifact under its meeting ID, replacing any previous value.
	// A ttl of zero keeps the artifact until it is deleted.
	SaveArtifact(ctx context.Context, artifact *core.Artifact, ttl time.Duration) error

	// GetArtifact retrieves the cached artifact for a meeting.
	// Returns ErrNotFound if none exists or it has expired.
	GetArtifact(ctx context.Context, meetingID string) (*core.Artifact, error)

	// DeleteArtifact removes the cached artifact and reports whether one existed.
	DeleteArtifact(ctx context.Context, meetingID string) (bool, error)

	// Close releases resources held by the repository.
	Close() error
}
