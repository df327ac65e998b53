package minutes

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/minutes/ai/mock"
	"github.com/poiesic/minutes/core"
	"github.com/poiesic/minutes/metrics"
	"github.com/poiesic/minutes/notes"
	"github.com/poiesic/minutes/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	opts = append([]ServiceOption{
		WithInMemory(),
		WithProvider(mock.NewMockProvider()),
		WithPipelineOptions(notes.WithMetrics(metrics.NewMetrics(prometheus.NewRegistry()))),
	}, opts...)
	svc, err := NewService("", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestNewService(t *testing.T) {
	t.Run("create on disk with default provider", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "test_db")
		svc, err := NewService(dir)
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		assert.NotNil(t, svc.SegmentRepository())
		assert.NotNil(t, svc.ArtifactRepository())
		assert.NotNil(t, svc.backend)
		assert.NotNil(t, svc.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		svc, err := NewService(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestService_Close(t *testing.T) {
	svc, err := NewService("", WithInMemory(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	assert.NoError(t, svc.Close())
}

func TestService_ProcessFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AppendSegments(ctx,
		&core.Segment{MeetingID: "m1", SpeakerID: "A", Content: "We decided to launch next week.", Timestamp: time.Now().Add(-time.Minute)},
		&core.Segment{MeetingID: "m1", SpeakerID: "B", Content: "John will follow up by March 5 on the budget issue.", Timestamp: time.Now()},
	)
	require.NoError(t, err)

	meetings, err := svc.ListMeetings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, meetings)

	artifact, err := svc.Process(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, artifact.TranscriptCount)

	cached, err := svc.GetArtifact(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, artifact.RunID, cached.RunID)

	deleted, err := svc.DeleteArtifact(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, deleted)

	removed, err := svc.DeleteTranscript(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = svc.Process(ctx, "m1")
	assert.ErrorIs(t, err, notes.ErrNoTranscripts)

	_, err = svc.GetArtifact(ctx, "m1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestService_StartProcessing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AppendSegments(ctx,
		&core.Segment{MeetingID: "m1", SpeakerID: "A", Content: "Important: ship it.", Timestamp: time.Now()},
	)
	require.NoError(t, err)

	svc.StartProcessing("m1")
	require.Eventually(t, func() bool {
		_, err := svc.GetArtifact(ctx, "m1")
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
}
