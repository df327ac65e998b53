package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/minutes/core"
	"github.com/poiesic/minutes/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactRepository_SaveAndGet(t *testing.T) {
	_, repo := newTestRepos(t)
	ctx := context.Background()

	first := &core.Artifact{MeetingID: "m1", RunID: "run-1", Summary: "first", TranscriptCount: 2, ProcessedAt: time.Now().UTC()}
	require.NoError(t, repo.SaveArtifact(ctx, first, time.Hour))

	got, err := repo.GetArtifact(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Summary)
	assert.Equal(t, 2, got.TranscriptCount)

	// Saving again replaces the whole artifact
	second := &core.Artifact{MeetingID: "m1", RunID: "run-2", Summary: "second", TranscriptCount: 3}
	require.NoError(t, repo.SaveArtifact(ctx, second, time.Hour))

	got, err = repo.GetArtifact(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "run-2", got.RunID)
	assert.Equal(t, 3, got.TranscriptCount)
}

func TestArtifactRepository_NotFound(t *testing.T) {
	_, repo := newTestRepos(t)

	_, err := repo.GetArtifact(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestArtifactRepository_Validation(t *testing.T) {
	_, repo := newTestRepos(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.SaveArtifact(ctx, &core.Artifact{}, time.Hour), core.ErrEmptyMeetingID)
	assert.ErrorIs(t, repo.SaveArtifact(ctx, &core.Artifact{MeetingID: "m1"}, -time.Hour), storage.ErrInvalidQuery)
}

func TestArtifactRepository_Delete(t *testing.T) {
	_, repo := newTestRepos(t)
	ctx := context.Background()

	deleted, err := repo.DeleteArtifact(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, repo.SaveArtifact(ctx, &core.Artifact{MeetingID: "m1"}, 0))

	deleted, err = repo.DeleteArtifact(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetArtifact(ctx, "m1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestArtifactRepository_Expiry(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for badger TTL")
	}
	_, repo := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveArtifact(ctx, &core.Artifact{MeetingID: "m1"}, time.Second))
	_, err := repo.GetArtifact(ctx, "m1")
	require.NoError(t, err)

	time.Sleep(2100 * time.Millisecond)

	_, err = repo.GetArtifact(ctx, "m1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
