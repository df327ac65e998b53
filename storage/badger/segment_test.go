package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/minutes/core"
	"github.com/poiesic/minutes/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) (storage.SegmentRepository, storage.ArtifactRepository) {
	t.Helper()
	segments, artifacts, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		artifacts.Close()
		segments.Close()
		backend.Close()
	})
	return segments, artifacts
}

func seg(meetingID, speaker, content string) *core.Segment {
	return &core.Segment{
		MeetingID: meetingID,
		SpeakerID: speaker,
		Content:   content,
		Timestamp: time.Now().UTC().Add(-time.Minute),
	}
}

func TestSegmentRepository_AppendAndList(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	added, err := repo.AppendSegments(ctx, 0,
		seg("m1", "A", "We decided to launch next week."),
		seg("m1", "B", "John will follow up by March 5 on the budget issue."),
	)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.NotZero(t, added[0].Id)
	assert.Greater(t, added[1].Id, added[0].Id)
	assert.False(t, added[0].InsertedAt.IsZero())

	// A later append lands after the earlier ones
	_, err = repo.AppendSegments(ctx, 0, seg("m1", "A", "Sounds good."))
	require.NoError(t, err)

	listed, err := repo.ListSegments(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "We decided to launch next week.", listed[0].Content)
	assert.Equal(t, "Sounds good.", listed[2].Content)
	assert.Equal(t, "B", listed[1].SpeakerID)
}

func TestSegmentRepository_MeetingsAreIsolated(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repo.AppendSegments(ctx, 0, seg("a", "", "first"), seg("a:b", "", "second"))
	require.NoError(t, err)

	listed, err := repo.ListSegments(ctx, "a")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "first", listed[0].Content)

	listed, err = repo.ListSegments(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestSegmentRepository_RejectsInvalidBatch(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repo.AppendSegments(ctx, 0, seg("m1", "A", "fine"), seg("m1", "A", "  "))
	assert.ErrorIs(t, err, core.ErrEmptyContent)

	listed, err := repo.ListSegments(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, listed, "nothing from a rejected batch is stored")

	_, err = repo.AppendSegments(ctx, -time.Second, seg("m1", "A", "fine"))
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestSegmentRepository_DeleteSegments(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.AppendSegments(ctx, 0, seg("m1", "A", fmt.Sprintf("line %d", i)))
		require.NoError(t, err)
	}
	_, err := repo.AppendSegments(ctx, 0, seg("m2", "A", "other meeting"))
	require.NoError(t, err)

	n, err := repo.DeleteSegments(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	listed, err := repo.ListSegments(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, listed)

	meetings, err := repo.ListMeetings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, meetings)

	n, err = repo.DeleteSegments(ctx, "m1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSegmentRepository_ListMeetings(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repo.AppendSegments(ctx, 0, seg("zeta", "", "z"), seg("alpha", "", "a"), seg("alpha", "", "b"))
	require.NoError(t, err)

	meetings, err := repo.ListMeetings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, meetings)
}

func TestSegmentRepository_Expiry(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for badger TTL")
	}
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repo.AppendSegments(ctx, time.Second, seg("m1", "A", "short lived"))
	require.NoError(t, err)
	_, err = repo.AppendSegments(ctx, 0, seg("m2", "A", "kept"))
	require.NoError(t, err)

	// Badger TTLs have one-second resolution
	time.Sleep(2100 * time.Millisecond)

	listed, err := repo.ListSegments(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, listed)

	meetings, err := repo.ListMeetings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, meetings)
}
