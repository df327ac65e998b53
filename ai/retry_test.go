package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	t.Run("first attempt succeeds", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers after transient failures", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("connection reset")
			}
			return nil
		}, 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		want := errors.New("embedding server unavailable")
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			return want
		}, 3, time.Millisecond)
		assert.Equal(t, want, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			cancel()
			return errors.New("boom")
		}, 10, 5*time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("rejects non-positive attempts", func(t *testing.T) {
		for _, n := range []int{0, -2} {
			calls := 0
			err := RetryWithBackoff(context.Background(), func() error {
				calls++
				return nil
			}, n, time.Millisecond)
			assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
			assert.Zero(t, calls)
		}
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		want := errors.New("401 unauthorized")
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			return Permanent(want)
		}, 5, time.Millisecond)
		assert.Equal(t, want, err)
		assert.False(t, IsPermanent(err))
		assert.Equal(t, 1, calls)
	})
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))

	base := errors.New("bad request")
	err := Permanent(base)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "bad request", err.Error())
	assert.False(t, IsPermanent(base))
}
