package notes

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// meetingLocks serializes runs per meeting. Entries are dropped once no
// caller holds or waits on them.
type meetingLocks struct {
	mu    sync.Mutex
	locks map[string]*meetingLock
}

type meetingLock struct {
	sem  *semaphore.Weighted
	refs int
}

// acquire blocks until the meeting is free or ctx ends. waited reports
// whether another run held the meeting when acquire was called.
func (l *meetingLocks) acquire(ctx context.Context, meetingID string) (release func(), waited bool, err error) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*meetingLock)
	}
	ml, ok := l.locks[meetingID]
	if !ok {
		ml = &meetingLock{sem: semaphore.NewWeighted(1)}
		l.locks[meetingID] = ml
	}
	ml.refs++
	l.mu.Unlock()

	if !ml.sem.TryAcquire(1) {
		waited = true
		if err := ml.sem.Acquire(ctx, 1); err != nil {
			l.drop(meetingID, ml)
			return nil, waited, err
		}
	}

	return func() {
		ml.sem.Release(1)
		l.drop(meetingID, ml)
	}, waited, nil
}

func (l *meetingLocks) drop(meetingID string, ml *meetingLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ml.refs--
	if ml.refs == 0 {
		delete(l.locks, meetingID)
	}
}

// held returns the number of meetings with a holder or waiter.
func (l *meetingLocks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
