package badger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/minutes/core"
	"github.com/poiesic/minutes/storage"
)

// SegmentRepository implements storage.SegmentRepository for BadgerDB.
type SegmentRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.SegmentRepository = (*SegmentRepository)(nil)

// newSegmentRepository returns the concrete type for use within this package.
func newSegmentRepository(backend *Backend) (*SegmentRepository, error) {
	idSeq, err := backend.GetSequence(segmentIDSeq)
	if err != nil {
		return nil, err
	}

	return &SegmentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// NewSegmentRepository creates a transcript store on the given backend.
func NewSegmentRepository(backend *Backend) (storage.SegmentRepository, error) {
	return newSegmentRepository(backend)
}

// Close releases the ID sequence.
func (r *SegmentRepository) Close() error {
	return r.idSeq.Release()
}

// AppendSegments stores segments in order, assigning IDs from the sequence.
func (r *SegmentRepository) AppendSegments(ctx context.Context, ttl time.Duration, segments ...*core.Segment) ([]*core.Segment, error) {
	for _, segment := range segments {
		if err := core.ValidateSegment(segment); err != nil {
			return nil, err
		}
	}
	if ttl < 0 {
		return nil, fmt.Errorf("%w: negative ttl %s", storage.ErrInvalidQuery, ttl)
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		meetings := make(map[string]struct{})
		for _, segment := range segments {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				if nextID, err = r.idSeq.Next(); err != nil {
					return err
				}
			}
			segment.Id = core.ID(nextID)
			segment.InsertedAt = time.Now().UTC()

			entry := badger.NewEntry(makeSegmentKey(segment.MeetingID, segment.Id), storage.MarshalSegment(segment))
			if ttl > 0 {
				entry = entry.WithTTL(ttl)
			}
			if err := tx.SetEntry(entry); err != nil {
				return err
			}
			meetings[segment.MeetingID] = struct{}{}
		}

		for meetingID := range meetings {
			if err := r.touchMeeting(tx, meetingID, ttl); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return segments, nil
}

// touchMeeting records the meeting in the index. The index entry lives as
// long as the longest-lived segment of the meeting.
func (r *SegmentRepository) touchMeeting(tx *badger.Txn, meetingID string, ttl time.Duration) error {
	key := makeMeetingKey(meetingID)

	item, err := tx.Get(key)
	switch {
	case err == badger.ErrKeyNotFound:
	case err != nil:
		return err
	default:
		expiresAt := item.ExpiresAt()
		if expiresAt == 0 {
			// Already permanent
			return nil
		}
		if ttl > 0 {
			if remaining := time.Until(time.Unix(int64(expiresAt), 0)); remaining > ttl {
				ttl = remaining
			}
		}
	}

	entry := badger.NewEntry(key, []byte(meetingID))
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}
	return tx.SetEntry(entry)
}

// ListSegments returns every unexpired segment for a meeting in insertion order.
func (r *SegmentRepository) ListSegments(ctx context.Context, meetingID string) ([]*core.Segment, error) {
	results := []*core.Segment{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSegmentPrefix(meetingID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var segment *core.Segment
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				segment, err = storage.UnmarshalSegment(val)
				return err
			}); err != nil {
				return err
			}
			// Guard against hash collisions between meeting IDs
			if segment.MeetingID != meetingID {
				continue
			}
			results = append(results, segment)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteSegments removes all segments for a meeting along with its index entry.
func (r *SegmentRepository) DeleteSegments(ctx context.Context, meetingID string) (int, error) {
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSegmentPrefix(meetingID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var owner string
			if err := iter.Item().Value(func(val []byte) error {
				segment, err := storage.UnmarshalSegment(val)
				if err != nil {
					return err
				}
				owner = segment.MeetingID
				return nil
			}); err != nil {
				return err
			}
			if owner == meetingID {
				keys = append(keys, iter.Item().KeyCopy(nil))
			}
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	count := len(keys)
	keys = append(keys, makeMeetingKey(meetingID))
	if err := r.backend.DeleteKeys(keys); err != nil {
		return 0, err
	}
	r.backend.logger.Debug("deleted segments", "meeting", meetingID, "count", count)
	return count, nil
}

// ListMeetings returns the IDs of meetings that still have live segments.
func (r *SegmentRepository) ListMeetings(ctx context.Context) ([]string, error) {
	var meetings []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(meetingPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			meetingID, err := iter.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			if hasLiveSegments(tx, string(meetingID)) {
				meetings = append(meetings, string(meetingID))
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.Sort(meetings)
	return meetings, nil
}

func hasLiveSegments(tx *badger.Txn, meetingID string) bool {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeSegmentPrefix(meetingID)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()
	iter.Rewind()
	return iter.Valid()
}
