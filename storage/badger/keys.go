package badger

import (
	"encoding/binary"

	"github.com/poiesic/minutes/core"
)

// Key prefixes for different data types
const (
	segmentPrefix  = "seg:"  // seg:<meeting hash><segment id>
	meetingPrefix  = "segm:" // segm:<meeting hash> -> meeting id
	artifactPrefix = "art:"  // art:<meeting hash>
	segmentIDSeq   = "segseq"
)

// meetingHash maps a free-form meeting ID to a fixed-width key component.
// Fixed width keeps one meeting's prefix from matching another's.
func meetingHash(meetingID string) core.ID {
	return core.IDFromContent(meetingID)
}

func appendUint64(buf []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(buf, v)
}

// makeSegmentPrefix generates the iteration prefix for a meeting's segments.
func makeSegmentPrefix(meetingID string) []byte {
	buf := make([]byte, 0, len(segmentPrefix)+8)
	buf = append(buf, segmentPrefix...)
	return appendUint64(buf, uint64(meetingHash(meetingID)))
}

// makeSegmentKey generates a key for a segment. Big-endian IDs keep
// iteration in insertion order.
func makeSegmentKey(meetingID string, id core.ID) []byte {
	return appendUint64(makeSegmentPrefix(meetingID), uint64(id))
}

// makeMeetingKey generates the meeting index key.
func makeMeetingKey(meetingID string) []byte {
	buf := make([]byte, 0, len(meetingPrefix)+8)
	buf = append(buf, meetingPrefix...)
	return appendUint64(buf, uint64(meetingHash(meetingID)))
}

// makeArtifactKey generates the cache key for a meeting's artifact.
func makeArtifactKey(meetingID string) []byte {
	buf := make([]byte, 0, len(artifactPrefix)+8)
	buf = append(buf, artifactPrefix...)
	return appendUint64(buf, uint64(meetingHash(meetingID)))
}
