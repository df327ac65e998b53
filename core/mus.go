package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// SegmentMUS is the binary storage codec for Segment.
// Field order: Id, MeetingID, SpeakerID, Content, Timestamp, InsertedAt.
// Timestamps are stored as Unix microseconds and decode as UTC.
var SegmentMUS = segmentMUS{}

var _ mus.Serializer[Segment] = SegmentMUS

type segmentMUS struct{}

func (s segmentMUS) Marshal(v Segment, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Id), bs)
	n += ord.String.Marshal(v.MeetingID, bs[n:])
	n += ord.String.Marshal(v.SpeakerID, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += varint.Int64.Marshal(v.Timestamp.UnixMicro(), bs[n:])
	return n + varint.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
}

func (s segmentMUS) Unmarshal(bs []byte) (v Segment, n int, err error) {
	var (
		id     uint64
		micros int64
		n1     int
	)
	id, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Id = ID(id)
	v.MeetingID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SpeakerID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp = time.UnixMicro(micros).UTC()
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt = time.UnixMicro(micros).UTC()
	return
}

func (s segmentMUS) Size(v Segment) (size int) {
	size = varint.Uint64.Size(uint64(v.Id))
	size += ord.String.Size(v.MeetingID)
	size += ord.String.Size(v.SpeakerID)
	size += ord.String.Size(v.Content)
	size += varint.Int64.Size(v.Timestamp.UnixMicro())
	return size + varint.Int64.Size(v.InsertedAt.UnixMicro())
}

func (s segmentMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Uint64.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	for range 3 {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	for range 2 {
		n1, err = varint.Int64.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
