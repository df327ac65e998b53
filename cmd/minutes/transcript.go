package main

import (
	"fmt"
	"os"
	"time"

	"github.com/poiesic/minutes/core"
	"gopkg.in/yaml.v3"
)

// segmentInput is one entry of a transcript import file. JSON files parse
// as YAML, so one decoder serves both.
type segmentInput struct {
	Content   string `yaml:"content"`
	SpeakerID string `yaml:"speaker_id"`
	Timestamp string `yaml:"timestamp"`
}

// readTranscript parses a transcript file into segments for meetingID.
// Entries without a timestamp are stamped with the import time, spaced a
// millisecond apart so they keep file order.
func readTranscript(path, meetingID string, now time.Time) ([]*core.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	return parseTranscript(data, meetingID, now)
}

func parseTranscript(data []byte, meetingID string, now time.Time) ([]*core.Segment, error) {
	var inputs []segmentInput
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parsing transcript: %w", err)
	}

	base := now.Add(-time.Duration(len(inputs)) * time.Millisecond)
	segments := make([]*core.Segment, 0, len(inputs))
	for i, in := range inputs {
		ts := base.Add(time.Duration(i) * time.Millisecond)
		if in.Timestamp != "" {
			parsed, err := time.Parse(time.RFC3339, in.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("segment %d: invalid timestamp %q: %w", i, in.Timestamp, err)
			}
			ts = parsed
		}
		segments = append(segments, &core.Segment{
			MeetingID: meetingID,
			SpeakerID: in.SpeakerID,
			Content:   in.Content,
			Timestamp: ts,
		})
	}
	return segments, nil
}
