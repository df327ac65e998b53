package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateSegment(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		segment *Segment
		wantErr error
	}{
		{
			name: "valid segment",
			segment: &Segment{
				MeetingID: "m1",
				SpeakerID: "A",
				Content:   "We decided to launch next week.",
				Timestamp: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid segment without speaker",
			segment: &Segment{
				MeetingID: "m1",
				Content:   "Anyone there?",
				Timestamp: validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil segment",
			segment: nil,
			wantErr: ErrInvalidSegment,
		},
		{
			name: "missing meeting id",
			segment: &Segment{
				Content:   "Hello",
				Timestamp: validTime,
			},
			wantErr: ErrEmptyMeetingID,
		},
		{
			name: "blank content",
			segment: &Segment{
				MeetingID: "m1",
				Content:   "   ",
				Timestamp: validTime,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "future timestamp",
			segment: &Segment{
				MeetingID: "m1",
				Content:   "Hello",
				Timestamp: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSegment(tt.segment)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSegment() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateSegment() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSegment() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateArtifact(t *testing.T) {
	tests := []struct {
		name     string
		artifact *Artifact
		wantErr  error
	}{
		{
			name:     "valid artifact",
			artifact: &Artifact{MeetingID: "m1", TranscriptCount: 2},
		},
		{
			name:     "nil artifact",
			artifact: nil,
			wantErr:  ErrInvalidArtifact,
		},
		{
			name:     "missing meeting id",
			artifact: &Artifact{TranscriptCount: 1},
			wantErr:  ErrEmptyMeetingID,
		},
		{
			name:     "negative count",
			artifact: &Artifact{MeetingID: "m1", TranscriptCount: -1},
			wantErr:  ErrInvalidArtifact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArtifact(tt.artifact)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateArtifact() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateArtifact() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{
			name: "past timestamp",
			ts:   time.Now().Add(-1 * time.Hour),
			want: true,
		},
		{
			name: "current time (approximately)",
			ts:   time.Now(),
			want: true,
		},
		{
			name: "within producer skew",
			ts:   time.Now().Add(2 * time.Second),
			want: true,
		},
		{
			name: "future timestamp",
			ts:   time.Now().Add(1 * time.Hour),
			want: false,
		},
		{
			name: "zero time",
			ts:   time.Time{},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidTimestamp(tt.ts)
			if got != tt.want {
				t.Errorf("IsValidTimestamp() = %v, want %v", got, tt.want)
			}
		})
	}
}
