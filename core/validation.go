// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
	"time"
)

// clockSkew is how far ahead of the local clock a producer timestamp may be.
const clockSkew = 5 * time.Second

// ValidateSegment validates a Segment according to domain rules.
//
// Validation rules:
//   - MeetingID must not be empty
//   - Content must not be blank
//   - Timestamp must not be in the future
//
// NOT validated (populated by storage):
//   - ID (0 until the store assigns one)
//   - InsertedAt
func ValidateSegment(segment *Segment) error {
	if segment == nil {
		return fmt.Errorf("%w: segment is nil", ErrInvalidSegment)
	}

	if strings.TrimSpace(segment.MeetingID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSegment, ErrEmptyMeetingID)
	}

	if strings.TrimSpace(segment.Content) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSegment, ErrEmptyContent)
	}

	if !IsValidTimestamp(segment.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidSegment, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateArtifact validates an Artifact before it is cached.
func ValidateArtifact(artifact *Artifact) error {
	if artifact == nil {
		return fmt.Errorf("%w: artifact is nil", ErrInvalidArtifact)
	}

	if strings.TrimSpace(artifact.MeetingID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArtifact, ErrEmptyMeetingID)
	}

	if artifact.TranscriptCount < 0 {
		return fmt.Errorf("%w: negative transcript count %d", ErrInvalidArtifact, artifact.TranscriptCount)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
// Producer clocks may run slightly ahead, so a small skew is tolerated.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now().Add(clockSkew))
}
