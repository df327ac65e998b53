package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Segment IDs come from storage sequences; meeting key prefixes use content hashes.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Segment is one attributed, timestamped span of transcript text.
// Segments are immutable once stored.
type Segment struct {
	Id         ID        `json:"id"`
	MeetingID  string    `json:"meeting_id"`
	SpeakerID  string    `json:"speaker_id,omitempty"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`   // When the span was spoken
	InsertedAt time.Time `json:"inserted_at"` // When the store accepted the segment
}

// Theme is a cluster of related segments with a representative title.
type Theme struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"` // Mean member-to-centroid cosine similarity, in [0,1]
	SampleTexts []string `json:"sample_texts"`
}

// PatternCategory names a family of lexical cues used by the extractors.
type PatternCategory string

// ImportantNote is a segment that scored above zero on the importance heuristics.
type ImportantNote struct {
	Content         string            `json:"content"`
	SpeakerID       string            `json:"speaker_id,omitempty"`
	Timestamp       time.Time         `json:"timestamp"`
	Importance      int               `json:"importance"`
	MatchedPatterns []PatternCategory `json:"matched_patterns"`
}

// Decision is a sentence that reads like a decision was made.
type Decision struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	DecidedBy   string    `json:"decided_by_speaker_id,omitempty"`
}

// Initial values for extracted action items.
const (
	ActionStatusPending  = "PENDING"
	ActionPriorityMedium = "MEDIUM"
)

// ActionItem is a segment that reads like a task assignment.
// Exactly one of AssignedToName and AssignedToSpeakerID is set when an
// owner is known: a named extraction wins over the originating speaker.
type ActionItem struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	AssignedToName      string `json:"assigned_to_name,omitempty"`
	AssignedToSpeakerID string `json:"assigned_to_speaker_id,omitempty"`
	DueDate             string `json:"due_date,omitempty"`
	Status              string `json:"status"`
	Priority            string `json:"priority"`
}

// Assignee returns the named assignee if one was extracted, otherwise the speaker.
func (a *ActionItem) Assignee() string {
	if a.AssignedToName != "" {
		return a.AssignedToName
	}
	return a.AssignedToSpeakerID
}

// StageOutcome reports how a pipeline stage finished.
type StageOutcome string

const (
	// StageOK means the stage produced at least one item.
	StageOK StageOutcome = "ok"
	// StageEmpty means the stage ran cleanly and found nothing.
	StageEmpty StageOutcome = "empty"
	// StageFailed means the stage errored and contributed nothing.
	StageFailed StageOutcome = "failed"
	// StageFallback means the summary came from the deterministic fallback.
	StageFallback StageOutcome = "fallback"
)

// StageReport records the outcome of a single pipeline stage.
type StageReport struct {
	Stage   string       `json:"stage"`
	Outcome StageOutcome `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
}

// Artifact is the derived, cached output of one processing run for a meeting.
// It is replaced wholesale on every run and never partially mutated.
type Artifact struct {
	MeetingID       string          `json:"meeting_id"`
	RunID           string          `json:"run_id"`
	Summary         string          `json:"summary"`
	Themes          []Theme         `json:"themes"`
	ImportantNotes  []ImportantNote `json:"important_notes"`
	Decisions       []Decision      `json:"decisions"`
	ActionItems     []ActionItem    `json:"action_items"`
	ProcessedAt     time.Time       `json:"processed_at"`
	TranscriptCount int             `json:"transcript_count"`
	Stages          []StageReport   `json:"stages,omitempty"`
}
