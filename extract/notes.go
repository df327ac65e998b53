package extract

import (
	"slices"
	"strings"

	"github.com/poiesic/minutes/core"
)

const (
	// MaxImportantNotes caps the important notes list after sorting.
	MaxImportantNotes = 10

	// longSegmentWords is the word count above which a segment earns a point.
	longSegmentWords = 20
)

// ScoreSegment computes the importance score of one segment's content and
// the categories that contributed to it. Every cue occurrence counts, as do
// question and exclamation marks.
func ScoreSegment(content string) (int, []core.PatternCategory) {
	text := strings.ToLower(content)
	score, matched := ImportanceRules.Score(text)
	score += strings.Count(text, "?")
	score += strings.Count(text, "!")
	if len(strings.Fields(text)) > longSegmentWords {
		score++
	}
	return score, matched
}

// ExtractImportantNotes ranks segments by importance score, keeping the top
// MaxImportantNotes. Ties keep transcript order.
func ExtractImportantNotes(segments []*core.Segment) Result[core.ImportantNote] {
	return guard(func() []core.ImportantNote {
		var notes []core.ImportantNote
		for _, segment := range segments {
			if segment == nil || strings.TrimSpace(segment.Content) == "" {
				continue
			}
			score, matched := ScoreSegment(segment.Content)
			if score == 0 {
				continue
			}
			if matched == nil {
				matched = []core.PatternCategory{}
			}
			notes = append(notes, core.ImportantNote{
				Content:         segment.Content,
				SpeakerID:       segment.SpeakerID,
				Timestamp:       segment.Timestamp,
				Importance:      score,
				MatchedPatterns: matched,
			})
		}

		slices.SortStableFunc(notes, func(a, b core.ImportantNote) int {
			return b.Importance - a.Importance
		})
		if len(notes) > MaxImportantNotes {
			notes = notes[:MaxImportantNotes]
		}
		return notes
	})
}

// ImportantNotes is ExtractImportantNotes without the outcome.
func ImportantNotes(segments []*core.Segment) []core.ImportantNote {
	return ExtractImportantNotes(segments).Items
}
