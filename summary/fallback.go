package summary

import (
	"fmt"
	"strings"

	"github.com/poiesic/minutes/core"
)

const (
	// previewChars is the length of each segment preview in the fallback summary.
	previewChars = 50
	// edgeSegments is how many opening and closing segments are considered.
	edgeSegments = 3
	// previewsPerEdge is how many of those appear in the sentence.
	previewsPerEdge = 2
)

// Fallback builds a deterministic summary from segment counts and the
// opening and closing segments. It never fails: any panic while formatting
// degrades to Generic.
func Fallback(title string, segments []*core.Segment) (summary string) {
	defer func() {
		if r := recover(); r != nil {
			summary = Generic(title)
		}
	}()

	if len(segments) == 0 {
		return fmt.Sprintf("Meeting '%s' was held but no transcript content is available.", title)
	}

	speakers := make(map[string]struct{})
	for _, segment := range segments {
		if segment.SpeakerID != "" {
			speakers[segment.SpeakerID] = struct{}{}
		}
	}

	first := segments[:min(len(segments), edgeSegments)]
	var last []*core.Segment
	if len(segments) > edgeSegments {
		last = segments[len(segments)-edgeSegments:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Meeting '%s' included %d participants with %d discussion segments. ",
		title, len(speakers), len(segments))
	b.WriteString("The meeting began with discussions about: ")
	b.WriteString(previews(first))
	if len(last) > 0 {
		b.WriteString(" The meeting concluded with: ")
		b.WriteString(previews(last))
	}
	return b.String()
}

// Generic is the last-resort summary.
func Generic(title string) string {
	return fmt.Sprintf("Meeting '%s' was completed.", title)
}

func previews(segments []*core.Segment) string {
	parts := make([]string, 0, previewsPerEdge)
	for _, segment := range segments[:min(len(segments), previewsPerEdge)] {
		parts = append(parts, core.Truncate(segment.Content, previewChars)+core.Ellipsis)
	}
	return strings.Join(parts, " ")
}
