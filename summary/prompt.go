package summary

import (
	"fmt"
	"strings"

	"github.com/poiesic/minutes/core"
)

// MaxTranscriptChars bounds the transcript text embedded in a prompt.
const MaxTranscriptChars = 8000

const promptTemplate = `Please provide a concise summary of this meeting titled "%s".

Meeting Transcript:
%s

Please provide:
1. A brief overview of what was discussed
2. Key points and highlights
3. Main outcomes or conclusions

Keep the summary professional and concise (2-3 paragraphs).`

// BuildTranscript renders non-empty segments as "Speaker <id>: <content>"
// lines, oldest first, cut at MaxTranscriptChars with an ellipsis.
func BuildTranscript(segments []*core.Segment) string {
	lines := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == nil || strings.TrimSpace(segment.Content) == "" {
			continue
		}
		speaker := segment.SpeakerID
		if speaker == "" {
			speaker = "Unknown"
		}
		lines = append(lines, fmt.Sprintf("Speaker %s: %s", speaker, segment.Content))
	}

	transcript := strings.Join(lines, "\n")
	if cut := core.Truncate(transcript, MaxTranscriptChars); cut != transcript {
		transcript = cut + core.Ellipsis
	}
	return transcript
}

// BuildPrompt assembles the generative summary request for a meeting.
func BuildPrompt(title string, segments []*core.Segment) string {
	return fmt.Sprintf(promptTemplate, title, BuildTranscript(segments))
}
