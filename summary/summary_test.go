package summary

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/minutes/ai/mock"
	"github.com/poiesic/minutes/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segs(pairs ...string) []*core.Segment {
	var out []*core.Segment
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, &core.Segment{MeetingID: "m1", SpeakerID: pairs[i], Content: pairs[i+1]})
	}
	return out
}

func TestFallback(t *testing.T) {
	t.Run("no segments", func(t *testing.T) {
		assert.Equal(t, "Meeting 'Weekly' was held but no transcript content is available.", Fallback("Weekly", nil))
	})

	t.Run("three or fewer segments has no closing part", func(t *testing.T) {
		got := Fallback("Weekly", segs("A", "Hello all", "B", "Hi", "A", "Let's start"))
		assert.Equal(t,
			"Meeting 'Weekly' included 2 participants with 3 discussion segments. "+
				"The meeting began with discussions about: Hello all... Hi...",
			got)
	})

	t.Run("opening and closing previews", func(t *testing.T) {
		long := strings.Repeat("x", 80)
		got := Fallback("Weekly", segs("A", long, "B", "two", "", "three", "C", "four", "A", "five", "B", "six"))
		assert.Equal(t,
			"Meeting 'Weekly' included 3 participants with 6 discussion segments. "+
				"The meeting began with discussions about: "+strings.Repeat("x", 50)+"... two... "+
				"The meeting concluded with: four... five...",
			got)
	})

	t.Run("formatting failure degrades to generic", func(t *testing.T) {
		got := Fallback("Weekly", []*core.Segment{nil})
		assert.Equal(t, "Meeting 'Weekly' was completed.", got)
	})
}

func TestBuildTranscript(t *testing.T) {
	got := BuildTranscript(segs("A", "Hello", "", "Anyone?", "B", "   "))
	assert.Equal(t, "Speaker A: Hello\nSpeaker Unknown: Anyone?", got)

	long := segs("A", strings.Repeat("y", MaxTranscriptChars))
	got = BuildTranscript(long)
	assert.Equal(t, MaxTranscriptChars+len(core.Ellipsis), len(got))
	assert.True(t, strings.HasPrefix(got, "Speaker A: "))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Meeting m1", segs("A", "We decided to launch next week."))
	assert.Contains(t, prompt, `titled "Meeting m1"`)
	assert.Contains(t, prompt, "Speaker A: We decided to launch next week.")
	assert.Contains(t, prompt, "2-3 paragraphs")
}

func TestSummarizer_Summarize(t *testing.T) {
	ctx := context.Background()
	transcript := segs("A", "We decided to launch next week.", "B", "John will follow up.")

	t.Run("generative path", func(t *testing.T) {
		gen := mock.NewMockSummarizer().WithSummarizeFunc(func(ctx context.Context, prompt string) (string, error) {
			return "  The team agreed to launch.  ", nil
		})
		s := New(gen)

		text, report := s.Summarize(ctx, "Meeting m1", transcript)
		assert.Equal(t, "The team agreed to launch.", text)
		assert.Equal(t, core.StageOK, report.Outcome)
		assert.Contains(t, gen.LastPrompt(), "Speaker B: John will follow up.")
	})

	t.Run("no generator", func(t *testing.T) {
		text, report := New(nil).Summarize(ctx, "Meeting m1", transcript)
		assert.Equal(t, Fallback("Meeting m1", transcript), text)
		assert.Equal(t, core.StageFallback, report.Outcome)
	})

	t.Run("generator error falls back", func(t *testing.T) {
		gen := mock.NewMockSummarizer().WithSummarizeFunc(func(ctx context.Context, prompt string) (string, error) {
			return "", context.DeadlineExceeded
		})
		text, report := New(gen).Summarize(ctx, "Meeting m1", transcript)
		assert.Equal(t, Fallback("Meeting m1", transcript), text)
		assert.Equal(t, core.StageFallback, report.Outcome)
		assert.Contains(t, report.Reason, "deadline")
	})

	t.Run("blank output falls back", func(t *testing.T) {
		gen := mock.NewMockSummarizer().WithSummarizeFunc(func(ctx context.Context, prompt string) (string, error) {
			return "\n", nil
		})
		_, report := New(gen).Summarize(ctx, "Meeting m1", transcript)
		assert.Equal(t, core.StageFallback, report.Outcome)
		assert.Equal(t, ErrEmptySummary.Error(), report.Reason)
	})

	t.Run("generator panic falls back", func(t *testing.T) {
		gen := mock.NewMockSummarizer().WithSummarizeFunc(func(ctx context.Context, prompt string) (string, error) {
			panic("boom")
		})
		text, report := New(gen).Summarize(ctx, "Meeting m1", transcript)
		require.NotEmpty(t, text)
		assert.Equal(t, core.StageFallback, report.Outcome)
	})

	t.Run("no segments skips generator", func(t *testing.T) {
		gen := mock.NewMockSummarizer()
		text, _ := New(gen).Summarize(ctx, "Meeting m1", nil)
		assert.Equal(t, "Meeting 'Meeting m1' was held but no transcript content is available.", text)
		assert.Zero(t, gen.CallCount())
	})
}
