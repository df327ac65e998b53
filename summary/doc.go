// Package summary writes the prose summary of a meeting.
//
// When an ai.Summarizer is configured the transcript (capped at 8000
// characters) is sent to the model with fixed instructions. Any failure,
// including timeouts enforced by the model client, falls back to a
// deterministic sentence built from participant and segment counts and
// previews of the opening and closing segments. If even that cannot be
// formatted the summary is a fixed generic sentence.
package summary
