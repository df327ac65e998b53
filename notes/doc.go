// Package notes turns a meeting's stored transcript into a notes artifact.
//
// A Pipeline reads every segment for a meeting, runs the important-note,
// decision and action-item extractors, the theme clusterer and the
// summarizer concurrently, and writes the assembled artifact to the
// artifact cache with a time-to-live. Each run fully replaces the previous
// artifact for the meeting.
//
// Process runs synchronously and returns the artifact. StartProcessing
// hands the same work to a worker pool and returns immediately; errors from
// background runs are logged and counted but never surfaced to the caller.
// Runs for one meeting never overlap, and every run reads the transcript
// as it stands when the run starts. Background triggers that arrive while a
// run for the meeting is pending collapse into a single trailing run.
package notes
