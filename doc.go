// Package minutes turns meeting transcripts into structured notes.
//
// A Service stores transcript segments in Badger, runs the notes pipeline
// over a meeting on demand or in the background, and caches the resulting
// artifact (summary, themes, important notes, decisions and action items)
// for a limited time.
package minutes
