// Package extract pulls important notes, decisions, and action items out of
// a meeting transcript with lexical heuristics.
//
// Each extractor is a pure function over the full segment sequence and
// returns a Result that separates "nothing matched" from "the stage failed".
// Failures, including panics, never propagate; they yield an empty Result
// with Outcome core.StageFailed.
//
// The cues live in RuleSet tables (ImportanceRules, DecisionRules,
// ActionRules) so each category can be inspected and tested on its own.
//
// Ordering differs by extractor and is observable:
//
//   - important notes are sorted by score, then capped at 10
//   - decisions are deduplicated by title, then capped at 10
//   - action items are capped at 15 in transcript order, never re-sorted
package extract
