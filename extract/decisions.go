package extract

import (
	"strings"

	"github.com/poiesic/minutes/core"
)

// MaxDecisions caps the decision list after deduplication.
const MaxDecisions = 10

// ExtractDecisions finds sentences containing decision cues. Each cue
// occurrence yields the first period-delimited unit of its segment that
// contains it; duplicates by title are dropped, first one wins.
func ExtractDecisions(segments []*core.Segment) Result[core.Decision] {
	return guard(func() []core.Decision {
		var decisions []core.Decision
		seen := make(map[string]struct{})

		for _, segment := range segments {
			if segment == nil || strings.TrimSpace(segment.Content) == "" {
				continue
			}
			units := strings.Split(segment.Content, ".")

			for _, rule := range DecisionRules {
				for _, match := range rule.Pattern.FindAllString(segment.Content, -1) {
					unit, ok := unitContaining(units, strings.ToLower(match))
					if !ok {
						continue
					}
					description := strings.TrimSpace(unit)
					title := core.TitleFrom(description, unit)
					if _, dup := seen[title]; dup {
						continue
					}
					seen[title] = struct{}{}
					decisions = append(decisions, core.Decision{
						Title:       title,
						Description: description,
						Timestamp:   segment.Timestamp,
						DecidedBy:   segment.SpeakerID,
					})
				}
			}
		}

		if len(decisions) > MaxDecisions {
			decisions = decisions[:MaxDecisions]
		}
		return decisions
	})
}

// unitContaining returns the first unit containing needle, ignoring case.
func unitContaining(units []string, needle string) (string, bool) {
	for _, unit := range units {
		if strings.Contains(strings.ToLower(unit), needle) {
			return unit, true
		}
	}
	return "", false
}

// Decisions is ExtractDecisions without the outcome.
func Decisions(segments []*core.Segment) []core.Decision {
	return ExtractDecisions(segments).Items
}
