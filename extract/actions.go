package extract

import (
	"strings"

	"github.com/poiesic/minutes/core"
)

const (
	// MaxActionItems caps the action item list in transcript order.
	MaxActionItems = 15

	// MinActionCategories is the number of distinct action cue categories a
	// segment must hit. A single generic word such as "will" is not enough.
	MinActionCategories = 2
)

// ExtractActionItems turns segments with enough action cues into pending
// action items. A named assignee in the text takes precedence over the
// speaker; otherwise the item is attributed to whoever said it.
func ExtractActionItems(segments []*core.Segment) Result[core.ActionItem] {
	return guard(func() []core.ActionItem {
		var items []core.ActionItem
		for _, segment := range segments {
			if len(items) == MaxActionItems {
				break
			}
			if segment == nil || strings.TrimSpace(segment.Content) == "" {
				continue
			}
			content := segment.Content
			if len(ActionRules.Matched(content)) < MinActionCategories {
				continue
			}

			item := core.ActionItem{
				Title:          core.TitleFrom(content, content),
				Description:    content,
				AssignedToName: firstCapture(assigneePatterns, content),
				DueDate:        firstCapture(dueDatePatterns, content),
				Status:         core.ActionStatusPending,
				Priority:       core.ActionPriorityMedium,
			}
			if item.AssignedToName == "" {
				item.AssignedToSpeakerID = segment.SpeakerID
			}
			items = append(items, item)
		}
		return items
	})
}

// ActionItems is ExtractActionItems without the outcome.
func ActionItems(segments []*core.Segment) []core.ActionItem {
	return ExtractActionItems(segments).Items
}
