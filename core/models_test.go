package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "meeting-42",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "meeting id with separators",
			content:  "team:weekly:2025-03-05",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("a")
	id2 := IDFromContent("a:b")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestActionItem_Assignee(t *testing.T) {
	tests := []struct {
		name string
		item ActionItem
		want string
	}{
		{
			name: "named assignee",
			item: ActionItem{AssignedToName: "John"},
			want: "John",
		},
		{
			name: "speaker fallback",
			item: ActionItem{AssignedToSpeakerID: "spk-2"},
			want: "spk-2",
		},
		{
			name: "unknown owner",
			item: ActionItem{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.item.Assignee()
			if got != tt.want {
				t.Errorf("ActionItem.Assignee() = %v, want %v", got, tt.want)
			}
		})
	}
}
