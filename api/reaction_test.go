package api

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMessage_ToggleReaction(t *testing.T) {
	tests := []struct {
		name   string
		emojis []Emoji
		emoji  string
		userID string
		want   []Emoji
	}{
		{
			name:   "NewEmoji",
			emojis: []Emoji{},
			emoji:  "👍",
			userID: "u1",
			want: []Emoji{
				{Name: "👍", ReactedUsersID: []string{"u1"}, Count: 1},
			},
		},
		{
			name: "SecondUser",
			emojis: []Emoji{
				{Name: "👍", ReactedUsersID: []string{"u1"}, Count: 1},
			},
			emoji:  "👍",
			userID: "u2",
			want: []Emoji{
				{Name: "👍", ReactedUsersID: []string{"u1", "u2"}, Count: 2},
			},
		},
		{
			name: "RemoveOneOfTwo",
			emojis: []Emoji{
				{Name: "👍", ReactedUsersID: []string{"u1", "u2"}, Count: 2},
			},
			emoji:  "👍",
			userID: "u1",
			want: []Emoji{
				{Name: "👍", ReactedUsersID: []string{"u2"}, Count: 1},
			},
		},
		{
			name: "RemoveLastUser",
			emojis: []Emoji{
				{Name: "👍", ReactedUsersID: []string{"u1"}, Count: 1},
			},
			emoji:  "👍",
			userID: "u1",
			want:   []Emoji{},
		},
		{
			name: "RemoveKeepsOtherEmojis",
			emojis: []Emoji{
				{Name: "🎉", ReactedUsersID: []string{"u2"}, Count: 1},
				{Name: "👍", ReactedUsersID: []string{"u1"}, Count: 1},
			},
			emoji:  "👍",
			userID: "u1",
			want: []Emoji{
				{Name: "🎉", ReactedUsersID: []string{"u2"}, Count: 1},
			},
		},
		{
			name: "NewEmojiAppendsToList",
			emojis: []Emoji{
				{Name: "🎉", ReactedUsersID: []string{"u2"}, Count: 1},
			},
			emoji:  "👍",
			userID: "u1",
			want: []Emoji{
				{Name: "🎉", ReactedUsersID: []string{"u2"}, Count: 1},
				{Name: "👍", ReactedUsersID: []string{"u1"}, Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Message{ID: "m1", Emojis: tt.emojis}
			msg.ToggleReaction(tt.emoji, tt.userID)
			if diff := cmp.Diff(tt.want, msg.Emojis); diff != "" {
				t.Errorf("Emojis mismatch (-want +got):\n%s", diff)
			}
			for _, e := range msg.Emojis {
				if e.Count != len(e.ReactedUsersID) {
					t.Errorf("Emoji %q has count %d for %d users", e.Name, e.Count, len(e.ReactedUsersID))
				}
			}
		})
	}
}

// Toggling twice with the same user must return the list to its prior
// state, whether the first toggle created the reaction or joined an
// existing one.
func TestMessage_ToggleReaction_Twice(t *testing.T) {
	tests := []struct {
		name   string
		emojis []Emoji
		want   []Emoji
	}{
		{
			name:   "FreshMessage",
			emojis: []Emoji{},
			want:   []Emoji{},
		},
		{
			name: "ExistingReactionByOtherUser",
			emojis: []Emoji{
				{Name: "👍", ReactedUsersID: []string{"u2"}, Count: 1},
			},
			want: []Emoji{
				{Name: "👍", ReactedUsersID: []string{"u2"}, Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Message{ID: "m1", Emojis: tt.emojis}
			msg.ToggleReaction("👍", "u1")
			msg.ToggleReaction("👍", "u1")
			if diff := cmp.Diff(tt.want, msg.Emojis); diff != "" {
				t.Errorf("Emojis mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindEmoji(t *testing.T) {
	emojis := []Emoji{
		{Name: "👍", ReactedUsersID: []string{"u1"}, Count: 1},
		{Name: "🎉", ReactedUsersID: []string{"u2"}, Count: 1},
	}

	tests := []struct {
		name   string
		emoji  string
		emojis []Emoji
		want   *Emoji
	}{
		{
			name:   "EmptyList",
			emoji:  "👍",
			emojis: nil,
			want:   nil,
		},
		{
			name:   "NoMatch",
			emoji:  "😄",
			emojis: emojis,
			want:   nil,
		},
		{
			name:   "First",
			emoji:  "👍",
			emojis: emojis,
			want:   &emojis[0],
		},
		{
			name:   "Second",
			emoji:  "🎉",
			emojis: emojis,
			want:   &emojis[1],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindEmoji(tt.emoji, tt.emojis); got != tt.want {
				t.Errorf("FindEmoji(%q) = %v, want %v", tt.emoji, got, tt.want)
			}
		})
	}
}

func TestGetMemberEmoji(t *testing.T) {
	emojis := []Emoji{
		{Name: "👍", ReactedUsersID: []string{"u1"}, Count: 1},
		{Name: "🎉", ReactedUsersID: []string{"u2"}, Count: 1},
	}

	tests := []struct {
		name   string
		emoji  string
		emojis []Emoji
		want   *Emoji
	}{
		{
			name:   "EmptyList",
			emoji:  "👍",
			emojis: nil,
			want:   nil,
		},
		{
			name:   "First",
			emoji:  "👍",
			emojis: emojis,
			want:   &emojis[0],
		},
		{
			// Only the first entry is ever inspected.
			name:   "SecondIsNotFound",
			emoji:  "🎉",
			emojis: emojis,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetMemberEmoji(tt.emoji, tt.emojis); got != tt.want {
				t.Errorf("GetMemberEmoji(%q) = %v, want %v", tt.emoji, got, tt.want)
			}
		})
	}
}
