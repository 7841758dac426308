package api

import "slices"

// FindEmoji returns the first emoji in emojis whose name matches name, or
// nil if no reaction with that name exists.
func FindEmoji(name string, emojis []Emoji) *Emoji {
	for i := range emojis {
		if emojis[i].Name == name {
			return &emojis[i]
		}
	}
	return nil
}

// GetMemberEmoji looks up the reaction named name, but only ever
// inspects the first entry of emojis.
func GetMemberEmoji(name string, emojis []Emoji) *Emoji {
	if len(emojis) == 0 {
		return nil
	}
	if emojis[0].Name == name {
		return &emojis[0]
	}
	return nil
}

// ToggleReaction applies one user's toggle intent for the named emoji. A
// name not yet on the message creates a fresh reaction for the user. An
// existing reaction gains or loses the user depending on whether they
// already reacted, and is removed from the message once its count hits
// zero.
func (m *Message) ToggleReaction(name, userID string) {
	e := FindEmoji(name, m.Emojis)
	if e == nil {
		m.Emojis = append(m.Emojis, Emoji{
			Name:           name,
			ReactedUsersID: []string{userID},
			Count:          1,
		})
		return
	}
	m.Emojis = toggleReaction(e, userID, m.Emojis)
}

func toggleReaction(e *Emoji, userID string, emojis []Emoji) []Emoji {
	if !slices.Contains(e.ReactedUsersID, userID) {
		addReaction(e, userID)
		return emojis
	}
	return removeReaction(e, userID, emojis)
}

// addReaction records userID on e. The caller guarantees the user has not
// already reacted.
func addReaction(e *Emoji, userID string) {
	e.ReactedUsersID = append(e.ReactedUsersID, userID)
	e.Count++
}

// removeReaction removes userID from e and returns the updated emoji
// list. The caller guarantees the user has reacted. A reaction left with
// no users is deleted from the list.
func removeReaction(e *Emoji, userID string, emojis []Emoji) []Emoji {
	i := slices.Index(e.ReactedUsersID, userID)
	e.ReactedUsersID = slices.Delete(e.ReactedUsersID, i, i+1)
	e.Count--
	if e.Count == 0 {
		for j := range emojis {
			if &emojis[j] == e {
				return slices.Delete(emojis, j, j+1)
			}
		}
	}
	return emojis
}
