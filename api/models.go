package api

import "time"

// A Message represents a message stored in the messages collection. The
// remote data service assigns the ID on insert.
type Message struct {
	ID        string    `json:"_id"`
	RoomID    string    `json:"room_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Emojis    []Emoji   `json:"emojis"`
	CreatedAt time.Time `json:"created_at"`
}

// An Emoji is one distinct reaction on a message: the emoji name, the
// users who applied it and how many of them there are. Count always
// equals len(ReactedUsersID).
type Emoji struct {
	Name           string   `json:"name"`
	ReactedUsersID []string `json:"reactedUsersId"`
	Count          int      `json:"count"`
}

// A Member is a registered member of an organization.
type Member struct {
	ID       string `json:"_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

// GetMember returns the member with the given id from members.
func GetMember(id string, members []Member) (Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}
