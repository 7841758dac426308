package zccore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zurichat/zc-messaging/api"
)

const messageCollection = "messages"

// ListMessages returns the messages of an organization. A non-empty
// roomID restricts the result to one room.
func (c *Client) ListMessages(ctx context.Context, orgID, roomID string) ([]api.Message, error) {
	filter := map[string]any{}
	if roomID != "" {
		filter["room_id"] = roomID
	}
	var msgs []api.Message
	if err := c.Read(ctx, orgID, messageCollection, ReadQuery{Filter: filter}, &msgs); err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []api.Message{}
	}
	return msgs, nil
}

// GetMessage returns one message of a room.
func (c *Client) GetMessage(ctx context.Context, orgID, roomID, messageID string) (api.Message, error) {
	q := ReadQuery{Filter: map[string]any{
		"room_id": roomID,
		"_id":     messageID,
	}}
	var msgs []api.Message
	if err := c.Read(ctx, orgID, messageCollection, q, &msgs); err != nil {
		return api.Message{}, err
	}
	if len(msgs) == 0 {
		return api.Message{}, api.ErrMessageNotFound
	}
	return msgs[0], nil
}

// InsertMessage writes a new message. The returned message carries the
// object id assigned by the core service.
func (c *Client) InsertMessage(ctx context.Context, orgID string, msg api.Message) (api.Message, error) {
	payload := struct {
		RoomID    string      `json:"room_id"`
		SenderID  string      `json:"sender_id"`
		Text      string      `json:"text"`
		Emojis    []api.Emoji `json:"emojis"`
		CreatedAt time.Time   `json:"created_at"`
	}{
		RoomID:    msg.RoomID,
		SenderID:  msg.SenderID,
		Text:      msg.Text,
		Emojis:    msg.Emojis,
		CreatedAt: msg.CreatedAt,
	}
	if payload.Emojis == nil {
		payload.Emojis = []api.Emoji{}
	}

	res, err := c.Write(ctx, orgID, messageCollection, payload)
	if err != nil {
		return api.Message{}, fmt.Errorf("insert message: %w", err)
	}
	msg.ID = res.ObjectID
	return msg, nil
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(ctx context.Context, orgID, messageID string) error {
	res, err := c.Delete(ctx, orgID, messageCollection, messageID)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if res.DeletedCount == 0 {
		return api.ErrMessageNotFound
	}
	return nil
}

// UpdateReactions persists the emoji list of a message. Only the emojis
// field is written; concurrent toggles are last-write-wins.
func (c *Client) UpdateReactions(ctx context.Context, orgID string, msg api.Message) error {
	data := map[string]any{"emojis": msg.Emojis}
	if _, err := c.Update(ctx, orgID, messageCollection, msg.ID, data); err != nil {
		return fmt.Errorf("update reactions: %w", err)
	}
	return nil
}

// ListMembers returns the registered members of an organization.
func (c *Client) ListMembers(ctx context.Context, orgID string) ([]api.Member, error) {
	b, err := c.call(ctx, http.MethodGet, c.baseURL+"/organizations/"+orgID+"/members/", nil)
	if err != nil {
		return nil, err
	}
	var res struct {
		Data []api.Member `json:"data"`
	}
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	if res.Data == nil {
		res.Data = []api.Member{}
	}
	return res.Data, nil
}
