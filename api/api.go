package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")

// A Store provides a storage layer that persists messages. Implementations
// proxy every call to the remote data service; nothing is stored locally.
type Store interface {
	ListMessages(ctx context.Context, orgID, roomID string) ([]Message, error)
	GetMessage(ctx context.Context, orgID, roomID, messageID string) (Message, error)
	InsertMessage(ctx context.Context, orgID string, msg Message) (Message, error)
	DeleteMessage(ctx context.Context, orgID, messageID string) error
	UpdateReactions(ctx context.Context, orgID string, msg Message) error
}

// A Directory lists the registered members of an organization.
type Directory interface {
	ListMembers(ctx context.Context, orgID string) ([]Member, error)
}

// A Validator checks the fields of a request body struct.
type Validator interface {
	Struct(s any) error
}

// API provides the REST endpoints for the plugin.
type API struct {
	Logger    *slog.Logger
	Store     Store
	Directory Directory
	Validate  Validator

	once sync.Once
	mux  *http.ServeMux
}

func (a *API) setupRoutes() {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /org/{orgID}/messages", a.listOrgMessages)
	mux.HandleFunc("GET /org/{orgID}/rooms/{roomID}/messages", a.listRoomMessages)
	mux.HandleFunc("POST /org/{orgID}/rooms/{roomID}/messages", a.createMessage)
	mux.HandleFunc("GET /org/{orgID}/rooms/{roomID}/messages/{messageID}", a.getMessage)
	mux.HandleFunc("DELETE /org/{orgID}/rooms/{roomID}/messages/{messageID}", a.deleteMessage)
	mux.HandleFunc("PUT /org/{orgID}/rooms/{roomID}/messages/{messageID}/reactions", a.toggleReaction)
	mux.HandleFunc("GET /org/{orgID}/rooms/{roomID}/messages/{messageID}/reactions/{name}", a.getReaction)
	mux.HandleFunc("GET /org/{orgID}/members", a.listMembers)
	mux.HandleFunc("GET /org/{orgID}/members/{memberID}", a.getMember)

	a.mux = mux
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.once.Do(a.setupRoutes)
	a.Logger.Info("Request received", "method", r.Method, "path", r.URL.Path)
	a.mux.ServeHTTP(w, r)
}

func (a *API) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.Logger.Error("Could not encode JSON body", "error", err.Error())
	}
}

func (a *API) respondError(w http.ResponseWriter, status int, err error, msg string) {
	type response struct {
		Error string `json:"error"`
	}
	a.Logger.Error("Error", "error", err.Error())
	a.respond(w, status, response{Error: msg})
}

type emoji struct {
	Name           string   `json:"name"`
	ReactedUsersID []string `json:"reactedUsersId"`
	Count          int      `json:"count"`
}

type message struct {
	ID        string  `json:"id"`
	RoomID    string  `json:"room_id"`
	SenderID  string  `json:"sender_id"`
	Text      string  `json:"text"`
	Emojis    []emoji `json:"emojis"`
	CreatedAt string  `json:"created_at"`
}

func toEmojis(in []Emoji) []emoji {
	out := make([]emoji, len(in))
	for i, e := range in {
		out[i] = emoji{
			Name:           e.Name,
			ReactedUsersID: e.ReactedUsersID,
			Count:          e.Count,
		}
	}
	return out
}

func toMessage(msg Message) message {
	return message{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		SenderID:  msg.SenderID,
		Text:      msg.Text,
		Emojis:    toEmojis(msg.Emojis),
		CreatedAt: msg.CreatedAt.Format(time.RFC1123),
	}
}

func (a *API) listOrgMessages(w http.ResponseWriter, r *http.Request) {
	a.listMessages(w, r, r.PathValue("orgID"), "")
}

func (a *API) listRoomMessages(w http.ResponseWriter, r *http.Request) {
	a.listMessages(w, r, r.PathValue("orgID"), r.PathValue("roomID"))
}

func (a *API) listMessages(w http.ResponseWriter, r *http.Request, orgID, roomID string) {
	type response struct {
		Messages []message `json:"messages"`
	}

	msgs, err := a.Store.ListMessages(r.Context(), orgID, roomID)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not list messages")
		return
	}
	a.Logger.Info("Got messages from store", "count", len(msgs))

	out := make([]message, len(msgs))
	for i, msg := range msgs {
		out[i] = toMessage(msg)
	}
	a.respond(w, http.StatusOK, response{Messages: out})
}

func (a *API) createMessage(w http.ResponseWriter, r *http.Request) {
	type request struct {
		SenderID string `json:"sender_id" validate:"required"`
		Text     string `json:"text" validate:"required"`
	}

	var body request
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err, "Could not decode request body")
		return
	}
	r.Body.Close()

	if err := a.Validate.Struct(body); err != nil {
		a.respondError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	msg, err := a.Store.InsertMessage(r.Context(), r.PathValue("orgID"), Message{
		RoomID:    r.PathValue("roomID"),
		SenderID:  body.SenderID,
		Text:      body.Text,
		Emojis:    []Emoji{},
		CreatedAt: time.Now(),
	})
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not insert message")
		return
	}

	a.respond(w, http.StatusCreated, toMessage(msg))
}

func (a *API) getMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := a.Store.GetMessage(r.Context(), r.PathValue("orgID"), r.PathValue("roomID"), r.PathValue("messageID"))
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			a.respondError(w, http.StatusNotFound, err, "Message not found")
			return
		}
		a.respondError(w, http.StatusInternalServerError, err, "Could not get message")
		return
	}
	a.respond(w, http.StatusOK, toMessage(msg))
}

func (a *API) deleteMessage(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}

	err := a.Store.DeleteMessage(r.Context(), r.PathValue("orgID"), r.PathValue("messageID"))
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			a.respondError(w, http.StatusNotFound, err, "Message not found")
			return
		}
		a.respondError(w, http.StatusInternalServerError, err, "Could not delete message")
		return
	}
	a.respond(w, http.StatusOK, response{Status: "deleted"})
}

func (a *API) toggleReaction(w http.ResponseWriter, r *http.Request) {
	type (
		request struct {
			Name   string `json:"name" validate:"required"`    // emoji name
			UserID string `json:"user_id" validate:"required"` // the user toggling the reaction
		}
		response struct {
			MessageID string  `json:"message_id"`
			Emojis    []emoji `json:"emojis"`
		}
	)

	var body request
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err, "Could not decode request body")
		return
	}
	r.Body.Close()

	if err := a.Validate.Struct(body); err != nil {
		a.respondError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	orgID := r.PathValue("orgID")
	msg, err := a.Store.GetMessage(r.Context(), orgID, r.PathValue("roomID"), r.PathValue("messageID"))
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			a.respondError(w, http.StatusNotFound, err, "Message not found")
			return
		}
		a.respondError(w, http.StatusInternalServerError, err, "Could not get message")
		return
	}

	msg.ToggleReaction(body.Name, body.UserID)

	if err := a.Store.UpdateReactions(r.Context(), orgID, msg); err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not update reactions")
		return
	}

	a.respond(w, http.StatusOK, response{
		MessageID: msg.ID,
		Emojis:    toEmojis(msg.Emojis),
	})
}

func (a *API) getReaction(w http.ResponseWriter, r *http.Request) {
	msg, err := a.Store.GetMessage(r.Context(), r.PathValue("orgID"), r.PathValue("roomID"), r.PathValue("messageID"))
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			a.respondError(w, http.StatusNotFound, err, "Message not found")
			return
		}
		a.respondError(w, http.StatusInternalServerError, err, "Could not get message")
		return
	}

	e := GetMemberEmoji(r.PathValue("name"), msg.Emojis)
	if e == nil {
		a.respondError(w, http.StatusNotFound, errors.New("reaction not found"), "Reaction not found")
		return
	}
	a.respond(w, http.StatusOK, emoji{
		Name:           e.Name,
		ReactedUsersID: e.ReactedUsersID,
		Count:          e.Count,
	})
}

type member struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Members []member `json:"members"`
	}

	members, err := a.Directory.ListMembers(r.Context(), r.PathValue("orgID"))
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not list members")
		return
	}

	out := make([]member, len(members))
	for i, m := range members {
		out[i] = member{ID: m.ID, UserName: m.UserName, Email: m.Email}
	}
	a.respond(w, http.StatusOK, response{Members: out})
}

func (a *API) getMember(w http.ResponseWriter, r *http.Request) {
	members, err := a.Directory.ListMembers(r.Context(), r.PathValue("orgID"))
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not list members")
		return
	}

	m, ok := GetMember(r.PathValue("memberID"), members)
	if !ok {
		a.respondError(w, http.StatusNotFound, errors.New("member not found"), "Member not found")
		return
	}
	a.respond(w, http.StatusOK, member{ID: m.ID, UserName: m.UserName, Email: m.Email})
}
