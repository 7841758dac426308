package zccore

import "encoding/json"

// envelope is the response wrapper the core API puts around every /data
// payload.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// requestBody is the wire body for write, update and delete calls.
type requestBody struct {
	PluginID       string         `json:"plugin_id"`
	OrganizationID string         `json:"organization_id"`
	CollectionName string         `json:"collection_name"`
	Payload        any            `json:"payload,omitempty"`
	Filter         map[string]any `json:"filter,omitempty"`
	ObjectID       string         `json:"object_id,omitempty"`
	Options        *ReadOptions   `json:"options,omitempty"`
}

// plugin is one entry of the marketplace listing.
type plugin struct {
	ID          string `json:"id"`
	TemplateURL string `json:"template_url"`
}

// A WriteResult reports the outcome of a Write.
type WriteResult struct {
	InsertCount int    `json:"insert_count"`
	ObjectID    string `json:"object_id"`
}

// An UpdateResult reports the outcome of an Update.
type UpdateResult struct {
	MatchedDocuments  int `json:"matched_documents"`
	ModifiedDocuments int `json:"modified_documents"`
}

// A DeleteResult reports the outcome of a Delete.
type DeleteResult struct {
	DeletedCount int `json:"deleted_count"`
}

// A ReadQuery selects documents to read: by filter, by object id, or
// both, with optional paging and sorting.
type ReadQuery struct {
	Filter   map[string]any
	ObjectID string
	Options  *ReadOptions
}

// ReadOptions control paging and sorting of a Read.
type ReadOptions struct {
	Limit int            `json:"limit,omitempty"`
	Skip  int            `json:"skip,omitempty"`
	Sort  map[string]int `json:"sort,omitempty"`
}
