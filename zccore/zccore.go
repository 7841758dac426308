// Package zccore is the HTTP client for the core data API. The plugin has
// no database of its own: every read and write is proxied to the /data
// endpoints of the core service, scoped by the plugin id and an
// organization id.
package zccore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrPluginNotFound is returned by Dial when no marketplace plugin
// matches the configured plugin key.
var ErrPluginNotFound = errors.New("no marketplace plugin matches the plugin key")

// A StatusError is returned when the core API answers with a non-2xx
// status. The status code and response body are carried as-is.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("zc_core responded with status %d: %s", e.StatusCode, e.Message)
}

// Config holds the connection settings for a Client.
type Config struct {
	// BaseURL is the root URL of the core API.
	BaseURL string

	// PluginKey is the fragment matched against the template URLs in the
	// marketplace listing to find this plugin's id.
	PluginKey string

	// HTTPClient is the client used for all requests. Defaults to a
	// client with a 30 second timeout.
	HTTPClient *http.Client

	// Logger logs failed calls. Defaults to slog.Default.
	Logger *slog.Logger
}

// Client performs CRUD operations against the core data API on behalf of
// the plugin. Use Dial to construct one.
type Client struct {
	baseURL  string
	pluginID string
	http     *http.Client
	logger   *slog.Logger
}

// Dial resolves the plugin id from the marketplace listing and returns a
// ready-to-use client. Construction fails if the listing cannot be
// fetched or no plugin matches the plugin key; no other operation can
// proceed without a resolved plugin id.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
	id, err := c.resolvePluginID(ctx, cfg.PluginKey)
	if err != nil {
		return nil, fmt.Errorf("resolve plugin id: %w", err)
	}
	c.pluginID = id
	return c, nil
}

func (c *Client) resolvePluginID(ctx context.Context, pluginKey string) (string, error) {
	type response struct {
		Data struct {
			Plugins []plugin `json:"plugins"`
		} `json:"data"`
	}

	body, err := c.call(ctx, http.MethodGet, c.baseURL+"/marketplace/plugins", nil)
	if err != nil {
		return "", err
	}
	var res response
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("decode marketplace listing: %w", err)
	}
	for _, p := range res.Data.Plugins {
		if strings.Contains(p.TemplateURL, pluginKey) {
			return p.ID, nil
		}
	}
	return "", ErrPluginNotFound
}

// call performs one request and returns the raw response body. A
// transport failure is logged and returned as a wrapped error; a non-2xx
// response becomes a *StatusError.
func (c *Client) call(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Could not reach zc_core", "method", method, "url", url, "request_id", reqID, "error", err.Error())
		return nil, fmt.Errorf("call zc_core: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(b)),
		}
	}
	return b, nil
}

// data performs one /data request and returns the envelope's data field.
func (c *Client) data(ctx context.Context, method, url string, body requestBody) (json.RawMessage, error) {
	b, err := c.call(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return env.Data, nil
}

// Write inserts data into a collection and reports the object id the
// core service assigned.
func (c *Client) Write(ctx context.Context, orgID, collection string, data any) (*WriteResult, error) {
	raw, err := c.data(ctx, http.MethodPost, c.baseURL+"/data/write", requestBody{
		PluginID:       c.pluginID,
		OrganizationID: orgID,
		CollectionName: collection,
		Payload:        data,
	})
	if err != nil {
		return nil, err
	}
	var res WriteResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode write result: %w", err)
	}
	return &res, nil
}

// Update replaces fields of the document id with data.
func (c *Client) Update(ctx context.Context, orgID, collection, id string, data any) (*UpdateResult, error) {
	raw, err := c.data(ctx, http.MethodPut, c.baseURL+"/data/write", requestBody{
		PluginID:       c.pluginID,
		OrganizationID: orgID,
		CollectionName: collection,
		ObjectID:       id,
		Payload:        data,
	})
	if err != nil {
		return nil, err
	}
	var res UpdateResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode update result: %w", err)
	}
	return &res, nil
}

// Read queries a collection and decodes the matching documents into
// dest. A query that matches nothing leaves dest untouched.
func (c *Client) Read(ctx context.Context, orgID, collection string, q ReadQuery, dest any) error {
	raw, err := c.data(ctx, http.MethodPost, c.baseURL+"/data/read", requestBody{
		PluginID:       c.pluginID,
		OrganizationID: orgID,
		CollectionName: collection,
		Filter:         q.Filter,
		ObjectID:       q.ObjectID,
		Options:        q.Options,
	})
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode read result: %w", err)
	}
	return nil
}

// Delete removes the document id from a collection.
func (c *Client) Delete(ctx context.Context, orgID, collection, id string) (*DeleteResult, error) {
	raw, err := c.data(ctx, http.MethodPost, c.baseURL+"/data/delete", requestBody{
		PluginID:       c.pluginID,
		OrganizationID: orgID,
		CollectionName: collection,
		ObjectID:       id,
	})
	if err != nil {
		return nil, err
	}
	var res DeleteResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode delete result: %w", err)
	}
	return &res, nil
}
