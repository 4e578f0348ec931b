package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tabtidy/internal/config"
	"tabtidy/internal/tabs"
)

const defaultHTTPTimeout = 10 * time.Second

// Client talks to the browser bridge over HTTP and implements tabs.Bridge.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the bridge client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the bridge endpoint (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimRight(strings.TrimSpace(base), "/")
		if base != "" {
			c.baseURL = base
		}
	}
}

// NewClient constructs a bridge client from configuration.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	baseURL := ""
	if cfg != nil {
		baseURL = strings.TrimRight(strings.TrimSpace(cfg.Browser.BridgeURL), "/")
		if cfg.Browser.RequestTimeout > 0 {
			timeout = time.Duration(cfg.Browser.RequestTimeout) * time.Second
		}
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type statusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("bridge %s: http %d: %s", e.Op, e.StatusCode, strings.TrimSpace(e.Body))
}

type tabPayload struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	WindowID int64  `json:"windowId"`
	Index    int    `json:"index"`
	Pinned   bool   `json:"pinned"`
	Active   bool   `json:"active"`
}

type snapshotPayload struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	PageType    string `json:"pageType"`
	Text        string `json:"text"`
}

type eventPayload struct {
	TabID int64  `json:"tabId"`
	Kind  string `json:"kind"`
	At    int64  `json:"at"` // unix milliseconds
}

// List enumerates every open tab.
func (c *Client) List(ctx context.Context) ([]tabs.Tab, error) {
	var payload struct {
		Tabs []tabPayload `json:"tabs"`
	}
	if err := c.get(ctx, "/tabs", "list tabs", &payload); err != nil {
		return nil, err
	}
	result := make([]tabs.Tab, 0, len(payload.Tabs))
	for _, entry := range payload.Tabs {
		result = append(result, tabs.Tab{
			ID:       entry.ID,
			URL:      entry.URL,
			Title:    entry.Title,
			WindowID: entry.WindowID,
			Index:    entry.Index,
			Pinned:   entry.Pinned,
			Active:   entry.Active,
		})
	}
	return result, nil
}

// Close removes one tab by id.
func (c *Client) Close(ctx context.Context, id int64) error {
	body := map[string]any{"ids": []int64{id}}
	return c.post(ctx, "/tabs/close", "close tab", body, nil)
}

// Create opens a new tab.
func (c *Client) Create(ctx context.Context, req tabs.CreateRequest) (tabs.Tab, error) {
	body := map[string]any{
		"url":      req.URL,
		"windowId": req.WindowID,
		"active":   req.Active,
	}
	var payload struct {
		Tab tabPayload `json:"tab"`
	}
	if err := c.post(ctx, "/tabs/create", "create tab", body, &payload); err != nil {
		return tabs.Tab{}, err
	}
	return tabs.Tab{
		ID:       payload.Tab.ID,
		URL:      payload.Tab.URL,
		Title:    payload.Tab.Title,
		WindowID: payload.Tab.WindowID,
		Index:    payload.Tab.Index,
		Pinned:   payload.Tab.Pinned,
		Active:   payload.Tab.Active,
	}, nil
}

// Move places a tab at an index inside a window.
func (c *Client) Move(ctx context.Context, id, windowID int64, index int) error {
	body := map[string]any{"id": id, "windowId": windowID, "index": index}
	return c.post(ctx, "/tabs/move", "move tab", body, nil)
}

// Pin pins a tab.
func (c *Client) Pin(ctx context.Context, id int64) error {
	body := map[string]any{"id": id}
	return c.post(ctx, "/tabs/pin", "pin tab", body, nil)
}

// Group creates one labeled, colored group over the given ids.
func (c *Client) Group(ctx context.Context, name string, color tabs.GroupColor, ids []int64) (int64, error) {
	body := map[string]any{"name": name, "color": string(color), "ids": ids}
	var payload struct {
		GroupID int64 `json:"groupId"`
	}
	if err := c.post(ctx, "/tabs/group", "group tabs", body, &payload); err != nil {
		return 0, err
	}
	return payload.GroupID, nil
}

// Ungroup removes the given ids from their groups.
func (c *Client) Ungroup(ctx context.Context, ids []int64) error {
	body := map[string]any{"ids": ids}
	return c.post(ctx, "/tabs/ungroup", "ungroup tabs", body, nil)
}

// Snapshot fetches the extracted content snapshot for one tab.
func (c *Client) Snapshot(ctx context.Context, id int64) (tabs.ContentSnapshot, error) {
	var payload snapshotPayload
	if err := c.get(ctx, fmt.Sprintf("/snapshot/%d", id), "fetch snapshot", &payload); err != nil {
		return tabs.ContentSnapshot{}, err
	}
	return tabs.ContentSnapshot{
		Headline:    payload.Headline,
		Description: payload.Description,
		PageType:    payload.PageType,
		Text:        payload.Text,
		CapturedAt:  time.Now().UTC(),
	}, nil
}

// Events returns tab lifecycle events at or after since.
func (c *Client) Events(ctx context.Context, since time.Time) ([]tabs.Event, error) {
	var payload struct {
		Events []eventPayload `json:"events"`
	}
	path := fmt.Sprintf("/tabs/events?since=%d", since.UnixMilli())
	if err := c.get(ctx, path, "list events", &payload); err != nil {
		return nil, err
	}
	result := make([]tabs.Event, 0, len(payload.Events))
	for _, entry := range payload.Events {
		kind := tabs.EventUpdated
		if entry.Kind == string(tabs.EventCreated) {
			kind = tabs.EventCreated
		}
		result = append(result, tabs.Event{
			TabID: entry.TabID,
			Kind:  kind,
			At:    time.UnixMilli(entry.At).UTC(),
		})
	}
	return result, nil
}

// Ping verifies the bridge is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.List(ctx)
	return err
}

func (c *Client) get(ctx context.Context, path, op string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("bridge %s: new request: %w", op, err)
	}
	return c.do(req, op, target)
}

func (c *Client) post(ctx context.Context, path, op string, body, target any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("bridge %s: encode body: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("bridge %s: new request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, op, target)
}

func (c *Client) do(req *http.Request, op string, target any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bridge %s: %w", op, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("bridge %s: read body: %w", op, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return &statusError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("bridge %s: decode response: %w", op, err)
	}
	return nil
}
