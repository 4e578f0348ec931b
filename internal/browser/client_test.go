package browser_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tabtidy/internal/browser"
	"tabtidy/internal/config"
	"tabtidy/internal/tabs"
)

func newTestClient(t *testing.T, handler http.Handler) *browser.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := config.Default()
	cfg.Browser.BridgeURL = server.URL
	return browser.NewClient(&cfg, browser.WithHTTPClient(server.Client()))
}

func TestListDecodesTabs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/tabs" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"tabs":[{"id":7,"url":"https://example.com","title":"Example","windowId":2,"index":3,"pinned":true,"active":false}]}`))
	}))

	listed, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one tab, got %d", len(listed))
	}
	tab := listed[0]
	if tab.ID != 7 || tab.WindowID != 2 || tab.Index != 3 || !tab.Pinned {
		t.Fatalf("unexpected tab: %+v", tab)
	}
}

func TestClosePostsIDs(t *testing.T) {
	var got struct {
		IDs []int64 `json:"ids"`
	}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tabs/close" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.Close(context.Background(), 42); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(got.IDs) != 1 || got.IDs[0] != 42 {
		t.Fatalf("unexpected payload ids: %v", got.IDs)
	}
}

func TestGroupReturnsGroupID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name  string  `json:"name"`
			Color string  `json:"color"`
			IDs   []int64 `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Name != "Research" || body.Color != "blue" || len(body.IDs) != 2 {
			t.Fatalf("unexpected payload: %+v", body)
		}
		_, _ = w.Write([]byte(`{"groupId":99}`))
	}))

	groupID, err := client.Group(context.Background(), "Research", tabs.ColorBlue, []int64{1, 2})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if groupID != 99 {
		t.Fatalf("expected group id 99, got %d", groupID)
	}
}

func TestStatusErrorIncludesBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bridge exploded", http.StatusInternalServerError)
	}))

	_, err := client.List(context.Background())
	if err == nil {
		t.Fatal("expected error from 500 response")
	}
	if !strings.Contains(err.Error(), "http 500") || !strings.Contains(err.Error(), "bridge exploded") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestSnapshotFetchesByID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/snapshot/5" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"headline":"News","description":"daily","pageType":"article","text":"body"}`))
	}))

	snap, err := client.Snapshot(context.Background(), 5)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Headline != "News" || snap.PageType != "article" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.CapturedAt.IsZero() {
		t.Fatal("expected capture timestamp")
	}
}

func TestEventsPassesSinceAndDecodesKinds(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tabs/events" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("since") == "" {
			t.Fatal("missing since parameter")
		}
		_, _ = w.Write([]byte(`{"events":[{"tabId":1,"kind":"created","at":1700000000000},{"tabId":2,"kind":"updated","at":1700000001000}]}`))
	}))

	events, err := client.Events(context.Background(), time.UnixMilli(1699999999000))
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected two events, got %d", len(events))
	}
	if events[0].Kind != tabs.EventCreated || events[1].Kind != tabs.EventUpdated {
		t.Fatalf("unexpected kinds: %+v", events)
	}
}
