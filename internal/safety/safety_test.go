package safety_test

import (
	"testing"
	"time"

	"tabtidy/internal/safety"
	"tabtidy/internal/tabs"
)

var now = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func liveSet() []tabs.Tab {
	return []tabs.Tab{
		{ID: 1, URL: "https://a.example"},
		{ID: 2, URL: "https://b.example"},
		{ID: 3, URL: "https://c.example", Active: true},
		{ID: 4, URL: "chrome://settings"},
		{ID: 5, URL: "https://e.example"},
	}
}

func TestFilterDropsActiveTabs(t *testing.T) {
	active := map[int64]struct{}{3: {}}
	safe := safety.Filter([]int64{1, 3}, liveSet(), active, nil, now, 0)
	if len(safe) != 1 || safe[0] != 1 {
		t.Fatalf("expected only tab 1 closable, got %v", safe)
	}
}

func TestFilterDropsActiveFlagWithoutActiveSet(t *testing.T) {
	safe := safety.Filter([]int64{3}, liveSet(), nil, nil, now, 0)
	if len(safe) != 0 {
		t.Fatalf("active tab must never be closable, got %v", safe)
	}
}

func TestFilterDropsProtectedURLs(t *testing.T) {
	safe := safety.Filter([]int64{4, 5}, liveSet(), nil, nil, now, 0)
	if len(safe) != 1 || safe[0] != 5 {
		t.Fatalf("expected chrome:// tab protected, got %v", safe)
	}
}

func TestFilterDropsRecentlyTouched(t *testing.T) {
	touched := map[int64]time.Time{
		1: now.Add(-10 * time.Second),
		2: now.Add(-45 * time.Second),
	}
	safe := safety.Filter([]int64{1, 2}, liveSet(), nil, touched, now, 30*time.Second)
	if len(safe) != 1 || safe[0] != 2 {
		t.Fatalf("expected recently touched tab 1 protected, got %v", safe)
	}
}

func TestFilterDropsUnknownIDs(t *testing.T) {
	safe := safety.Filter([]int64{1, 42}, liveSet(), nil, nil, now, 0)
	if len(safe) != 1 || safe[0] != 1 {
		t.Fatalf("expected unknown id dropped, got %v", safe)
	}
}

func TestProtectedPatterns(t *testing.T) {
	protected := []string{
		"chrome://extensions",
		"edge://settings",
		"about:blank",
		"about:config",
		"brave://rewards",
		"vivaldi://startpage",
		"chrome-extension://abcdef/popup.html",
		"",
		"  CHROME://history  ",
	}
	for _, url := range protected {
		if !safety.Protected(url) {
			t.Fatalf("expected %q protected", url)
		}
	}
	for _, url := range []string{"https://example.com", "http://chrome.example", "file:///tmp/x.html"} {
		if safety.Protected(url) {
			t.Fatalf("expected %q closable", url)
		}
	}
}

func TestRecencyTrackerSweepsExpiredEntries(t *testing.T) {
	tracker := safety.NewRecencyTracker(30 * time.Second)
	tracker.Touch(1, now.Add(-2*time.Minute))
	tracker.Touch(2, now.Add(-5*time.Second))
	tracker.Touch(3, now)

	snapshot := tracker.Snapshot(now)
	if _, ok := snapshot[1]; ok {
		t.Fatal("expired entry survived sweep")
	}
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 live entries, got %d", len(snapshot))
	}
	if tracker.Len() != 2 {
		t.Fatalf("expected tracker bounded to 2 entries, got %d", tracker.Len())
	}
}

func TestRecencyTrackerForget(t *testing.T) {
	tracker := safety.NewRecencyTracker(0)
	tracker.Touch(7, now)
	tracker.Forget(7)
	if tracker.Len() != 0 {
		t.Fatalf("expected empty tracker, got %d entries", tracker.Len())
	}
}
