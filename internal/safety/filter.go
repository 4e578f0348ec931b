package safety

import (
	"strings"
	"time"

	"tabtidy/internal/tabs"
)

// DefaultRecencyWindow protects tabs touched within the last 30
// seconds from removal.
const DefaultRecencyWindow = 30 * time.Second

var protectedPrefixes = []string{
	"chrome://",
	"edge://",
	"about:",
	"brave://",
	"vivaldi://",
	"chrome-extension://",
}

var blankPages = map[string]struct{}{
	"":                       {},
	"about:blank":            {},
	"about:newtab":           {},
	"chrome://newtab/":       {},
	"chrome://new-tab-page/": {},
}

// Protected reports whether a URL points at an internal browser page,
// a blank page, or a new-tab page.
func Protected(url string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(url))
	if _, ok := blankPages[trimmed]; ok {
		return true
	}
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// Filter returns the close candidates that are safe to remove. It
// drops any id that is active, points at a protected URL, was touched
// within window of now, or is not present in the live set. Candidates
// keep their input order. The function is pure; it runs on fallback
// results too since provider output is never trusted.
func Filter(candidates []int64, live []tabs.Tab, activeIDs map[int64]struct{}, touched map[int64]time.Time, now time.Time, window time.Duration) []int64 {
	if window <= 0 {
		window = DefaultRecencyWindow
	}
	byID := make(map[int64]tabs.Tab, len(live))
	for _, tab := range live {
		byID[tab.ID] = tab
	}

	safe := make([]int64, 0, len(candidates))
	for _, id := range candidates {
		tab, ok := byID[id]
		if !ok {
			continue
		}
		if _, active := activeIDs[id]; active || tab.Active {
			continue
		}
		if Protected(tab.URL) {
			continue
		}
		if at, ok := touched[id]; ok && now.Sub(at) < window {
			continue
		}
		safe = append(safe, id)
	}
	return safe
}
