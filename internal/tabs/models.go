package tabs

import (
	"strings"
	"time"
)

// Tab is one reorganizable browser tab. IDs are opaque and stable
// within a browser session; the browser owns the tab lifecycle and the
// engine mutates tabs only through a Bridge.
type Tab struct {
	ID       int64
	URL      string
	Title    string
	WindowID int64
	Index    int
	Pinned   bool
	Active   bool
	Snapshot ContentSnapshot
}

// ContentSnapshot is the content extractor's view of a rendered page.
// A zero snapshot is a valid "extraction failed or skipped" value.
type ContentSnapshot struct {
	Headline    string
	Description string
	PageType    string
	Text        string
	CapturedAt  time.Time
}

// IsZero reports whether the snapshot carries no extracted content.
func (s ContentSnapshot) IsZero() bool {
	return s.Headline == "" && s.Description == "" && s.PageType == "" && s.Text == ""
}

// Summary renders the snapshot as a single bounded string for prompt
// transmission. The limit applies to the combined output in bytes.
func (s ContentSnapshot) Summary(limit int) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{s.Headline, s.Description, s.PageType, s.Text} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	combined := strings.Join(parts, " | ")
	if limit > 0 && len(combined) > limit {
		combined = combined[:limit]
	}
	return combined
}

// GroupColor is one of the fixed palette of tab group colors.
type GroupColor string

const (
	ColorGrey   GroupColor = "grey"
	ColorBlue   GroupColor = "blue"
	ColorRed    GroupColor = "red"
	ColorYellow GroupColor = "yellow"
	ColorGreen  GroupColor = "green"
	ColorPink   GroupColor = "pink"
	ColorPurple GroupColor = "purple"
	ColorCyan   GroupColor = "cyan"
	ColorOrange GroupColor = "orange"
)

var palette = []GroupColor{
	ColorGrey,
	ColorBlue,
	ColorRed,
	ColorYellow,
	ColorGreen,
	ColorPink,
	ColorPurple,
	ColorCyan,
	ColorOrange,
}

var paletteSet = func() map[GroupColor]struct{} {
	set := make(map[GroupColor]struct{}, len(palette))
	for _, color := range palette {
		set[color] = struct{}{}
	}
	return set
}()

// Palette returns the ordered list of valid group colors.
func Palette() []GroupColor {
	cp := make([]GroupColor, len(palette))
	copy(cp, palette)
	return cp
}

// ParseColor converts a string into a palette color. Unknown values
// fall back to grey so untrusted provider output can never produce an
// invalid color.
func ParseColor(value string) GroupColor {
	normalized := GroupColor(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "gray" {
		normalized = ColorGrey
	}
	if _, ok := paletteSet[normalized]; ok {
		return normalized
	}
	return ColorGrey
}

// Group is a named, colored batch of tab ids to be grouped together.
type Group struct {
	Name   string
	Color  GroupColor
	TabIDs []int64
}

// ClosedTabMeta captures everything needed to reopen a closed tab.
// It is recorded before the close is attempted.
type ClosedTabMeta struct {
	URL      string `json:"url"`
	WindowID int64  `json:"window_id"`
	Index    int    `json:"index"`
	Active   bool   `json:"active"`
	Pinned   bool   `json:"pinned"`
}

// EventKind distinguishes tab lifecycle events from the bridge feed.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
)

// Event is one tab lifecycle event used to feed the recency tracker.
type Event struct {
	TabID int64
	Kind  EventKind
	At    time.Time
}
