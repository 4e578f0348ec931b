package tabs_test

import (
	"strings"
	"testing"

	"tabtidy/internal/tabs"
)

func TestParseColorFallsBackToGrey(t *testing.T) {
	cases := map[string]tabs.GroupColor{
		"blue":     tabs.ColorBlue,
		" Purple ": tabs.ColorPurple,
		"gray":     tabs.ColorGrey,
		"magenta":  tabs.ColorGrey,
		"":         tabs.ColorGrey,
	}
	for input, expected := range cases {
		if got := tabs.ParseColor(input); got != expected {
			t.Fatalf("ParseColor(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestSnapshotSummaryBounded(t *testing.T) {
	snap := tabs.ContentSnapshot{
		Headline:    "Big Headline",
		Description: strings.Repeat("d", 400),
		PageType:    "article",
	}
	summary := snap.Summary(64)
	if len(summary) != 64 {
		t.Fatalf("expected summary truncated to 64 bytes, got %d", len(summary))
	}
	if !strings.HasPrefix(summary, "Big Headline | ") {
		t.Fatalf("unexpected summary prefix: %q", summary)
	}
}

func TestSnapshotSummarySkipsEmptyParts(t *testing.T) {
	snap := tabs.ContentSnapshot{PageType: "video"}
	if got := snap.Summary(0); got != "video" {
		t.Fatalf("expected bare page type, got %q", got)
	}
	if !(tabs.ContentSnapshot{}).IsZero() {
		t.Fatal("zero snapshot should report IsZero")
	}
}
