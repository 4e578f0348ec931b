package journal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tabtidy/internal/journal"
	"tabtidy/internal/tabs"
	"tabtidy/internal/testsupport"
)

func TestRecordOverwritesSingleSlot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := journal.ActionRecord{
		Kind:       journal.KindClose,
		JobID:      "job-a",
		ClosedTabs: []tabs.ClosedTabMeta{{URL: "https://a.example", WindowID: 1, Index: 2}},
	}
	second := journal.ActionRecord{
		Kind:             journal.KindComposite,
		JobID:            "job-b",
		ClosedTabs:       []tabs.ClosedTabMeta{{URL: "https://b.example", WindowID: 1, Index: 0, Pinned: true}},
		GroupedIDBatches: [][]int64{{1, 3, 5}},
		Rationale:        "grouped research",
	}
	if err := store.Record(ctx, first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := store.Record(ctx, second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	got, err := store.Last(ctx)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if got.Kind != journal.KindComposite || got.JobID != "job-b" {
		t.Fatalf("expected second record, got %+v", got)
	}
	if len(got.ClosedTabs) != 1 || got.ClosedTabs[0].URL != "https://b.example" || !got.ClosedTabs[0].Pinned {
		t.Fatalf("unexpected closed tabs: %+v", got.ClosedTabs)
	}
	if len(got.GroupedIDBatches) != 1 || len(got.GroupedIDBatches[0]) != 3 {
		t.Fatalf("unexpected batches: %+v", got.GroupedIDBatches)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected created_at populated")
	}
}

func TestLastOnEmptySlotFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.Last(context.Background()); !errors.Is(err, journal.ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestClearEmptiesSlot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record := journal.ActionRecord{Kind: journal.KindGroup, GroupedIDBatches: [][]int64{{2, 4}}}
	if err := store.Record(ctx, record); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Last(ctx); !errors.Is(err, journal.ErrNothingToUndo) {
		t.Fatalf("expected empty slot after clear, got %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clearing empty slot should be a no-op: %v", err)
	}
}

func TestRecordPreservesTimestamps(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	at := time.Date(2026, time.February, 10, 8, 30, 0, 0, time.UTC)
	record := journal.ActionRecord{Kind: journal.KindNone, CreatedAt: at}
	if err := store.Record(ctx, record); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, err := store.Last(ctx)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if !got.CreatedAt.Equal(at) {
		t.Fatalf("expected created_at %v, got %v", at, got.CreatedAt)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, ok, err := store.GetSetting(ctx, "threshold"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := store.SetSetting(ctx, "threshold", "7"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.SetSetting(ctx, "threshold", "4"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, ok, err := store.GetSetting(ctx, "threshold")
	if err != nil || !ok || value != "4" {
		t.Fatalf("expected 4, got value=%q ok=%v err=%v", value, ok, err)
	}
	if err := store.RemoveSetting(ctx, "threshold"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.GetSetting(ctx, "threshold"); ok {
		t.Fatal("expected key removed")
	}
}

func TestDeriveKind(t *testing.T) {
	cases := []struct {
		closed, grouped int
		expected        journal.Kind
	}{
		{2, 1, journal.KindComposite},
		{2, 0, journal.KindClose},
		{0, 3, journal.KindGroup},
		{0, 0, journal.KindNone},
	}
	for _, tc := range cases {
		if got := journal.DeriveKind(tc.closed, tc.grouped); got != tc.expected {
			t.Fatalf("DeriveKind(%d, %d) = %q, expected %q", tc.closed, tc.grouped, got, tc.expected)
		}
	}
}
