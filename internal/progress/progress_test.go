package progress_test

import (
	"testing"

	"tabtidy/internal/progress"
)

func collect(bus *progress.Bus) *[]progress.Event {
	events := &[]progress.Event{}
	bus.Subscribe(func(event progress.Event) {
		*events = append(*events, event)
	})
	return events
}

func assertMonotonic(t *testing.T, events []progress.Event) {
	t.Helper()
	last := -1
	for _, event := range events {
		if event.Percent < last {
			t.Fatalf("percent decreased: %d after %d (%+v)", event.Percent, last, event)
		}
		last = event.Percent
	}
}

func TestReporterWeightsSumToHundred(t *testing.T) {
	bus := progress.NewBus()
	events := collect(bus)
	r := progress.NewReporter(bus, "job-1")

	for i := 1; i <= 4; i++ {
		r.StageProgress(progress.StageExtract, progress.EventExtractProgress, "Extracting", i, 4, "")
	}
	r.StageDone(progress.StageClassify, progress.EventClassifyDone, "Classifying", 1, 1, "")
	r.StageDone(progress.StageClose, progress.EventClosingDone, "Removing", 2, 2, "")
	r.StageDone(progress.StageGroup, progress.EventGroupingDone, "Grouping", 1, 1, "")
	r.Complete("Complete", "done")

	final := (*events)[len(*events)-1]
	if final.Percent != 100 || final.Type != progress.EventComplete {
		t.Fatalf("unexpected terminal event: %+v", final)
	}
	assertMonotonic(t, *events)

	// Extraction alone carries half the weight.
	afterExtract := (*events)[3]
	if afterExtract.Percent != 50 {
		t.Fatalf("expected 50%% after extraction, got %d", afterExtract.Percent)
	}
}

func TestReporterSkippedStageCountsComplete(t *testing.T) {
	bus := progress.NewBus()
	events := collect(bus)
	r := progress.NewReporter(bus, "job-2", progress.StageGroup)

	r.StageDone(progress.StageExtract, progress.EventExtractProgress, "Extracting", 3, 3, "")
	r.StageDone(progress.StageClassify, progress.EventClassifyDone, "Classifying", 1, 1, "")
	r.StageDone(progress.StageClose, progress.EventClosingDone, "Removing", 1, 1, "")

	last := (*events)[len(*events)-1]
	if last.Percent != 100 {
		t.Fatalf("expected 100%% with grouping skipped, got %d", last.Percent)
	}
}

func TestReporterNeverDecreases(t *testing.T) {
	bus := progress.NewBus()
	events := collect(bus)
	r := progress.NewReporter(bus, "job-3")

	r.StageProgress(progress.StageExtract, progress.EventExtractProgress, "Extracting", 4, 4, "")
	// A stage reporting a smaller fraction afterwards must not pull the
	// overall percentage backwards.
	r.StageProgress(progress.StageClose, progress.EventClosingProgress, "Removing", 0, 5, "")
	assertMonotonic(t, *events)
}

func TestPublishWithoutSubscribersIsSafe(t *testing.T) {
	bus := progress.NewBus()
	r := progress.NewReporter(bus, "job-4")
	r.Phase("Collecting")
	r.Complete("Complete", "")
}

func TestUndoReporterCheckpoints(t *testing.T) {
	bus := progress.NewBus()
	events := collect(bus)
	r := progress.NewUndoReporter(bus, "undo-1")

	r.Start("UndoStart")
	r.UngroupDone("Ungrouping", 2)
	r.ReopenProgress("Reopening", 0, 2)
	r.ReopenProgress("Reopening", 1, 2)
	r.ReopenProgress("Reopening", 2, 2)
	r.Complete("UndoComplete", "restored")

	expected := []int{5, 40, 50, 72, 95, 100}
	if len(*events) != len(expected) {
		t.Fatalf("expected %d events, got %d", len(expected), len(*events))
	}
	for i, event := range *events {
		if event.Percent != expected[i] {
			t.Fatalf("checkpoint %d: expected %d%%, got %d%%", i, expected[i], event.Percent)
		}
	}
	assertMonotonic(t, *events)
}

func TestUndoReporterEmptyReopenJumpsToCeiling(t *testing.T) {
	bus := progress.NewBus()
	events := collect(bus)
	r := progress.NewUndoReporter(bus, "undo-2")

	r.Start("UndoStart")
	r.UngroupDone("Ungrouping", 1)
	r.ReopenProgress("Reopening", 0, 0)
	r.Complete("UndoComplete", "")

	assertMonotonic(t, *events)
	if (*events)[2].Percent != 95 {
		t.Fatalf("expected ceiling for empty reopen, got %d", (*events)[2].Percent)
	}
}
