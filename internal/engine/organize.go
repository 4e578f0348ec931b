package engine

import (
	"context"
	"fmt"

	"tabtidy/internal/classify"
	"tabtidy/internal/journal"
	"tabtidy/internal/logging"
	"tabtidy/internal/progress"
	"tabtidy/internal/safety"
	"tabtidy/internal/tabs"
)

// OrganizeAndClose runs the full pipeline: collect, extract, classify,
// filter, close, group, record. With autoClose false the close stage
// is skipped and only grouping happens.
func (e *Engine) OrganizeAndClose(ctx context.Context, threshold int, autoClose bool) (string, error) {
	return e.runOrganize(ctx, classify.PurposeAnalyze, threshold, autoClose, true)
}

// CloseLowImportance runs the close-only pipeline; no groups are
// created.
func (e *Engine) CloseLowImportance(ctx context.Context, threshold int) (string, error) {
	return e.runOrganize(ctx, classify.PurposeClose, threshold, true, false)
}

func (e *Engine) runOrganize(ctx context.Context, purpose classify.Purpose, threshold int, closeTabs, groupTabs bool) (string, error) {
	jobID := newJobID()
	release, err := e.acquire(jobID, PhaseCollecting)
	if err != nil {
		return "", err
	}
	defer release()

	if threshold < 1 || threshold > 10 {
		threshold = e.cfg.Organize.ImportanceThreshold
	}

	var skipped []progress.Stage
	if !closeTabs {
		skipped = append(skipped, progress.StageClose)
	}
	if !groupTabs {
		skipped = append(skipped, progress.StageGroup)
	}
	reporter := progress.NewReporter(e.bus, jobID, skipped...)
	log := e.logger.With(logging.String(logging.FieldJobID, jobID))

	reporter.Phase(string(PhaseCollecting))
	live, err := e.bridge.List(ctx)
	if err != nil {
		e.setPhase(PhaseError)
		reporter.Error(string(PhaseError), fmt.Sprintf("listing tabs failed: %v", err))
		log.Error("tab collection failed", logging.Error(err))
		return jobID, fmt.Errorf("list tabs: %w", err)
	}
	if len(live) == 0 {
		e.setPhase(PhaseComplete)
		reporter.Complete(string(PhaseComplete), "no tabs to organize")
		return jobID, nil
	}

	e.setPhase(PhaseExtracting)
	reporter.Phase(string(PhaseExtracting))
	enriched := e.extractor.Enrich(ctx, live, func(done, total int) {
		reporter.StageProgress(progress.StageExtract, progress.EventExtractProgress, string(PhaseExtracting), done, total, "")
	})

	e.setPhase(PhaseClassifying)
	reporter.Phase(string(PhaseClassifying))
	result := e.classifier.Classify(ctx, purpose, classify.Request{
		Tabs:          enriched,
		Threshold:     threshold,
		SnapshotLimit: e.cfg.Organize.SnapshotLimitBytes,
	})
	reporter.StageDone(progress.StageClassify, progress.EventClassifyDone, string(PhaseClassifying), 1, 1, result.Rationale)
	if result.Fallback {
		log.Warn("classification fell back to trivial grouping")
	}

	now := e.now()
	activeIDs := make(map[int64]struct{})
	for _, tab := range live {
		if tab.Active {
			activeIDs[tab.ID] = struct{}{}
		}
	}
	closeIDs := safety.Filter(result.CloseIDs, live, activeIDs, e.recency.Snapshot(now), now, e.recency.Window())
	if !closeTabs {
		closeIDs = nil
	}

	var closeOutcome struct {
		meta   []tabs.ClosedTabMeta
		closed int
	}
	e.setPhase(PhaseRemoving)
	reporter.Phase(string(PhaseRemoving))
	if len(closeIDs) > 0 {
		outcome := e.exec.CloseAll(ctx, closeIDs, live, func(done, total int) {
			reporter.StageProgress(progress.StageClose, progress.EventClosingProgress, string(PhaseRemoving), done, total, "")
		})
		closeOutcome.meta = outcome.RemovedMeta
		closeOutcome.closed = outcome.ClosedCount
		for _, id := range closeIDs {
			e.recency.Forget(id)
		}
		reporter.StageDone(progress.StageClose, progress.EventClosingDone, string(PhaseRemoving),
			outcome.ClosedCount, len(closeIDs), fmt.Sprintf("closed %d of %d tabs", outcome.ClosedCount, len(closeIDs)))
	} else {
		reporter.StageDone(progress.StageClose, progress.EventClosingDone, string(PhaseRemoving), 0, 0, "nothing to close")
	}

	var batches [][]int64
	grouped := 0
	e.setPhase(PhaseGrouping)
	if groupTabs {
		reporter.Phase(string(PhaseGrouping))
		groups := stripClosed(result.Groups, closeIDs)
		if len(groups) > 0 {
			outcome := e.exec.GroupAll(ctx, groups, func(done, total int) {
				reporter.StageProgress(progress.StageGroup, progress.EventGroupProgress, string(PhaseGrouping), done, total, "")
			})
			batches = outcome.CreatedBatches
			grouped = outcome.GroupedCount
			reporter.StageDone(progress.StageGroup, progress.EventGroupingDone, string(PhaseGrouping),
				outcome.GroupedCount, len(groups), fmt.Sprintf("created %d of %d groups", outcome.GroupedCount, len(groups)))
		} else {
			reporter.StageDone(progress.StageGroup, progress.EventGroupingDone, string(PhaseGrouping), 0, 0, "nothing to group")
		}
	}

	e.setPhase(PhaseRecording)
	reporter.Phase(string(PhaseRecording))
	record := journal.ActionRecord{
		Kind:             journal.DeriveKind(closeOutcome.closed, grouped),
		JobID:            jobID,
		ClosedTabs:       closeOutcome.meta,
		GroupedIDBatches: batches,
		Rationale:        result.Rationale,
		CreatedAt:        now,
	}
	if err := e.store.Record(ctx, record); err != nil {
		e.setPhase(PhaseError)
		reporter.Error(string(PhaseError), fmt.Sprintf("recording action failed: %v", err))
		log.Error("journal record failed", logging.Error(err))
		return jobID, fmt.Errorf("record action: %w", err)
	}

	e.setPhase(PhaseComplete)
	reporter.Complete(string(PhaseComplete),
		fmt.Sprintf("closed %d tabs, created %d groups", closeOutcome.closed, grouped))
	log.Info("job complete",
		logging.String(logging.FieldPhase, string(PhaseComplete)),
		logging.Int("closed", closeOutcome.closed),
		logging.Int("grouped", grouped))
	return jobID, nil
}

// stripClosed removes ids slated for closing from every group so an id
// never appears both closed and grouped. Groups emptied by the strip
// are dropped.
func stripClosed(groups []tabs.Group, closeIDs []int64) []tabs.Group {
	if len(closeIDs) == 0 {
		return groups
	}
	closing := make(map[int64]struct{}, len(closeIDs))
	for _, id := range closeIDs {
		closing[id] = struct{}{}
	}
	kept := make([]tabs.Group, 0, len(groups))
	for _, group := range groups {
		ids := make([]int64, 0, len(group.TabIDs))
		for _, id := range group.TabIDs {
			if _, ok := closing[id]; !ok {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			group.TabIDs = ids
			kept = append(kept, group)
		}
	}
	return kept
}
