package executor

import (
	"context"
	"log/slog"

	"tabtidy/internal/logging"
	"tabtidy/internal/tabs"
)

// ProgressFunc receives per-unit progress as a batch runs.
type ProgressFunc func(done, total int)

// CloseOutcome summarizes a removal batch.
type CloseOutcome struct {
	RemovedMeta []tabs.ClosedTabMeta
	ClosedCount int
	FailedCount int
}

// GroupOutcome summarizes a grouping batch.
type GroupOutcome struct {
	CreatedBatches [][]int64
	GroupedCount   int
	FailedCount    int
}

// ReopenOutcome summarizes an undo reopen batch.
type ReopenOutcome struct {
	ReopenedCount int
	FailedCount   int
}

// Executor runs batch mutations through a bridge.
type Executor struct {
	bridge tabs.Bridge
	logger *slog.Logger
}

// New builds an executor. A nil logger disables logging.
func New(bridge tabs.Bridge, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{bridge: bridge, logger: logger}
}

// CloseAll removes the given tabs one at a time. Metadata for each tab
// is captured from the live set before its close is attempted, so the
// record can reopen it even when the close partially fails upstream. A
// tab whose close fails contributes no metadata and no count.
func (e *Executor) CloseAll(ctx context.Context, ids []int64, live []tabs.Tab, onProgress ProgressFunc) CloseOutcome {
	byID := make(map[int64]tabs.Tab, len(live))
	for _, tab := range live {
		byID[tab.ID] = tab
	}

	outcome := CloseOutcome{}
	total := len(ids)
	for i, id := range ids {
		tab, known := byID[id]
		meta := tabs.ClosedTabMeta{
			URL:      tab.URL,
			WindowID: tab.WindowID,
			Index:    tab.Index,
			Active:   tab.Active,
			Pinned:   tab.Pinned,
		}
		err := e.bridge.Close(ctx, id)
		switch {
		case err != nil:
			outcome.FailedCount++
			e.logger.Warn("tab close failed",
				logging.Int64("tab_id", id),
				logging.Error(err))
		case !known:
			outcome.ClosedCount++
		default:
			outcome.ClosedCount++
			outcome.RemovedMeta = append(outcome.RemovedMeta, meta)
		}
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}
	return outcome
}

// GroupAll creates one browser group per non-empty input group. A
// group whose creation fails is skipped; its ids stay ungrouped.
func (e *Executor) GroupAll(ctx context.Context, groups []tabs.Group, onProgress ProgressFunc) GroupOutcome {
	outcome := GroupOutcome{}
	total := len(groups)
	for i, group := range groups {
		if len(group.TabIDs) == 0 {
			if onProgress != nil {
				onProgress(i+1, total)
			}
			continue
		}
		if _, err := e.bridge.Group(ctx, group.Name, group.Color, group.TabIDs); err != nil {
			outcome.FailedCount++
			e.logger.Warn("group creation failed",
				logging.String("group", group.Name),
				logging.Error(err))
		} else {
			outcome.GroupedCount++
			outcome.CreatedBatches = append(outcome.CreatedBatches, append([]int64(nil), group.TabIDs...))
		}
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}
	return outcome
}

// UngroupBatches dissolves each recorded id batch. Ids that no longer
// exist are tolerated; a failed batch is skipped.
func (e *Executor) UngroupBatches(ctx context.Context, batches [][]int64) int {
	ungrouped := 0
	for _, batch := range batches {
		if len(batch) == 0 {
			continue
		}
		if err := e.bridge.Ungroup(ctx, batch); err != nil {
			e.logger.Warn("ungroup failed",
				logging.Int("batch_size", len(batch)),
				logging.Error(err))
			continue
		}
		ungrouped++
	}
	return ungrouped
}

// ReopenAll recreates previously closed tabs, inactive, in their
// original window, then moves each to its original index and restores
// its pinned state. A missing window falls back to the current window
// (window id zero). Every step is independently best effort.
func (e *Executor) ReopenAll(ctx context.Context, closed []tabs.ClosedTabMeta, onProgress ProgressFunc) ReopenOutcome {
	outcome := ReopenOutcome{}
	total := len(closed)
	for i, meta := range closed {
		created, err := e.bridge.Create(ctx, tabs.CreateRequest{
			URL:      meta.URL,
			WindowID: meta.WindowID,
			Active:   false,
		})
		if err != nil {
			created, err = e.bridge.Create(ctx, tabs.CreateRequest{URL: meta.URL, Active: false})
		}
		if err != nil {
			outcome.FailedCount++
			e.logger.Warn("tab reopen failed",
				logging.String("url", meta.URL),
				logging.Error(err))
			if onProgress != nil {
				onProgress(i+1, total)
			}
			continue
		}
		outcome.ReopenedCount++
		if moveErr := e.bridge.Move(ctx, created.ID, created.WindowID, meta.Index); moveErr != nil {
			e.logger.Debug("tab move failed",
				logging.Int64("tab_id", created.ID),
				logging.Error(moveErr))
		}
		if meta.Pinned {
			if pinErr := e.bridge.Pin(ctx, created.ID); pinErr != nil {
				e.logger.Debug("tab pin failed",
					logging.Int64("tab_id", created.ID),
					logging.Error(pinErr))
			}
		}
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}
	return outcome
}
