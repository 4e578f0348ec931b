package extract

import (
	"context"
	"log/slog"

	"tabtidy/internal/logging"
	"tabtidy/internal/tabs"
)

// ProgressFunc receives extraction progress as tabs complete. done
// counts both successful and failed fetches.
type ProgressFunc func(done, total int)

// Extractor fetches content snapshots through the bridge.
type Extractor struct {
	bridge tabs.Bridge
	logger *slog.Logger
}

// New builds an extractor. A nil logger disables logging.
func New(bridge tabs.Bridge, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{bridge: bridge, logger: logger}
}

// Enrich fetches a snapshot for every tab and attaches it. Fetch
// failures leave the tab's snapshot zero. The input slice is not
// modified; the returned slice preserves order.
func (e *Extractor) Enrich(ctx context.Context, input []tabs.Tab, onProgress ProgressFunc) []tabs.Tab {
	total := len(input)
	enriched := make([]tabs.Tab, total)
	for i, tab := range input {
		enriched[i] = tab
		if ctx.Err() != nil {
			if onProgress != nil {
				onProgress(i+1, total)
			}
			continue
		}
		snap, err := e.bridge.Snapshot(ctx, tab.ID)
		if err != nil {
			e.logger.Debug("snapshot fetch failed",
				logging.Int64("tab_id", tab.ID),
				logging.Error(err))
		} else {
			enriched[i].Snapshot = snap
		}
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}
	return enriched
}
