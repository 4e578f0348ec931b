package engine

import (
	"context"
	"fmt"

	"tabtidy/internal/logging"
	"tabtidy/internal/safety"
	"tabtidy/internal/tabs"
)

// CreateSyntheticTabs opens count placeholder tabs for exercising the
// pipeline. It shares the single-flight lock with real jobs.
func (e *Engine) CreateSyntheticTabs(ctx context.Context, count int) error {
	release, err := e.acquire(newJobID(), PhaseCollecting)
	if err != nil {
		return err
	}
	defer release()

	if count <= 0 {
		count = 1
	}
	created := 0
	for i := 0; i < count; i++ {
		url := fmt.Sprintf("https://example.com/synthetic/%d", i+1)
		if _, err := e.bridge.Create(ctx, tabs.CreateRequest{URL: url}); err != nil {
			e.logger.Warn("synthetic tab creation failed", logging.Error(err))
			continue
		}
		created++
	}
	e.logger.Info("synthetic tabs created", logging.Int("count", created))
	return nil
}

// CloseAllButActive closes every closable tab except the active ones.
// Protected pages are left alone. It shares the single-flight lock
// with real jobs and does not touch the journal.
func (e *Engine) CloseAllButActive(ctx context.Context) error {
	release, err := e.acquire(newJobID(), PhaseRemoving)
	if err != nil {
		return err
	}
	defer release()

	live, err := e.bridge.List(ctx)
	if err != nil {
		return fmt.Errorf("list tabs: %w", err)
	}
	closed := 0
	for _, tab := range live {
		if tab.Active || safety.Protected(tab.URL) {
			continue
		}
		if err := e.bridge.Close(ctx, tab.ID); err != nil {
			e.logger.Warn("tab close failed",
				logging.Int64("tab_id", tab.ID),
				logging.Error(err))
			continue
		}
		e.recency.Forget(tab.ID)
		closed++
	}
	e.logger.Info("closed all but active", logging.Int("closed", closed))
	return nil
}
