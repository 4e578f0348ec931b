package engine

import (
	"context"
	"errors"
	"time"

	"tabtidy/internal/classify"
	"tabtidy/internal/logging"
)

// armAutoTrigger (re)starts the debounce timer. Every tab event pushes
// the deadline out; the organize run fires only after the collection
// has been quiet for the configured debounce.
func (e *Engine) armAutoTrigger() {
	debounce := time.Duration(e.cfg.Organize.AutoTriggerDebounce) * time.Second
	if debounce <= 0 {
		return
	}
	e.autoMu.Lock()
	defer e.autoMu.Unlock()
	if e.autoTimer != nil {
		e.autoTimer.Stop()
	}
	e.autoTimer = time.AfterFunc(debounce, e.runAutomatic)
}

// StopAutoTrigger cancels a pending automatic run, typically during
// shutdown.
func (e *Engine) StopAutoTrigger() {
	e.autoMu.Lock()
	defer e.autoMu.Unlock()
	if e.autoTimer != nil {
		e.autoTimer.Stop()
		e.autoTimer = nil
	}
}

// runAutomatic is the debounced trigger body. Losing the lock race to
// a manual job is normal; the conflict is dropped silently.
func (e *Engine) runAutomatic() {
	_, err := e.runOrganize(context.Background(), classify.PurposeAutomatic,
		e.cfg.Organize.ImportanceThreshold, e.cfg.Organize.AutoClose, true)
	if err != nil {
		if errors.Is(err, ErrJobActive) {
			e.logger.Debug("automatic trigger yielded to active job")
			return
		}
		e.logger.Warn("automatic organize failed", logging.Error(err))
	}
}
