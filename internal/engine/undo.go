package engine

import (
	"context"
	"errors"
	"fmt"

	"tabtidy/internal/journal"
	"tabtidy/internal/logging"
	"tabtidy/internal/progress"
)

// UndoLastAction reverses the most recent recorded action: ungroup
// first, then reopen closed tabs, then clear the journal. An empty
// journal fails with journal.ErrNothingToUndo before any mutation.
func (e *Engine) UndoLastAction(ctx context.Context) (string, error) {
	jobID := newJobID()
	release, err := e.acquire(jobID, PhaseUndoStart)
	if err != nil {
		return "", err
	}
	defer release()

	record, err := e.store.Last(ctx)
	if err != nil {
		if errors.Is(err, journal.ErrNothingToUndo) {
			return "", journal.ErrNothingToUndo
		}
		return jobID, fmt.Errorf("read journal: %w", err)
	}

	reporter := progress.NewUndoReporter(e.bus, jobID)
	log := e.logger.With(logging.String(logging.FieldJobID, jobID))
	reporter.Start(string(PhaseUndoStart))

	// Ungrouping runs first so reopened tabs are never pulled into a
	// stale group.
	e.setPhase(PhaseUngrouping)
	ungrouped := e.exec.UngroupBatches(ctx, record.GroupedIDBatches)
	reporter.UngroupDone(string(PhaseUngrouping), ungrouped)

	e.setPhase(PhaseReopening)
	outcome := e.exec.ReopenAll(ctx, record.ClosedTabs, func(done, total int) {
		reporter.ReopenProgress(string(PhaseReopening), done, total)
	})

	if err := e.store.Clear(ctx); err != nil {
		e.setPhase(PhaseError)
		reporter.Error(string(PhaseError), fmt.Sprintf("clearing journal failed: %v", err))
		log.Error("journal clear failed", logging.Error(err))
		return jobID, fmt.Errorf("clear journal: %w", err)
	}

	e.setPhase(PhaseUndoComplete)
	reporter.Complete(string(PhaseUndoComplete),
		fmt.Sprintf("reopened %d tabs, dissolved %d groups", outcome.ReopenedCount, ungrouped))
	log.Info("undo complete",
		logging.Int("reopened", outcome.ReopenedCount),
		logging.Int("ungrouped", ungrouped))
	return jobID, nil
}
