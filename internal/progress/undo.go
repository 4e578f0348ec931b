package progress

// Undo checkpoint percentages. Reopening interpolates between the
// ungroup checkpoint and the reopen ceiling.
const (
	undoStartPercent   = 5
	undoUngroupPercent = 40
	undoReopenFloor    = 50
	undoReopenCeiling  = 95
)

// UndoReporter publishes the fixed-checkpoint progress of an undo job.
// Percentages never decrease; the terminal event reports exactly 100.
type UndoReporter struct {
	bus   *Bus
	jobID string
	last  int
}

// NewUndoReporter builds a reporter for one undo job.
func NewUndoReporter(bus *Bus, jobID string) *UndoReporter {
	return &UndoReporter{bus: bus, jobID: jobID}
}

// Start publishes the initial checkpoint.
func (r *UndoReporter) Start(phase string) {
	r.publish(Event{Type: EventPhase, Phase: phase, Percent: r.clamp(undoStartPercent)})
}

// UngroupDone publishes the post-ungroup checkpoint.
func (r *UndoReporter) UngroupDone(phase string, batches int) {
	r.publish(Event{
		Type:      EventGroupingDone,
		Phase:     phase,
		Percent:   r.clamp(undoUngroupPercent),
		Completed: batches,
		Total:     batches,
	})
}

// ReopenProgress interpolates between the reopen floor and ceiling as
// closed tabs are restored.
func (r *UndoReporter) ReopenProgress(phase string, completed, total int) {
	percent := undoReopenCeiling
	if total > 0 {
		percent = undoReopenFloor + (undoReopenCeiling-undoReopenFloor)*completed/total
	}
	r.publish(Event{
		Type:      EventClosingProgress,
		Phase:     phase,
		Percent:   r.clamp(percent),
		Completed: completed,
		Total:     total,
	})
}

// Complete publishes the terminal event at exactly 100.
func (r *UndoReporter) Complete(phase, message string) {
	r.last = 100
	r.publish(Event{Type: EventComplete, Phase: phase, Percent: 100, Message: message})
}

// Error publishes the terminal failure event.
func (r *UndoReporter) Error(phase, message string) {
	r.publish(Event{Type: EventError, Phase: phase, Percent: r.last, Message: message})
}

func (r *UndoReporter) clamp(percent int) int {
	if percent < r.last {
		return r.last
	}
	r.last = percent
	return percent
}

func (r *UndoReporter) publish(event Event) {
	event.JobID = r.jobID
	if r.bus != nil {
		r.bus.Publish(event)
	}
}
