package engine

// Phase is the observable state of the current job.
type Phase string

const (
	PhaseIdle         Phase = "Idle"
	PhaseCollecting   Phase = "Collecting"
	PhaseExtracting   Phase = "Extracting"
	PhaseClassifying  Phase = "Classifying"
	PhaseRemoving     Phase = "Removing"
	PhaseGrouping     Phase = "Grouping"
	PhaseRecording    Phase = "Recording"
	PhaseComplete     Phase = "Complete"
	PhaseError        Phase = "Error"
	PhaseUndoStart    Phase = "UndoStart"
	PhaseUngrouping   Phase = "Ungrouping"
	PhaseReopening    Phase = "Reopening"
	PhaseUndoComplete Phase = "UndoComplete"
)
