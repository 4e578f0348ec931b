package progress

// Stage identifies one weighted stage of the organize pipeline.
type Stage string

const (
	StageExtract  Stage = "extract"
	StageClassify Stage = "classify"
	StageClose    Stage = "close"
	StageGroup    Stage = "group"
)

var stageWeights = map[Stage]int{
	StageExtract:  50,
	StageClassify: 10,
	StageClose:    20,
	StageGroup:    20,
}

type stageState struct {
	completed int
	total     int
	done      bool
}

// Reporter tracks weighted progress for one job and publishes events
// through a bus. A stage marked skipped counts as fully complete so
// the remaining weights still reach 100. Percentages never decrease
// within one job; the terminal event always reports exactly 100.
type Reporter struct {
	bus    *Bus
	jobID  string
	stages map[Stage]*stageState
	last   int
}

// NewReporter builds a reporter for one job. Skipped stages contribute
// their full weight immediately.
func NewReporter(bus *Bus, jobID string, skipped ...Stage) *Reporter {
	stages := make(map[Stage]*stageState, len(stageWeights))
	for stage := range stageWeights {
		stages[stage] = &stageState{}
	}
	for _, stage := range skipped {
		if state, ok := stages[stage]; ok {
			state.done = true
		}
	}
	return &Reporter{bus: bus, jobID: jobID, stages: stages}
}

// Percent recomputes the weighted job percentage.
func (r *Reporter) Percent() int {
	sum := 0
	for stage, state := range r.stages {
		weight := stageWeights[stage]
		switch {
		case state.done:
			sum += weight
		case state.total > 0:
			sum += weight * state.completed / state.total
		}
	}
	if sum < r.last {
		return r.last
	}
	if sum > 100 {
		sum = 100
	}
	r.last = sum
	return sum
}

// Phase publishes a phase transition event.
func (r *Reporter) Phase(phase string) {
	r.publish(Event{Type: EventPhase, Phase: phase, Percent: r.Percent()})
}

// StageProgress records one unit of work inside a stage and publishes
// the corresponding event. A zero total marks the stage complete.
func (r *Reporter) StageProgress(stage Stage, eventType EventType, phase string, completed, total int, message string) {
	state, ok := r.stages[stage]
	if !ok {
		return
	}
	state.completed = completed
	state.total = total
	if total == 0 || completed >= total {
		state.done = true
	}
	r.publish(Event{
		Type:      eventType,
		Phase:     phase,
		Percent:   r.Percent(),
		Completed: completed,
		Total:     total,
		Message:   message,
	})
}

// StageDone marks a stage complete and publishes a summary event.
func (r *Reporter) StageDone(stage Stage, eventType EventType, phase string, completed, total int, message string) {
	if state, ok := r.stages[stage]; ok {
		state.completed = completed
		state.total = total
		state.done = true
	}
	r.publish(Event{
		Type:      eventType,
		Phase:     phase,
		Percent:   r.Percent(),
		Completed: completed,
		Total:     total,
		Message:   message,
	})
}

// Complete publishes the terminal success event at exactly 100.
func (r *Reporter) Complete(phase, message string) {
	for _, state := range r.stages {
		state.done = true
	}
	r.last = 100
	r.publish(Event{Type: EventComplete, Phase: phase, Percent: 100, Message: message})
}

// Error publishes the terminal failure event. The percentage freezes
// at its last value.
func (r *Reporter) Error(phase, message string) {
	r.publish(Event{Type: EventError, Phase: phase, Percent: r.last, Message: message})
}

func (r *Reporter) publish(event Event) {
	event.JobID = r.jobID
	if r.bus != nil {
		r.bus.Publish(event)
	}
}
