package progress

import (
	"sync"
	"time"
)

// EventType labels what a progress event describes.
type EventType string

const (
	EventPhase           EventType = "phase"
	EventExtractProgress EventType = "extract_progress"
	EventClassifyDone    EventType = "classify_done"
	EventClosingProgress EventType = "closing_progress"
	EventClosingDone     EventType = "closing_done"
	EventGroupProgress   EventType = "group_progress"
	EventGroupingDone    EventType = "grouping_done"
	EventComplete        EventType = "complete"
	EventError           EventType = "error"
)

// Event is one progress emission. Percent is the job-wide weighted
// percentage at emission time.
type Event struct {
	JobID     string
	Type      EventType
	Phase     string
	Percent   int
	Completed int
	Total     int
	Message   string
	At        time.Time
}

// Subscriber is a callback invoked inline on every Publish.
type Subscriber func(Event)

// Bus is a synchronous in-process progress bus. Subscribers are
// invoked inline on the publishing goroutine.
type Bus struct {
	mu          sync.Mutex
	subscribers []Subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish dispatches an event to all subscribers. A bus without
// subscribers drops the event silently.
func (b *Bus) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}
