package safety

import (
	"sync"
	"time"
)

// RecencyTracker records when tabs were created or updated. Entries
// older than the window are swept on every write and read so the map
// stays bounded by the number of tabs touched within one window.
type RecencyTracker struct {
	mu      sync.Mutex
	window  time.Duration
	touched map[int64]time.Time
}

// NewRecencyTracker builds a tracker. A non-positive window uses the
// default.
func NewRecencyTracker(window time.Duration) *RecencyTracker {
	if window <= 0 {
		window = DefaultRecencyWindow
	}
	return &RecencyTracker{
		window:  window,
		touched: make(map[int64]time.Time),
	}
}

// Touch records a tab as touched at the given time.
func (t *RecencyTracker) Touch(id int64, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touched[id] = at
	t.sweepLocked(at)
}

// Forget drops a tab from the tracker, typically after it closes.
func (t *RecencyTracker) Forget(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.touched, id)
}

// Snapshot returns a copy of the live entries relative to now. Expired
// entries are swept before copying.
func (t *RecencyTracker) Snapshot(now time.Time) map[int64]time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sweepLocked(now)
	copied := make(map[int64]time.Time, len(t.touched))
	for id, at := range t.touched {
		copied[id] = at
	}
	return copied
}

// Len reports the number of tracked entries.
func (t *RecencyTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.touched)
}

// Window returns the tracker's recency window.
func (t *RecencyTracker) Window() time.Duration {
	return t.window
}

func (t *RecencyTracker) sweepLocked(now time.Time) {
	for id, at := range t.touched {
		if now.Sub(at) >= t.window {
			delete(t.touched, id)
		}
	}
}
