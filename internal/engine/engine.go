package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"tabtidy/internal/classify"
	"tabtidy/internal/config"
	"tabtidy/internal/extract"
	"tabtidy/internal/executor"
	"tabtidy/internal/journal"
	"tabtidy/internal/logging"
	"tabtidy/internal/progress"
	"tabtidy/internal/safety"
	"tabtidy/internal/tabs"
)

// ErrJobActive is returned when a job is requested while another one
// holds the single-flight lock.
var ErrJobActive = errors.New("a job is already running")

// Classifier resolves one batch classification. Implemented by
// classify/router; test doubles script it directly.
type Classifier interface {
	Classify(ctx context.Context, purpose classify.Purpose, req classify.Request) classify.Result
}

// Status describes the engine's current job.
type Status struct {
	Phase     Phase
	JobID     string
	StartedAt time.Time
}

// Engine drives the pipelines over one bridge, one classifier, and one
// journal store.
type Engine struct {
	cfg        *config.Config
	bridge     tabs.Bridge
	classifier Classifier
	extractor  *extract.Extractor
	exec       *executor.Executor
	store      *journal.Store
	bus        *progress.Bus
	recency    *safety.RecencyTracker
	logger     *slog.Logger
	now        func() time.Time

	running atomic.Bool

	statusMu sync.Mutex
	status   Status

	autoMu    sync.Mutex
	autoTimer *time.Timer
}

// Option customizes the engine.
type Option func(*Engine)

// WithClock overrides the time source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New builds an engine. A nil logger disables logging; a nil bus
// drops progress events.
func New(cfg *config.Config, bridge tabs.Bridge, classifier Classifier, store *journal.Store, bus *progress.Bus, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	if bus == nil {
		bus = progress.NewBus()
	}
	engine := &Engine{
		cfg:        cfg,
		bridge:     bridge,
		classifier: classifier,
		extractor:  extract.New(bridge, logger),
		exec:       executor.New(bridge, logger),
		store:      store,
		bus:        bus,
		recency:    safety.NewRecencyTracker(time.Duration(cfg.Organize.RecencyWindowSeconds) * time.Second),
		logger:     logger,
		now:        time.Now,
	}
	engine.status = Status{Phase: PhaseIdle}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Bridge exposes the tab bridge.
func (e *Engine) Bridge() tabs.Bridge {
	return e.bridge
}

// Bus exposes the progress bus for subscribers.
func (e *Engine) Bus() *progress.Bus {
	return e.bus
}

// Store exposes the journal store.
func (e *Engine) Store() *journal.Store {
	return e.store
}

// Status reports the current job phase.
func (e *Engine) Status() Status {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	return e.status
}

// NotifyTabEvent feeds one lifecycle event into the recency tracker
// and arms the automatic trigger when enabled.
func (e *Engine) NotifyTabEvent(event tabs.Event) {
	at := event.At
	if at.IsZero() {
		at = e.now()
	}
	e.recency.Touch(event.TabID, at)
	if e.cfg.Organize.AutoTriggerEnabled {
		e.armAutoTrigger()
	}
}

// acquire takes the single-flight lock. The returned release must run
// on every exit path.
func (e *Engine) acquire(jobID string, phase Phase) (func(), error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, ErrJobActive
	}
	e.setStatus(Status{Phase: phase, JobID: jobID, StartedAt: e.now()})
	return func() {
		e.setStatus(Status{Phase: PhaseIdle})
		e.running.Store(false)
	}, nil
}

func (e *Engine) setStatus(status Status) {
	e.statusMu.Lock()
	e.status = status
	e.statusMu.Unlock()
}

func (e *Engine) setPhase(phase Phase) {
	e.statusMu.Lock()
	e.status.Phase = phase
	e.statusMu.Unlock()
}

func newJobID() string {
	return uuid.NewString()
}
