package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"tabtidy/internal/config"
	"tabtidy/internal/engine"
	"tabtidy/internal/logging"
	"tabtidy/internal/notifications"
	"tabtidy/internal/progress"
)

const eventPollInterval = 2 * time.Second

// Daemon coordinates the engine and enforces single-instance
// execution.
type Daemon struct {
	cfg      *config.Config
	engine   *engine.Engine
	logger   *slog.Logger
	notifier notifications.Service

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool
	PID           int
	LockFilePath  string
	JournalDBPath string
	Job           engine.Status
}

// New constructs a daemon around an engine.
func New(cfg *config.Config, eng *engine.Engine, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || eng == nil {
		return nil, errors.New("daemon requires config and engine")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	stateDir, err := config.ExpandPath(cfg.Paths.StateDir)
	if err != nil {
		return nil, fmt.Errorf("resolve state dir: %w", err)
	}
	lockPath := filepath.Join(stateDir, "tabtidyd.lock")
	d := &Daemon{
		cfg:      cfg,
		engine:   eng,
		logger:   logger,
		notifier: notifications.NewService(cfg),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	eng.Bus().Subscribe(d.notifyTerminal)
	return d, nil
}

// notifyTerminal forwards terminal progress events to the notifier.
// Delivery happens off the publishing goroutine so a slow ntfy
// endpoint never stalls a job.
func (d *Daemon) notifyTerminal(event progress.Event) {
	var send func(context.Context) error
	switch {
	case event.Type == progress.EventComplete && event.Phase == string(engine.PhaseUndoComplete):
		send = func(ctx context.Context) error {
			return d.notifier.NotifyUndoComplete(ctx, event.Message)
		}
	case event.Type == progress.EventComplete:
		send = func(ctx context.Context) error {
			return d.notifier.NotifyJobComplete(ctx, event.Message)
		}
	case event.Type == progress.EventError:
		send = func(ctx context.Context) error {
			return d.notifier.NotifyError(ctx, event.Message)
		}
	default:
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := send(ctx); err != nil {
			d.logger.Warn("notification delivery failed", logging.Error(err))
		}
	}()
}

// Start acquires the daemon lock and begins polling bridge events.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another tabtidy daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	d.running.Store(true)
	d.wg.Add(1)
	go d.pollEvents()

	d.logger.Info("daemon started",
		logging.String("lock", d.lockPath),
		logging.String(logging.FieldEventType, "daemon_start"))
	return nil
}

// Stop halts event polling, cancels any pending automatic trigger, and
// releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	d.cancel()
	d.wg.Wait()
	d.engine.StopAutoTrigger()
	d.running.Store(false)
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.logger.Info("daemon stopped",
		logging.String(logging.FieldEventType, "daemon_stop"))
}

// Engine exposes the wrapped engine.
func (d *Daemon) Engine() *engine.Engine {
	return d.engine
}

// Config exposes the daemon configuration.
func (d *Daemon) Config() *config.Config {
	return d.cfg
}

// TestNotification sends a test message through the configured notifier.
func (d *Daemon) TestNotification(ctx context.Context) error {
	return d.notifier.TestNotification(ctx)
}

// Status reports daemon runtime information.
func (d *Daemon) Status() Status {
	return Status{
		Running:       d.running.Load(),
		PID:           os.Getpid(),
		LockFilePath:  d.lockPath,
		JournalDBPath: d.engine.Store().Path(),
		Job:           d.engine.Status(),
	}
}

// pollEvents feeds bridge lifecycle events into the engine. The bridge
// being temporarily unreachable is tolerated; polling resumes on the
// next tick.
func (d *Daemon) pollEvents() {
	defer d.wg.Done()

	ticker := time.NewTicker(eventPollInterval)
	defer ticker.Stop()

	since := time.Now().UTC()
	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
		}
		events, err := d.engine.Bridge().Events(d.ctx, since)
		if err != nil {
			d.logger.Debug("event poll failed", logging.Error(err))
			continue
		}
		for _, event := range events {
			d.engine.NotifyTabEvent(event)
			if event.At.After(since) {
				since = event.At
			}
		}
	}
}
