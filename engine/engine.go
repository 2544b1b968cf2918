package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nguongthienTieu/macro-imba/config"
	"github.com/nguongthienTieu/macro-imba/input"
)

// shutdownGrace bounds how long Shutdown and LoadConfig wait for in-flight
// sequences to unwind before proceeding anyway.
const shutdownGrace = 2 * time.Second

// Engine is the single object front ends talk to: load a configuration,
// flip the enabled flag, shut down. It owns the shared device, the trigger
// dispatcher and the auto-cast supervisor; all mutation funnels through its
// serialized entry points.
//
// A new engine starts disabled. Loading a configuration never changes the
// enabled flag; only SetEnabled and the global toggle hotkey do.
type Engine struct {
	dev  *device
	seq  *Sequencer
	disp *Dispatcher
	sup  *Supervisor
	src  input.Source
	rec  Recorder

	enabled atomic.Bool

	mu       sync.Mutex
	cfg      *config.Config
	shutdown bool
	stopOnce sync.Once
}

// New validates cfg and builds an engine around the given injector and
// trigger source. The recorder may be nil.
func New(cfg *config.Config, inj input.Injector, src input.Source, rec Recorder) (*Engine, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if rec == nil {
		rec = noopRecorder{}
	}

	e := &Engine{
		dev: newDevice(inj),
		src: src,
		rec: rec,
		cfg: cfg,
	}
	e.seq = newSequencer(e.dev)
	e.sup = newSupervisor(e.dev, rec)
	e.disp = newDispatcher(e.dev, e.seq, &e.enabled, e.toggle, rec)
	e.disp.Rebind(cfg)

	return e, nil
}

// Start subscribes to the trigger source and begins dispatching.
func (e *Engine) Start() error {
	if err := e.src.Subscribe(e.disp.HandleEvent); err != nil {
		return fmt.Errorf("failed to subscribe to trigger source: %w", err)
	}
	return nil
}

// LoadConfig atomically replaces the active configuration. On validation
// failure the previous configuration stays fully in effect and a
// *ConfigError is returned. On success, in-flight sequences are cancelled,
// the hotkey table is rebuilt and the auto-cast timer set reconciled before
// the call returns.
func (e *Engine) LoadConfig(cfg *config.Config) error {
	if err := validate(cfg); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return fmt.Errorf("engine is shut down")
	}

	if !e.disp.CancelAll(shutdownGrace) {
		slog.Warn("Some sequences did not stop within the grace period")
	}

	e.cfg = cfg
	e.disp.Rebind(cfg)
	e.sup.Reconcile(cfg, e.enabled.Load())
	slog.Info("Configuration applied",
		"macros", len(cfg.Macros),
		"auto_cast_skills", len(cfg.AutoCast.Skills),
		"quick_cast", cfg.QuickCast.Enabled)
	return nil
}

// SetEnabled flips the global enabled flag and reconciles the auto-cast
// timers. Disabling does not cancel sequences already in flight; new
// triggers are simply dropped.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return
	}

	if e.enabled.Swap(enabled) == enabled {
		return
	}
	slog.Info("Macro engine", "enabled", enabled)
	e.sup.Reconcile(e.cfg, enabled)
}

// Enabled reports the global enabled flag.
func (e *Engine) Enabled() bool {
	return e.enabled.Load()
}

// toggle is the global-hotkey path; it runs on the dispatch goroutine.
func (e *Engine) toggle() {
	e.SetEnabled(!e.enabled.Load())
}

// OverlapCount reports how many macro triggers were suppressed because the
// same macro was still running.
func (e *Engine) OverlapCount() int64 {
	return e.disp.OverlapCount()
}

// Shutdown releases the trigger subscription, cancels every in-flight
// sequence and stops every auto-cast timer. It blocks until cleanup
// completes or the grace period expires, and is safe to call more than
// once.
func (e *Engine) Shutdown() {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		e.shutdown = true
		e.mu.Unlock()

		// The mutex is not held here: the dispatch goroutine may be
		// blocked on it inside the toggle path, and Close waits for
		// that goroutine to drain.
		if err := e.src.Close(); err != nil {
			slog.Warn("Failed to close trigger source", "error", err)
		}
		if !e.disp.CancelAll(shutdownGrace) {
			slog.Warn("Some sequences did not stop within the grace period")
		}
		e.sup.Stop()
		e.enabled.Store(false)
		slog.Info("Macro engine stopped")
	})
}
