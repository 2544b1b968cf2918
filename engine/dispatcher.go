package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nguongthienTieu/macro-imba/config"
	"github.com/nguongthienTieu/macro-imba/input"
)

type bindingKind int

const (
	bindQuickCast bindingKind = iota
	bindMacro
)

// binding is what a hotkey resolves to. Auto-cast entries are deliberately
// absent: their activation is driven by configuration state, not triggers.
type binding struct {
	kind    bindingKind
	macro   string
	actions []config.Action
}

// Dispatcher routes incoming trigger events: the global toggle is consumed
// first, everything else is dropped while the engine is disabled, quick-cast
// hotkeys click at the cursor, macro hotkeys start a sequence unless the
// same macro is already in flight.
type Dispatcher struct {
	dev *device
	seq *Sequencer
	rec Recorder

	enabled *atomic.Bool
	toggle  func()

	mu        sync.Mutex
	bindings  map[string]binding
	toggleKey string
	toggleOn  bool
	suppress  bool
	running   map[string]context.CancelFunc
	wg        sync.WaitGroup

	overlaps atomic.Int64
}

func newDispatcher(dev *device, seq *Sequencer, enabled *atomic.Bool, toggle func(), rec Recorder) *Dispatcher {
	return &Dispatcher{
		dev:      dev,
		seq:      seq,
		rec:      rec,
		enabled:  enabled,
		toggle:   toggle,
		bindings: make(map[string]binding),
		running:  make(map[string]context.CancelFunc),
	}
}

// Rebind atomically replaces the hotkey table from a validated
// configuration.
func (d *Dispatcher) Rebind(cfg *config.Config) {
	bindings := make(map[string]binding)
	if cfg.QuickCast.Enabled {
		for _, key := range cfg.QuickCast.Hotkeys {
			bindings[key] = binding{kind: bindQuickCast}
		}
	}
	for _, m := range cfg.Macros {
		actions := make([]config.Action, len(m.Actions))
		copy(actions, m.Actions)
		bindings[m.Hotkey] = binding{kind: bindMacro, macro: m.Name, actions: actions}
	}

	d.mu.Lock()
	d.bindings = bindings
	d.toggleKey = cfg.GlobalHotkey
	d.toggleOn = cfg.ToggleEnabled
	d.suppress = cfg.QuickCast.SuppressKey
	d.mu.Unlock()
}

// HandleEvent is the Source callback. It returns true when the event should
// be swallowed by capture layers that support it. The synchronous part is
// just the lookup and the decision; sequence bodies run on their own
// goroutine.
func (d *Dispatcher) HandleEvent(key string, edge input.Edge) bool {
	if edge != input.Down {
		return false
	}

	d.mu.Lock()
	toggleKey, toggleOn, suppress := d.toggleKey, d.toggleOn, d.suppress
	b, bound := d.bindings[key]
	d.mu.Unlock()

	// The toggle works regardless of the enabled state and is never
	// forwarded to other handlers.
	if toggleOn && key == toggleKey {
		d.toggle()
		return true
	}

	if !d.enabled.Load() || !bound {
		return false
	}

	switch b.kind {
	case bindQuickCast:
		x, y := d.dev.cursorPos()
		if err := d.dev.click(input.ButtonLeft, x, y); err != nil {
			slog.Warn("Quick-cast click failed", "key", key, "error", err)
		}
		d.rec.QuickCast(key)
		return suppress

	case bindMacro:
		d.startMacro(b)
	}

	return false
}

// startMacro launches the macro's sequence unless one with the same name is
// already running, in which case the trigger is dropped.
func (d *Dispatcher) startMacro(b binding) {
	d.mu.Lock()
	if _, busy := d.running[b.macro]; busy {
		d.mu.Unlock()
		d.overlaps.Add(1)
		slog.Debug("Macro already running, trigger ignored", "macro", b.macro)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.running[b.macro] = cancel
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer cancel()

		start := time.Now()
		err := d.seq.Run(ctx, b.actions)
		cancelled := errors.Is(err, context.Canceled)
		if cancelled {
			slog.Info("Macro cancelled", "macro", b.macro)
		} else {
			slog.Debug("Macro completed", "macro", b.macro, "duration", time.Since(start))
		}
		d.rec.MacroRun(b.macro, time.Since(start), cancelled)

		d.mu.Lock()
		delete(d.running, b.macro)
		d.mu.Unlock()
	}()
}

// CancelAll cancels every in-flight sequence and waits for them to unwind,
// up to grace. It reports false if something outlived the grace period.
func (d *Dispatcher) CancelAll(grace time.Duration) bool {
	d.mu.Lock()
	for _, cancel := range d.running {
		cancel()
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// OverlapCount reports how many macro triggers were dropped because the
// same macro was still running.
func (d *Dispatcher) OverlapCount() int64 {
	return d.overlaps.Load()
}
