package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/nguongthienTieu/macro-imba/config"
	"github.com/nguongthienTieu/macro-imba/input"
)

// Sequencer executes one ordered action list against the shared device. It
// holds no state of its own; each Run owns only its context and whatever
// keys it pressed, and it guarantees those keys are released before it
// returns, cancelled or not.
type Sequencer struct {
	dev *device
}

func newSequencer(dev *device) *Sequencer {
	return &Sequencer{dev: dev}
}

// Run executes actions strictly in order. It returns nil on completion and
// ctx's error on cancellation. Device failures are logged and the sequence
// moves on; they never abort the run, and a failed press still gets its
// release attempt.
func (s *Sequencer) Run(ctx context.Context, actions []config.Action) error {
	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.step(ctx, action); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// step performs one action. The returned error is only ever a cancellation;
// by the time step returns, no key pressed by it is still down.
func (s *Sequencer) step(ctx context.Context, a config.Action) error {
	switch a.Type {
	case config.ActionKeyPress:
		if err := s.dev.tap(a.Key); err != nil {
			slog.Warn("Key press failed", "key", a.Key, "error", err)
		}

	case config.ActionKeyHold:
		if err := s.dev.press(a.Key); err != nil {
			slog.Warn("Key press failed", "key", a.Key, "error", err)
		}
		waitErr := sleepCtx(ctx, millis(a.DurationMS))
		if err := s.dev.release(a.Key); err != nil {
			slog.Warn("Key release failed", "key", a.Key, "error", err)
		}
		return waitErr

	case config.ActionMouseClick:
		// Cursor position is read at execution time, not when the
		// sequence was scheduled.
		x, y := s.dev.cursorPos()
		button := input.Button(a.Button)
		if button == "" {
			button = input.ButtonLeft
		}
		if err := s.dev.click(button, x, y); err != nil {
			slog.Warn("Mouse click failed", "button", button, "error", err)
		}

	case config.ActionDelay:
		return sleepCtx(ctx, millis(a.DelayMS))

	case config.ActionCombo:
		return s.combo(ctx, a.Keys)

	default:
		slog.Warn("Unknown action type, skipping", "type", a.Type)
	}

	return ctx.Err()
}

// combo presses the keys in listed order with no delay between presses,
// then releases them in reverse order. If cancelled mid-combo, whatever was
// already pressed is released before returning.
func (s *Sequencer) combo(ctx context.Context, keys []string) error {
	pressed := make([]string, 0, len(keys))
	for _, key := range keys {
		if ctx.Err() != nil {
			break
		}
		if err := s.dev.press(key); err != nil {
			slog.Warn("Combo press failed", "key", key, "error", err)
		}
		pressed = append(pressed, key)
	}

	for i := len(pressed) - 1; i >= 0; i-- {
		if err := s.dev.release(pressed[i]); err != nil {
			slog.Warn("Combo release failed", "key", pressed[i], "error", err)
		}
	}

	return ctx.Err()
}

// sleepCtx waits for d or until ctx is cancelled. Zero and negative
// durations return immediately.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
