package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nguongthienTieu/macro-imba/config"
)

func newTestSequencer() (*Sequencer, *fakeInjector) {
	inj := newFakeInjector()
	return newSequencer(newDevice(inj)), inj
}

func TestSequencerKeyPress(t *testing.T) {
	seq, inj := newTestSequencer()

	err := seq.Run(context.Background(), []config.Action{
		{Type: config.ActionKeyPress, Key: "q"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"press:q", "release:q"}
	got := inj.callLog()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("device calls = %v, want %v", got, want)
	}
}

func TestSequencerEmpty(t *testing.T) {
	seq, inj := newTestSequencer()

	if err := seq.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls := inj.callLog(); len(calls) != 0 {
		t.Errorf("device calls = %v, want none", calls)
	}
}

func TestSequencerComboOrder(t *testing.T) {
	seq, inj := newTestSequencer()

	err := seq.Run(context.Background(), []config.Action{
		{Type: config.ActionCombo, Keys: []string{"a", "b", "c"}},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"press:a", "press:b", "press:c", "release:c", "release:b", "release:a"}
	got := inj.callLog()
	if len(got) != len(want) {
		t.Fatalf("device calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSequencerComboCancelledReleasesPressed(t *testing.T) {
	seq, inj := newTestSequencer()

	ctx, cancel := context.WithCancel(context.Background())
	inj.onPress = func(key string) {
		if key == "b" {
			cancel()
		}
	}

	err := seq.Run(ctx, []config.Action{
		{Type: config.ActionCombo, Keys: []string{"a", "b", "c"}},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}

	want := []string{"press:a", "press:b", "release:b", "release:a"}
	got := inj.callLog()
	if len(got) != len(want) {
		t.Fatalf("device calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSequencerKeyHoldCancelReleasesOnce(t *testing.T) {
	seq, inj := newTestSequencer()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := seq.Run(ctx, []config.Action{
		{Type: config.ActionKeyHold, Key: "x", DurationMS: 5000},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation took %v, want prompt return", elapsed)
	}

	if n := inj.count("release:x"); n != 1 {
		t.Errorf("release:x count = %d, want exactly 1", n)
	}
}

func TestSequencerDelayCancel(t *testing.T) {
	seq, _ := newTestSequencer()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := seq.Run(ctx, []config.Action{
		{Type: config.ActionDelay, DelayMS: 5000},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation took %v, want prompt return", elapsed)
	}
}

func TestSequencerZeroDurations(t *testing.T) {
	seq, inj := newTestSequencer()

	start := time.Now()
	err := seq.Run(context.Background(), []config.Action{
		{Type: config.ActionKeyHold, Key: "q", DurationMS: 0},
		{Type: config.ActionDelay, DelayMS: 0},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero-duration actions took %v, want near-instant", elapsed)
	}

	want := []string{"press:q", "release:q"}
	got := inj.callLog()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("device calls = %v, want %v", got, want)
	}
}

func TestSequencerPressFailureStillReleases(t *testing.T) {
	seq, inj := newTestSequencer()
	inj.failPress = map[string]bool{"q": true}

	err := seq.Run(context.Background(), []config.Action{
		{Type: config.ActionKeyPress, Key: "q"},
		{Type: config.ActionKeyPress, Key: "w"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v, device failures must not abort the sequence", err)
	}

	want := []string{"press:q", "release:q", "press:w", "release:w"}
	got := inj.callLog()
	if len(got) != len(want) {
		t.Fatalf("device calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSequencerMouseClickReadsCursorAtRunTime(t *testing.T) {
	seq, inj := newTestSequencer()
	inj.setCursor(42, 17)

	err := seq.Run(context.Background(), []config.Action{
		{Type: config.ActionMouseClick, Button: "right"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "click:right@42,17"
	got := inj.callLog()
	if len(got) != 1 || got[0] != want {
		t.Errorf("device calls = %v, want [%s]", got, want)
	}
}

func TestSequencerDefaultsClickButtonToLeft(t *testing.T) {
	seq, inj := newTestSequencer()

	if err := seq.Run(context.Background(), []config.Action{{Type: config.ActionMouseClick}}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := inj.callLog()
	if len(got) != 1 || got[0] != "click:left@0,0" {
		t.Errorf("device calls = %v, want [click:left@0,0]", got)
	}
}
