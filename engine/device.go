package engine

import (
	"sync"
	"time"

	"github.com/nguongthienTieu/macro-imba/input"
)

// settleDelay is the pause between press and release of a tapped key, long
// enough for the target application to register the transition.
const settleDelay = 10 * time.Millisecond

// device serializes all access to the shared injector. Every concurrent
// activity (macro sequences, auto-cast timers, quick-cast dispatch) goes
// through it, so a press/release pair from one activity cannot interleave
// with another's call for the same key. The mutex is held only for the
// individual press, release or click, never across a wait.
type device struct {
	mu  sync.Mutex
	inj input.Injector
}

func newDevice(inj input.Injector) *device {
	return &device{inj: inj}
}

func (d *device) press(key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inj.Press(key)
}

func (d *device) release(key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inj.Release(key)
}

func (d *device) click(button input.Button, x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inj.Click(button, x, y)
}

func (d *device) cursorPos() (int, int) {
	return d.inj.CursorPos()
}

// tap emits a press+release pair with the settle delay between them. The
// release is attempted even when the press fails, so a half-registered
// press cannot leave the key stuck down.
func (d *device) tap(key string) error {
	pressErr := d.press(key)
	time.Sleep(settleDelay)
	releaseErr := d.release(key)
	if pressErr != nil {
		return pressErr
	}
	return releaseErr
}
