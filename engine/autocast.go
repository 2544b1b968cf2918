package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nguongthienTieu/macro-imba/config"
)

// Supervisor owns one recurring caster per active auto-cast entry. An entry
// is active while the global enabled flag, the auto_cast enabled flag and
// its presence in configuration all hold; Reconcile is called whenever any
// of those may have changed.
type Supervisor struct {
	dev *device
	rec Recorder

	mu      sync.Mutex
	casters map[string]*caster
}

// caster is the per-entry timer. A tick is a full press+release pair, so
// halting between ticks never leaves a key down; halting joins the
// goroutine, so no tick lands after the caster is stopped.
type caster struct {
	key      string
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func newSupervisor(dev *device, rec Recorder) *Supervisor {
	return &Supervisor{
		dev:     dev,
		rec:     rec,
		casters: make(map[string]*caster),
	}
}

// Reconcile brings the running caster set in line with the configuration
// and the enabled flag. Removed or disabled entries are stopped; retimed
// entries are restarted, so an interval change takes effect at the next
// scheduled tick.
func (s *Supervisor) Reconcile(cfg *config.Config, enabled bool) {
	want := make(map[string]time.Duration)
	if enabled && cfg.AutoCast.Enabled {
		for _, skill := range cfg.AutoCast.Skills {
			want[skill.Hotkey] = millis(cfg.AutoCast.Interval(skill))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, c := range s.casters {
		if interval, ok := want[key]; !ok || interval != c.interval {
			c.halt()
			delete(s.casters, key)
			slog.Info("Auto-cast stopped", "key", key)
		}
	}

	for key, interval := range want {
		if _, ok := s.casters[key]; ok {
			continue
		}
		c := &caster{
			key:      key,
			interval: interval,
			stop:     make(chan struct{}),
			done:     make(chan struct{}),
		}
		s.casters[key] = c
		go s.run(c)
		slog.Info("Auto-cast started", "key", key, "interval", interval)
	}
}

// Stop halts every caster and waits for the goroutines to exit.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, c := range s.casters {
		c.halt()
		delete(s.casters, key)
	}
}

// run is the caster goroutine: a fixed-period ticker, one press+release
// pair per tick. If a tick overruns its period the following ticks shift by
// the overrun; missed ticks are not made up.
func (s *Supervisor) run(c *caster) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if err := s.dev.tap(c.key); err != nil {
				slog.Warn("Auto-cast press failed", "key", c.key, "error", err)
			}
			s.rec.AutoCastTick(c.key)
		}
	}
}

func (c *caster) halt() {
	close(c.stop)
	<-c.done
}
