package storage

import (
	"log/slog"
	"sync"
	"time"
)

// Run kinds as stored in the runs table.
const (
	KindMacro     = "macro"
	KindQuickCast = "quick_cast"
	KindAutoCast  = "auto_cast"
)

// Recorder persists engine activity. Macro runs and quick-casts are written
// per event; auto-cast ticks arrive many times a second, so they are
// counted in memory and flushed in batches. Storage failures are logged and
// never reach the dispatch path.
type Recorder struct {
	db *DB

	mu    sync.Mutex
	ticks map[string]int

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

const tickFlushInterval = 30 * time.Second

// NewRecorder creates a recorder writing to db and starts its flush loop.
func NewRecorder(db *DB) *Recorder {
	r := &Recorder{
		db:    db,
		ticks: make(map[string]int),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go r.flushLoop()
	return r
}

// MacroRun records one completed or cancelled macro sequence.
func (r *Recorder) MacroRun(name string, duration time.Duration, cancelled bool) {
	r.insert(KindMacro, name, duration.Milliseconds(), cancelled, 1)
}

// QuickCast records one quick-cast click.
func (r *Recorder) QuickCast(key string) {
	r.insert(KindQuickCast, key, 0, false, 1)
}

// AutoCastTick counts one auto-cast press for the next flush.
func (r *Recorder) AutoCastTick(key string) {
	r.mu.Lock()
	r.ticks[key]++
	r.mu.Unlock()
}

// Close flushes pending tick counts and stops the flush loop.
func (r *Recorder) Close() {
	r.stopOnce.Do(func() {
		close(r.stop)
		<-r.done
		r.flushTicks()
	})
}

func (r *Recorder) insert(kind, name string, durationMS int64, cancelled bool, count int) {
	_, err := r.db.conn.Exec(
		`INSERT INTO runs (kind, name, duration_ms, cancelled, count) VALUES (?, ?, ?, ?, ?)`,
		kind, name, durationMS, cancelled, count,
	)
	if err != nil {
		slog.Warn("Failed to record run", "kind", kind, "name", name, "error", err)
	}
}

func (r *Recorder) flushLoop() {
	defer close(r.done)

	ticker := time.NewTicker(tickFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.flushTicks()
		}
	}
}

// flushTicks writes one row per key counted since the last flush.
func (r *Recorder) flushTicks() {
	r.mu.Lock()
	pending := r.ticks
	r.ticks = make(map[string]int)
	r.mu.Unlock()

	for key, count := range pending {
		r.insert(KindAutoCast, key, 0, false, count)
	}
}
