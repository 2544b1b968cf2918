package storage

import (
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOverallStatsEmpty(t *testing.T) {
	db := openTestDB(t)

	stats, err := db.GetOverallStats()
	if err != nil {
		t.Fatalf("GetOverallStats() error = %v", err)
	}
	if stats.MacroRuns != 0 || stats.QuickCasts != 0 || stats.AutoCastTicks != 0 {
		t.Errorf("empty db stats = %+v, want zeroes", stats)
	}
}

func TestRecorderCounts(t *testing.T) {
	db := openTestDB(t)
	rec := NewRecorder(db)

	rec.MacroRun("burst", 120*time.Millisecond, false)
	rec.MacroRun("burst", 40*time.Millisecond, true)
	rec.QuickCast("q")
	rec.AutoCastTick("e")
	rec.AutoCastTick("e")
	rec.AutoCastTick("e")
	rec.Close() // flushes the pending ticks

	stats, err := db.GetOverallStats()
	if err != nil {
		t.Fatalf("GetOverallStats() error = %v", err)
	}
	if stats.MacroRuns != 2 {
		t.Errorf("MacroRuns = %d, want 2", stats.MacroRuns)
	}
	if stats.CancelledRuns != 1 {
		t.Errorf("CancelledRuns = %d, want 1", stats.CancelledRuns)
	}
	if stats.QuickCasts != 1 {
		t.Errorf("QuickCasts = %d, want 1", stats.QuickCasts)
	}
	if stats.AutoCastTicks != 3 {
		t.Errorf("AutoCastTicks = %d, want 3", stats.AutoCastTicks)
	}
	if stats.TotalMacroMs != 160 {
		t.Errorf("TotalMacroMs = %d, want 160", stats.TotalMacroMs)
	}
}

func TestDailyStats(t *testing.T) {
	db := openTestDB(t)
	rec := NewRecorder(db)
	rec.MacroRun("burst", time.Millisecond, false)
	rec.QuickCast("q")
	rec.Close()

	daily, err := db.GetDailyStats(7)
	if err != nil {
		t.Fatalf("GetDailyStats() error = %v", err)
	}
	if len(daily) != 1 {
		t.Fatalf("len(daily) = %d, want 1", len(daily))
	}
	if daily[0].MacroRuns != 1 || daily[0].QuickCasts != 1 {
		t.Errorf("daily stats = %+v, want 1 macro run and 1 quick cast", daily[0])
	}
}

func TestRecorderCloseIdempotent(t *testing.T) {
	db := openTestDB(t)
	rec := NewRecorder(db)
	rec.Close()
	rec.Close()
}
