package engine

import "time"

// Recorder observes engine activity for run-history purposes. Calls arrive
// from dispatch and timer goroutines and must return quickly; failures are
// the implementation's to log.
type Recorder interface {
	MacroRun(name string, duration time.Duration, cancelled bool)
	QuickCast(key string)
	AutoCastTick(key string)
}

type noopRecorder struct{}

func (noopRecorder) MacroRun(string, time.Duration, bool) {}
func (noopRecorder) QuickCast(string)                     {}
func (noopRecorder) AutoCastTick(string)                  {}
