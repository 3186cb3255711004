package engine

import (
	"sync"
	"time"
)

// PausableClock measures play time of a run with pause duration excluded
type PausableClock struct {
	mu sync.RWMutex

	provider TimeProvider

	startTime       time.Time
	pauseStartTime  time.Time     // Zero while not paused
	totalPausedTime time.Duration // Cumulative pause duration of the run
	stopped         bool
	stopTime        time.Time
}

// NewPausableClock creates a clock that reads time from provider
// The clock is stopped until Reset is called
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	now := provider.Now()
	return &PausableClock{
		provider:  provider,
		startTime: now,
		stopped:   true,
		stopTime:  now,
	}
}

// Reset starts a new run at the current time
func (pc *PausableClock) Reset() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.startTime = pc.provider.Now()
	pc.pauseStartTime = time.Time{}
	pc.totalPausedTime = 0
	pc.stopped = false
	pc.stopTime = time.Time{}
}

// Pause freezes play time
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.stopped || !pc.pauseStartTime.IsZero() {
		return
	}
	pc.pauseStartTime = pc.provider.Now()
}

// Resume continues play time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.stopped || pc.pauseStartTime.IsZero() {
		return
	}
	pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
}

// Stop freezes the clock at the end of a run
func (pc *PausableClock) Stop() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.stopped {
		return
	}
	now := pc.provider.Now()
	if !pc.pauseStartTime.IsZero() {
		pc.totalPausedTime += now.Sub(pc.pauseStartTime)
		pc.pauseStartTime = time.Time{}
	}
	pc.stopped = true
	pc.stopTime = now
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return !pc.pauseStartTime.IsZero()
}

// Elapsed returns play time of the current run
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	end := pc.provider.Now()
	switch {
	case pc.stopped:
		end = pc.stopTime
	case !pc.pauseStartTime.IsZero():
		end = pc.pauseStartTime
	}

	elapsed := end.Sub(pc.startTime) - pc.totalPausedTime
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
