package engine

import (
	"sync"
	"time"
)

// ManualTicker is a Ticker driven by explicit Fire calls, for tests
type ManualTicker struct {
	ch       chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
	interval time.Duration
}

// NewManualTicker creates a ticker that only ticks on Fire
func NewManualTicker(d time.Duration) *ManualTicker {
	return &ManualTicker{
		ch:       make(chan time.Time),
		stopped:  make(chan struct{}),
		interval: d,
	}
}

func (m *ManualTicker) C() <-chan time.Time { return m.ch }

func (m *ManualTicker) Stop() {
	m.stopOnce.Do(func() { close(m.stopped) })
}

// Fire hands one tick to the receiver, false if the ticker was stopped first
func (m *ManualTicker) Fire() bool {
	select {
	case <-m.stopped:
		return false
	default:
	}
	select {
	case m.ch <- time.Now():
		return true
	case <-m.stopped:
		return false
	}
}

// Stopped reports whether Stop was called
func (m *ManualTicker) Stopped() bool {
	select {
	case <-m.stopped:
		return true
	default:
		return false
	}
}

// Interval returns the period the ticker was created with
func (m *ManualTicker) Interval() time.Duration {
	return m.interval
}

// ManualTickerFactory records every ticker it creates
type ManualTickerFactory struct {
	mu      sync.Mutex
	tickers []*ManualTicker
}

// New satisfies TickerFactory
func (f *ManualTickerFactory) New(d time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := NewManualTicker(d)
	f.tickers = append(f.tickers, t)
	return t
}

// Last returns the most recently created ticker, nil if none
func (f *ManualTickerFactory) Last() *ManualTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tickers) == 0 {
		return nil
	}
	return f.tickers[len(f.tickers)-1]
}

// Count returns how many tickers were created
func (f *ManualTickerFactory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

// ManualClock is a TimeProvider that only moves on Advance, for tests
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts the clock at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
