package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/vi-snake/core"
)

// Ticker delivers ticks on C until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker with the given period
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// NewRealTicker wraps time.NewTicker
func NewRealTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

// SimulationClock fires advancement ticks at a fixed interval
// Every Start opens a new generation; ticks of an older generation are
// delivered with their stale number so the receiver can drop them
type SimulationClock struct {
	mu sync.Mutex

	newTicker TickerFactory
	onTick    func(generation uint64)

	interval   time.Duration
	generation uint64
	running    bool
	stopChan   chan struct{}

	wg sync.WaitGroup
}

// NewSimulationClock creates a stopped clock calling onTick on every tick
func NewSimulationClock(factory TickerFactory, onTick func(generation uint64)) *SimulationClock {
	if factory == nil {
		factory = NewRealTicker
	}
	return &SimulationClock{
		newTicker: factory,
		onTick:    onTick,
	}
}

// Start begins ticking at interval
// Starting a running clock with the same interval is a no-op, a different
// interval restarts it so the new period applies from the next cycle
func (c *SimulationClock) Start(interval time.Duration) {
	if interval <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		if c.interval == interval {
			return
		}
		c.stopLocked()
	}

	c.generation++
	c.interval = interval
	c.running = true
	c.stopChan = make(chan struct{})

	ticker := c.newTicker(interval)
	c.wg.Add(1)
	generation, stop := c.generation, c.stopChan
	core.Go(func() { c.loop(ticker, generation, stop) })
}

// Stop halts ticking and invalidates any tick already in flight
// Stopping a stopped clock is a no-op
func (c *SimulationClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *SimulationClock) stopLocked() {
	if !c.running {
		return
	}
	c.running = false
	c.generation++
	close(c.stopChan)
}

// Wait blocks until every tick goroutine has exited
// Must not be called while holding a lock that onTick acquires
func (c *SimulationClock) Wait() {
	c.wg.Wait()
}

// Generation returns the number identifying the current run
func (c *SimulationClock) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// IsRunning reports whether the clock is ticking
func (c *SimulationClock) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Interval returns the period of the current or last run
func (c *SimulationClock) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

func (c *SimulationClock) loop(t Ticker, generation uint64, stop <-chan struct{}) {
	defer c.wg.Done()
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C():
			// Stop may race the tick, stop wins
			select {
			case <-stop:
				return
			default:
			}
			if c.onTick != nil {
				c.onTick(generation)
			}
		}
	}
}
