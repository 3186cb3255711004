package engine

import (
	"math/rand"
	"sync"
)

// GameConfig wires a Game to its collaborators
type GameConfig struct {
	Engine EngineConfig

	// Store persists the best score, nil keeps it in memory only
	Store ScoreStore

	// Sinks receive events after each tick and command
	Sinks []EventSink

	// Tickers drives the simulation clock, nil uses real tickers
	Tickers TickerFactory

	// Time measures play time, nil uses the monotonic clock
	Time TimeProvider

	// Rand seeds food placement, nil picks a random seed
	Rand *rand.Rand

	// OnSnapshot is called with every published snapshot while the game
	// lock is held; it must not call back into Game
	OnSnapshot func(Snapshot)
}

// Game is the command surface around SnakeEngine
// A single mutex orders clock ticks and commands, so a step never observes
// a half-applied command
type Game struct {
	mu sync.Mutex

	engine    *SnakeEngine
	clock     *SimulationClock
	play      *PausableClock
	persister *scorePersister

	sinks      []EventSink
	onSnapshot func(Snapshot)
	snapshots  chan Snapshot

	closed bool
}

// NewGame builds a game in PhaseNotStarted
// The persisted high score is read once here
func NewGame(cfg GameConfig) *Game {
	if stored := LoadHighScore(cfg.Store); stored > cfg.Engine.HighScore {
		cfg.Engine.HighScore = stored
	}

	g := &Game{
		engine:     NewSnakeEngine(cfg.Engine, cfg.Rand),
		play:       NewPausableClock(cfg.Time),
		persister:  newScorePersister(cfg.Store),
		sinks:      cfg.Sinks,
		onSnapshot: cfg.OnSnapshot,
		snapshots:  make(chan Snapshot, 1),
	}
	g.clock = NewSimulationClock(cfg.Tickers, g.handleTick)
	return g
}

// Snapshots returns a channel holding the latest published snapshot
// Stale snapshots are dropped when the reader falls behind
// The channel is closed by Close
func (g *Game) Snapshots() <-chan Snapshot {
	return g.snapshots
}

// Snapshot returns the current state
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// Phase returns the current lifecycle phase
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.Phase()
}

// Start begins the first run, only valid before any run
func (g *Game) Start() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false
	}
	if g.engine.Phase() != PhaseNotStarted {
		g.publish(g.snapshotLocked())
		return false
	}
	g.beginRunLocked()
	return true
}

// Restart begins a new run after game over
func (g *Game) Restart() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false
	}
	if g.engine.Phase() != PhaseOver {
		g.publish(g.snapshotLocked())
		return false
	}
	g.beginRunLocked()
	return true
}

func (g *Game) beginRunLocked() {
	g.engine.Reset()
	g.play.Reset()
	g.clock.Start(g.engine.Difficulty().TickInterval())

	snap := g.snapshotLocked()
	g.emit(EventPhase, snap)
	g.publish(snap)
}

// SetDifficulty changes difficulty, only valid before start or after game over
func (g *Game) SetDifficulty(d Difficulty) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false
	}
	ok := g.engine.SetDifficulty(d)
	g.publish(g.snapshotLocked())
	return ok
}

// SetDirection buffers a turn for the next tick
func (g *Game) SetDirection(d Direction) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false
	}
	ok := g.engine.SetDirection(d)
	g.publish(g.snapshotLocked())
	return ok
}

// TogglePause pauses or resumes a run and returns the resulting phase
func (g *Game) TogglePause() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()

	before := g.engine.Phase()
	if g.closed {
		return before
	}

	after := g.engine.TogglePause()
	switch {
	case before == PhaseRunning && after == PhasePaused:
		g.clock.Stop()
		g.play.Pause()
	case before == PhasePaused && after == PhaseRunning:
		g.play.Resume()
		g.clock.Start(g.engine.Difficulty().TickInterval())
	}

	snap := g.snapshotLocked()
	if before != after {
		g.emit(EventPhase, snap)
	}
	g.publish(snap)
	return after
}

// VisibilityChanged reacts to the host being hidden or shown
// Hiding a running game pauses it; showing it again does not resume
func (g *Game) VisibilityChanged(visible bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}

	snap := g.snapshotLocked()
	if !visible && g.engine.Pause() {
		g.clock.Stop()
		g.play.Pause()
		snap = g.snapshotLocked()
		g.emit(EventPhase, snap)
	}
	g.publish(snap)
}

// Resize installs new field bounds measured by the layout
// Placed cells keep their coordinates
func (g *Game) Resize(width, height int) Field {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return g.engine.Field()
	}
	f := g.engine.SetField(width, height)
	g.publish(g.snapshotLocked())
	return f
}

// Close stops the clock, flushes the high score and closes Snapshots
func (g *Game) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.clock.Stop()
	g.play.Stop()
	close(g.snapshots)
	g.mu.Unlock()

	// Tick goroutines may be waiting on g.mu, join outside the lock
	g.clock.Wait()
	g.persister.Close()
}

// handleTick is the clock callback
func (g *Game) handleTick(generation uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || generation != g.clock.Generation() {
		return
	}

	res := g.engine.Step()
	if !res.Advanced && !res.Crashed {
		return
	}

	if res.Crashed {
		g.clock.Stop()
		g.play.Stop()
	}

	snap := res.Snapshot
	snap.Elapsed = g.play.Elapsed()

	if res.Advanced {
		g.emit(EventTick, snap)
	}
	if res.Ate {
		g.emit(EventAte, snap)
	}
	if res.NewHighScore {
		g.persister.Save(snap.HighScore)
		g.emit(EventHighScore, snap)
	}
	if res.Crashed {
		g.emit(EventCrash, snap)
	}
	g.publish(snap)
}

func (g *Game) snapshotLocked() Snapshot {
	snap := g.engine.Snapshot()
	snap.Elapsed = g.play.Elapsed()
	return snap
}

func (g *Game) emit(t EventType, snap Snapshot) {
	ev := Event{Type: t, Snapshot: snap}
	for _, s := range g.sinks {
		if s != nil {
			s.HandleEvent(ev)
		}
	}
}

// publish replaces any unread snapshot with snap
func (g *Game) publish(snap Snapshot) {
	if g.onSnapshot != nil {
		g.onSnapshot(snap)
	}
	for {
		select {
		case g.snapshots <- snap:
			return
		default:
		}
		select {
		case <-g.snapshots:
		default:
		}
	}
}
