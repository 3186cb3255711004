package engine

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/vi-snake/constants"
)

// fakeStore is an in-memory ScoreStore with injectable failures
type fakeStore struct {
	mu     sync.Mutex
	values map[string]int
	getErr error
	setErr error
	sets   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]int)}
}

func (s *fakeStore) Get(key string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return 0, false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeStore) Set(key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *fakeStore) value(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// eventLog records events and forwards them without blocking the game
type eventLog struct {
	mu     sync.Mutex
	events []Event
	ch     chan Event
}

func newEventLog() *eventLog {
	return &eventLog{ch: make(chan Event, 64)}
}

func (l *eventLog) HandleEvent(ev Event) {
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
	select {
	case l.ch <- ev:
	default:
	}
}

func (l *eventLog) count(t EventType) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, ev := range l.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// await blocks until an event of one of the given types arrives
func (l *eventLog) await(t *testing.T, types ...EventType) Event {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case ev := <-l.ch:
			for _, want := range types {
				if ev.Type == want {
					return ev
				}
			}
		case <-timeout:
			t.Fatalf("Timed out waiting for %v", types)
			return Event{}
		}
	}
}

type testGame struct {
	*Game
	tickers *ManualTickerFactory
	events  *eventLog
	time    *ManualClock
}

func newTestGame(t *testing.T, store ScoreStore) *testGame {
	t.Helper()
	tg := &testGame{
		tickers: &ManualTickerFactory{},
		events:  newEventLog(),
		time:    NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	cfg := GameConfig{
		Engine:  DefaultEngineConfig(),
		Sinks:   []EventSink{tg.events},
		Tickers: tg.tickers.New,
		Time:    tg.time,
		Rand:    rand.New(rand.NewSource(1)),
	}
	cfg.Store = store
	tg.Game = NewGame(cfg)
	t.Cleanup(tg.Close)
	return tg
}

// tick fires the active ticker and waits for the resulting step
func (tg *testGame) tick(t *testing.T) Event {
	t.Helper()
	ticker := tg.tickers.Last()
	if ticker == nil {
		t.Fatal("No ticker created")
	}
	if !ticker.Fire() {
		t.Fatal("Ticker stopped")
	}
	return tg.events.await(t, EventTick, EventCrash)
}

// moveFood parks food away from the snake path, or directly ahead when ahead is set
func (tg *testGame) moveFood(ahead bool) {
	tg.mu.Lock()
	defer tg.mu.Unlock()
	if !ahead {
		tg.engine.food = Cell{X: 0, Y: 0}
		return
	}
	head := tg.engine.snake[0]
	dx, dy := tg.engine.pending.Delta()
	g := tg.engine.field.GridSize
	tg.engine.food = Cell{X: head.X + dx*g, Y: head.Y + dy*g}
}

// TestGameStartUsesDifficultyInterval verifies tick period per difficulty
func TestGameStartUsesDifficultyInterval(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		interval   time.Duration
	}{
		{DifficultyEasy, 200 * time.Millisecond},
		{DifficultyMedium, 100 * time.Millisecond},
		{DifficultyHard, 50 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty.String(), func(t *testing.T) {
			g := newTestGame(t, nil)
			if !g.SetDifficulty(tt.difficulty) {
				t.Fatal("SetDifficulty rejected before start")
			}
			if !g.Start() {
				t.Fatal("Start rejected")
			}
			if got := g.tickers.Last().Interval(); got != tt.interval {
				t.Errorf("Interval = %v, want %v", got, tt.interval)
			}
			if g.Phase() != PhaseRunning {
				t.Errorf("Phase = %v, want Running", g.Phase())
			}
		})
	}
}

// TestGameStartOnlyOnce verifies Start and Restart guard their phases
func TestGameStartOnlyOnce(t *testing.T) {
	g := newTestGame(t, nil)

	if g.Restart() {
		t.Error("Restart accepted before Start")
	}
	if !g.Start() {
		t.Fatal("Start rejected")
	}
	if g.Start() {
		t.Error("Second Start accepted")
	}
	if g.Restart() {
		t.Error("Restart accepted while Running")
	}
	if g.tickers.Count() != 1 {
		t.Errorf("Tickers created = %d, want 1", g.tickers.Count())
	}
	if g.events.count(EventPhase) != 1 {
		t.Errorf("Phase events = %d, want 1", g.events.count(EventPhase))
	}
}

// TestGameTickAdvances verifies a clock tick steps the engine
func TestGameTickAdvances(t *testing.T) {
	g := newTestGame(t, nil)
	g.Start()
	g.moveFood(false)
	start := g.Snapshot().Head()

	ev := g.tick(t)
	if ev.Type != EventTick {
		t.Fatalf("Event = %v, want Tick", ev.Type)
	}
	want := Cell{X: start.X + 8, Y: start.Y}
	if ev.Snapshot.Head() != want {
		t.Errorf("Head = %v, want %v", ev.Snapshot.Head(), want)
	}
	if ev.Snapshot.Tick != 1 {
		t.Errorf("Tick = %d, want 1", ev.Snapshot.Tick)
	}

	// Snapshot waits out the tick handler, which publishes after emitting
	g.Snapshot()
	select {
	case snap := <-g.Snapshots():
		if snap.Tick != 1 {
			t.Errorf("Published Tick = %d, want 1", snap.Tick)
		}
	default:
		t.Error("No snapshot published")
	}
}

// TestGameDirectionAppliedOnTick verifies turns take effect at the next step
func TestGameDirectionAppliedOnTick(t *testing.T) {
	g := newTestGame(t, nil)
	g.Start()
	g.moveFood(false)
	start := g.Snapshot().Head()

	if !g.SetDirection(DirUp) {
		t.Fatal("SetDirection(Up) rejected")
	}
	if g.Snapshot().Head() != start {
		t.Error("Head moved before the tick")
	}
	if g.SetDirection(DirLeft) {
		t.Error("Reverse of last move accepted")
	}

	ev := g.tick(t)
	want := Cell{X: start.X, Y: start.Y - 8}
	if ev.Snapshot.Head() != want {
		t.Errorf("Head = %v, want %v", ev.Snapshot.Head(), want)
	}
}

// TestGamePauseStopsClock verifies pause halts ticking and resume restarts it
func TestGamePauseStopsClock(t *testing.T) {
	g := newTestGame(t, nil)
	g.Start()
	g.moveFood(false)
	g.tick(t)
	g.time.Advance(2 * time.Second)

	if got := g.TogglePause(); got != PhasePaused {
		t.Fatalf("TogglePause = %v, want Paused", got)
	}
	g.clock.Wait()
	if g.clock.IsRunning() {
		t.Error("Clock running while paused")
	}
	if g.tickers.Last().Fire() {
		t.Error("Paused ticker accepted a tick")
	}

	frozen := g.Snapshot()
	g.time.Advance(10 * time.Second)
	if got := g.Snapshot().Elapsed; got != 2*time.Second {
		t.Errorf("Elapsed while paused = %v, want 2s", got)
	}

	if got := g.TogglePause(); got != PhaseRunning {
		t.Fatalf("TogglePause = %v, want Running", got)
	}
	if g.tickers.Count() != 2 {
		t.Errorf("Tickers created = %d, want 2", g.tickers.Count())
	}

	ev := g.tick(t)
	want := Cell{X: frozen.Head().X + 8, Y: frozen.Head().Y}
	if ev.Snapshot.Head() != want {
		t.Errorf("Head after resume = %v, want %v", ev.Snapshot.Head(), want)
	}
}

// TestGameStaleTickDropped verifies a tick from a superseded generation is ignored
func TestGameStaleTickDropped(t *testing.T) {
	g := newTestGame(t, nil)
	g.Start()
	stale := g.clock.Generation()

	g.TogglePause()
	g.TogglePause()

	g.handleTick(stale)
	if got := g.Snapshot().Tick; got != 0 {
		t.Errorf("Tick = %d after stale delivery, want 0", got)
	}
}

// TestGameVisibilityAutoPause verifies hiding pauses and showing does not resume
func TestGameVisibilityAutoPause(t *testing.T) {
	g := newTestGame(t, nil)

	g.VisibilityChanged(false)
	if g.Phase() != PhaseNotStarted {
		t.Errorf("Phase = %v, want NotStarted", g.Phase())
	}

	g.Start()
	g.moveFood(false)
	g.tick(t)
	before := g.Snapshot()

	g.VisibilityChanged(false)
	if g.Phase() != PhasePaused {
		t.Fatalf("Phase = %v, want Paused", g.Phase())
	}
	if g.clock.IsRunning() {
		t.Error("Clock running after hide")
	}

	after := g.Snapshot()
	if after.Head() != before.Head() || after.Score != before.Score {
		t.Error("State changed on hide")
	}

	g.VisibilityChanged(true)
	if g.Phase() != PhasePaused {
		t.Errorf("Phase = %v after show, want Paused", g.Phase())
	}

	// A second hide does not emit another phase change
	phases := g.events.count(EventPhase)
	g.VisibilityChanged(false)
	if g.events.count(EventPhase) != phases {
		t.Error("Phase event emitted while already paused")
	}
}

// TestGameCrashStopsClockAndRestarts verifies game over halts the clock until Restart
func TestGameCrashStopsClockAndRestarts(t *testing.T) {
	g := newTestGame(t, nil)
	g.Start()

	g.mu.Lock()
	placeSnakeLine(g.engine, Cell{X: 360, Y: 184}, DirRight, 5)
	g.engine.food = Cell{X: 0, Y: 0}
	g.mu.Unlock()

	ev := g.tick(t)
	if ev.Type != EventCrash {
		t.Fatalf("Event = %v, want Crash", ev.Type)
	}
	if g.Phase() != PhaseOver {
		t.Errorf("Phase = %v, want Over", g.Phase())
	}
	if g.clock.IsRunning() {
		t.Error("Clock running after crash")
	}
	if g.SetDirection(DirUp) {
		t.Error("SetDirection accepted after game over")
	}
	if got := g.TogglePause(); got != PhaseOver {
		t.Errorf("TogglePause after crash = %v", got)
	}

	if !g.Restart() {
		t.Fatal("Restart rejected after game over")
	}
	snap := g.Snapshot()
	if snap.Phase != PhaseRunning || snap.Score != 0 || snap.Length() != 5 {
		t.Errorf("Restarted state = %+v", snap)
	}
	if g.tickers.Count() != 2 {
		t.Errorf("Tickers created = %d, want 2", g.tickers.Count())
	}
}

// TestGameDifficultyLockedDuringRun verifies difficulty changes only outside a run
func TestGameDifficultyLockedDuringRun(t *testing.T) {
	g := newTestGame(t, nil)
	g.Start()

	if g.SetDifficulty(DifficultyHard) {
		t.Error("SetDifficulty accepted while Running")
	}
	if got := g.Snapshot().Difficulty; got != DifficultyMedium {
		t.Errorf("Difficulty = %v, want Medium", got)
	}
}

// TestGameHighScorePersisted verifies a new best score is written on Close
func TestGameHighScorePersisted(t *testing.T) {
	store := newFakeStore()
	g := newTestGame(t, store)
	g.Start()
	g.moveFood(true)

	g.tick(t)
	if g.events.count(EventAte) != 1 {
		t.Errorf("Ate events = %d, want 1", g.events.count(EventAte))
	}
	if g.events.count(EventHighScore) != 1 {
		t.Errorf("HighScore events = %d, want 1", g.events.count(EventHighScore))
	}

	g.Close()
	v, ok := store.value(constants.HighScoreKey)
	if !ok || v != 20 {
		t.Errorf("Stored high score = %d (%v), want 20", v, ok)
	}
}

// TestGameLoadsStoredHighScore verifies the persisted best score seeds the game
func TestGameLoadsStoredHighScore(t *testing.T) {
	store := newFakeStore()
	store.values[constants.HighScoreKey] = 150

	g := newTestGame(t, store)
	if got := g.Snapshot().HighScore; got != 150 {
		t.Errorf("HighScore = %d, want 150", got)
	}

	g.Start()
	g.moveFood(true)
	g.tick(t)
	g.Close()

	if v, _ := store.value(constants.HighScoreKey); v != 150 {
		t.Errorf("Stored high score = %d, want 150 unchanged", v)
	}
	if store.sets != 0 {
		t.Errorf("Store written %d times without a new best", store.sets)
	}
}

// TestGameStoreFailureNonFatal verifies broken persistence never stops play
func TestGameStoreFailureNonFatal(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("read failed")
	store.setErr = errors.New("write failed")

	g := newTestGame(t, store)
	if got := g.Snapshot().HighScore; got != 0 {
		t.Errorf("HighScore = %d, want 0 on load failure", got)
	}
	if !g.Start() {
		t.Fatal("Start rejected with failing store")
	}
	g.moveFood(true)

	ev := g.tick(t)
	if ev.Snapshot.HighScore != 20 {
		t.Errorf("HighScore = %d, want 20 in memory", ev.Snapshot.HighScore)
	}
	g.Close()
}

// TestGameResize verifies the field follows the measured size
func TestGameResize(t *testing.T) {
	g := newTestGame(t, nil)
	g.Start()
	before := g.Snapshot()

	f := g.Resize(203, 99)
	if f.Width != 200 || f.Height != 96 {
		t.Errorf("Field = %+v, want 200x96", f)
	}

	after := g.Snapshot()
	if after.Field != f {
		t.Errorf("Snapshot field = %+v, want %+v", after.Field, f)
	}
	if after.Head() != before.Head() {
		t.Error("Head moved on resize")
	}
}

// TestGameSnapshotsLatestWins verifies an unread snapshot is replaced
func TestGameSnapshotsLatestWins(t *testing.T) {
	g := newTestGame(t, nil)
	g.Start()
	g.SetDirection(DirUp)
	g.Resize(300, 300)

	snap := <-g.Snapshots()
	if snap.Field.Width != 296 {
		t.Errorf("Field width = %d, want 296 from the latest command", snap.Field.Width)
	}
	select {
	case extra := <-g.Snapshots():
		t.Errorf("Unexpected second snapshot: %+v", extra)
	default:
	}
}

// TestGameClose verifies Close stops the clock, closes Snapshots and is idempotent
func TestGameClose(t *testing.T) {
	g := newTestGame(t, nil)
	g.Start()
	gen := g.clock.Generation()

	g.Close()
	g.Close()

	if g.clock.IsRunning() {
		t.Error("Clock running after Close")
	}
	for range g.Snapshots() {
	}
	if g.Start() || g.Restart() || g.SetDirection(DirUp) {
		t.Error("Command accepted after Close")
	}

	g.handleTick(gen)
	if got := g.Snapshot().Tick; got != 0 {
		t.Errorf("Tick = %d after Close, want 0", got)
	}
}

// TestGameOnSnapshotHook verifies the hook sees every publication
func TestGameOnSnapshotHook(t *testing.T) {
	var mu sync.Mutex
	var seen []Phase

	g := NewGame(GameConfig{
		Engine:  DefaultEngineConfig(),
		Tickers: (&ManualTickerFactory{}).New,
		Rand:    rand.New(rand.NewSource(1)),
		OnSnapshot: func(s Snapshot) {
			mu.Lock()
			seen = append(seen, s.Phase)
			mu.Unlock()
		},
	})
	defer g.Close()

	g.Start()
	g.TogglePause()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != PhaseRunning || seen[1] != PhasePaused {
		t.Errorf("Hook saw %v, want [Running Paused]", seen)
	}
}

// TestGameRejectedStartPublishes verifies a refused Start or Restart still refreshes subscribers
func TestGameRejectedStartPublishes(t *testing.T) {
	tests := []struct {
		name    string
		started bool
		call    func(*Game) bool
		phase   Phase
	}{
		{"restart before start", false, (*Game).Restart, PhaseNotStarted},
		{"start while running", true, (*Game).Start, PhaseRunning},
		{"restart while running", true, (*Game).Restart, PhaseRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, nil)
			if tt.started && !g.Start() {
				t.Fatal("Start rejected")
			}
			// Drain whatever the setup published
			select {
			case <-g.Snapshots():
			default:
			}

			if tt.call(g.Game) {
				t.Fatal("call accepted, want rejection")
			}
			select {
			case snap := <-g.Snapshots():
				if snap.Phase != tt.phase {
					t.Errorf("Published Phase = %v, want %v", snap.Phase, tt.phase)
				}
			default:
				t.Error("No snapshot published on rejection")
			}
		})
	}
}
