package engine

import (
	"math/rand"

	"github.com/lixenwraith/vi-snake/constants"
)

// EngineConfig holds the parameters a SnakeEngine is built from
type EngineConfig struct {
	Length     int // Segments placed on start/restart
	GridSize   int
	Width      int // Requested field width, normalized by NormalizeField
	Height     int
	Difficulty Difficulty
	Boundary   BoundaryPolicy
	HighScore  int // Best score loaded from persistence
}

// DefaultEngineConfig returns the classic 368x368 field with an 8 unit grid
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Length:     constants.InitialSnakeLength,
		GridSize:   constants.DefaultGridSize,
		Width:      constants.DefaultFieldSize,
		Height:     constants.DefaultFieldSize,
		Difficulty: DifficultyMedium,
		Boundary:   BoundaryWall,
	}
}

// SnakeEngine is the deterministic simulation state machine
// Not safe for concurrent use; Game serializes all access
type SnakeEngine struct {
	length   int
	boundary BoundaryPolicy
	field    Field
	rng      *rand.Rand

	snake     []Cell
	food      Cell
	direction Direction // Direction of the last performed move
	pending   Direction // Direction applied on the next step

	phase      Phase
	difficulty Difficulty
	score      int
	highScore  int
	foodEaten  int
	tick       uint64
	crashPoint *Cell
}

// NewSnakeEngine creates an engine in PhaseNotStarted with the start
// configuration already placed so it can be rendered before the first run
func NewSnakeEngine(cfg EngineConfig, rng *rand.Rand) *SnakeEngine {
	if cfg.Length < 1 {
		cfg.Length = constants.InitialSnakeLength
	}
	if cfg.GridSize < 1 {
		cfg.GridSize = constants.DefaultGridSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if cfg.HighScore < 0 {
		cfg.HighScore = 0
	}

	e := &SnakeEngine{
		length:     cfg.Length,
		boundary:   cfg.Boundary,
		field:      NormalizeField(cfg.Width, cfg.Height, cfg.GridSize, cfg.Length),
		rng:        rng,
		difficulty: cfg.Difficulty,
		highScore:  cfg.HighScore,
		phase:      PhaseNotStarted,
	}
	e.placeSnake()
	e.spawnFood()
	return e
}

// Reset reinitializes snake, food and score and enters PhaseRunning
func (e *SnakeEngine) Reset() Snapshot {
	e.placeSnake()
	e.spawnFood()
	e.score = 0
	e.foodEaten = 0
	e.tick = 0
	e.crashPoint = nil
	e.phase = PhaseRunning
	return e.Snapshot()
}

// placeSnake lays a straight horizontal snake heading right, centered in the field
func (e *SnakeEngine) placeSnake() {
	g := e.field.GridSize
	headX := e.field.Width / 2 / g * g
	headY := e.field.Height / 2 / g * g

	// Keep the tail inside the left edge
	if minHead := (e.length - 1) * g; headX < minHead {
		headX = minHead
	}

	e.snake = make([]Cell, e.length)
	for i := range e.snake {
		e.snake[i] = Cell{X: headX - i*g, Y: headY}
	}
	e.direction = DirRight
	e.pending = DirRight
}

// spawnFood places food uniformly over the cells not covered by the snake
// Falls back to the whole field when the snake covers every cell
func (e *SnakeEngine) spawnFood() {
	g := e.field.GridSize
	cols, rows := e.field.Cols(), e.field.Rows()

	occupied := make(map[Cell]struct{}, len(e.snake))
	for _, c := range e.snake {
		if e.field.Contains(c) {
			occupied[c] = struct{}{}
		}
	}

	free := cols*rows - len(occupied)
	if free <= 0 {
		e.food = Cell{X: e.rng.Intn(cols) * g, Y: e.rng.Intn(rows) * g}
		return
	}

	n := e.rng.Intn(free)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := Cell{X: x * g, Y: y * g}
			if _, ok := occupied[c]; ok {
				continue
			}
			if n == 0 {
				e.food = c
				return
			}
			n--
		}
	}
}

// SetDirection buffers d for the next step
// Rejected when not running or when d reverses the last performed move
func (e *SnakeEngine) SetDirection(d Direction) bool {
	if e.phase != PhaseRunning || !d.Valid() {
		return false
	}
	if d == e.direction.Opposite() {
		return false
	}
	e.pending = d
	return true
}

// TogglePause flips Running and Paused, other phases are left alone
func (e *SnakeEngine) TogglePause() Phase {
	switch e.phase {
	case PhaseRunning:
		e.phase = PhasePaused
	case PhasePaused:
		e.phase = PhaseRunning
	}
	return e.phase
}

// Pause moves Running to Paused and reports whether it did
func (e *SnakeEngine) Pause() bool {
	if e.phase != PhaseRunning {
		return false
	}
	e.phase = PhasePaused
	return true
}

// SetDifficulty changes difficulty before a run starts or after it ended
func (e *SnakeEngine) SetDifficulty(d Difficulty) bool {
	if e.phase != PhaseNotStarted && e.phase != PhaseOver {
		return false
	}
	if d < DifficultyEasy || d > DifficultyHard {
		return false
	}
	e.difficulty = d
	return true
}

// SetField installs new bounds for future steps and food draws
// Cells already placed are not moved
func (e *SnakeEngine) SetField(width, height int) Field {
	e.field = NormalizeField(width, height, e.field.GridSize, e.length)
	return e.field
}

// Step advances the simulation by one tick, a no-op unless running
func (e *SnakeEngine) Step() StepResult {
	if e.phase != PhaseRunning {
		return StepResult{Snapshot: e.Snapshot()}
	}

	e.tick++
	e.direction = e.pending

	dx, dy := e.direction.Delta()
	g := e.field.GridSize
	head := e.snake[0]
	next := Cell{X: head.X + dx*g, Y: head.Y + dy*g}

	if !e.field.Contains(next) {
		if e.boundary != BoundaryWrap {
			return e.crash(next)
		}
		next = e.field.Wrap(next)
	}

	// Checked against the pre-move body, tail included
	if e.occupies(next) {
		return e.crash(next)
	}

	e.snake = append(e.snake, Cell{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = next

	res := StepResult{Advanced: true}
	if next == e.food {
		res.Ate = true
		e.score += e.difficulty.FoodScore()
		e.foodEaten++
		e.spawnFood()
		if e.score > e.highScore {
			e.highScore = e.score
			res.NewHighScore = true
		}
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}

	// Food stranded outside a shrunken field is unreachable
	if !e.field.Contains(e.food) {
		e.spawnFood()
	}

	res.Snapshot = e.Snapshot()
	return res
}

func (e *SnakeEngine) crash(at Cell) StepResult {
	e.phase = PhaseOver
	e.crashPoint = &Cell{X: at.X, Y: at.Y}
	return StepResult{Snapshot: e.Snapshot(), Crashed: true}
}

func (e *SnakeEngine) occupies(c Cell) bool {
	for _, s := range e.snake {
		if s == c {
			return true
		}
	}
	return false
}

// Phase returns the current lifecycle phase
func (e *SnakeEngine) Phase() Phase {
	return e.phase
}

// Difficulty returns the active difficulty
func (e *SnakeEngine) Difficulty() Difficulty {
	return e.difficulty
}

// Field returns the current bounds
func (e *SnakeEngine) Field() Field {
	return e.field
}

// Snapshot returns a deep copy of the current state
func (e *SnakeEngine) Snapshot() Snapshot {
	snake := make([]Cell, len(e.snake))
	copy(snake, e.snake)

	s := Snapshot{
		Snake:      snake,
		Food:       e.food,
		Score:      e.score,
		HighScore:  e.highScore,
		Phase:      e.phase,
		Difficulty: e.difficulty,
		Direction:  e.direction,
		Boundary:   e.boundary,
		Field:      e.field,
		Tick:       e.tick,
		FoodEaten:  e.foodEaten,
	}
	if e.crashPoint != nil {
		cp := *e.crashPoint
		s.CrashPoint = &cp
	}
	return s
}
