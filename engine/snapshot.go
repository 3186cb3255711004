package engine

import "time"

// Snapshot is an immutable copy of the simulation state for presentation
type Snapshot struct {
	Snake      []Cell         `json:"snake"`
	Food       Cell           `json:"food"`
	Score      int            `json:"score"`
	HighScore  int            `json:"highScore"`
	Phase      Phase          `json:"phase"`
	Difficulty Difficulty     `json:"difficulty"`
	Direction  Direction      `json:"direction"`
	Boundary   BoundaryPolicy `json:"boundary"`
	Field      Field          `json:"field"`
	Tick       uint64         `json:"tick"`
	FoodEaten  int            `json:"foodEaten"`
	CrashPoint *Cell          `json:"crashPoint,omitempty"`

	// Elapsed is play time of the current run, pauses excluded
	Elapsed time.Duration `json:"elapsed"`
}

// Head returns the first snake segment, zero Cell for an empty snake
func (s Snapshot) Head() Cell {
	if len(s.Snake) == 0 {
		return Cell{}
	}
	return s.Snake[0]
}

// Length returns the number of snake segments
func (s Snapshot) Length() int {
	return len(s.Snake)
}

// StepResult reports what one tick did
type StepResult struct {
	Snapshot     Snapshot
	Advanced     bool // Snake moved this tick
	Ate          bool // Head landed on food
	Crashed      bool // Run ended on this tick
	NewHighScore bool // HighScore was raised on this tick
}
