package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/vi-snake/constants"
)

// Cell is a grid-aligned position in field units
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is the travel direction of the snake head
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Opposite returns the 180° reverse of d
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the unit vector of d, y grows downward
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Valid reports whether d is one of the four defined directions
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Phase is the lifecycle state of one run
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseOver:
		return "Over"
	default:
		return "Unknown"
	}
}

// Difficulty selects tick rate and score multiplier
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// TickInterval returns the clock period for d
func (d Difficulty) TickInterval() time.Duration {
	switch d {
	case DifficultyEasy:
		return constants.EasyTickInterval
	case DifficultyHard:
		return constants.HardTickInterval
	default:
		return constants.MediumTickInterval
	}
}

// Multiplier returns the score multiplier for d
func (d Difficulty) Multiplier() int {
	switch d {
	case DifficultyEasy:
		return constants.EasyMultiplier
	case DifficultyHard:
		return constants.HardMultiplier
	default:
		return constants.MediumMultiplier
	}
}

// FoodScore is the score gained per food eaten at difficulty d
func (d Difficulty) FoodScore() int {
	return constants.FoodScoreBase * d.Multiplier()
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// ParseDifficulty accepts easy, medium or hard in any case, along with the
// aliases low, mid and high. An empty string selects medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "low":
		return DifficultyEasy, nil
	case "medium", "mid", "":
		return DifficultyMedium, nil
	case "hard", "high":
		return DifficultyHard, nil
	}
	return DifficultyMedium, fmt.Errorf("unknown difficulty %q", s)
}

// BoundaryPolicy decides what happens when the head leaves the field
type BoundaryPolicy int

const (
	// BoundaryWall ends the run as soon as the head leaves the field
	BoundaryWall BoundaryPolicy = iota
	// BoundaryWrap re-enters the head from the opposite edge
	BoundaryWrap
)

func (b BoundaryPolicy) String() string {
	if b == BoundaryWrap {
		return "Wrap"
	}
	return "Wall"
}

// Field is the playable rectangle in field units, aligned to GridSize
type Field struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	GridSize int `json:"gridSize"`
}

// Cols returns the number of grid columns
func (f Field) Cols() int {
	return f.Width / f.GridSize
}

// Rows returns the number of grid rows
func (f Field) Rows() int {
	return f.Height / f.GridSize
}

// Contains reports whether c lies inside [0,Width)×[0,Height)
func (f Field) Contains(c Cell) bool {
	return c.X >= 0 && c.X < f.Width && c.Y >= 0 && c.Y < f.Height
}

// Wrap folds c back into the field on both axes
func (f Field) Wrap(c Cell) Cell {
	return Cell{
		X: ((c.X % f.Width) + f.Width) % f.Width,
		Y: ((c.Y % f.Height) + f.Height) % f.Height,
	}
}

// NormalizeField aligns width and height down to the grid and clamps them
// to the smallest field that can hold a straight snake of the given length
func NormalizeField(width, height, gridSize, length int) Field {
	if gridSize < 1 {
		gridSize = 1
	}
	if length < 1 {
		length = 1
	}

	w := width / gridSize * gridSize
	h := height / gridSize * gridSize

	if minW := length * gridSize; w < minW {
		w = minW
	}
	if h < gridSize {
		h = gridSize
	}

	return Field{Width: w, Height: h, GridSize: gridSize}
}
