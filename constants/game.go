package constants

import "time"

// Tick intervals per difficulty
const (
	EasyTickInterval   = 200 * time.Millisecond
	MediumTickInterval = 100 * time.Millisecond
	HardTickInterval   = 50 * time.Millisecond
)

// Scoring
const (
	// FoodScoreBase is multiplied by the difficulty multiplier for each food eaten
	FoodScoreBase = 10

	EasyMultiplier   = 1
	MediumMultiplier = 2
	HardMultiplier   = 3
)

// Field and snake defaults
const (
	// DefaultGridSize is the side length of one grid cell in field units (pixels)
	DefaultGridSize = 8

	// DefaultFieldSize is the square field used before the first layout measurement
	DefaultFieldSize = 368

	// InitialSnakeLength is the number of segments placed on start/restart
	InitialSnakeLength = 5
)

// Persistence
const (
	// HighScoreKey is the store key holding the best score so far
	HighScoreKey = "highestScore"
)
