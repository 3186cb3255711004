package constants

// UI Layout Constants
const (
	// CellColumns is how many terminal columns one grid cell occupies
	CellColumns = 2

	// HUDRows is the number of rows above the field border
	HUDRows = 1

	// BorderSize is the thickness of the field frame on each side
	BorderSize = 1
)

// Overlay text
const (
	TextStartPrompt   = "Press Enter to start"
	TextDifficultyKey = "[1] Easy  [2] Medium  [3] Hard"
	TextPaused        = "Paused."
	TextPausedHint    = "Press Space to continue"
	TextGameOver      = "Game Over"
	TextRestartHint   = "Press Enter to restart"
)
