package render

import (
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/engine"
)

// Layout places the field inside a terminal of Width x Height cells
type Layout struct {
	Width  int
	Height int

	// FieldX, FieldY are the screen coordinates of grid cell (0,0)
	FieldX int
	FieldY int

	// Cols, Rows is the number of grid cells that fit inside the border
	Cols int
	Rows int
}

// ComputeLayout reserves the HUD row and the border, the rest holds grid cells
func ComputeLayout(width, height int) Layout {
	cols := (width - 2*constants.BorderSize) / constants.CellColumns
	rows := height - constants.HUDRows - 2*constants.BorderSize
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return Layout{
		Width:  width,
		Height: height,
		FieldX: constants.BorderSize,
		FieldY: constants.HUDRows + constants.BorderSize,
		Cols:   cols,
		Rows:   rows,
	}
}

// FieldFor converts a terminal size to a field in grid units of gridSize
// The engine clamps the result up to its minimum when the terminal is tiny
func FieldFor(cols, rows, gridSize int) (width, height int) {
	l := ComputeLayout(cols, rows)
	return l.Cols * gridSize, l.Rows * gridSize
}

// Measure returns a terminal-size converter bound to gridSize
func Measure(gridSize int) func(cols, rows int) (int, int) {
	return func(cols, rows int) (int, int) {
		return FieldFor(cols, rows, gridSize)
	}
}

// ScreenPos maps a field cell to the left column and row it is drawn at
func (l Layout) ScreenPos(c engine.Cell, gridSize int) (x, y int) {
	if gridSize < 1 {
		gridSize = 1
	}
	return l.FieldX + (c.X/gridSize)*constants.CellColumns, l.FieldY + c.Y/gridSize
}
