package render

import (
	"github.com/gdamore/tcell/v2"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// blankCell fills untouched positions on flush
var blankCell = Cell{Rune: ' ', Style: styleDefault}

// RenderBuffer composites a frame off-screen before it is written to tcell
// Only cells that differ from the last flush are sent to the screen
type RenderBuffer struct {
	cells  []Cell
	shown  []Cell // Last flushed frame
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
// The flushed frame is forgotten so the next Flush repaints everything
func (b *RenderBuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.shown = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
		b.shown = b.shown[:size]
	}
	b.width = width
	b.height = height
	b.Invalidate()
	b.Clear()
}

// Clear resets all cells to the background using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = blankCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Bounds returns buffer dimensions
func (b *RenderBuffer) Bounds() (int, int) {
	return b.width, b.height
}

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a cell, out of bounds writes are dropped
func (b *RenderBuffer) Set(x, y int, r rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// Get returns the cell at x,y or a blank cell when out of bounds
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return blankCell
	}
	return b.cells[y*b.width+x]
}

// SetString writes s starting at x and returns the column after the last rune
func (b *RenderBuffer) SetString(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		b.Set(x, y, r, style)
		x++
	}
	return x
}

// Fill paints a rectangle with r
func (b *RenderBuffer) Fill(x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.Set(col, row, r, style)
		}
	}
}

// Flush writes changed cells to screen and shows the frame
// Returns the number of cells written
func (b *RenderBuffer) Flush(screen tcell.Screen) int {
	written := 0
	for i, c := range b.cells {
		if c == b.shown[i] {
			continue
		}
		screen.SetContent(i%b.width, i/b.width, c.Rune, nil, c.Style)
		b.shown[i] = c
		written++
	}
	screen.Show()
	return written
}

// Invalidate forces the next Flush to repaint every cell
func (b *RenderBuffer) Invalidate() {
	for i := range b.shown {
		b.shown[i] = Cell{}
	}
}
