package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/engine"
)

// Glyphs, one grid cell spans constants.CellColumns terminal columns
const (
	glyphHead  = '█'
	glyphBody  = '▓'
	glyphFood  = '●'
	glyphCrash = '✖'

	glyphHorizontal  = '─'
	glyphVertical    = '│'
	glyphTopLeft     = '┌'
	glyphTopRight    = '┐'
	glyphBottomLeft  = '└'
	glyphBottomRight = '┘'
)

// TerminalRenderer draws snapshots onto a tcell screen through a RenderBuffer
type TerminalRenderer struct {
	screen tcell.Screen
	buf    *RenderBuffer
	layout Layout
}

// NewTerminalRenderer creates a renderer sized to the current screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{
		screen: screen,
		buf:    NewRenderBuffer(w, h),
		layout: ComputeLayout(w, h),
	}
}

// Layout returns the layout used by the last frame
func (r *TerminalRenderer) Layout() Layout {
	return r.layout
}

// UpdateDimensions re-reads the screen size and repaints on the next frame
func (r *TerminalRenderer) UpdateDimensions() {
	w, h := r.screen.Size()
	r.buf.Resize(w, h)
	r.layout = ComputeLayout(w, h)
}

// RenderFrame renders the entire game frame
func (r *TerminalRenderer) RenderFrame(snap engine.Snapshot) {
	if w, h := r.screen.Size(); w != r.layout.Width || h != r.layout.Height {
		r.UpdateDimensions()
	}

	r.buf.Clear()

	r.drawStatusBar(snap)
	r.drawBorder(snap.Field)
	r.drawFood(snap)
	r.drawSnake(snap)
	r.drawOverlay(snap)

	r.buf.Flush(r.screen)
}

func (r *TerminalRenderer) drawStatusBar(snap engine.Snapshot) {
	x := 0
	x = r.buf.SetString(x, 0, "Score: ", styleLabel)
	x = r.buf.SetString(x, 0, fmt.Sprintf("%d", snap.Score), styleHUD)
	x = r.buf.SetString(x, 0, "  Best: ", styleLabel)
	x = r.buf.SetString(x, 0, fmt.Sprintf("%d", snap.HighScore), styleHUD)
	x = r.buf.SetString(x, 0, "  Level: ", styleLabel)
	x = r.buf.SetString(x, 0, snap.Difficulty.String(), difficultyStyle(snap.Difficulty))
	x = r.buf.SetString(x, 0, "  Length: ", styleLabel)
	x = r.buf.SetString(x, 0, fmt.Sprintf("%d", snap.Length()), styleHUD)

	// Right side: phase and boundary
	right := fmt.Sprintf("%s %s %s", formatElapsed(snap.Elapsed), snap.Boundary, phaseLabel(snap.Phase))
	rx := r.layout.Width - len([]rune(right))
	if rx > x+1 {
		r.buf.SetString(rx, 0, right, styleLabel)
	}
}

func (r *TerminalRenderer) drawBorder(field engine.Field) {
	cols, rows := field.Cols(), field.Rows()
	left := r.layout.FieldX - constants.BorderSize
	top := r.layout.FieldY - constants.BorderSize
	right := r.layout.FieldX + cols*constants.CellColumns
	bottom := r.layout.FieldY + rows

	for x := left + 1; x < right; x++ {
		r.buf.Set(x, top, glyphHorizontal, styleBorder)
		r.buf.Set(x, bottom, glyphHorizontal, styleBorder)
	}
	for y := top + 1; y < bottom; y++ {
		r.buf.Set(left, y, glyphVertical, styleBorder)
		r.buf.Set(right, y, glyphVertical, styleBorder)
	}
	r.buf.Set(left, top, glyphTopLeft, styleBorder)
	r.buf.Set(right, top, glyphTopRight, styleBorder)
	r.buf.Set(left, bottom, glyphBottomLeft, styleBorder)
	r.buf.Set(right, bottom, glyphBottomRight, styleBorder)
}

func (r *TerminalRenderer) drawFood(snap engine.Snapshot) {
	if !snap.Field.Contains(snap.Food) {
		return
	}
	x, y := r.layout.ScreenPos(snap.Food, snap.Field.GridSize)
	r.buf.Set(x, y, glyphFood, styleFood)
	r.buf.Set(x+1, y, ' ', styleFood)
}

func (r *TerminalRenderer) drawSnake(snap engine.Snapshot) {
	over := snap.Phase == engine.PhaseOver

	// Tail first so the head wins when segments overlap on a crash
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		c := snap.Snake[i]
		if !snap.Field.Contains(c) {
			continue
		}
		glyph, style := glyphBody, styleBody
		if i == 0 {
			glyph, style = glyphHead, styleHead
		}
		if over {
			style = styleDead
		}
		r.drawCell(c, snap.Field.GridSize, glyph, style)
	}

	if over && snap.CrashPoint != nil && snap.Field.Contains(*snap.CrashPoint) {
		x, y := r.layout.ScreenPos(*snap.CrashPoint, snap.Field.GridSize)
		r.buf.Set(x, y, glyphCrash, styleDead)
		r.buf.Set(x+1, y, ' ', styleDead)
	}
}

func (r *TerminalRenderer) drawCell(c engine.Cell, gridSize int, glyph rune, style tcell.Style) {
	x, y := r.layout.ScreenPos(c, gridSize)
	for i := 0; i < constants.CellColumns; i++ {
		r.buf.Set(x+i, y, glyph, style)
	}
}

// drawOverlay centers a message box over the field for every phase but Running
func (r *TerminalRenderer) drawOverlay(snap engine.Snapshot) {
	var lines []string
	switch snap.Phase {
	case engine.PhaseNotStarted:
		lines = []string{
			constants.TextStartPrompt,
			constants.TextDifficultyKey,
			"Level: " + snap.Difficulty.String(),
		}
	case engine.PhasePaused:
		lines = []string{constants.TextPaused, constants.TextPausedHint}
	case engine.PhaseOver:
		lines = []string{
			constants.TextGameOver,
			fmt.Sprintf("Score: %d  Best: %d", snap.Score, snap.HighScore),
			constants.TextRestartHint,
			constants.TextDifficultyKey,
		}
	default:
		return
	}

	boxWidth := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > boxWidth {
			boxWidth = n
		}
	}
	boxWidth += 4
	boxHeight := len(lines) + 2

	fieldCols := snap.Field.Cols() * constants.CellColumns
	fieldRows := snap.Field.Rows()
	startX := r.layout.FieldX + (fieldCols-boxWidth)/2
	startY := r.layout.FieldY + (fieldRows-boxHeight)/2
	if startX < 0 {
		startX = 0
	}
	if startY < constants.HUDRows {
		startY = constants.HUDRows
	}

	r.buf.Fill(startX, startY, boxWidth, boxHeight, ' ', styleHint)
	for i, l := range lines {
		style := styleHint
		if i == 0 {
			style = styleTitle
		}
		lx := startX + (boxWidth-len([]rune(l)))/2
		r.buf.SetString(lx, startY+1+i, l, style)
	}
}

func difficultyStyle(d engine.Difficulty) tcell.Style {
	switch d {
	case engine.DifficultyEasy:
		return styleDefault.Foreground(RgbDifficultyEasy)
	case engine.DifficultyHard:
		return styleDefault.Foreground(RgbDifficultyHard)
	default:
		return styleDefault.Foreground(RgbDifficultyMedium)
	}
}

func phaseLabel(p engine.Phase) string {
	switch p {
	case engine.PhaseNotStarted:
		return "READY"
	case engine.PhaseRunning:
		return "PLAY"
	case engine.PhasePaused:
		return "PAUSE"
	case engine.PhaseOver:
		return "OVER"
	default:
		return "?"
	}
}

// formatElapsed renders play time as mm:ss
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
