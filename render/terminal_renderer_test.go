package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/engine"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// rowText reads one screen row as a string
func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func screenContains(s tcell.Screen, text string) bool {
	_, h := s.Size()
	for y := 0; y < h; y++ {
		if strings.Contains(rowText(s, y), text) {
			return true
		}
	}
	return false
}

func fgAt(s tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := s.GetContent(x, y)
	fg, _, _ := style.Decompose()
	return fg
}

// runningSnapshot is a 10x5 field with a three segment snake moving right
func runningSnapshot() engine.Snapshot {
	return engine.Snapshot{
		Snake:      []engine.Cell{{X: 16, Y: 8}, {X: 8, Y: 8}, {X: 0, Y: 8}},
		Food:       engine.Cell{X: 40, Y: 16},
		Score:      20,
		HighScore:  90,
		Phase:      engine.PhaseRunning,
		Difficulty: engine.DifficultyMedium,
		Direction:  engine.DirRight,
		Field:      engine.Field{Width: 80, Height: 40, GridSize: 8},
	}
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols, rows int
	}{
		{"standard", 80, 24, 39, 21},
		{"odd width", 81, 24, 39, 21},
		{"tiny", 2, 2, 0, 0},
		{"zero", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.w, tt.h)
			if l.Cols != tt.cols || l.Rows != tt.rows {
				t.Errorf("ComputeLayout(%d,%d) = %dx%d cells, want %dx%d", tt.w, tt.h, l.Cols, l.Rows, tt.cols, tt.rows)
			}
			if l.FieldX != constants.BorderSize || l.FieldY != constants.HUDRows+constants.BorderSize {
				t.Errorf("Field origin = (%d,%d)", l.FieldX, l.FieldY)
			}
		})
	}
}

func TestFieldFor(t *testing.T) {
	w, h := FieldFor(80, 24, 8)
	if w != 39*8 || h != 21*8 {
		t.Errorf("FieldFor(80,24,8) = (%d,%d), want (%d,%d)", w, h, 39*8, 21*8)
	}

	measure := Measure(4)
	if mw, mh := measure(80, 24); mw != 39*4 || mh != 21*4 {
		t.Errorf("Measure(4)(80,24) = (%d,%d)", mw, mh)
	}
}

// TestRenderRunningFrame verifies HUD, border, snake and food placement
func TestRenderRunningFrame(t *testing.T) {
	s := newTestScreen(t, 80, 10)
	r := NewTerminalRenderer(s)
	r.RenderFrame(runningSnapshot())

	hud := rowText(s, 0)
	for _, want := range []string{"Score: 20", "Best: 90", "Level: Medium", "Length: 3", "PLAY"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	checks := []struct {
		name string
		x, y int
		want rune
	}{
		{"top left", 0, 1, glyphTopLeft},
		{"top right", 21, 1, glyphTopRight},
		{"bottom left", 0, 7, glyphBottomLeft},
		{"bottom right", 21, 7, glyphBottomRight},
		{"left edge", 0, 4, glyphVertical},
		{"head", 5, 3, glyphHead},
		{"head second column", 6, 3, glyphHead},
		{"body", 3, 3, glyphBody},
		{"tail", 1, 3, glyphBody},
		{"food", 11, 4, glyphFood},
	}
	for _, c := range checks {
		if got, _, _, _ := s.GetContent(c.x, c.y); got != c.want {
			t.Errorf("%s at (%d,%d) = %q, want %q", c.name, c.x, c.y, got, c.want)
		}
	}

	if fg := fgAt(s, 5, 3); fg != RgbSnakeHead {
		t.Errorf("Head color = %v, want RgbSnakeHead", fg)
	}
	if screenContains(s, constants.TextPaused) {
		t.Error("Running frame shows the pause overlay")
	}
}

// TestRenderOverlays verifies the message box per phase
func TestRenderOverlays(t *testing.T) {
	tests := []struct {
		phase engine.Phase
		want  []string
	}{
		{engine.PhaseNotStarted, []string{constants.TextStartPrompt, constants.TextDifficultyKey}},
		{engine.PhasePaused, []string{constants.TextPaused, constants.TextPausedHint}},
		{engine.PhaseOver, []string{constants.TextGameOver, constants.TextRestartHint}},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			s := newTestScreen(t, 60, 20)
			snap := runningSnapshot()
			snap.Field = engine.Field{Width: 25 * 8, Height: 15 * 8, GridSize: 8}
			snap.Phase = tt.phase
			NewTerminalRenderer(s).RenderFrame(snap)

			for _, want := range tt.want {
				if !screenContains(s, want) {
					t.Errorf("Phase %v: screen missing %q", tt.phase, want)
				}
			}
		})
	}
}

// TestRenderGameOverMarksCrash verifies the dead palette and the crash marker
func TestRenderGameOverMarksCrash(t *testing.T) {
	s := newTestScreen(t, 80, 20)
	snap := runningSnapshot()
	snap.Field = engine.Field{Width: 30 * 8, Height: 15 * 8, GridSize: 8}
	snap.Phase = engine.PhaseOver
	snap.CrashPoint = &engine.Cell{X: 0, Y: 0}
	NewTerminalRenderer(s).RenderFrame(snap)

	if fg := fgAt(s, 3, 3); fg != RgbSnakeDead {
		t.Errorf("Body color after crash = %v, want RgbSnakeDead", fg)
	}
	if got, _, _, _ := s.GetContent(1, 2); got != glyphCrash {
		t.Errorf("Crash marker = %q, want %q", got, glyphCrash)
	}
}

// TestRenderSkipsOutOfFieldCells verifies cells beyond a shrunk field are not drawn
func TestRenderSkipsOutOfFieldCells(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	snap := runningSnapshot()
	snap.Food = engine.Cell{X: 800, Y: 16}
	NewTerminalRenderer(s).RenderFrame(snap)

	if screenContains(s, string(glyphFood)) {
		t.Error("Food outside the field was drawn")
	}
}

// TestRenderTracksScreenSize verifies the renderer follows resizes
func TestRenderTracksScreenSize(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	r := NewTerminalRenderer(s)
	r.RenderFrame(runningSnapshot())

	s.SetSize(60, 20)
	r.RenderFrame(runningSnapshot())

	l := r.Layout()
	if l.Width != 60 || l.Height != 20 {
		t.Errorf("Layout = %dx%d after resize, want 60x20", l.Width, l.Height)
	}
	if got, _, _, _ := s.GetContent(5, 3); got != glyphHead {
		t.Errorf("Head after resize = %q, want %q", got, glyphHead)
	}
}

// TestBufferFlushWritesOnlyChanges verifies unchanged frames send nothing
func TestBufferFlushWritesOnlyChanges(t *testing.T) {
	s := newTestScreen(t, 10, 3)
	b := NewRenderBuffer(10, 3)

	if n := b.Flush(s); n != 30 {
		t.Errorf("First flush wrote %d cells, want 30", n)
	}
	if n := b.Flush(s); n != 0 {
		t.Errorf("Unchanged flush wrote %d cells, want 0", n)
	}

	b.Set(2, 1, 'x', styleHUD)
	b.Set(99, 99, 'y', styleHUD)
	if n := b.Flush(s); n != 1 {
		t.Errorf("Flush after one change wrote %d cells, want 1", n)
	}
	if got, _, _, _ := s.GetContent(2, 1); got != 'x' {
		t.Errorf("Screen (2,1) = %q, want 'x'", got)
	}

	b.Invalidate()
	if n := b.Flush(s); n != 30 {
		t.Errorf("Flush after Invalidate wrote %d cells, want 30", n)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Second + 900*time.Millisecond, "01:01"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.in); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
