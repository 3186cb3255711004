package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/engine"
)

// Commander is the command surface the router drives, satisfied by *engine.Game
type Commander interface {
	Phase() engine.Phase
	Start() bool
	Restart() bool
	SetDifficulty(d engine.Difficulty) bool
	SetDirection(d engine.Direction) bool
	TogglePause() engine.Phase
	VisibilityChanged(visible bool)
	Resize(width, height int) engine.Field
}

// MeasureFunc converts a terminal size in cells to field units
type MeasureFunc func(cols, rows int) (width, height int)

// Router processes user input events
type Router struct {
	game    Commander
	keys    *KeyTable
	measure MeasureFunc
}

// NewRouter creates a router with the default key table
// A nil measure ignores resize events
func NewRouter(game Commander, measure MeasureFunc) *Router {
	return &Router{
		game:    game,
		keys:    DefaultKeyTable(),
		measure: measure,
	}
}

// Translate resolves a key press without side effects
func (r *Router) Translate(key tcell.Key, ch rune, phase engine.Phase) Action {
	return r.keys.Translate(key, ch, phase)
}

// HandleEvent processes a tcell event and returns false if the game should exit
func (r *Router) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.Dispatch(r.Translate(ev.Key(), ev.Rune(), r.game.Phase()))
	case *tcell.EventResize:
		if r.measure != nil {
			cols, rows := ev.Size()
			r.game.Resize(r.measure(cols, rows))
		}
	case *tcell.EventFocus:
		r.game.VisibilityChanged(ev.Focused)
	}
	return true
}

// Dispatch applies a resolved action and returns false on quit
// Commands rejected by the game are dropped
func (r *Router) Dispatch(a Action) bool {
	switch a.Type {
	case ActionQuit:
		return false
	case ActionDirection:
		r.game.SetDirection(a.Direction)
	case ActionTogglePause:
		r.game.TogglePause()
	case ActionStart:
		r.game.Start()
	case ActionRestart:
		r.game.Restart()
	case ActionDifficulty:
		r.game.SetDifficulty(a.Difficulty)
	}
	return true
}
