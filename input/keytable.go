package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/engine"
)

// Binding classifies what a key does before phase gating
type Binding uint8

const (
	BindingNone Binding = iota
	BindingQuit
	BindingDirection
	BindingPause
	BindingConfirm // Start before the first run, Restart after game over
	BindingDifficulty
)

// KeyEntry describes a key's behavior
type KeyEntry struct {
	Binding    Binding
	Direction  engine.Direction
	Difficulty engine.Difficulty
}

// KeyTable maps keys to bindings per phase group
type KeyTable struct {
	// Active in every phase
	SystemKeys  map[tcell.Key]KeyEntry
	SystemRunes map[rune]KeyEntry

	// Running and Paused
	PlayKeys  map[tcell.Key]KeyEntry
	PlayRunes map[rune]KeyEntry

	// NotStarted and Over
	MenuKeys  map[tcell.Key]KeyEntry
	MenuRunes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	up := KeyEntry{Binding: BindingDirection, Direction: engine.DirUp}
	down := KeyEntry{Binding: BindingDirection, Direction: engine.DirDown}
	left := KeyEntry{Binding: BindingDirection, Direction: engine.DirLeft}
	right := KeyEntry{Binding: BindingDirection, Direction: engine.DirRight}
	pause := KeyEntry{Binding: BindingPause}
	quit := KeyEntry{Binding: BindingQuit}
	easy := KeyEntry{Binding: BindingDifficulty, Difficulty: engine.DifficultyEasy}
	medium := KeyEntry{Binding: BindingDifficulty, Difficulty: engine.DifficultyMedium}
	hard := KeyEntry{Binding: BindingDifficulty, Difficulty: engine.DifficultyHard}

	return &KeyTable{
		SystemKeys: map[tcell.Key]KeyEntry{
			tcell.KeyEscape: quit,
			tcell.KeyCtrlC:  quit,
			tcell.KeyCtrlQ:  quit,
		},
		SystemRunes: map[rune]KeyEntry{
			'q': quit,
		},

		PlayKeys: map[tcell.Key]KeyEntry{
			tcell.KeyUp:    up,
			tcell.KeyDown:  down,
			tcell.KeyLeft:  left,
			tcell.KeyRight: right,
		},
		PlayRunes: map[rune]KeyEntry{
			// WASD
			'w': up, 'a': left, 's': down, 'd': right,
			// vi
			'k': up, 'h': left, 'j': down, 'l': right,
			' ': pause,
			'p': pause,
		},

		MenuKeys: map[tcell.Key]KeyEntry{
			tcell.KeyEnter: {Binding: BindingConfirm},
		},
		MenuRunes: map[rune]KeyEntry{
			'1': easy, 'e': easy,
			'2': medium, 'm': medium,
			'3': hard, 'h': hard,
		},
	}
}

// Translate resolves a key press in phase to an Action
// Keys bound outside the current phase group resolve to ActionNone
func (t *KeyTable) Translate(key tcell.Key, ch rune, phase engine.Phase) Action {
	if e, ok := lookup(t.SystemKeys, t.SystemRunes, key, ch); ok {
		return e.action(phase)
	}

	switch phase {
	case engine.PhaseRunning, engine.PhasePaused:
		if e, ok := lookup(t.PlayKeys, t.PlayRunes, key, ch); ok {
			return e.action(phase)
		}
	case engine.PhaseNotStarted, engine.PhaseOver:
		if e, ok := lookup(t.MenuKeys, t.MenuRunes, key, ch); ok {
			return e.action(phase)
		}
	}
	return Action{}
}

func lookup(keys map[tcell.Key]KeyEntry, runes map[rune]KeyEntry, key tcell.Key, ch rune) (KeyEntry, bool) {
	if key == tcell.KeyRune {
		e, ok := runes[unicode.ToLower(ch)]
		return e, ok
	}
	e, ok := keys[key]
	return e, ok
}

func (e KeyEntry) action(phase engine.Phase) Action {
	switch e.Binding {
	case BindingQuit:
		return Action{Type: ActionQuit}
	case BindingDirection:
		return Action{Type: ActionDirection, Direction: e.Direction}
	case BindingPause:
		return Action{Type: ActionTogglePause}
	case BindingDifficulty:
		return Action{Type: ActionDifficulty, Difficulty: e.Difficulty}
	case BindingConfirm:
		if phase == engine.PhaseOver {
			return Action{Type: ActionRestart}
		}
		return Action{Type: ActionStart}
	}
	return Action{}
}
