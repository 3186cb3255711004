package input

import "github.com/lixenwraith/vi-snake/engine"

// ActionType discriminates game commands produced by key presses
type ActionType uint8

const (
	ActionNone ActionType = iota
	ActionQuit
	ActionDirection
	ActionTogglePause
	ActionStart
	ActionRestart
	ActionDifficulty
)

func (a ActionType) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionQuit:
		return "Quit"
	case ActionDirection:
		return "Direction"
	case ActionTogglePause:
		return "TogglePause"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionDifficulty:
		return "Difficulty"
	default:
		return "Unknown"
	}
}

// Action is a resolved command; only the field matching Type is meaningful
type Action struct {
	Type       ActionType
	Direction  engine.Direction
	Difficulty engine.Difficulty
}
