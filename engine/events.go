package engine

// EventType identifies a notable simulation outcome
type EventType int

const (
	EventAte       EventType = iota // Food eaten
	EventCrash                      // Run ended by a collision
	EventHighScore                  // Best score raised
	EventPhase                      // Phase changed by a command
	EventTick                       // Snake advanced one cell
)

func (t EventType) String() string {
	switch t {
	case EventAte:
		return "Ate"
	case EventCrash:
		return "Crash"
	case EventHighScore:
		return "HighScore"
	case EventPhase:
		return "Phase"
	case EventTick:
		return "Tick"
	default:
		return "Unknown"
	}
}

// Event carries the snapshot taken right after the outcome
type Event struct {
	Type     EventType
	Snapshot Snapshot
}

// EventSink receives events; handlers must not block and must not call back into Game
type EventSink interface {
	HandleEvent(ev Event)
}

// EventSinkFunc adapts a function to EventSink
type EventSinkFunc func(ev Event)

func (f EventSinkFunc) HandleEvent(ev Event) { f(ev) }
