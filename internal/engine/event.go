package engine

import "github.com/samdwyer/generals/internal/world"

// EventKind classifies the outcome of one resolved move.
type EventKind uint8

const (
	// EventReinforced - units joined a cell the mover already held
	EventReinforced EventKind = iota
	// EventCaptured - an Open, Captured or Fortress cell changed hands
	EventCaptured
	// EventRepelled - the defender held; its count dropped by the attack
	EventRepelled
	// EventKingFell - a king was overrun and became the mover's fortress
	EventKingFell
	// EventBumped - the move ran into a mountain; units returned, queue cleared
	EventBumped
	// EventExhausted - the source had no units to spare; queue cleared
	EventExhausted
)

// String returns a human-readable event kind.
func (k EventKind) String() string {
	switch k {
	case EventReinforced:
		return "reinforced"
	case EventCaptured:
		return "captured"
	case EventRepelled:
		return "repelled"
	case EventKingFell:
		return "king_fell"
	case EventBumped:
		return "bumped"
	case EventExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Event records what one team's move did during a tick.
type Event struct {
	Tick int
	Kind EventKind
	Team world.Team
	From world.Position
	To   world.Position

	// Units is the army that left From. Zero for EventExhausted.
	Units int

	// Defender and DefenderUnits describe the target before resolution.
	Defender      world.Team
	DefenderUnits int
	DefenderKind  world.Kind
}

// Report is the outcome of a single tick.
type Report struct {
	Tick int

	// FastGrowth is set when kings and owned fortresses grew this tick;
	// SlowGrowth when captured territory grew as well.
	FastGrowth bool
	SlowGrowth bool

	Events []Event
}

// KingsFallen returns the events in which a king was overrun.
func (r Report) KingsFallen() []Event {
	var fallen []Event
	for _, e := range r.Events {
		if e.Kind == EventKingFell {
			fallen = append(fallen, e)
		}
	}
	return fallen
}
