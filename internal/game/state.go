// Package game runs the interactive terminal game: input, the tick clock
// and drawing.
package game

import (
	"github.com/samdwyer/generals/internal/engine"
	"github.com/samdwyer/generals/internal/world"
)

// State represents the current game phase.
type State int

const (
	// StatePlaying is the normal phase where ticks advance.
	StatePlaying State = iota
	// StateOver means at most one team is left standing; ticks stop.
	StateOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// phase reports whether the game is still being contested, and the last
// team standing once it is not.
func phase(g *engine.GameState) (State, world.Team) {
	winner := world.Neutral
	alive := 0
	for i := 0; i < g.NumPlayers(); i++ {
		team := world.Team(i)
		if !g.Player(team).Dead {
			alive++
			winner = team
		}
	}
	if alive > 1 {
		return StatePlaying, world.Neutral
	}
	return StateOver, winner
}
