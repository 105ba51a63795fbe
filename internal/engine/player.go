// Package engine advances the simulation: unit growth, move queues and
// combat resolution between cells.
package engine

import (
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/samdwyer/generals/internal/world"
)

// Move pushes the army out of From one cell in direction Dir.
type Move struct {
	From world.Position
	Dir  world.Direction
}

// To returns the target cell of the move.
func (m Move) To() world.Position {
	return m.From.Step(m.Dir)
}

// String returns a compact form such as "(3,4)->right".
func (m Move) String() string {
	return fmt.Sprintf("%v->%s", m.From, m.Dir)
}

// PlayerState holds one team's pending moves.
type PlayerState struct {
	moves *linkedlistqueue.Queue

	// Dead is set by observers once the team has lost its king. The tick
	// never reads it.
	Dead bool
}

// NewPlayerState creates a player with an empty move queue.
func NewPlayerState() *PlayerState {
	return &PlayerState{moves: linkedlistqueue.New()}
}

// Push appends a move to the back of the queue.
func (p *PlayerState) Push(m Move) {
	p.moves.Enqueue(m)
}

// PopFront removes and returns the oldest queued move.
func (p *PlayerState) PopFront() (Move, bool) {
	v, ok := p.moves.Dequeue()
	if !ok {
		return Move{}, false
	}
	return v.(Move), true
}

// Peek returns the oldest queued move without removing it.
func (p *PlayerState) Peek() (Move, bool) {
	v, ok := p.moves.Peek()
	if !ok {
		return Move{}, false
	}
	return v.(Move), true
}

// Clear discards every queued move.
func (p *PlayerState) Clear() {
	p.moves.Clear()
}

// Len returns the number of queued moves.
func (p *PlayerState) Len() int {
	return p.moves.Size()
}

// Moves returns the queued moves in the order they will be resolved.
func (p *PlayerState) Moves() []Move {
	values := p.moves.Values()
	out := make([]Move, len(values))
	for i, v := range values {
		out[i] = v.(Move)
	}
	return out
}
