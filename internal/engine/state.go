package engine

import (
	"fmt"

	"github.com/samdwyer/generals/internal/world"
)

const (
	// Kings and owned fortresses grow every fastGrowthInterval ticks.
	fastGrowthInterval = 2
	// Captured territory grows every slowGrowthInterval ticks, and only
	// when the fast clock fires on the same tick.
	slowGrowthInterval = 32
)

// GameState owns the board and every player's move queue. It is not safe
// for concurrent use; see Session.
type GameState struct {
	board      *world.Board
	tickNumber int
	players    []*PlayerState
}

// New creates a game over board with numPlayers teams, indexed 0..numPlayers-1.
func New(board *world.Board, numPlayers int) *GameState {
	if board == nil {
		panic("engine: nil board")
	}
	if numPlayers < 1 {
		panic(fmt.Sprintf("engine: invalid player count %d", numPlayers))
	}
	players := make([]*PlayerState, numPlayers)
	for i := range players {
		players[i] = NewPlayerState()
	}
	return &GameState{board: board, players: players}
}

// Board returns the board. Callers outside the engine must treat it as read-only.
func (g *GameState) Board() *world.Board { return g.board }

// TickNumber returns how many ticks have run.
func (g *GameState) TickNumber() int { return g.tickNumber }

// NumPlayers returns the number of teams.
func (g *GameState) NumPlayers() int { return len(g.players) }

// HasPlayer reports whether team is a valid index.
func (g *GameState) HasPlayer(team world.Team) bool {
	return team >= 0 && int(team) < len(g.players)
}

// Player returns the state of team. It panics on an unknown team.
func (g *GameState) Player(team world.Team) *PlayerState {
	return g.PlayerMut(team)
}

// PlayerMut returns a handle the input layer uses to push or clear moves.
// It panics on an unknown team.
func (g *GameState) PlayerMut(team world.Team) *PlayerState {
	if !g.HasPlayer(team) {
		panic(fmt.Sprintf("engine: unknown team %d", team))
	}
	return g.players[team]
}

// Tick advances the simulation one step: growth first, then at most one
// queued move per team, in team order.
func (g *GameState) Tick() Report {
	g.tickNumber++
	r := Report{
		Tick:       g.tickNumber,
		FastGrowth: g.tickNumber%fastGrowthInterval == 0,
		SlowGrowth: g.tickNumber%slowGrowthInterval == 0,
	}

	g.grow(r.FastGrowth, r.FastGrowth && r.SlowGrowth)

	for i, p := range g.players {
		m, ok := p.PopFront()
		if !ok {
			continue
		}
		r.Events = append(r.Events, g.resolve(world.Team(i), p, m))
	}
	return r
}

// grow applies the growth clocks to every cell.
func (g *GameState) grow(fast, slow bool) {
	if !fast {
		return
	}
	size := g.board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := g.board.At(x, y)
			switch c.Kind {
			case world.KindKing:
				c.Units++
			case world.KindFortress:
				if c.Owner != world.Neutral {
					c.Units++
				}
			case world.KindCaptured:
				if slow {
					c.Units++
				}
			}
		}
	}
}

// resolve applies one move for team. The target is not bounds checked;
// moves are validated when they are queued.
func (g *GameState) resolve(team world.Team, p *PlayerState, m Move) Event {
	to := m.To()
	ev := Event{Tick: g.tickNumber, Team: team, From: m.From, To: to}

	src := g.board.At(m.From.X, m.From.Y)
	// A source lost since the move was queued has no army for this team.
	if !src.IsControlledBy(team) {
		p.Clear()
		ev.Kind = EventExhausted
		return ev
	}
	units := src.TakeUnits()
	if units == 0 {
		p.Clear()
		ev.Kind = EventExhausted
		return ev
	}
	ev.Units = units

	dst := g.board.At(to.X, to.Y)
	ev.Defender, ev.DefenderUnits, ev.DefenderKind = dst.Owner, dst.Units, dst.Kind

	switch {
	case dst.IsControlledBy(team):
		dst.GiveUnits(units)
		ev.Kind = EventReinforced

	case dst.Kind == world.KindMountain:
		p.Clear()
		src.GiveUnits(units)
		ev.Kind = EventBumped

	case dst.Kind == world.KindOpen:
		*dst = world.Captured(team, units)
		ev.Kind = EventCaptured

	case dst.Kind == world.KindKing:
		if dst.Units >= units {
			dst.Units -= units
			ev.Kind = EventRepelled
			break
		}
		units -= dst.Units - 1
		*dst = world.Fortress(team, units)
		ev.Kind = EventKingFell

	default:
		// Captured or Fortress held by another team, or a neutral fortress.
		if dst.Units >= units {
			dst.Units -= units
			ev.Kind = EventRepelled
			break
		}
		dst.Owner = team
		dst.Units = units - dst.Units
		ev.Kind = EventCaptured
	}
	return ev
}
