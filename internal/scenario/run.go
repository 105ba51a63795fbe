package scenario

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/samdwyer/generals/internal/engine"
	"github.com/samdwyer/generals/internal/world"
)

// Result is the outcome of a scenario run, shaped for YAML output.
type Result struct {
	Name        string        `yaml:"name,omitempty"`
	Ticks       int           `yaml:"ticks"`
	Fingerprint string        `yaml:"fingerprint"`
	Teams       []TeamResult  `yaml:"teams"`
	Neutral     world.Tally   `yaml:"neutral"`
	Events      []EventRecord `yaml:"events,omitempty"`
	Board       []string      `yaml:"board"`
}

// TeamResult summarizes one team at the end of a run.
type TeamResult struct {
	Team   int             `yaml:"team"`
	Cells  int             `yaml:"cells"`
	Units  int             `yaml:"units"`
	King   *world.Position `yaml:"king,omitempty"`
	Dead   bool            `yaml:"dead"`
	Queued int             `yaml:"queued"`
}

// EventRecord is one resolved move.
type EventRecord struct {
	Tick  int    `yaml:"tick"`
	Team  int    `yaml:"team"`
	Kind  string `yaml:"kind"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Units int    `yaml:"units"`
}

// Build creates the starting board and game state for sc.
func Build(ctx context.Context, sc *Scenario) (*engine.GameState, error) {
	b := world.Empty(sc.Size)
	if sc.Generate {
		terrain := world.DefaultTerrain
		if sc.Terrain != nil {
			terrain = *sc.Terrain
		}
		b.RandomizeWith(ctx, rand.New(rand.NewSource(sc.Seed)), sc.Players, terrain)
	}
	for i, spec := range sc.Cells {
		c, err := spec.cell(sc.Players)
		if err != nil {
			return nil, fmt.Errorf("cells[%d]: %w", i, err)
		}
		if !b.InBounds(spec.X, spec.Y) {
			return nil, fmt.Errorf("cells[%d]: (%d,%d): %w", i, spec.X, spec.Y, engine.ErrOutOfBounds)
		}
		b.Set(spec.X, spec.Y, c)
	}
	return engine.New(b, sc.Players), nil
}

// Run plays sc to completion. Moves listed for each team are queued
// before the first tick, in file order.
func Run(ctx context.Context, sc *Scenario, opts ...engine.SessionOption) (*Result, error) {
	state, err := Build(ctx, sc)
	if err != nil {
		return nil, err
	}
	s := engine.NewSession(state, opts...)

	for team := 0; team < sc.Players; team++ {
		for i, spec := range sc.Moves[team] {
			moves, err := spec.expand()
			if err != nil {
				return nil, fmt.Errorf("moves[%d][%d]: %w", team, i, err)
			}
			for _, m := range moves {
				if err := s.Enqueue(world.Team(team), m); err != nil {
					return nil, fmt.Errorf("moves[%d][%d]: %w", team, i, err)
				}
			}
		}
	}

	res := &Result{Name: sc.Name}
	for i := 0; i < sc.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := s.Tick(ctx)
		for _, e := range r.Events {
			res.Events = append(res.Events, EventRecord{
				Tick:  e.Tick,
				Team:  int(e.Team),
				Kind:  e.Kind.String(),
				From:  e.From.String(),
				To:    e.To.String(),
				Units: e.Units,
			})
		}
	}

	s.View(func(g *engine.GameState) {
		b := g.Board()
		census := b.Census()
		kings := b.Kings()

		res.Ticks = g.TickNumber()
		res.Fingerprint = strconv.FormatUint(b.Fingerprint(), 16)
		res.Neutral = census[world.Neutral]
		for team := 0; team < g.NumPlayers(); team++ {
			t := world.Team(team)
			tr := TeamResult{
				Team:   team,
				Cells:  census[t].Cells,
				Units:  census[t].Units,
				Dead:   g.Player(t).Dead,
				Queued: g.Player(t).Len(),
			}
			if pos, ok := kings[t]; ok {
				tr.King = &pos
			}
			res.Teams = append(res.Teams, tr)
		}
		res.Board = renderRows(b)
	})
	return res, nil
}

// renderRows writes one line per board row, cells separated by spaces.
func renderRows(b *world.Board) []string {
	rows := make([]string, b.Height())
	tokens := make([]string, b.Width())
	for y := range rows {
		for x := range tokens {
			tokens[x] = Token(b.Get(x, y))
		}
		rows[y] = strings.Join(tokens, " ")
	}
	return rows
}

// Token is the compact text form of a cell: "." open, "#" mountain, and
// kind letter, owner, units for the rest ("K0:3", "F-:40", "C1:2").
func Token(c world.Cell) string {
	var kind byte
	switch c.Kind {
	case world.KindOpen:
		return "."
	case world.KindMountain:
		return "#"
	case world.KindFortress:
		kind = 'F'
	case world.KindKing:
		kind = 'K'
	case world.KindCaptured:
		kind = 'C'
	default:
		return "?"
	}
	owner := "-"
	if c.Owner != world.Neutral {
		owner = strconv.Itoa(int(c.Owner))
	}
	return fmt.Sprintf("%c%s:%d", kind, owner, c.Units)
}
