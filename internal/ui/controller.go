package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/generals/internal/engine"
	"github.com/samdwyer/generals/internal/world"
)

var (
	// ErrNotControlled is returned when selecting a cell the team does not hold.
	ErrNotControlled = errors.New("cell not controlled by team")
	// ErrNoFocus is returned when moving without a selected cell.
	ErrNoFocus = errors.New("no cell selected")
)

// Action tells the game loop what to do after an input event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
)

// Controller turns input into queued moves. Every team has its own focus
// cell; moves are queued from the focus of the team being controlled.
type Controller struct {
	session *engine.Session
	layout  Layout
	log     *zap.Logger

	team   world.Team
	teams  int
	focus  map[world.Team]world.Position
	status string
}

// NewController creates a controller for every team in session, starting
// with team 0.
func NewController(session *engine.Session, layout Layout, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		session: session,
		layout:  layout,
		log:     log,
		focus:   make(map[world.Team]world.Position),
	}
	session.View(func(g *engine.GameState) { c.teams = g.NumPlayers() })
	return c
}

// Team returns the team currently being controlled.
func (c *Controller) Team() world.Team { return c.team }

// Focus returns the focus cell of the current team.
func (c *Controller) Focus() (world.Position, bool) {
	p, ok := c.focus[c.team]
	return p, ok
}

// Status returns the outcome of the last input, for the status line.
func (c *Controller) Status() string { return c.status }

// NextTeam switches control to the next team, wrapping around.
func (c *Controller) NextTeam() {
	c.team = world.Team((int(c.team) + 1) % c.teams)
	c.status = ""
}

// Select focuses pos if the current team controls it.
func (c *Controller) Select(pos world.Position) error {
	var (
		cell world.Cell
		ok   bool
	)
	c.session.View(func(g *engine.GameState) {
		cell, ok = g.Board().TryGet(pos.X, pos.Y)
	})
	if !ok {
		return fmt.Errorf("select %v: %w", pos, engine.ErrOutOfBounds)
	}
	if !cell.IsControlledBy(c.team) {
		return fmt.Errorf("select %v: %w", pos, ErrNotControlled)
	}
	c.focus[c.team] = pos
	return nil
}

// Push queues a move from the focus cell and advances the focus to the
// target. A direction leading off the board is ignored.
func (c *Controller) Push(d world.Direction) error {
	from, ok := c.focus[c.team]
	if !ok {
		return ErrNoFocus
	}
	var size int
	c.session.View(func(g *engine.GameState) { size = g.Board().Size() })

	to, ok := d.From(from, size, size)
	if !ok {
		return nil
	}
	if err := c.session.Enqueue(c.team, engine.Move{From: from, Dir: d}); err != nil {
		return err
	}
	c.focus[c.team] = to
	return nil
}

// Cancel drops the current team's queued moves and its focus.
func (c *Controller) Cancel() error {
	delete(c.focus, c.team)
	return c.session.Cancel(c.team)
}

// HandleEvent applies a terminal event.
func (c *Controller) HandleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			c.HandleClick(x, y)
		}
	}
	return ActionNone
}

// HandleKey applies a key press. r is only consulted for tcell.KeyRune.
func (c *Controller) HandleKey(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyTab:
		c.NextTeam()
	case tcell.KeyUp:
		c.report(c.Push(world.Up))
	case tcell.KeyDown:
		c.report(c.Push(world.Down))
	case tcell.KeyLeft:
		c.report(c.Push(world.Left))
	case tcell.KeyRight:
		c.report(c.Push(world.Right))
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			c.report(c.Push(world.Up))
		case 's', 'S':
			c.report(c.Push(world.Down))
		case 'a', 'A':
			c.report(c.Push(world.Left))
		case 'd', 'D':
			c.report(c.Push(world.Right))
		case 'q', 'Q':
			c.report(c.Cancel())
		}
	}
	return ActionNone
}

// HandleClick focuses the cell under a terminal coordinate.
func (c *Controller) HandleClick(sx, sy int) {
	pos, ok := c.layout.BoardAt(sx, sy)
	if !ok {
		return
	}
	c.report(c.Select(pos))
}

func (c *Controller) report(err error) {
	if err == nil {
		c.status = ""
		return
	}
	c.status = err.Error()
	c.log.Debug("input rejected", zap.Int("team", int(c.team)), zap.Error(err))
}
