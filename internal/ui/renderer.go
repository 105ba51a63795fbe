package ui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/generals/internal/engine"
	"github.com/samdwyer/generals/internal/gamedata"
	"github.com/samdwyer/generals/internal/world"
)

var arrows = [...]rune{world.Up: '↑', world.Down: '↓', world.Left: '←', world.Right: '→'}

// Renderer draws the board, the current team's queue and a status line.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
	layout  Layout
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.Palette, layout Layout) *Renderer {
	return &Renderer{screen: screen, palette: palette, layout: layout}
}

// Render draws one frame. The session lock is held while the board is
// drawn.
func (r *Renderer) Render(s *engine.Session, c *Controller) {
	r.screen.Clear()

	team := c.Team()
	focus, hasFocus := c.Focus()
	s.View(func(g *engine.GameState) {
		b := g.Board()
		size := b.Size()

		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				r.drawCell(world.Pos(x, y), b.Get(x, y), plain)
			}
		}

		if hasFocus {
			r.drawCell(focus, b.Get(focus.X, focus.Y), focused)
			for _, d := range world.Directions {
				if n, ok := d.From(focus, size, size); ok {
					r.drawCell(n, b.Get(n.X, n.Y), neighbour)
				}
			}
		}

		p := g.Player(team)
		for _, m := range p.Moves() {
			sx, sy := r.layout.ScreenAt(m.From)
			cell := b.Get(m.From.X, m.From.Y)
			style := r.cellStyle(cell).Bold(true)
			r.screen.SetContent(sx+r.layout.CellWidth-1, sy, arrows[m.Dir], style)
		}

		tally := b.Census()[team]
		status := fmt.Sprintf("%s  tick %d  cells %d  units %d  queued %d",
			r.palette.Team(team).Name, g.TickNumber(), tally.Cells, tally.Units, p.Len())
		if p.Dead {
			status += "  (defeated)"
		}
		_, row := r.layout.ScreenAt(world.Pos(0, size))
		r.screen.SetString(r.layout.OriginX, row, status, tcell.StyleDefault.Foreground(r.palette.TeamColor(team)))
		if msg := c.Status(); msg != "" {
			r.screen.SetString(r.layout.OriginX, row+1, msg, tcell.StyleDefault.Foreground(tcell.ColorYellow))
		}
	})

	r.screen.Show()
}

type highlight int

const (
	plain highlight = iota
	focused
	neighbour
)

// drawCell fills a cell's columns with its background and label.
func (r *Renderer) drawCell(pos world.Position, cell world.Cell, h highlight) {
	sx, sy := r.layout.ScreenAt(pos)
	style := r.cellStyle(cell)
	switch h {
	case focused:
		style = style.Reverse(true)
	case neighbour:
		style = style.Underline(true)
	}

	label := []rune(r.label(cell))
	for i := 0; i < r.layout.CellWidth; i++ {
		ch := ' '
		if i < len(label) {
			ch = label[i]
		}
		r.screen.SetContent(sx+i, sy, ch, style)
	}
}

func (r *Renderer) cellStyle(cell world.Cell) tcell.Style {
	return tcell.StyleDefault.
		Background(r.palette.CellColor(cell)).
		Foreground(r.palette.TextColor(cell))
}

// label is the text shown in a cell, at most CellWidth-1 runes so the last
// column stays free for the queue arrow.
func (r *Renderer) label(cell world.Cell) string {
	width := r.layout.CellWidth - 1
	switch cell.Kind {
	case world.KindOpen:
		return ""
	case world.KindMountain:
		return "^^^"[:min(3, width)]
	}

	units := strconv.Itoa(cell.Units)
	if cell.Kind == world.KindKing {
		team := r.palette.Team(cell.Owner)
		units = string(team.SymbolRune()) + units
	}
	if len(units) > width {
		return "+++"[:min(3, width)]
	}
	return units
}
