package gamedata

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/generals/internal/world"
)

var (
	mountainColor = colorful.Color{R: 0.2, G: 0.2, B: 0.2}
	openColor     = colorful.Color{R: 1, G: 1, B: 1}
	neutralColor  = colorful.Color{R: 0.4, G: 0.4, B: 0.4}
	black         = colorful.Color{}
)

// CellColor returns the background color for a cell. Kings are drawn a
// shade darker than their team, fortresses blended toward gray.
func (p *Palette) CellColor(c world.Cell) tcell.Color {
	return toTCell(p.cellColor(c))
}

// TeamColor returns the base color of team.
func (p *Palette) TeamColor(team world.Team) tcell.Color {
	return toTCell(p.colors[p.index(team)])
}

// TextColor picks black or white, whichever reads better on the cell's
// background.
func (p *Palette) TextColor(c world.Cell) tcell.Color {
	l, _, _ := p.cellColor(c).Lab()
	if l > 0.6 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

func (p *Palette) cellColor(c world.Cell) colorful.Color {
	switch c.Kind {
	case world.KindMountain:
		return mountainColor
	case world.KindOpen:
		return openColor
	}
	if c.Owner == world.Neutral {
		return neutralColor
	}
	base := p.colors[p.index(c.Owner)]
	switch c.Kind {
	case world.KindKing:
		return base.BlendLab(black, 0.25).Clamped()
	case world.KindFortress:
		return base.BlendLab(neutralColor, 0.35).Clamped()
	default:
		return base
	}
}

func toTCell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
