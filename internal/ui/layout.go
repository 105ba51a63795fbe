package ui

import "github.com/samdwyer/generals/internal/world"

// Layout maps board positions to terminal columns and rows. Each board
// cell is CellWidth columns wide and one row tall.
type Layout struct {
	OriginX, OriginY int
	CellWidth        int
}

// DefaultLayout fits three digit unit counts with a column to spare for
// the queued-move arrow.
var DefaultLayout = Layout{CellWidth: 4}

// BoardAt returns the board position under a terminal coordinate. The
// position may still be off the board; ok is false only left of or above
// the origin.
func (l Layout) BoardAt(sx, sy int) (world.Position, bool) {
	if sx < l.OriginX || sy < l.OriginY {
		return world.Position{}, false
	}
	return world.Pos((sx-l.OriginX)/l.CellWidth, sy-l.OriginY), true
}

// ScreenAt returns the terminal coordinate of a cell's first column.
func (l Layout) ScreenAt(p world.Position) (sx, sy int) {
	return l.OriginX + p.X*l.CellWidth, l.OriginY + p.Y
}

// Rows returns the number of terminal rows a board of size cells tall uses.
func (l Layout) Rows(size int) int {
	return l.OriginY + size
}
