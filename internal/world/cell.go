// Package world provides the board, its cells and grid movement arithmetic.
package world

import "fmt"

// Team identifies a player. Teams are indexed 0..N-1.
type Team int

// Neutral is the owner of cells no team controls.
const Neutral Team = -1

// Kind is the terrain/ownership variant of a cell.
type Kind uint8

const (
	// KindOpen is unclaimed ground with no units.
	KindOpen Kind = iota
	// KindMountain is impassable terrain that never holds units.
	KindMountain
	// KindFortress is a strongpoint, neutral or owned.
	KindFortress
	// KindKing is a team's capital.
	KindKing
	// KindCaptured is ordinary team-owned territory.
	KindCaptured
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindMountain:
		return "mountain"
	case KindFortress:
		return "fortress"
	case KindKing:
		return "king"
	case KindCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// Cell is a single grid square. Only Fortress, King and Captured cells
// carry an owner and a unit count; Mountain and Open cells are always
// Neutral with zero units.
type Cell struct {
	Kind  Kind
	Owner Team
	Units int
}

// Open returns an unclaimed cell.
func Open() Cell { return Cell{Kind: KindOpen, Owner: Neutral} }

// Mountain returns an impassable cell.
func Mountain() Cell { return Cell{Kind: KindMountain, Owner: Neutral} }

// Fortress returns a fortress held by owner, which may be Neutral.
func Fortress(owner Team, units int) Cell {
	return Cell{Kind: KindFortress, Owner: owner, Units: units}
}

// NeutralFortress returns an unowned fortress.
func NeutralFortress(units int) Cell { return Fortress(Neutral, units) }

// King returns the capital of team.
func King(team Team, units int) Cell {
	return Cell{Kind: KindKing, Owner: team, Units: units}
}

// Captured returns ordinary territory held by team.
func Captured(team Team, units int) Cell {
	return Cell{Kind: KindCaptured, Owner: team, Units: units}
}

// HasUnits reports whether the cell kind carries a unit count.
func (c Cell) HasUnits() bool {
	switch c.Kind {
	case KindFortress, KindKing, KindCaptured:
		return true
	default:
		return false
	}
}

// IsOwned reports whether some team holds the cell.
func (c Cell) IsOwned() bool {
	return c.HasUnits() && c.Owner != Neutral
}

// IsControlledBy reports whether team holds the cell.
func (c Cell) IsControlledBy(team Team) bool {
	return c.IsOwned() && c.Owner == team
}

// TakeUnits removes every unit but the garrison of one and returns how
// many were removed. It panics on cells that carry no units; callers must
// only move out of cells they control.
func (c *Cell) TakeUnits() int {
	c.mustHaveUnits("take")
	if c.Units <= 1 {
		return 0
	}
	n := c.Units - 1
	c.Units = 1
	return n
}

// GiveUnits adds n units to the cell. It panics on cells that carry no units.
func (c *Cell) GiveUnits(n int) {
	c.mustHaveUnits("give")
	c.Units += n
}

func (c *Cell) mustHaveUnits(op string) {
	if !c.HasUnits() {
		panic(fmt.Sprintf("world: cannot %s units on %v: cell has no units", op, *c))
	}
}

// String returns a compact debug form such as "King(1,12)".
func (c Cell) String() string {
	switch c.Kind {
	case KindOpen:
		return "Open"
	case KindMountain:
		return "Mountain"
	case KindFortress:
		if c.Owner == Neutral {
			return fmt.Sprintf("Fortress(-,%d)", c.Units)
		}
		return fmt.Sprintf("Fortress(%d,%d)", c.Owner, c.Units)
	case KindKing:
		return fmt.Sprintf("King(%d,%d)", c.Owner, c.Units)
	case KindCaptured:
		return fmt.Sprintf("Captured(%d,%d)", c.Owner, c.Units)
	default:
		return "Unknown"
	}
}
