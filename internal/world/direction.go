package world

import "fmt"

// Position is a grid coordinate. X is the column, Y the row.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position { return Position{X: x, Y: y} }

// Step returns the position one cell away in direction d. The result is
// not clipped to any board.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String returns "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four axis-aligned movement directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction.
var Directions = [...]Direction{Up, Left, Right, Down}

// Delta returns the unit displacement for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		panic(fmt.Sprintf("world: invalid direction %d", d))
	}
}

// From returns the neighbour of pos in this direction, or false if it
// would fall outside [0,w) x [0,h).
func (d Direction) From(pos Position, w, h int) (Position, bool) {
	switch d {
	case Up:
		if pos.Y <= 0 {
			return Position{}, false
		}
	case Down:
		if pos.Y >= h-1 {
			return Position{}, false
		}
	case Left:
		if pos.X <= 0 {
			return Position{}, false
		}
	case Right:
		if pos.X >= w-1 {
			return Position{}, false
		}
	default:
		return Position{}, false
	}
	return pos.Step(d), true
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name produced by String back to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}
