// Package scenario runs scripted games without a terminal: a YAML file
// describes the board and each team's queued moves, and Run reports the
// board after a number of ticks.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/generals/internal/engine"
	"github.com/samdwyer/generals/internal/world"
)

// Scenario is the YAML description of a scripted game.
type Scenario struct {
	Name    string `yaml:"name"`
	Size    int    `yaml:"size"`
	Players int    `yaml:"players"`
	Ticks   int    `yaml:"ticks"`

	// Generate fills the board randomly from Seed and Terrain before Cells
	// are applied. Without it the board starts Open. A Terrain given here
	// replaces DefaultTerrain whole, so every field must be set.
	Generate bool           `yaml:"generate"`
	Seed     int64          `yaml:"seed"`
	Terrain  *world.Terrain `yaml:"terrain"`

	Cells []CellSpec         `yaml:"cells"`
	Moves map[int][]MoveSpec `yaml:"moves"`
}

// CellSpec places one cell on the board.
type CellSpec struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Kind  string `yaml:"kind"`
	Owner *int   `yaml:"owner"` // omitted for a neutral fortress
	Units int    `yaml:"units"`
}

// MoveSpec queues either one move (Dir) or a chain of moves (Path, e.g.
// "rrdd") starting at X, Y.
type MoveSpec struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Dir  string `yaml:"dir"`
	Path string `yaml:"path"`
}

// Parse decodes a scenario, rejecting unknown fields.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadFile reads and parses a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Validate checks sizes and the cell layout.
func (sc *Scenario) Validate() error {
	var errs []error
	if sc.Size < 1 {
		errs = append(errs, fmt.Errorf("size must be positive, got %d", sc.Size))
	}
	if sc.Players < 1 {
		errs = append(errs, fmt.Errorf("players must be positive, got %d", sc.Players))
	}
	if sc.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must not be negative, got %d", sc.Ticks))
	}
	if sc.Terrain != nil {
		if err := sc.Terrain.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("terrain: %w", err))
		}
	}
	for i, c := range sc.Cells {
		if _, err := c.cell(sc.Players); err != nil {
			errs = append(errs, fmt.Errorf("cells[%d]: %w", i, err))
		}
		if c.X < 0 || c.X >= sc.Size || c.Y < 0 || c.Y >= sc.Size {
			errs = append(errs, fmt.Errorf("cells[%d]: (%d,%d) is off the board", i, c.X, c.Y))
		}
	}
	for team := range sc.Moves {
		if team < 0 || team >= sc.Players {
			errs = append(errs, fmt.Errorf("moves for unknown team %d", team))
		}
	}
	return errors.Join(errs...)
}

// cell builds the board cell described by c.
func (c CellSpec) cell(players int) (world.Cell, error) {
	if c.Units < 0 {
		return world.Cell{}, fmt.Errorf("negative units %d", c.Units)
	}
	owner := world.Neutral
	if c.Owner != nil {
		if *c.Owner < 0 || *c.Owner >= players {
			return world.Cell{}, fmt.Errorf("owner %d is not a team", *c.Owner)
		}
		owner = world.Team(*c.Owner)
	}

	switch c.Kind {
	case "open":
		return world.Open(), nil
	case "mountain":
		return world.Mountain(), nil
	case "fortress":
		return world.Fortress(owner, c.Units), nil
	case "king", "captured":
		if owner == world.Neutral {
			return world.Cell{}, fmt.Errorf("%s needs an owner", c.Kind)
		}
		if c.Kind == "king" {
			return world.King(owner, c.Units), nil
		}
		return world.Captured(owner, c.Units), nil
	default:
		return world.Cell{}, fmt.Errorf("unknown cell kind %q", c.Kind)
	}
}

// expand returns the moves the input layer would queue for m,
// following the path cell by cell.
func (m MoveSpec) expand() ([]engine.Move, error) {
	pos := world.Pos(m.X, m.Y)
	if m.Path == "" {
		d, err := world.ParseDirection(m.Dir)
		if err != nil {
			return nil, err
		}
		return []engine.Move{{From: pos, Dir: d}}, nil
	}
	if m.Dir != "" {
		return nil, errors.New("dir and path are mutually exclusive")
	}

	moves := make([]engine.Move, 0, len(m.Path))
	for _, r := range m.Path {
		d, err := world.ParseDirection(string(r))
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", m.Path, err)
		}
		moves = append(moves, engine.Move{From: pos, Dir: d})
		pos = pos.Step(d)
	}
	return moves, nil
}
