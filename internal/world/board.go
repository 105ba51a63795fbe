package world

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/generals/internal/telemetry"
)

// DefaultSize is the standard board edge length.
const DefaultSize = 32

// Board is a fixed-size square grid of cells stored row-major.
type Board struct {
	size  int
	cells [][]Cell
}

// Empty creates a size x size board of Open cells.
func Empty(size int) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("world: invalid board size %d", size))
	}
	cells := make([][]Cell, size)
	for y := range cells {
		cells[y] = make([]Cell, size)
		for x := range cells[y] {
			cells[y][x] = Open()
		}
	}
	return &Board{size: size, cells: cells}
}

// Randomize fills the board using DefaultTerrain.
func (b *Board) Randomize(ctx context.Context, rng *rand.Rand, numPlayers int) {
	b.RandomizeWith(ctx, rng, numPlayers, DefaultTerrain)
}

// RandomizeWith assigns every cell independently by weighted choice, then
// drops one king per team on a uniformly random cell. Kings are not kept
// apart: two may land on the same cell, and a king may replace a mountain
// or fortress.
func (b *Board) RandomizeWith(ctx context.Context, rng *rand.Rand, numPlayers int, terrain Terrain) {
	_, span := telemetry.Tracer("world").Start(ctx, "board.randomize")
	defer span.End()

	startTime := time.Now()
	p := newPicker(terrain)

	fortresses, mountains := 0, 0
	for y := range b.cells {
		for x := range b.cells[y] {
			kind := p.pick(rng)
			switch kind {
			case KindFortress:
				fortresses++
			case KindMountain:
				mountains++
			}
			b.cells[y][x] = terrain.cell(kind, rng)
		}
	}

	for team := 0; team < numPlayers; team++ {
		x, y := rng.Intn(b.size), rng.Intn(b.size)
		b.cells[y][x] = King(Team(team), terrain.KingUnits)
	}

	span.SetAttributes(
		attribute.Int("board.size", b.size),
		attribute.Int("board.players", numPlayers),
		attribute.Int("board.fortresses", fortresses),
		attribute.Int("board.mountains", mountains),
		attribute.Int64("board.generation_us", time.Since(startTime).Microseconds()),
	)
}

// Size returns the edge length of the board.
func (b *Board) Size() int { return b.size }

// Width returns the number of columns.
func (b *Board) Width() int { return b.size }

// Height returns the number of rows.
func (b *Board) Height() int { return b.size }

// InBounds returns true if (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// Get returns the cell at (x, y). It panics if the coordinate is off the board.
func (b *Board) Get(x, y int) Cell {
	return b.cells[y][x]
}

// At returns a mutable handle to the cell at (x, y). It panics if the
// coordinate is off the board.
func (b *Board) At(x, y int) *Cell {
	return &b.cells[y][x]
}

// TryGet returns the cell at (x, y), or false if the coordinate is off the board.
func (b *Board) TryGet(x, y int) (Cell, bool) {
	if !b.InBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y][x], true
}

// Set replaces the cell at (x, y). It panics if the coordinate is off the board.
func (b *Board) Set(x, y int, c Cell) {
	b.cells[y][x] = c
}

// Cells returns a copy of the grid, indexed [y][x].
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.size)
	for y := range b.cells {
		out[y] = make([]Cell, b.size)
		copy(out[y], b.cells[y])
	}
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{size: b.size, cells: b.Cells()}
}

// Kings returns the position of the first king cell found for each team,
// scanning row by row.
func (b *Board) Kings() map[Team]Position {
	kings := make(map[Team]Position)
	for y, row := range b.cells {
		for x, c := range row {
			if c.Kind != KindKing {
				continue
			}
			if _, seen := kings[c.Owner]; !seen {
				kings[c.Owner] = Pos(x, y)
			}
		}
	}
	return kings
}

// Tally counts the cells and units a single owner holds.
type Tally struct {
	Cells int `yaml:"cells"`
	Units int `yaml:"units"`
}

// Census tallies every owned cell by owner. Neutral fortresses are
// reported under Neutral.
func (b *Board) Census() map[Team]Tally {
	census := make(map[Team]Tally)
	for _, row := range b.cells {
		for _, c := range row {
			if !c.HasUnits() {
				continue
			}
			t := census[c.Owner]
			t.Cells++
			t.Units += c.Units
			census[c.Owner] = t
		}
	}
	return census
}

// Fingerprint hashes the full grid. Two boards with equal fingerprints
// hold the same cells with overwhelming probability.
func (b *Board) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [9]byte
	for _, row := range b.cells {
		for _, c := range row {
			buf[0] = byte(c.Kind)
			binary.LittleEndian.PutUint32(buf[1:5], uint32(int32(c.Owner)))
			binary.LittleEndian.PutUint32(buf[5:9], uint32(c.Units))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}
