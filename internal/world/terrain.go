package world

import (
	"fmt"
	"math/rand"
	"sort"
)

// Terrain controls random board generation.
type Terrain struct {
	// Relative weights for each cell kind.
	OpenWeight     int `mapstructure:"open_weight" yaml:"open_weight"`
	MountainWeight int `mapstructure:"mountain_weight" yaml:"mountain_weight"`
	FortressWeight int `mapstructure:"fortress_weight" yaml:"fortress_weight"`

	// Fortress garrisons are drawn uniformly from [FortressMin, FortressMax).
	// A zero range leaves fortresses empty.
	FortressMin int `mapstructure:"fortress_min" yaml:"fortress_min"`
	FortressMax int `mapstructure:"fortress_max" yaml:"fortress_max"`

	// KingUnits is the starting garrison of every king.
	KingUnits int `mapstructure:"king_units" yaml:"king_units"`
}

// DefaultTerrain is the standard generation table.
var DefaultTerrain = Terrain{
	OpenWeight:     100,
	MountainWeight: 10,
	FortressWeight: 3,
	FortressMin:    40,
	FortressMax:    50,
	KingUnits:      1,
}

// LegacyTerrain is the earlier table: rarer fortresses with no garrison.
var LegacyTerrain = Terrain{
	OpenWeight:     100,
	MountainWeight: 10,
	FortressWeight: 1,
	KingUnits:      1,
}

// Validate checks that the table can produce a board.
func (t Terrain) Validate() error {
	if t.OpenWeight < 0 || t.MountainWeight < 0 || t.FortressWeight < 0 {
		return fmt.Errorf("terrain weights must not be negative")
	}
	if t.OpenWeight+t.MountainWeight+t.FortressWeight == 0 {
		return fmt.Errorf("terrain weights sum to zero")
	}
	if t.FortressMax < t.FortressMin || t.FortressMin < 0 {
		return fmt.Errorf("invalid fortress range [%d, %d)", t.FortressMin, t.FortressMax)
	}
	if t.KingUnits < 1 {
		return fmt.Errorf("king units must be at least 1, got %d", t.KingUnits)
	}
	return nil
}

// picker draws cell kinds by cumulative weight.
type picker struct {
	kinds      []Kind
	cumulative []int
}

func newPicker(t Terrain) *picker {
	p := &picker{}
	total := 0
	for _, w := range []struct {
		kind   Kind
		weight int
	}{
		{KindOpen, t.OpenWeight},
		{KindMountain, t.MountainWeight},
		{KindFortress, t.FortressWeight},
	} {
		if w.weight <= 0 {
			continue
		}
		total += w.weight
		p.kinds = append(p.kinds, w.kind)
		p.cumulative = append(p.cumulative, total)
	}
	return p
}

func (p *picker) total() int {
	if len(p.cumulative) == 0 {
		return 0
	}
	return p.cumulative[len(p.cumulative)-1]
}

// pick returns the kind whose cumulative weight first exceeds a uniform roll.
func (p *picker) pick(rng *rand.Rand) Kind {
	roll := rng.Intn(p.total())
	i := sort.Search(len(p.cumulative), func(i int) bool {
		return p.cumulative[i] > roll
	})
	return p.kinds[i]
}

// cell builds a freshly generated cell of the given kind.
func (t Terrain) cell(kind Kind, rng *rand.Rand) Cell {
	switch kind {
	case KindMountain:
		return Mountain()
	case KindFortress:
		units := t.FortressMin
		if t.FortressMax > t.FortressMin {
			units += rng.Intn(t.FortressMax - t.FortressMin)
		}
		return NeutralFortress(units)
	default:
		return Open()
	}
}
