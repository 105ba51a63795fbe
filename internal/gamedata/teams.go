package gamedata

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/generals/internal/world"
)

// TeamDef defines a team's display identity loaded from JSON.
type TeamDef struct {
	Name   string `json:"name"`   // Display name (e.g., "Red")
	Color  string `json:"color"`  // Hex color code (e.g., "#E61A1A")
	Symbol string `json:"symbol"` // Single character marking the team's king
}

// SymbolRune returns the symbol as a rune for rendering.
func (d *TeamDef) SymbolRune() rune {
	if len(d.Symbol) == 0 {
		return '?'
	}
	return rune(d.Symbol[0])
}

// TeamsFile represents the structure of teams.json.
type TeamsFile struct {
	Teams []TeamDef `json:"teams"`
}

// LoadTeams loads team definitions from the embedded teams.json file.
func LoadTeams() ([]TeamDef, error) {
	file, err := Load[TeamsFile]("teams.json")
	if err != nil {
		return nil, err
	}
	return file.Teams, nil
}

// Palette maps teams to their definitions and parsed base colors.
// Team indices past the end of the list wrap around.
type Palette struct {
	teams  []TeamDef
	colors []colorful.Color
}

// NewPalette parses every team color.
func NewPalette(teams []TeamDef) (*Palette, error) {
	if len(teams) == 0 {
		return nil, errors.New("palette needs at least one team")
	}
	p := &Palette{teams: teams, colors: make([]colorful.Color, len(teams))}
	for i, t := range teams {
		c, err := colorful.Hex(t.Color)
		if err != nil {
			return nil, fmt.Errorf("team %q color %q: %w", t.Name, t.Color, err)
		}
		p.colors[i] = c
	}
	return p, nil
}

// LoadPalette builds a palette from the embedded teams.json.
func LoadPalette() (*Palette, error) {
	teams, err := LoadTeams()
	if err != nil {
		return nil, err
	}
	return NewPalette(teams)
}

// MustLoadPalette loads the palette, panicking on error.
func MustLoadPalette() *Palette {
	p, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return p
}

// Team returns the definition for team.
func (p *Palette) Team(team world.Team) TeamDef {
	return p.teams[p.index(team)]
}

// Count returns the number of distinct team definitions.
func (p *Palette) Count() int {
	return len(p.teams)
}

func (p *Palette) index(team world.Team) int {
	i := int(team) % len(p.teams)
	if i < 0 {
		i += len(p.teams)
	}
	return i
}
