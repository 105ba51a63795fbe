// Package gamedata provides embedded display data for teams and cells.
package gamedata

import "embed"

// dataFS holds every JSON file in this directory.
//
//go:embed *.json
var dataFS embed.FS
