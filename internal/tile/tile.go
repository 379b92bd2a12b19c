// Package tile parses Equi7Grid tile long names such as "EU020M_E051N015T3".
package tile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when a tile long name lacks the grid/tile separator.
var ErrMalformed = errors.New("malformed tile name")

// Tile identifies a tile of an Equi7Grid sub-grid.
type Tile struct {
	// Grid is the sub-grid name including the sampling, e.g. EU020M.
	Grid string
	// Name is the tile code, e.g. E051N015T3.
	Name string
}

// Parse splits a tile long name on its first underscore.
func Parse(longName string) (Tile, error) {
	grid, name, ok := strings.Cut(longName, "_")
	if !ok || grid == "" || name == "" {
		return Tile{}, fmt.Errorf("%w: %q, want <GRID>_<TILE>", ErrMalformed, longName)
	}
	return Tile{Grid: grid, Name: name}, nil
}

// EquiGrid returns the grid directory name used by the yeoda layout.
func (t Tile) EquiGrid() string {
	return "EQUI7_" + t.Grid
}

func (t Tile) String() string {
	return t.Grid + "_" + t.Name
}
