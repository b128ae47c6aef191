// Package gridlabel defines core types, options, and sentinel errors
// for grid component labeling.
package gridlabel

import (
	"errors"

	"github.com/katalvlaran/stepwise/frame"
)

// Sentinel errors for gridlabel operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridlabel: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridlabel: all rows must have the same length")
)

// Kind is the catalog name of the Labeler.
const Kind = "grid-labeling"

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: down, up, right, left.
	Conn4 Connectivity = iota
	// Conn8 adds the four diagonals after the orthogonal neighbors.
	Conn8
)

// GridOptions contains tunable parameters for grid analysis.
type GridOptions struct {
	// LandThreshold specifies the minimum cell value considered "land".
	LandThreshold int
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// DefaultGridOptions returns a GridOptions with default settings:
// LandThreshold=1 (values ≥1 are land), Conn=Conn4.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		LandThreshold: 1,
		Conn:          Conn4,
	}
}

// Grid treats a 2D integer grid as cells of land and water. It is immutable
// once built. CellValues[y][x] holds the original input value.
type Grid struct {
	Width, Height int
	CellValues    [][]int
	Conn          Connectivity
	LandThreshold int
	offsets       [][2]int // (dx, dy) in expansion order
}

// Highlight line identifiers.
const (
	LineInit     = "init"
	LineSkip     = "skip"
	LineDiscover = "discover"
	LineVisit    = "visit"
	LineDone     = "done"
)

var listing = []frame.Line{
	{ID: LineInit, Code: "count := 0", Indent: 1},
	{ID: "scan", Code: "for r := range grid { for c := range grid[r] {", Indent: 1},
	{ID: LineSkip, Code: "if grid[r][c] != land { continue }", Indent: 2},
	{ID: LineDiscover, Code: "count++; sink(grid, r, c, count)", Indent: 2},
	{ID: "end", Code: "} }", Indent: 1},
	{ID: LineDone, Code: "return count", Indent: 1},
	{ID: "sink", Code: "func sink(grid, r, c, id) {", Indent: 0},
	{ID: "base", Code: "if out of bounds || grid[r][c] != land { return }", Indent: 1},
	{ID: LineVisit, Code: "grid[r][c] = id // sunk", Indent: 1},
	{ID: "recurse", Code: "sink(r+1, c); sink(r-1, c); sink(r, c+1); sink(r, c-1)", Indent: 1},
	{ID: "close", Code: "}", Indent: 0},
}
