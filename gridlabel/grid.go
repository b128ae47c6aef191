package gridlabel

import (
	"fmt"

	"github.com/katalvlaran/stepwise/frame"
)

// NewGrid constructs a Grid from a non-empty, rectangular 2D slice.
// It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if grid has no rows or no columns,
// ErrNonRectangular if any row length differs; both wrap frame.ErrConfiguration.
// Algorithmic complexity: O(W×H) time and memory.
func NewGrid(values [][]int, opts GridOptions) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("%w: %w", frame.ErrConfiguration, ErrEmptyGrid)
	}
	h, w := len(values), len(values[0])
	for y, row := range values {
		if len(row) != w {
			return nil, fmt.Errorf("%w: %w: row %d has %d cells, want %d",
				frame.ErrConfiguration, ErrNonRectangular, y, len(row), w)
		}
	}
	// Deep copy to prevent external mutation
	cells := make([][]int, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]int, w)
		copy(cells[y], values[y])
	}
	// down, up, right, left; diagonals last
	offsets := [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	if opts.Conn == Conn8 {
		offsets = append(offsets, [2]int{1, 1}, [2]int{-1, 1}, [2]int{1, -1}, [2]int{-1, -1})
	}

	return &Grid{
		Width:         w,
		Height:        h,
		CellValues:    cells,
		Conn:          opts.Conn,
		LandThreshold: opts.LandThreshold,
		offsets:       offsets,
	}, nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsLand reports whether (x,y) is in bounds and at least LandThreshold.
func (g *Grid) IsLand(x, y int) bool {
	return g.InBounds(x, y) && g.CellValues[y][x] >= g.LandThreshold
}

// NeighborOffsets returns the (dx,dy) offsets in expansion order.
func (g *Grid) NeighborOffsets() [][2]int {
	return append([][2]int(nil), g.offsets...)
}

// index maps (x,y) to a row‑major index: y*Width + x.
// Complexity: O(1).
func (g *Grid) index(x, y int) int {
	return y*g.Width + x
}

// Coordinate converts a row‑major index back to (x,y).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (x, y int) {
	return idx % g.Width, idx / g.Width
}

// ConnectedComponents finds all maximal regions of land cells according to
// g.Conn. Components are ordered by the row-major position of their first
// cell, matching the ids a Labeler assigns (component i has id i+1).
// Each component lists its cell indices (row-major) in BFS order.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (g *Grid) ConnectedComponents() [][]int {
	seen := make([]bool, g.Width*g.Height)
	var comps [][]int

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.IsLand(x, y) {
				continue // water
			}
			i0 := g.index(x, y)
			if seen[i0] {
				continue
			}
			// BFS to collect component
			queue := []int{i0}
			seen[i0] = true
			var comp []int

			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				comp = append(comp, u)
				ux, uy := g.Coordinate(u)
				for _, d := range g.offsets {
					vx, vy := ux+d[0], uy+d[1]
					if !g.IsLand(vx, vy) {
						continue
					}
					vi := g.index(vx, vy)
					if !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			comps = append(comps, comp)
		}
	}

	return comps
}
