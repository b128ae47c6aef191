package gridlabel

import (
	"fmt"

	"github.com/katalvlaran/stepwise/frame"
)

// Labeler is the instrumented multi-source DFS labeling. It holds the live
// labels, scan position and fill stack, and only steps forward.
type Labeler struct {
	grid *Grid

	labels  []int // row-major component id, 0 = unlabeled
	stack   []int // pending fill cells, row-major, top last
	scan    int   // next row-major position the scan examines
	count   int
	current int // row-major cell highlighted by the last frame, -1 for none
	index   int
	done    bool
}

// NewLabeler returns a Labeler over g positioned before frame 0.
func NewLabeler(g *Grid) *Labeler {
	l := &Labeler{grid: g}
	l.Reset()
	return l
}

// Kind returns the catalog name.
func (l *Labeler) Kind() string { return Kind }

// Listing returns the pseudocode listing.
func (l *Labeler) Listing() []frame.Line { return append([]frame.Line(nil), listing...) }

// Reset clears every label and rewinds the scan.
func (l *Labeler) Reset() {
	l.labels = make([]int, l.grid.Width*l.grid.Height)
	l.stack = l.stack[:0]
	l.scan = 0
	l.count = 0
	l.current = -1
	l.index = -1
	l.done = false
}

// Count returns the number of components discovered so far.
func (l *Labeler) Count() int { return l.count }

// Labels returns the current component id of every cell, [y][x].
func (l *Labeler) Labels() [][]int {
	out := make([][]int, l.grid.Height)
	for y := range out {
		out[y] = append([]int(nil), l.labels[y*l.grid.Width:(y+1)*l.grid.Width]...)
	}
	return out
}

// Next advances by one flood-fill visit or one scan position.
func (l *Labeler) Next() (frame.Frame, error) {
	if l.done {
		return frame.Frame{}, frame.ErrExhausted
	}
	l.index++
	if l.index == 0 {
		return l.snapshot(LineInit, "Scan the grid row by row looking for unlabeled land"), nil
	}

	for len(l.stack) > 0 {
		cell := l.stack[len(l.stack)-1]
		l.stack = l.stack[:len(l.stack)-1]
		x, y := l.grid.Coordinate(cell)
		// base case: entries may have been labeled since they were pushed
		if !l.grid.IsLand(x, y) || l.labels[cell] != 0 {
			continue
		}
		l.labels[cell] = l.count
		l.current = cell
		l.push(x, y)
		return l.snapshot(LineVisit, fmt.Sprintf("DFS: visit cell (%d, %d), mark it as island %d", y, x, l.count)), nil
	}

	if l.scan == len(l.labels) {
		l.done = true
		l.current = -1
		return l.snapshot(LineDone, fmt.Sprintf("Scan complete: %d islands", l.count)), nil
	}

	cell := l.scan
	l.scan++
	l.current = cell
	x, y := l.grid.Coordinate(cell)
	switch {
	case !l.grid.IsLand(x, y):
		return l.snapshot(LineSkip, fmt.Sprintf("Cell (%d, %d) is water - skip", y, x)), nil
	case l.labels[cell] != 0:
		return l.snapshot(LineSkip, fmt.Sprintf("Cell (%d, %d) already belongs to island %d - skip", y, x, l.labels[cell])), nil
	}
	l.count++
	l.stack = append(l.stack, cell)

	return l.snapshot(LineDiscover, fmt.Sprintf("Found new island #%d at (%d, %d)", l.count, y, x)), nil
}

// push schedules the neighbors of (x,y) so that the first offset is popped
// first. Out-of-grid, water and labeled cells are never pushed.
func (l *Labeler) push(x, y int) {
	for k := len(l.grid.offsets) - 1; k >= 0; k-- {
		d := l.grid.offsets[k]
		nx, ny := x+d[0], y+d[1]
		if !l.grid.IsLand(nx, ny) {
			continue
		}
		if n := l.grid.index(nx, ny); l.labels[n] == 0 {
			l.stack = append(l.stack, n)
		}
	}
}

func (l *Labeler) snapshot(line, narrative string) frame.Frame {
	g := l.grid
	pending := make(map[int]bool, len(l.stack))
	items := make([]string, 0, len(l.stack))
	for _, c := range l.stack {
		pending[c] = true
		x, y := g.Coordinate(c)
		items = append(items, fmt.Sprintf("(%d,%d)", y, x))
	}

	rows := make([][]frame.GridCell, g.Height)
	for y := 0; y < g.Height; y++ {
		rows[y] = make([]frame.GridCell, g.Width)
		for x := 0; x < g.Width; x++ {
			i := g.index(x, y)
			gc := frame.GridCell{Land: g.IsLand(x, y), Component: l.labels[i]}
			if l.labels[i] != 0 {
				gc.Flags = append(gc.Flags, frame.FlagVisited)
			}
			if pending[i] {
				gc.Flags = append(gc.Flags, frame.FlagPending)
			}
			if i == l.current {
				gc.Flags = append(gc.Flags, frame.FlagCurrent)
			}
			rows[y][x] = gc
		}
	}

	row, col := -1, -1
	if l.current >= 0 {
		col, row = g.Coordinate(l.current)
	}
	b := frame.New(l.index, line, narrative).
		Var("row", row).
		Var("col", col).
		Var("count", l.count).
		Var("stackDepth", len(l.stack)).
		Grid("grid", rows).
		Stack("stack", items)
	if l.done {
		b.Final()
	}

	return b.Build()
}
