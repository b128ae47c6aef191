package gridlabel_test

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/katalvlaran/stepwise/frame"
	"github.com/katalvlaran/stepwise/gridlabel"
)

//----------------------------------------------------------------------------//
// NewGrid and InBounds Tests
//----------------------------------------------------------------------------//

// TestNewGrid_Errors verifies that NewGrid rejects empty or ragged inputs.
func TestNewGrid_Errors(t *testing.T) {
	cases := []struct {
		name string
		grid [][]int
		err  error
	}{
		{"EmptyRows", [][]int{}, gridlabel.ErrEmptyGrid},
		{"EmptyCols", [][]int{{}}, gridlabel.ErrEmptyGrid},
		{"NonRectangular", [][]int{{1, 2}, {3}}, gridlabel.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridlabel.NewGrid(tc.grid, gridlabel.DefaultGridOptions())
			if !errors.Is(err, tc.err) {
				t.Errorf("NewGrid(%v) error = %v; want %v", tc.grid, err, tc.err)
			}
			if !errors.Is(err, frame.ErrConfiguration) {
				t.Errorf("NewGrid(%v) error = %v; want ErrConfiguration", tc.grid, err)
			}
		})
	}
}

// TestInBounds checks InBounds on a 3×2 grid.
func TestInBounds(t *testing.T) {
	grid := [][]int{
		{0, 1, 0},
		{1, 0, 1},
	}
	g, err := gridlabel.NewGrid(grid, gridlabel.DefaultGridOptions())
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}

	valid := [][2]int{{0, 0}, {2, 1}, {1, 1}}
	for _, xy := range valid {
		if !g.InBounds(xy[0], xy[1]) {
			t.Errorf("InBounds(%d,%d)=false; want true", xy[0], xy[1])
		}
	}
	invalid := [][2]int{{-1, 0}, {3, 0}, {1, 2}, {2, -1}}
	for _, xy := range invalid {
		if g.InBounds(xy[0], xy[1]) {
			t.Errorf("InBounds(%d,%d)=true; want false", xy[0], xy[1])
		}
	}
}

// TestNewGrid_DeepCopy ensures later edits of the input do not leak in.
func TestNewGrid_DeepCopy(t *testing.T) {
	in := [][]int{{1, 0}}
	g, err := gridlabel.NewGrid(in, gridlabel.DefaultGridOptions())
	if err != nil {
		t.Fatal(err)
	}
	in[0][1] = 1
	if g.IsLand(1, 0) {
		t.Errorf("IsLand(1,0) = true after mutating input; want false")
	}
}

//----------------------------------------------------------------------------//
// ConnectedComponents Tests
//----------------------------------------------------------------------------//

// TestConnectedComponents_Simple4 tests a 4×3 grid with Conn4.
//
// Grid (1 = land, 0 = water):
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
//
// Expected: 2 islands of sizes 4 and 2.
func TestConnectedComponents_Simple4(t *testing.T) {
	grid := [][]int{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	}
	g, err := gridlabel.NewGrid(grid, gridlabel.DefaultGridOptions())
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	comps := g.ConnectedComponents()
	if len(comps) != 2 {
		t.Fatalf("got %d components; want 2", len(comps))
	}

	// Collect sizes and sort for comparison.
	sizes := []int{len(comps[0]), len(comps[1])}
	sort.Ints(sizes)
	want := []int{2, 4}
	if !reflect.DeepEqual(sizes, want) {
		t.Errorf("component sizes = %v; want %v", sizes, want)
	}
}

// TestConnectedComponents_Diagonal8 uses Conn8 to catch "touching corners" islands.
//
//	1 0 0 0 1
//	0 1 0 1 0
//	0 0 1 0 0
//	0 1 0 1 0
//	1 0 0 0 1
//
// With Conn8, all 9 ones connect through diagonal hops into a single island;
// with Conn4 every one is its own island.
func TestConnectedComponents_Diagonal8(t *testing.T) {
	grid := [][]int{
		{1, 0, 0, 0, 1},
		{0, 1, 0, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 0, 1, 0},
		{1, 0, 0, 0, 1},
	}
	g8, err := gridlabel.NewGrid(grid, gridlabel.GridOptions{LandThreshold: 1, Conn: gridlabel.Conn8})
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	comps := g8.ConnectedComponents()
	if len(comps) != 1 || len(comps[0]) != 9 {
		t.Errorf("Conn8: got %d components; want 1 of size 9", len(comps))
	}

	g4, _ := gridlabel.NewGrid(grid, gridlabel.DefaultGridOptions())
	if n := len(g4.ConnectedComponents()); n != 9 {
		t.Errorf("Conn4: got %d components; want 9", n)
	}
}

// TestConnectedComponents_Threshold treats values below the threshold as water.
func TestConnectedComponents_Threshold(t *testing.T) {
	grid := [][]int{
		{3, 1, 3},
	}
	g, _ := gridlabel.NewGrid(grid, gridlabel.GridOptions{LandThreshold: 2, Conn: gridlabel.Conn4})
	if n := len(g.ConnectedComponents()); n != 2 {
		t.Errorf("threshold 2: got %d components; want 2", n)
	}
}

// TestConnectedComponents_AllWater: zero components.
func TestConnectedComponents_AllWater(t *testing.T) {
	g, _ := gridlabel.NewGrid([][]int{{0, 0}, {0, 0}}, gridlabel.DefaultGridOptions())
	if n := len(g.ConnectedComponents()); n != 0 {
		t.Errorf("all-water: got %d components; want 0", n)
	}
}
