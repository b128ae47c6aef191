// Package traversal defines options, sentinel errors and listings for the
// BFS and DFS tree walks.
package traversal

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/stepwise/frame"
)

// Sentinel errors for tree and walk construction.
var (
	// ErrEmptyID is returned when a node ID is the empty string.
	ErrEmptyID = errors.New("traversal: node ID is empty")

	// ErrNodeNotFound is returned when a parent node does not exist.
	ErrNodeNotFound = errors.New("traversal: node not found")

	// ErrDuplicateNode is returned when a node is added twice.
	ErrDuplicateNode = errors.New("traversal: duplicate node")

	// ErrTreeNil is returned if a nil tree is passed to BFS or DFS.
	ErrTreeNil = errors.New("traversal: tree is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("traversal: invalid option supplied")
)

// Mode selects the frontier discipline.
type Mode int

const (
	// ModeBFS uses a FIFO queue.
	ModeBFS Mode = iota
	// ModeDFS uses a LIFO stack.
	ModeDFS
)

// String returns the catalog name of the mode.
func (m Mode) String() string {
	if m == ModeDFS {
		return KindDFS
	}
	return KindBFS
}

// Catalog names.
const (
	KindBFS = "bfs"
	KindDFS = "dfs"
)

// Highlight line identifiers.
const (
	LineSeed   = "seed"
	LineVisit  = "visit"
	LineExpand = "expand"
	LineDone   = "done"
)

// Option configures a Walk via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by BFS/DFS.
type Option func(*Options)

// Options holds walk parameters.
type Options struct {
	// Coalesce emits one frame per node (visit and expand together).
	Coalesce bool

	// MaxDepth, if > 0, stops expanding nodes at that depth; the root has
	// depth 0. A value of 0 disables the limit.
	MaxDepth int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns separate visit/expand frames and no depth limit.
func DefaultOptions() Options {
	return Options{Coalesce: false, MaxDepth: 0}
}

// WithCoalesce merges the visit and expand frames of each node.
func WithCoalesce() Option {
	return func(o *Options) {
		o.Coalesce = true
	}
}

// WithMaxDepth stops expansion at the given depth.
//
//	d > 0: nodes at depth d are visited but not expanded
//	d == 0: explicit no depth limit
//	d < 0: invalid option -> ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		default:
			o.MaxDepth = d
		}
	}
}

var bfsListing = []frame.Line{
	{ID: LineSeed, Code: "queue := []*Node{root}", Indent: 1},
	{ID: "loop", Code: "for len(queue) > 0 {", Indent: 1},
	{ID: LineVisit, Code: "node := queue[0]; queue = queue[1:]; visit(node)", Indent: 2},
	{ID: LineExpand, Code: "queue = append(queue, node.Left, node.Right)", Indent: 2},
	{ID: "end", Code: "}", Indent: 1},
	{ID: LineDone, Code: "return order", Indent: 1},
}

var dfsListing = []frame.Line{
	{ID: LineSeed, Code: "stack := []*Node{root}", Indent: 1},
	{ID: "loop", Code: "for len(stack) > 0 {", Indent: 1},
	{ID: LineVisit, Code: "node := stack[len(stack)-1]; stack = stack[:len(stack)-1]; visit(node)", Indent: 2},
	{ID: LineExpand, Code: "stack = append(stack, node.Right, node.Left) // left on top", Indent: 2},
	{ID: "end", Code: "}", Indent: 1},
	{ID: LineDone, Code: "return order", Indent: 1},
}
