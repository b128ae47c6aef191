package traversal

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/stepwise/frame"
)

// state of a Walk.
type state int

const (
	uninitialized state = iota
	seeded
	running
	done
)

// item pairs a node ID with its depth from the root.
type item struct {
	id    string
	depth int
}

// Walk is the instrumented traversal. It owns the live frontier and visited
// set and only steps forward.
type Walk struct {
	tree *Tree
	mode Mode
	opts Options

	st       state
	frontier []item
	visited  map[string]bool
	order    []string
	pending  *item // visited node whose children are not expanded yet
	current  string
	index    int
}

// BFS returns a level-order Walk over t.
func BFS(t *Tree, opts ...Option) (*Walk, error) {
	return newWalk(t, ModeBFS, opts)
}

// DFS returns a pre-order Walk over t.
func DFS(t *Tree, opts ...Option) (*Walk, error) {
	return newWalk(t, ModeDFS, opts)
}

func newWalk(t *Tree, mode Mode, opts []Option) (*Walk, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: %w", frame.ErrConfiguration, ErrTreeNil)
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("%w: %w", frame.ErrConfiguration, o.err)
	}
	w := &Walk{tree: t, mode: mode, opts: o}
	w.Reset()

	return w, nil
}

// Kind returns the catalog name.
func (w *Walk) Kind() string { return w.mode.String() }

// Listing returns the pseudocode listing for the walk's mode.
func (w *Walk) Listing() []frame.Line {
	if w.mode == ModeDFS {
		return append([]frame.Line(nil), dfsListing...)
	}
	return append([]frame.Line(nil), bfsListing...)
}

// Reset returns the walk to Uninitialized.
func (w *Walk) Reset() {
	w.st = uninitialized
	w.frontier = make([]item, 0, w.tree.Len())
	w.visited = make(map[string]bool, w.tree.Len())
	w.order = make([]string, 0, w.tree.Len())
	w.pending = nil
	w.current = ""
	w.index = -1
}

// Order returns the nodes visited so far.
func (w *Walk) Order() []string {
	return append([]string(nil), w.order...)
}

// Done reports whether the final frame was produced.
func (w *Walk) Done() bool { return w.st == done }

// Next performs one frontier operation and returns its frame.
func (w *Walk) Next() (frame.Frame, error) {
	switch w.st {
	case done:
		return frame.Frame{}, frame.ErrExhausted
	case uninitialized:
		w.index++
		w.st = seeded
		w.frontier = append(w.frontier, item{id: w.tree.Root(), depth: 0})
		return w.snapshot(LineSeed, fmt.Sprintf("Initialize the %s with root node %s", w.frontierName(), w.tree.Root())), nil
	}

	w.index++
	w.st = running
	if w.pending != nil {
		added := w.expand()
		return w.snapshot(LineExpand, w.expandNarrative(added)), nil
	}
	if len(w.frontier) == 0 {
		w.st = done
		w.current = ""
		return w.snapshot(LineDone, fmt.Sprintf("%s complete: visited %s", strings.ToUpper(w.mode.String()),
			strings.Join(w.order, ", "))), nil
	}

	it := w.remove()
	w.visit(it)
	narrative := w.visitNarrative(it)
	if w.opts.Coalesce && w.pending != nil {
		if added := w.expand(); len(added) > 0 {
			narrative += "; " + w.expandNarrative(added)
		}
	}

	return w.snapshot(LineVisit, narrative), nil
}

// remove takes the next node off the frontier: front of the queue for BFS,
// top of the stack for DFS.
func (w *Walk) remove() item {
	if w.mode == ModeDFS {
		it := w.frontier[len(w.frontier)-1]
		w.frontier = w.frontier[:len(w.frontier)-1]
		return it
	}
	it := w.frontier[0]
	w.frontier = w.frontier[1:]
	return it
}

// visit records it in the order and schedules its expansion when it has
// children within the depth limit.
func (w *Walk) visit(it item) {
	w.visited[it.id] = true
	w.order = append(w.order, it.id)
	w.current = it.id
	w.pending = nil
	if w.opts.MaxDepth > 0 && it.depth >= w.opts.MaxDepth {
		return
	}
	if len(w.unvisitedChildren(it.id)) > 0 {
		p := it
		w.pending = &p
	}
}

// expand adds the pending node's unvisited children to the frontier and
// returns them in insertion order.
func (w *Walk) expand() []string {
	it := *w.pending
	w.pending = nil
	w.current = it.id
	kids := w.unvisitedChildren(it.id)
	if w.mode == ModeDFS {
		// right first so the leftmost child ends on top
		for i, j := 0, len(kids)-1; i < j; i, j = i+1, j-1 {
			kids[i], kids[j] = kids[j], kids[i]
		}
	}
	for _, c := range kids {
		w.frontier = append(w.frontier, item{id: c, depth: it.depth + 1})
	}

	return kids
}

func (w *Walk) unvisitedChildren(id string) []string {
	var out []string
	for _, c := range w.tree.children[id] {
		if !w.visited[c] {
			out = append(out, c)
		}
	}
	return out
}

func (w *Walk) frontierName() string {
	if w.mode == ModeDFS {
		return "stack"
	}
	return "queue"
}

func (w *Walk) visitNarrative(it item) string {
	if w.mode == ModeDFS {
		return fmt.Sprintf("Pop node %s from the top and visit it (depth %d)", it.id, it.depth)
	}
	return fmt.Sprintf("Dequeue node %s from the front and visit it (depth %d)", it.id, it.depth)
}

func (w *Walk) expandNarrative(added []string) string {
	if w.mode == ModeDFS {
		return fmt.Sprintf("Push children %s of node %s (right first)", strings.Join(added, ", "), w.current)
	}
	return fmt.Sprintf("Enqueue children %s of node %s", strings.Join(added, ", "), w.current)
}

func (w *Walk) snapshot(line, narrative string) frame.Frame {
	items := make([]string, len(w.frontier))
	for i, it := range w.frontier {
		items[i] = it.id
	}
	b := frame.New(w.index, line, narrative).
		Var("current", w.current).
		Var("visitedCount", len(w.order)).
		Var("nodeCount", w.tree.Len())
	if w.mode == ModeDFS {
		b.Stack("stack", items)
	} else {
		b.Queue("queue", items)
	}
	b.List("visited", w.order)
	if w.st == done {
		b.Final()
	}

	return b.Build()
}
