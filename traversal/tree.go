package traversal

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/stepwise/frame"
)

// Tree is a rooted tree with ordered children. Node IDs are unique.
type Tree struct {
	root     string
	children map[string][]string
	parent   map[string]string
	depth    map[string]int
}

// NewTree creates a tree holding only root.
func NewTree(root string) (*Tree, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: %w", frame.ErrConfiguration, ErrEmptyID)
	}
	return &Tree{
		root:     root,
		children: map[string][]string{root: nil},
		parent:   map[string]string{},
		depth:    map[string]int{root: 0},
	}, nil
}

// AddChild appends child as the last child of parent.
// Returns ErrEmptyID, ErrNodeNotFound for an unknown parent, or
// ErrDuplicateNode if child already exists.
func (t *Tree) AddChild(parent, child string) error {
	if child == "" {
		return fmt.Errorf("%w: %w", frame.ErrConfiguration, ErrEmptyID)
	}
	if _, ok := t.children[parent]; !ok {
		return fmt.Errorf("%w: %w: %q", frame.ErrConfiguration, ErrNodeNotFound, parent)
	}
	if _, ok := t.children[child]; ok {
		return fmt.Errorf("%w: %w: %q", frame.ErrConfiguration, ErrDuplicateNode, child)
	}
	t.children[parent] = append(t.children[parent], child)
	t.children[child] = nil
	t.parent[child] = parent
	t.depth[child] = t.depth[parent] + 1

	return nil
}

// FromChildren builds a tree from a parent→children table, adding nodes
// level by level from root. Every key of children must be reachable from
// root; otherwise ErrNodeNotFound is returned.
func FromChildren(root string, children map[string][]string) (*Tree, error) {
	t, err := NewTree(root)
	if err != nil {
		return nil, err
	}
	queue := []string{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range children[id] {
			if err := t.AddChild(id, c); err != nil {
				return nil, err
			}
			queue = append(queue, c)
		}
	}
	var orphans []string
	for id := range children {
		if !t.Has(id) {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		return nil, fmt.Errorf("%w: %w: unreachable parents %v", frame.ErrConfiguration, ErrNodeNotFound, orphans)
	}

	return t, nil
}

// FromLevelOrder builds a binary tree from heap-ordered IDs: the children of
// ids[i] are ids[2i+1] and ids[2i+2]. An empty string marks a missing node;
// its would-be descendants must be missing too.
func FromLevelOrder(ids ...string) (*Tree, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %w", frame.ErrConfiguration, ErrEmptyID)
	}
	t, err := NewTree(ids[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] == "" {
			continue
		}
		p := ids[(i-1)/2]
		if p == "" {
			return nil, fmt.Errorf("%w: %w: node %q has no parent at position %d",
				frame.ErrConfiguration, ErrNodeNotFound, ids[i], (i-1)/2)
		}
		if err := t.AddChild(p, ids[i]); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Root returns the root ID.
func (t *Tree) Root() string { return t.root }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.children) }

// Has reports whether id is a node of t.
func (t *Tree) Has(id string) bool {
	_, ok := t.children[id]
	return ok
}

// Children returns a copy of id's children, left to right.
func (t *Tree) Children(id string) []string {
	return append([]string(nil), t.children[id]...)
}

// Depth returns the distance of id from the root.
func (t *Tree) Depth(id string) (int, error) {
	d, ok := t.depth[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return d, nil
}

// PathTo returns the node IDs from the root down to dest.
func (t *Tree) PathTo(dest string) ([]string, error) {
	if !t.Has(dest) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, dest)
	}
	// build reversed path
	path := []string{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := t.parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// reverse to get root → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
