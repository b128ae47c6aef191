// Package traversal instruments breadth-first (level-order) and depth-first
// (pre-order) traversal of a rooted tree, emitting one frame per primitive
// frontier operation.
//
// What:
//
//   - Tree: a rooted tree with ordered children (binary trees are the common
//     case; any fan-out works). Built with NewTree/AddChild, FromChildren or
//     FromLevelOrder.
//   - BFS(t, opts...): queue frontier, children enqueued left to right.
//   - DFS(t, opts...): stack frontier, children pushed right to left so the
//     leftmost child is popped first, which yields root-left-right order.
//
// State machine of a Walk:
//
//	Uninitialized -> Seeded(frontier={root}) -> Running -> Done
//
// Every Next performs exactly one of:
//
//   - seed:   put the root on the frontier (frame 0),
//   - visit:  remove the next frontier node and mark it visited,
//   - expand: add the visited node's unvisited children to the frontier,
//   - done:   frontier empty (final frame).
//
// WithCoalesce merges visit and expand into one frame per node; visit
// order and frontier contents are unchanged.
//
// A Walk only steps forward. Replayers keep the produced frames to step back.
//
// Options:
//
//   - WithCoalesce()    one frame per node instead of visit + expand.
//   - WithMaxDepth(d)   do not expand nodes at depth >= d (d > 0; 0 = no limit).
//
// Errors:
//
//   - ErrEmptyID, ErrNodeNotFound, ErrDuplicateNode: tree construction.
//   - ErrTreeNil, ErrOptionViolation: walk construction.
//
// All of them wrap frame.ErrConfiguration when returned by a constructor.
//
// Complexity: O(V) frames, O(V) memory per Walk.
package traversal
