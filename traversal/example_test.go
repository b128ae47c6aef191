package traversal_test

import (
	"fmt"

	"github.com/katalvlaran/stepwise/traversal"
)

// ExampleBFS and ExampleDFS walk the same complete binary tree of seven
// nodes; only the frontier discipline differs.
func ExampleBFS() {
	tr, _ := traversal.FromLevelOrder("1", "2", "3", "4", "5", "6", "7")
	w, _ := traversal.BFS(tr)
	for !w.Done() {
		_, _ = w.Next()
	}
	fmt.Println(w.Order())
	// Output:
	// [1 2 3 4 5 6 7]
}

func ExampleDFS() {
	tr, _ := traversal.FromLevelOrder("1", "2", "3", "4", "5", "6", "7")
	w, _ := traversal.DFS(tr)
	for !w.Done() {
		_, _ = w.Next()
	}
	fmt.Println(w.Order())
	// Output:
	// [1 2 4 5 3 6 7]
}

// ExampleTree_PathTo follows parent links from the root.
func ExampleTree_PathTo() {
	tr, _ := traversal.FromChildren("root", map[string][]string{
		"root": {"a", "b"},
		"b":    {"c"},
	})
	path, _ := tr.PathTo("c")
	fmt.Println(path)
	// Output:
	// [root b c]
}
