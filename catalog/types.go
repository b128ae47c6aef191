// Package catalog declares named scenarios (an instrumentation kind plus
// its input) in YAML and builds fresh instrumentations from them.
package catalog

import (
	"errors"

	"github.com/katalvlaran/stepwise/gitscenario"
)

// Sentinel errors for catalog parsing and lookup.
var (
	// ErrDecode wraps YAML syntax and schema errors.
	ErrDecode = errors.New("catalog: cannot decode document")

	// ErrUnknownKind is returned for a kind no instrumentation implements.
	ErrUnknownKind = errors.New("catalog: unknown kind")

	// ErrUnknownScenario is returned by Lookup-based calls for a missing name.
	ErrUnknownScenario = errors.New("catalog: unknown scenario")

	// ErrDuplicateName is returned when two scenarios share a name.
	ErrDuplicateName = errors.New("catalog: duplicate scenario name")

	// ErrMissingField is returned when a kind-specific field is absent.
	ErrMissingField = errors.New("catalog: missing field")
)

// Scenario is one catalog entry. Only the fields of its Kind are read.
type Scenario struct {
	Name  string `yaml:"name" json:"name"`
	Kind  string `yaml:"kind" json:"kind"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`

	// two-pointer, hash-two-sum, fixed-window, variable-window, frequency-count
	Array         []int `yaml:"array,omitempty" json:"array,omitempty"`
	Target        int   `yaml:"target,omitempty" json:"target,omitempty"`
	Window        int   `yaml:"window,omitempty" json:"window,omitempty"`
	ClampOversize bool  `yaml:"clampOversize,omitempty" json:"clampOversize,omitempty"`
	Limit         int   `yaml:"limit,omitempty" json:"limit,omitempty"`

	// bfs, dfs
	Tree     *Tree `yaml:"tree,omitempty" json:"tree,omitempty"`
	Coalesce bool  `yaml:"coalesce,omitempty" json:"coalesce,omitempty"`
	MaxDepth int   `yaml:"maxDepth,omitempty" json:"maxDepth,omitempty"`

	// grid-labeling
	Grid          [][]int `yaml:"grid,omitempty" json:"grid,omitempty"`
	Connectivity  int     `yaml:"connectivity,omitempty" json:"connectivity,omitempty"` // 4 (default) or 8
	LandThreshold int     `yaml:"landThreshold,omitempty" json:"landThreshold,omitempty"`

	// git-scenario
	Git *gitscenario.Command `yaml:"git,omitempty" json:"git,omitempty"`
}

// Tree declares a traversal tree either by level order (binary, "" for a
// missing child) or by explicit child lists.
type Tree struct {
	LevelOrder []string            `yaml:"levelOrder,omitempty" json:"levelOrder,omitempty"`
	Root       string              `yaml:"root,omitempty" json:"root,omitempty"`
	Children   map[string][]string `yaml:"children,omitempty" json:"children,omitempty"`
}
