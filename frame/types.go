// Package frame declares Frame, Variable, Container and the sentinel errors
// shared by every instrumentation of github.com/katalvlaran/stepwise.
package frame

import (
	"errors"
)

// ErrConfiguration is the umbrella sentinel for input rejected at load time.
// Instrumentation constructors wrap it together with their own sentinel, so
// callers may test either with errors.Is.
var ErrConfiguration = errors.New("frame: invalid configuration")

// Sentinels returned by instrumentations while producing frames.
var (
	// ErrExhausted is returned by Next once the final frame was produced,
	// and by Undo when the instrumentation is back on frame 0.
	ErrExhausted = errors.New("frame: no more frames in that direction")

	// ErrOutOfRange is returned by FrameAt for an index outside [0, Len).
	ErrOutOfRange = errors.New("frame: index out of range")
)

// Kind identifies how a Container should be read and drawn.
type Kind string

const (
	// KindArray is an indexed array whose cells carry flags.
	KindArray Kind = "array"
	// KindQueue lists items front first.
	KindQueue Kind = "queue"
	// KindStack lists items bottom first; the last item is the top.
	KindStack Kind = "stack"
	// KindList is a plain ordered list (visit order, attempts, ...).
	KindList Kind = "list"
	// KindMap holds ordered key→value entries.
	KindMap Kind = "map"
	// KindGrid is a rectangular grid of cell states.
	KindGrid Kind = "grid"
)

// Flag marks a property of an array cell or grid cell in a given frame.
type Flag string

// Flags used by the bundled instrumentations.
const (
	FlagCurrent  Flag = "current"
	FlagLeft     Flag = "left"
	FlagRight    Flag = "right"
	FlagInWindow Flag = "in-window"
	FlagBest     Flag = "best"
	FlagVisited  Flag = "visited"
	FlagMatch    Flag = "match"
	FlagPending  Flag = "pending"
)

// Variable is one named scalar of the algorithm's working set.
// Value holds an int, a string or a bool.
type Variable struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Cell is one slot of an array container.
type Cell struct {
	Value int    `json:"value"`
	Flags []Flag `json:"flags,omitempty"`
}

// Entry is one key→value pair of a map container, kept in insertion order.
type Entry struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// GridCell is one cell of a grid container.
//
//	Land:      cell belongs to the searched region kind.
//	Component: 1-based component id once labeled, 0 otherwise.
type GridCell struct {
	Land      bool   `json:"land"`
	Component int    `json:"component,omitempty"`
	Flags     []Flag `json:"flags,omitempty"`
}

// Container is a named snapshot of one data structure in play.
// Only the field matching Kind is populated.
type Container struct {
	Name    string       `json:"name"`
	Kind    Kind         `json:"kind"`
	Cells   []Cell       `json:"cells,omitempty"`
	Items   []string     `json:"items,omitempty"`
	Entries []Entry      `json:"entries,omitempty"`
	Grid    [][]GridCell `json:"grid,omitempty"`
}

// Frame is one immutable snapshot of algorithm state plus narration.
//
// Frames are never mutated once built; use Builder (or Clone followed by a
// new Builder) to derive a different frame. Final marks the terminal frame
// of a sequence.
type Frame struct {
	Index      int         `json:"index"`
	Narrative  string      `json:"narrative"`
	Line       string      `json:"line"`
	Variables  []Variable  `json:"variables,omitempty"`
	Containers []Container `json:"containers,omitempty"`
	Final      bool        `json:"final,omitempty"`
}

// Line is one entry of a pseudocode listing. ID is the identifier frames
// carry in Frame.Line; Indent is the nesting depth.
type Line struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Indent int    `json:"indent"`
}
