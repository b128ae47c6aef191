package twosum

import (
	"errors"

	"github.com/katalvlaran/stepwise/frame"
)

// ErrEmptyArray indicates there is nothing to search.
var ErrEmptyArray = errors.New("twosum: array is empty")

// Kind is the catalog name of this instrumentation.
const Kind = "hash-two-sum"

// Highlight line identifiers.
const (
	LineInit     = "init"
	LineStore    = "store"
	LineFound    = "found"
	LineNotFound = "not-found"
)

var listing = []frame.Line{
	{ID: LineInit, Code: "seen := map[int]int{}", Indent: 1},
	{ID: "loop", Code: "for i, v := range arr {", Indent: 1},
	{ID: "complement", Code: "complement := target - v", Indent: 2},
	{ID: LineFound, Code: "if j, ok := seen[complement]; ok { return j, i }", Indent: 2},
	{ID: LineStore, Code: "seen[v] = i", Indent: 2},
	{ID: "end", Code: "}", Indent: 1},
	{ID: LineNotFound, Code: "return -1, -1", Indent: 1},
}
