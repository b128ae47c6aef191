package frequency

import (
	"errors"

	"github.com/katalvlaran/stepwise/frame"
)

// ErrEmptyArray indicates there is nothing to count.
var ErrEmptyArray = errors.New("frequency: array is empty")

// Kind is the catalog name of this instrumentation.
const Kind = "frequency-count"

// Highlight line identifiers.
const (
	LineInit   = "init"
	LineInsert = "insert"
	LineCount  = "count"
)

var listing = []frame.Line{
	{ID: LineInit, Code: "counts := map[int]int{}", Indent: 1},
	{ID: "loop", Code: "for _, v := range arr {", Indent: 1},
	{ID: LineInsert, Code: "if _, ok := counts[v]; !ok { counts[v] = 0 }", Indent: 2},
	{ID: LineCount, Code: "counts[v]++", Indent: 2},
	{ID: "end", Code: "}", Indent: 1},
	{ID: "return", Code: "return mostFrequent(counts)", Indent: 1},
}
