package twopointer

import (
	"errors"

	"github.com/katalvlaran/stepwise/frame"
)

// ErrUnsorted indicates the input array is not sorted ascending.
var ErrUnsorted = errors.New("twopointer: array must be sorted ascending")

// Kind is the catalog name of this instrumentation.
const Kind = "two-pointer"

// Highlight line identifiers.
const (
	LineEmpty     = "empty"
	LineFound     = "found"
	LineMoveLeft  = "move-left"
	LineMoveRight = "move-right"
	LineNotFound  = "not-found"
)

var listing = []frame.Line{
	{ID: LineEmpty, Code: "if len(arr) == 0 { return -1, -1 }", Indent: 1},
	{ID: "init", Code: "left, right := 0, len(arr)-1", Indent: 1},
	{ID: "loop", Code: "for left < right {", Indent: 1},
	{ID: "sum", Code: "sum := arr[left] + arr[right]", Indent: 2},
	{ID: LineFound, Code: "if sum == target { return left, right }", Indent: 2},
	{ID: LineMoveLeft, Code: "if sum < target { left++ } // need a larger sum", Indent: 2},
	{ID: LineMoveRight, Code: "else { right-- } // need a smaller sum", Indent: 2},
	{ID: "end", Code: "}", Indent: 1},
	{ID: LineNotFound, Code: "return -1, -1 // pointers met", Indent: 1},
}

// Listing returns the pseudocode the highlight identifiers refer to.
func Listing() []frame.Line {
	return append([]frame.Line(nil), listing...)
}
