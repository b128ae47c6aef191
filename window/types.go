package window

import (
	"errors"

	"github.com/katalvlaran/stepwise/frame"
)

// Sentinel errors for window construction.
var (
	ErrWindowSize = errors.New("window: window size out of range")
	ErrEmptyArray = errors.New("window: array is empty")
	ErrNegative   = errors.New("window: negative values are not supported")
)

// Catalog names.
const (
	KindFixed    = "fixed-window"
	KindVariable = "variable-window"
)

// Highlight line identifiers.
const (
	LineEmpty  = "empty"
	LineInit   = "init"
	LineSlide  = "slide"
	LineExpand = "expand"
	LineShrink = "shrink"
	LineDone   = "done"
)

// Option configures a Fixed window.
type Option func(*Options)

// Options holds Fixed window settings.
type Options struct {
	// ClampOversize turns size > len(arr) into a whole-array window.
	ClampOversize bool
}

// DefaultOptions rejects oversize windows.
func DefaultOptions() Options {
	return Options{ClampOversize: false}
}

// WithClampOversize clamps an oversize window to the array length.
func WithClampOversize() Option {
	return func(o *Options) {
		o.ClampOversize = true
	}
}

var fixedListing = []frame.Line{
	{ID: LineEmpty, Code: "if len(arr) == 0 { return 0 }", Indent: 1},
	{ID: LineInit, Code: "sum := total(arr[:k]); best := sum", Indent: 1},
	{ID: "loop", Code: "for right := k; right < len(arr); right++ {", Indent: 1},
	{ID: LineSlide, Code: "sum += arr[right] - arr[right-k]; best = max(best, sum)", Indent: 2},
	{ID: "end", Code: "}", Indent: 1},
	{ID: LineDone, Code: "return best", Indent: 1},
}

var variableListing = []frame.Line{
	{ID: LineInit, Code: "left, sum, best := 0, 0, 0", Indent: 1},
	{ID: "loop", Code: "for right := 0; right < len(arr); right++ {", Indent: 1},
	{ID: LineExpand, Code: "sum += arr[right]", Indent: 2},
	{ID: LineShrink, Code: "for sum > limit { sum -= arr[left]; left++ }", Indent: 2},
	{ID: "record", Code: "best = max(best, right-left+1)", Indent: 2},
	{ID: "end", Code: "}", Indent: 1},
	{ID: LineDone, Code: "return best", Indent: 1},
}
