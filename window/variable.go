package window

import (
	"fmt"

	"github.com/katalvlaran/stepwise/frame"
)

// Variable is the instrumented longest-window-under-limit scan. It keeps the
// live expand/shrink state and only steps forward.
type Variable struct {
	arr   []int
	limit int

	// live state
	left, right int // window is arr[left..right]; right == -1 before the first expand
	sum         int
	bestLen     int
	bestLeft    int
	index       int // index of the last produced frame, -1 before Next
	done        bool
}

// NewVariable validates arr and limit (both non-negative, arr non-empty).
func NewVariable(arr []int, limit int) (*Variable, error) {
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: %w", frame.ErrConfiguration, ErrEmptyArray)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: %w: limit %d", frame.ErrConfiguration, ErrNegative, limit)
	}
	for i, v := range arr {
		if v < 0 {
			return nil, fmt.Errorf("%w: %w: arr[%d]=%d", frame.ErrConfiguration, ErrNegative, i, v)
		}
	}
	w := &Variable{arr: append([]int(nil), arr...), limit: limit}
	w.Reset()

	return w, nil
}

// Kind returns the catalog name.
func (w *Variable) Kind() string { return KindVariable }

// Listing returns the pseudocode listing.
func (w *Variable) Listing() []frame.Line { return append([]frame.Line(nil), variableListing...) }

// Reset restores the state before frame 0.
func (w *Variable) Reset() {
	w.left, w.right, w.sum = 0, -1, 0
	w.bestLen, w.bestLeft = 0, 0
	w.index = -1
	w.done = false
}

// Next performs one primitive step (seed, expand, shrink or finish) and
// returns its frame.
func (w *Variable) Next() (frame.Frame, error) {
	if w.done {
		return frame.Frame{}, frame.ErrExhausted
	}
	w.index++

	if w.index == 0 {
		return w.snapshot(LineInit, fmt.Sprintf("Start with an empty window, limit=%d", w.limit)), nil
	}

	switch {
	case w.sum > w.limit:
		removed := w.arr[w.left]
		w.sum -= removed
		w.left++
		narrative := fmt.Sprintf("sum exceeds %d: shrink, drop arr[%d]=%d, sum=%d", w.limit, w.left-1, removed, w.sum)
		narrative += w.record()
		return w.snapshot(LineShrink, narrative), nil

	case w.right+1 < len(w.arr):
		w.right++
		w.sum += w.arr[w.right]
		narrative := fmt.Sprintf("Expand: add arr[%d]=%d, sum=%d", w.right, w.arr[w.right], w.sum)
		narrative += w.record()
		return w.snapshot(LineExpand, narrative), nil

	default:
		w.done = true
		return w.snapshot(LineDone, fmt.Sprintf("Done: longest window with sum <= %d has length %d starting at %d",
			w.limit, w.bestLen, w.bestLeft)), nil
	}
}

// record updates the best window when the current one is valid and
// strictly longer; ties keep the earliest window.
func (w *Variable) record() string {
	length := w.right - w.left + 1
	if w.sum > w.limit || length <= w.bestLen {
		return ""
	}
	w.bestLen, w.bestLeft = length, w.left

	return fmt.Sprintf(" - new best length %d", length)
}

func (w *Variable) snapshot(line, narrative string) frame.Frame {
	left, right := w.left, w.right
	bestLeft, bestLen := w.bestLeft, w.bestLen
	b := frame.New(w.index, line, narrative).
		Var("left", left).
		Var("right", right).
		Var("sum", w.sum).
		Var("limit", w.limit).
		Var("bestLength", bestLen).
		Var("bestLeft", bestLeft).
		Array("array", w.arr, func(k int) []frame.Flag {
			var fl []frame.Flag
			if k >= left && k <= right {
				fl = append(fl, frame.FlagInWindow)
			}
			if k >= bestLeft && k < bestLeft+bestLen {
				fl = append(fl, frame.FlagBest)
			}
			return fl
		})
	if w.done {
		b.Final()
	}

	return b.Build()
}
