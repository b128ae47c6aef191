package window

import (
	"fmt"

	"github.com/katalvlaran/stepwise/frame"
)

// Fixed is the instrumented fixed-size window scan.
type Fixed struct {
	arr    []int
	size   int
	total  int
	cursor int
}

// NewFixed validates size against arr and returns a Fixed scan.
// With WithClampOversize an empty arr yields a single final "empty" frame.
func NewFixed(arr []int, size int, opts ...Option) (*Fixed, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: %w: size %d < 1", frame.ErrConfiguration, ErrWindowSize, size)
	}
	if size > len(arr) {
		if !o.ClampOversize {
			return nil, fmt.Errorf("%w: %w: size %d > len %d", frame.ErrConfiguration, ErrWindowSize, size, len(arr))
		}
		size = len(arr)
	}
	w := &Fixed{arr: append([]int(nil), arr...), size: size}
	w.total = len(arr) - size + 1
	if size == 0 {
		w.total = 1
	}

	return w, nil
}

// Kind returns the catalog name.
func (w *Fixed) Kind() string { return KindFixed }

// Listing returns the pseudocode listing.
func (w *Fixed) Listing() []frame.Line { return append([]frame.Line(nil), fixedListing...) }

// Len returns the number of frames.
func (w *Fixed) Len() int { return w.total }

// Size returns the effective window size (after clamping).
func (w *Fixed) Size() int { return w.size }

// Next returns the frame following the last one returned by Next.
func (w *Fixed) Next() (frame.Frame, error) {
	if w.cursor >= w.total {
		return frame.Frame{}, frame.ErrExhausted
	}
	f, err := w.FrameAt(w.cursor)
	if err != nil {
		return frame.Frame{}, err
	}
	w.cursor++

	return f, nil
}

// Reset rewinds Next to frame 0.
func (w *Fixed) Reset() { w.cursor = 0 }

// FrameAt computes frame i: the window [i, i+size-1] and the best window
// among the first i+1 positions.
func (w *Fixed) FrameAt(i int) (frame.Frame, error) {
	if i < 0 || i >= w.total {
		return frame.Frame{}, fmt.Errorf("%w: %d not in [0,%d)", frame.ErrOutOfRange, i, w.total)
	}
	if w.size == 0 {
		return frame.New(0, LineEmpty, "Array is empty - nothing to slide over").
			Var("left", 0).Var("right", -1).Var("windowSize", 0).Var("sum", 0).Var("maxSum", 0).
			Array("array", nil, nil).
			Final().
			Build(), nil
	}

	sum := 0
	for k := 0; k < w.size; k++ {
		sum += w.arr[k]
	}
	best, bestLeft := sum, 0
	for left := 1; left <= i; left++ {
		sum += w.arr[left+w.size-1] - w.arr[left-1]
		if sum > best {
			best, bestLeft = sum, left
		}
	}
	left, right := i, i+w.size-1

	var line, narrative string
	switch {
	case i == 0:
		line = LineInit
		narrative = fmt.Sprintf("Place the window on the first %d numbers: sum=%d", w.size, sum)
	default:
		line = LineSlide
		narrative = fmt.Sprintf("Slide: drop arr[%d]=%d, add arr[%d]=%d, sum=%d",
			left-1, w.arr[left-1], right, w.arr[right], sum)
	}
	final := i == w.total-1
	if final {
		narrative += fmt.Sprintf(". Done: maximum sum %d at [%d,%d]", best, bestLeft, bestLeft+w.size-1)
	}

	b := frame.New(i, line, narrative).
		Var("left", left).
		Var("right", right).
		Var("windowSize", w.size).
		Var("sum", sum).
		Var("maxSum", best).
		Var("bestLeft", bestLeft).
		Array("array", w.arr, func(k int) []frame.Flag {
			var fl []frame.Flag
			if k >= left && k <= right {
				fl = append(fl, frame.FlagInWindow)
			}
			if k >= bestLeft && k < bestLeft+w.size {
				fl = append(fl, frame.FlagBest)
			}
			return fl
		})
	if final {
		b.Final()
	}

	return b.Build(), nil
}
