package twopointer

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/stepwise/frame"
)

// Search is the instrumented two-pointer search. It is immutable after New
// except for the Next cursor.
type Search struct {
	arr    []int
	target int
	total  int // number of frames, final included
	cursor int // index of the next frame Next returns
}

// New validates arr (must be sorted ascending) and returns a Search for
// target. An empty arr is valid and yields a single final "empty" frame.
func New(arr []int, target int) (*Search, error) {
	for i := 1; i < len(arr); i++ {
		if arr[i] < arr[i-1] {
			return nil, fmt.Errorf("%w: %w: arr[%d]=%d < arr[%d]=%d",
				frame.ErrConfiguration, ErrUnsorted, i, arr[i], i-1, arr[i-1])
		}
	}
	s := &Search{arr: append([]int(nil), arr...), target: target}
	s.total = s.measure()

	return s, nil
}

// Kind returns the catalog name.
func (s *Search) Kind() string { return Kind }

// Listing returns the pseudocode listing.
func (s *Search) Listing() []frame.Line { return Listing() }

// Len returns the total number of frames, final frame included.
func (s *Search) Len() int { return s.total }

// Next returns the frame following the last one returned by Next.
func (s *Search) Next() (frame.Frame, error) {
	if s.cursor >= s.total {
		return frame.Frame{}, frame.ErrExhausted
	}
	f, err := s.FrameAt(s.cursor)
	if err != nil {
		return frame.Frame{}, err
	}
	s.cursor++

	return f, nil
}

// Reset rewinds Next to frame 0.
func (s *Search) Reset() { s.cursor = 0 }

// FrameAt computes frame i from the input alone.
func (s *Search) FrameAt(i int) (frame.Frame, error) {
	if i < 0 || i >= s.total {
		return frame.Frame{}, fmt.Errorf("%w: %d not in [0,%d)", frame.ErrOutOfRange, i, s.total)
	}
	if len(s.arr) == 0 {
		return frame.New(0, LineEmpty, "Array is empty - no pair to find").
			Var("left", 0).Var("right", -1).Var("target", s.target).Var("found", false).
			Array("array", nil, nil).
			List("attempts", nil).
			Final().
			Build(), nil
	}

	left, right, attempts := s.walk(i)
	if left >= right {
		return s.build(i, left, right, attempts, LineNotFound,
			fmt.Sprintf("Pointers met at index %d - no pair sums to %d", left, s.target), false).
			Final().Build(), nil
	}

	sum := s.arr[left] + s.arr[right]
	attempts = append(attempts, attempt(left, right, sum))
	switch {
	case sum == s.target:
		return s.build(i, left, right, attempts, LineFound,
			fmt.Sprintf("Found: arr[%d] + arr[%d] = %d + %d = %d", left, right, s.arr[left], s.arr[right], s.target), true).
			Var("sum", sum).Final().Build(), nil
	case sum < s.target:
		return s.build(i, left, right, attempts, LineMoveLeft,
			fmt.Sprintf("sum=%d < target=%d: move left pointer %d -> %d", sum, s.target, left, left+1), false).
			Var("sum", sum).Build(), nil
	default:
		return s.build(i, left, right, attempts, LineMoveRight,
			fmt.Sprintf("sum=%d > target=%d: move right pointer %d -> %d", sum, s.target, right, right-1), false).
			Var("sum", sum).Build(), nil
	}
}

// walk applies i pointer moves from the initial position and returns the
// resulting pointers plus the attempts made on the way.
func (s *Search) walk(i int) (left, right int, attempts []string) {
	left, right = 0, len(s.arr)-1
	attempts = make([]string, 0, i+1)
	for k := 0; k < i && left < right; k++ {
		sum := s.arr[left] + s.arr[right]
		attempts = append(attempts, attempt(left, right, sum))
		if sum < s.target {
			left++
		} else {
			right--
		}
	}

	return left, right, attempts
}

// measure counts frames: one per comparison until a match or until the
// pointers meet, the meeting frame included.
func (s *Search) measure() int {
	if len(s.arr) == 0 {
		return 1
	}
	left, right, n := 0, len(s.arr)-1, 0
	for left < right {
		n++
		sum := s.arr[left] + s.arr[right]
		if sum == s.target {
			return n
		}
		if sum < s.target {
			left++
		} else {
			right--
		}
	}

	return n + 1
}

func (s *Search) build(i, left, right int, attempts []string, line, narrative string, found bool) *frame.Builder {
	return frame.New(i, line, narrative).
		Var("left", left).
		Var("right", right).
		Var("target", s.target).
		Var("found", found).
		Array("array", s.arr, func(k int) []frame.Flag {
			var fl []frame.Flag
			if k == left {
				fl = append(fl, frame.FlagLeft)
			}
			if k == right {
				fl = append(fl, frame.FlagRight)
			}
			if found && (k == left || k == right) {
				fl = append(fl, frame.FlagMatch)
			}
			return fl
		}).
		List("attempts", attempts)
}

func attempt(left, right, sum int) string {
	return "(" + strconv.Itoa(left) + "," + strconv.Itoa(right) + ")=" + strconv.Itoa(sum)
}
