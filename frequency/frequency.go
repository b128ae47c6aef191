package frequency

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/stepwise/frame"
)

// Counter holds the live tally for the first consumed elements of arr.
type Counter struct {
	arr      []int
	counts   map[int]int
	order    []int // keys with a non-zero count, by first occurrence
	consumed int
}

// New returns a Counter positioned before frame 0. arr must be non-empty.
func New(arr []int) (*Counter, error) {
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: %w", frame.ErrConfiguration, ErrEmptyArray)
	}
	c := &Counter{arr: append([]int(nil), arr...)}
	c.Reset()

	return c, nil
}

// Kind returns the catalog name.
func (c *Counter) Kind() string { return Kind }

// Listing returns the pseudocode listing.
func (c *Counter) Listing() []frame.Line { return append([]frame.Line(nil), listing...) }

// Reset empties the tally. The next call to Next returns frame 0.
func (c *Counter) Reset() {
	c.counts = make(map[int]int, len(c.arr))
	c.order = c.order[:0]
	c.consumed = -1
}

// Counts returns a copy of the current tally.
func (c *Counter) Counts() map[int]int {
	out := make(map[int]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// MostFrequent returns the value with the highest count (earliest first
// occurrence on ties) and its count; ok is false while nothing is counted.
func (c *Counter) MostFrequent() (value, count int, ok bool) {
	for _, k := range c.order {
		if n := c.counts[k]; n > count {
			value, count, ok = k, n, true
		}
	}
	return value, count, ok
}

// Next consumes one more element and returns its frame. The first call
// returns frame 0 (nothing consumed).
func (c *Counter) Next() (frame.Frame, error) {
	if c.consumed >= len(c.arr) {
		return frame.Frame{}, frame.ErrExhausted
	}
	c.consumed++
	if c.consumed == 0 {
		return c.snapshot(LineInit, "Start with an empty tally"), nil
	}

	v := c.arr[c.consumed-1]
	line := LineCount
	if _, seen := c.counts[v]; !seen {
		line = LineInsert
		c.order = append(c.order, v)
	}
	c.counts[v]++

	return c.snapshot(line, fmt.Sprintf("Read arr[%d]=%d, count is now %d", c.consumed-1, v, c.counts[v])), nil
}

// Undo reverts the last consumed element and returns the frame before it.
func (c *Counter) Undo() (frame.Frame, error) {
	if c.consumed <= 0 {
		return frame.Frame{}, frame.ErrExhausted
	}
	v := c.arr[c.consumed-1]
	c.counts[v]--
	if c.counts[v] == 0 {
		// a zero count means arr[consumed-1] was the first occurrence,
		// hence the newest key
		delete(c.counts, v)
		c.order = c.order[:len(c.order)-1]
	}
	c.consumed--
	if c.consumed == 0 {
		return c.snapshot(LineInit, "Start with an empty tally"), nil
	}

	prev := c.arr[c.consumed-1]
	line := LineCount
	if c.counts[prev] == 1 && c.order[len(c.order)-1] == prev {
		line = LineInsert
	}

	return c.snapshot(line, fmt.Sprintf("Read arr[%d]=%d, count is now %d", c.consumed-1, prev, c.counts[prev])), nil
}

func (c *Counter) snapshot(line, narrative string) frame.Frame {
	entries := make([]frame.Entry, 0, len(c.order))
	for _, k := range c.order {
		entries = append(entries, frame.Entry{Key: strconv.Itoa(k), Value: c.counts[k]})
	}
	most, maxCount, ok := c.MostFrequent()
	mostKey := ""
	if ok {
		mostKey = strconv.Itoa(most)
	}
	final := c.consumed == len(c.arr)
	if final {
		narrative += fmt.Sprintf(". Done: most frequent is %s (%d times)", mostKey, maxCount)
	}

	current := c.consumed - 1
	b := frame.New(c.consumed, line, narrative).
		Var("index", current).
		Var("mostFrequent", mostKey).
		Var("maxCount", maxCount).
		Array("array", c.arr, func(k int) []frame.Flag {
			switch {
			case k == current:
				return []frame.Flag{frame.FlagCurrent}
			case k < current:
				return []frame.Flag{frame.FlagVisited}
			}
			return nil
		}).
		Map("counts", entries)
	if final {
		b.Final()
	}

	return b.Build()
}
