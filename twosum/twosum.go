package twosum

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/stepwise/frame"
)

// op is one applied forward step.
type op struct {
	line     string
	index    int // element processed; -1 for not-found
	prev     int // index overwritten by a store
	replaced bool
	partner  int // map index of the complement for found
}

// Finder holds the live map and the undo log.
type Finder struct {
	arr    []int
	target int

	seen    map[int]int
	order   []int // keys by first insertion
	log     []op
	started bool
	done    bool
}

// New returns a Finder positioned before frame 0.
func New(arr []int, target int) (*Finder, error) {
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: %w", frame.ErrConfiguration, ErrEmptyArray)
	}
	f := &Finder{arr: append([]int(nil), arr...), target: target}
	f.Reset()

	return f, nil
}

// Kind returns the catalog name.
func (f *Finder) Kind() string { return Kind }

// Listing returns the pseudocode listing.
func (f *Finder) Listing() []frame.Line { return append([]frame.Line(nil), listing...) }

// Reset clears the map and the undo log.
func (f *Finder) Reset() {
	f.seen = make(map[int]int, len(f.arr))
	f.order = f.order[:0]
	f.log = f.log[:0]
	f.started = false
	f.done = false
}

// Next applies one lookup-or-store step.
func (f *Finder) Next() (frame.Frame, error) {
	if f.done {
		return frame.Frame{}, frame.ErrExhausted
	}
	if !f.started {
		f.started = true
		return f.snapshot(), nil
	}

	i := len(f.log)
	if i == len(f.arr) {
		f.log = append(f.log, op{line: LineNotFound, index: -1})
		f.done = true
		return f.snapshot(), nil
	}

	v := f.arr[i]
	if j, ok := f.seen[f.target-v]; ok {
		f.log = append(f.log, op{line: LineFound, index: i, partner: j})
		f.done = true
		return f.snapshot(), nil
	}

	prev, replaced := f.seen[v]
	if !replaced {
		f.order = append(f.order, v)
	}
	f.seen[v] = i
	f.log = append(f.log, op{line: LineStore, index: i, prev: prev, replaced: replaced})

	return f.snapshot(), nil
}

// Undo reverts the last step and returns the frame before it.
func (f *Finder) Undo() (frame.Frame, error) {
	if len(f.log) == 0 {
		return frame.Frame{}, frame.ErrExhausted
	}
	last := f.log[len(f.log)-1]
	f.log = f.log[:len(f.log)-1]
	f.done = false

	if last.line == LineStore {
		v := f.arr[last.index]
		if last.replaced {
			f.seen[v] = last.prev
		} else {
			delete(f.seen, v)
			f.order = f.order[:len(f.order)-1]
		}
	}

	return f.snapshot(), nil
}

func (f *Finder) snapshot() frame.Frame {
	index := len(f.log)
	line, narrative := LineInit, fmt.Sprintf("Start with an empty map, target=%d", f.target)
	current, complement, left, right := -1, 0, -1, -1
	found := false

	if index > 0 {
		last := f.log[index-1]
		line = last.line
		switch last.line {
		case LineStore:
			current = last.index
			v := f.arr[current]
			complement = f.target - v
			narrative = fmt.Sprintf("complement=%d-%d=%d not seen: store seen[%d]=%d", f.target, v, complement, v, current)
		case LineFound:
			current = last.index
			complement = f.target - f.arr[current]
			left, right, found = last.partner, current, true
			narrative = fmt.Sprintf("Found: arr[%d] + arr[%d] = %d + %d = %d",
				left, right, f.arr[left], f.arr[right], f.target)
		case LineNotFound:
			narrative = fmt.Sprintf("No pair sums to %d", f.target)
		}
	}

	entries := make([]frame.Entry, 0, len(f.order))
	for _, k := range f.order {
		entries = append(entries, frame.Entry{Key: strconv.Itoa(k), Value: f.seen[k]})
	}

	b := frame.New(index, line, narrative).
		Var("index", current).
		Var("complement", complement).
		Var("target", f.target).
		Var("found", found).
		Var("pairLeft", left).
		Var("pairRight", right).
		Array("array", f.arr, func(k int) []frame.Flag {
			switch {
			case found && (k == left || k == right):
				return []frame.Flag{frame.FlagMatch}
			case k == current:
				return []frame.Flag{frame.FlagCurrent}
			}
			return nil
		}).
		Map("seen", entries)
	if f.done {
		b.Final()
	}

	return b.Build()
}
