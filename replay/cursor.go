package replay

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/stepwise/frame"
)

// cursor is one stepping strategy. Every method either moves to the
// returned frame or, on error, leaves the position unchanged.
type cursor interface {
	current() frame.Frame
	forward() (frame.Frame, error)
	backward() (frame.Frame, error)
	seek(i int) (frame.Frame, error)
	rewind() (frame.Frame, error)
	total() int
}

// newCursor resets inst, picks the strategy its capabilities allow and
// positions it on frame 0.
func newCursor(inst Instrumentation) (cursor, error) {
	inst.Reset()
	switch v := inst.(type) {
	case Seeker:
		c := &seekCursor{inst: v}
		_, err := c.rewind()
		return c, err
	case Reverser:
		c := &reverseCursor{inst: v}
		_, err := c.rewind()
		return c, err
	default:
		c := &historyCursor{inst: inst}
		_, err := c.rewind()
		return c, err
	}
}

// seekCursor computes every frame from its index.
type seekCursor struct {
	inst Seeker
	cur  frame.Frame
}

func (c *seekCursor) current() frame.Frame { return c.cur }
func (c *seekCursor) total() int { return c.inst.Len() }

func (c *seekCursor) forward() (frame.Frame, error) {
	if c.cur.Final {
		return frame.Frame{}, frame.ErrExhausted
	}
	return c.seek(c.cur.Index + 1)
}

func (c *seekCursor) backward() (frame.Frame, error) {
	if c.cur.Index == 0 {
		return frame.Frame{}, frame.ErrExhausted
	}
	return c.seek(c.cur.Index - 1)
}

func (c *seekCursor) seek(i int) (frame.Frame, error) {
	f, err := c.inst.FrameAt(i)
	if err != nil {
		return frame.Frame{}, err
	}
	c.cur = f
	return f, nil
}

func (c *seekCursor) rewind() (frame.Frame, error) { return c.seek(0) }

// reverseCursor keeps the live state on the current frame and steps back
// through Undo.
type reverseCursor struct {
	inst Reverser
	cur  frame.Frame
	n    int // frame count, 0 until the final frame is reached
}

func (c *reverseCursor) current() frame.Frame { return c.cur }

// total is known once the final frame has been produced; undoing past it
// keeps the count.
func (c *reverseCursor) total() int {
	if c.n == 0 {
		return -1
	}
	return c.n
}

func (c *reverseCursor) land(f frame.Frame) {
	c.cur = f
	if f.Final {
		c.n = f.Index + 1
	}
}

func (c *reverseCursor) forward() (frame.Frame, error) {
	if c.cur.Final {
		return frame.Frame{}, frame.ErrExhausted
	}
	f, err := c.inst.Next()
	if err != nil {
		return frame.Frame{}, err
	}
	c.land(f)
	return f, nil
}

func (c *reverseCursor) backward() (frame.Frame, error) {
	if c.cur.Index == 0 {
		return frame.Frame{}, frame.ErrExhausted
	}
	f, err := c.inst.Undo()
	if err != nil {
		return frame.Frame{}, err
	}
	c.cur = f
	return f, nil
}

// seek walks with Next or Undo. A target past the final frame is
// discovered on the way; the walk is then undone back to the start.
func (c *reverseCursor) seek(i int) (frame.Frame, error) {
	if i < 0 {
		return frame.Frame{}, fmt.Errorf("%w: %d", frame.ErrOutOfRange, i)
	}
	start := c.cur.Index
	for c.cur.Index > i {
		if _, err := c.backward(); err != nil {
			return frame.Frame{}, err
		}
	}
	for c.cur.Index < i {
		if _, err := c.forward(); err != nil {
			for c.cur.Index > start {
				if _, uerr := c.backward(); uerr != nil {
					return frame.Frame{}, errors.Join(err, uerr)
				}
			}
			if errors.Is(err, frame.ErrExhausted) {
				return frame.Frame{}, fmt.Errorf("%w: %d past final frame %d", frame.ErrOutOfRange, i, c.cur.Index)
			}
			return frame.Frame{}, err
		}
	}
	return c.cur, nil
}

func (c *reverseCursor) rewind() (frame.Frame, error) {
	c.inst.Reset()
	f, err := c.inst.Next()
	if err != nil {
		return frame.Frame{}, err
	}
	c.land(f)
	return f, nil
}

// historyCursor caches every frame produced so far. The instrumentation's
// live state always sits on the newest cached frame.
type historyCursor struct {
	inst   Instrumentation
	frames []frame.Frame
	pos    int
}

func (c *historyCursor) current() frame.Frame { return c.frames[c.pos] }

// total is known once the final frame has been cached.
func (c *historyCursor) total() int {
	if n := len(c.frames); n > 0 && c.frames[n-1].Final {
		return n
	}
	return -1
}

func (c *historyCursor) forward() (frame.Frame, error) {
	return c.seek(c.pos + 1)
}

func (c *historyCursor) backward() (frame.Frame, error) {
	if c.pos == 0 {
		return frame.Frame{}, frame.ErrExhausted
	}
	c.pos--
	return c.frames[c.pos], nil
}

// seek reads the cache, extending it from the newest cached frame when i
// lies beyond it. Frames produced on the way stay cached even if i turns
// out to be past the final frame.
func (c *historyCursor) seek(i int) (frame.Frame, error) {
	if i < 0 {
		return frame.Frame{}, fmt.Errorf("%w: %d", frame.ErrOutOfRange, i)
	}
	for len(c.frames) <= i {
		if c.frames[len(c.frames)-1].Final {
			if i == c.pos+1 {
				return frame.Frame{}, frame.ErrExhausted
			}
			return frame.Frame{}, fmt.Errorf("%w: %d past final frame %d", frame.ErrOutOfRange, i, len(c.frames)-1)
		}
		f, err := c.inst.Next()
		if err != nil {
			return frame.Frame{}, err
		}
		c.frames = append(c.frames, f)
	}
	c.pos = i
	return c.frames[i], nil
}

// rewind keeps the cache: replays are deterministic.
func (c *historyCursor) rewind() (frame.Frame, error) {
	if len(c.frames) == 0 {
		f, err := c.inst.Next()
		if err != nil {
			return frame.Frame{}, err
		}
		c.frames = append(c.frames, f)
	}
	c.pos = 0
	return c.frames[0], nil
}
