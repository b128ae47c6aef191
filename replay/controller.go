package replay

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/stepwise/frame"
)

// Controller owns at most one session and its playback timer.
// All methods are safe for concurrent use.
type Controller struct {
	mu   sync.Mutex
	opts Options
	log  *slog.Logger

	sess  *session
	timer Timer
	gen   uint64 // bumped whenever a pending tick must become a no-op

	observers []observer // subscription order
	nextObs   int
}

type observer struct {
	id int
	fn Observer
}

type session struct {
	id      uuid.UUID
	inst    Instrumentation
	cur     cursor
	playing bool
	speed   float64
}

// New returns a Controller with no session loaded.
func New(opts ...Option) (*Controller, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	c := &Controller{opts: o, log: o.Logger, observers: make([]observer, 0, len(o.Observers))}
	for _, fn := range o.Observers {
		c.observers = append(c.observers, observer{id: c.nextObs, fn: fn})
		c.nextObs++
	}

	return c, nil
}

// Subscribe registers fn until the returned cancel function is called.
func (c *Controller) Subscribe(fn Observer) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextObs
	c.nextObs++
	c.observers = append(c.observers, observer{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		c.observers = slices.DeleteFunc(c.observers, func(o observer) bool { return o.id == id })
		c.mu.Unlock()
	}
}

// Load replaces the current session with a new one over inst, positioned
// on frame 0, paused, at the default speed. Any pending tick of the
// previous session is cancelled first.
func (c *Controller) Load(inst Instrumentation) (Status, error) {
	if inst == nil {
		return Status{}, fmt.Errorf("%w: %w", frame.ErrConfiguration, ErrNilInstrumentation)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.halt()

	cur, err := newCursor(inst)
	if err != nil {
		return Status{}, fmt.Errorf("replay: load %s: %w", inst.Kind(), err)
	}
	prev := c.sess
	c.sess = &session{id: uuid.New(), inst: inst, cur: cur, speed: c.opts.DefaultSpeed}
	if prev != nil {
		c.log.Debug("session replaced", "previous", prev.id, "session", c.sess.id)
	}
	c.log.Info("session loaded", "session", c.sess.id, "kind", inst.Kind(), "seekable", Seekable(inst))
	c.emit()

	return c.status(), nil
}

// Play starts free-running playback. At the final frame it rewinds first.
// Playing an already playing session is a no-op.
func (c *Controller) Play() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return Status{}, ErrNoSession
	}
	if c.sess.playing {
		return c.status(), nil
	}
	if c.sess.cur.current().Final {
		if _, err := c.sess.cur.rewind(); err != nil {
			return c.status(), err
		}
		c.emit()
	}
	c.sess.playing = true
	c.schedule()
	c.log.Debug("playback started", "session", c.sess.id, "index", c.sess.cur.current().Index, "delay", c.delay())
	c.emit()

	return c.status(), nil
}

// Pause stops playback and keeps the position.
func (c *Controller) Pause() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return Status{}, ErrNoSession
	}
	if c.sess.playing {
		c.halt()
		c.emit()
	}

	return c.status(), nil
}

// StepForward pauses and moves one frame forward.
func (c *Controller) StepForward() (frame.Frame, error) {
	return c.step("forward", func(cur cursor) (frame.Frame, error) { return cur.forward() })
}

// StepBackward pauses and moves one frame back.
func (c *Controller) StepBackward() (frame.Frame, error) {
	return c.step("backward", func(cur cursor) (frame.Frame, error) { return cur.backward() })
}

// Seek pauses and jumps to frame i.
func (c *Controller) Seek(i int) (frame.Frame, error) {
	f, err := c.step("seek", func(cur cursor) (frame.Frame, error) { return cur.seek(i) })
	var be *BoundaryError
	if errors.As(err, &be) {
		be.Want = i
	}

	return f, err
}

func (c *Controller) step(op string, move func(cursor) (frame.Frame, error)) (frame.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return frame.Frame{}, ErrNoSession
	}
	wasPlaying := c.sess.playing
	c.halt()

	f, err := move(c.sess.cur)
	if err != nil {
		if wasPlaying {
			c.emit()
		}
		if errors.Is(err, frame.ErrExhausted) || errors.Is(err, frame.ErrOutOfRange) {
			idx := c.sess.cur.current().Index
			c.log.Debug("boundary", "session", c.sess.id, "op", op, "index", idx)
			return c.sess.cur.current(), &BoundaryError{Op: op, Index: idx}
		}
		return c.sess.cur.current(), fmt.Errorf("replay: %s: %w", op, err)
	}
	c.emit()

	return f, nil
}

// SetSpeed clamps m to the configured bounds and returns the applied value.
// A pending tick keeps its delay; the next one uses the new speed.
func (c *Controller) SetSpeed(m float64) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return 0, ErrNoSession
	}
	c.sess.speed = clamp(m, c.opts.MinSpeed, c.opts.MaxSpeed, c.opts.DefaultSpeed)
	if c.sess.speed != m {
		c.log.Debug("speed clamped", "session", c.sess.id, "requested", m, "applied", c.sess.speed)
	}

	return c.sess.speed, nil
}

// Reset pauses and returns to frame 0, keeping the instrumentation.
func (c *Controller) Reset() (frame.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return frame.Frame{}, ErrNoSession
	}
	c.halt()
	f, err := c.sess.cur.rewind()
	if err != nil {
		return frame.Frame{}, fmt.Errorf("replay: reset: %w", err)
	}
	c.emit()

	return f, nil
}

// Current returns the frame the session is on.
func (c *Controller) Current() (frame.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return frame.Frame{}, ErrNoSession
	}

	return c.sess.cur.current(), nil
}

// Listing returns the pseudocode listing of the loaded instrumentation.
func (c *Controller) Listing() ([]frame.Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return nil, ErrNoSession
	}

	return c.sess.inst.Listing(), nil
}

// Status returns a snapshot of the session.
func (c *Controller) Status() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return Status{}, ErrNoSession
	}

	return c.status(), nil
}

// Snapshot returns the status and current frame read under one lock.
func (c *Controller) Snapshot() (Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return Event{}, ErrNoSession
	}

	return Event{Status: c.status(), Frame: c.sess.cur.current()}, nil
}

// Close stops playback. The controller stays usable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.halt()
}

// tick is the scheduled advancement of generation gen.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.sess == nil || !c.sess.playing {
		c.log.Debug("tick dropped", "err", ErrStaleSession, "gen", gen, "current", c.gen)
		return
	}
	c.timer = nil

	f, err := c.sess.cur.forward()
	if err != nil {
		if !errors.Is(err, frame.ErrExhausted) {
			c.log.Error("playback stopped", "session", c.sess.id, "err", err)
		}
		c.halt()
		c.emit()
		return
	}
	if f.Final {
		c.sess.playing = false
		c.gen++
		c.log.Debug("playback finished", "session", c.sess.id, "index", f.Index)
		c.emit()
		return
	}
	c.schedule()
	c.emit()
}

// schedule arms the timer for the next tick. Caller holds mu.
func (c *Controller) schedule() {
	gen := c.gen
	c.timer = c.opts.Scheduler.AfterFunc(c.delay(), func() { c.tick(gen) })
}

// halt cancels any pending tick and pauses. Caller holds mu.
func (c *Controller) halt() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	if c.sess != nil {
		c.sess.playing = false
	}
}

// delay is never zero or negative: speed is clamped to a positive minimum.
func (c *Controller) delay() time.Duration {
	speed := c.opts.DefaultSpeed
	if c.sess != nil {
		speed = c.sess.speed
	}
	d := time.Duration(float64(c.opts.BaseFrameDuration) / speed)
	if d < time.Millisecond {
		d = time.Millisecond
	}

	return d
}

func (c *Controller) status() Status {
	f := c.sess.cur.current()
	d := c.delay()
	return Status{
		SessionID: c.sess.id,
		Kind:      c.sess.inst.Kind(),
		Seekable:  Seekable(c.sess.inst),
		Index:     f.Index,
		Total:     c.sess.cur.total(),
		Playing:   c.sess.playing,
		Speed:     c.sess.speed,
		Delay:     d,
		DelayMs:   d.Milliseconds(),
		Final:     f.Final,
	}
}

func (c *Controller) emit() {
	if len(c.observers) == 0 {
		return
	}
	ev := Event{Status: c.status(), Frame: c.sess.cur.current()}
	for _, o := range c.observers {
		o.fn(ev)
	}
}
