package replay

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/stepwise/frame"
)

// Sentinel errors for controller operations.
var (
	// ErrBoundary is matched by every *BoundaryError.
	ErrBoundary = errors.New("replay: no frame in that direction")

	// ErrNoSession is returned by transport operations before the first Load.
	ErrNoSession = errors.New("replay: no session loaded")

	// ErrNilInstrumentation is returned by Load for a nil instrumentation.
	ErrNilInstrumentation = errors.New("replay: instrumentation is nil")

	// ErrStaleSession marks a scheduled tick that fired after its session
	// was paused, reset or replaced. It is logged and dropped, never returned.
	ErrStaleSession = errors.New("replay: stale session tick")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("replay: invalid option supplied")
)

// BoundaryError reports a step or seek past the first or last frame.
// The session is left untouched.
type BoundaryError struct {
	Op    string // "forward", "backward" or "seek"
	Index int    // current index when the request was refused
	Want  int    // requested index, for seeks
}

func (e *BoundaryError) Error() string {
	if e.Op == "seek" {
		return fmt.Sprintf("replay: seek to %d refused at frame %d: out of range", e.Want, e.Index)
	}
	return fmt.Sprintf("replay: %s refused at frame %d: no frame in that direction", e.Op, e.Index)
}

// Is makes errors.Is(err, ErrBoundary) hold.
func (e *BoundaryError) Is(target error) bool { return target == ErrBoundary }

// Instrumentation is an algorithm wrapped to emit frames.
//
// The first Next after construction or Reset returns frame 0; every later
// call returns the following frame, and frame.ErrExhausted once the frame
// marked Final has been returned.
type Instrumentation interface {
	Kind() string
	Listing() []frame.Line
	Next() (frame.Frame, error)
	Reset()
}

// Seeker is an Instrumentation whose frames are a pure function of their
// index. Len is the total number of frames, final frame included.
type Seeker interface {
	Instrumentation
	FrameAt(i int) (frame.Frame, error)
	Len() int
}

// Reverser is an Instrumentation able to revert its last step. Undo
// returns the frame before the one last produced, or frame.ErrExhausted
// when the live state is back on frame 0.
type Reverser interface {
	Instrumentation
	Undo() (frame.Frame, error)
}

// Seekable reports whether inst is random-seekable.
func Seekable(inst Instrumentation) bool {
	_, ok := inst.(Seeker)
	return ok
}

// Status is a snapshot of the controller's session.
type Status struct {
	SessionID uuid.UUID     `json:"sessionId"`
	Kind      string        `json:"kind"`
	Seekable  bool          `json:"seekable"`
	Index     int           `json:"index"`
	Total     int           `json:"total"` // -1 while the sequence length is unknown
	Playing   bool          `json:"playing"`
	Speed     float64       `json:"speed"`
	Delay     time.Duration `json:"-"`
	DelayMs   int64         `json:"delayMs"`
	Final     bool          `json:"final"`
}

// Event is delivered to observers for every frame a session reaches and
// for every play/pause transition.
type Event struct {
	Status Status      `json:"status"`
	Frame  frame.Frame `json:"frame"`
}

// Observer receives events synchronously while the controller holds its
// lock; it must not call back into the controller and should not block.
type Observer func(Event)

// Speed bounds and base delay.
const (
	DefaultBaseFrameDuration = time.Second
	DefaultMinSpeed          = 0.3
	DefaultMaxSpeed          = 2.0
	DefaultSpeed             = 1.0
)

// Option configures a Controller via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds controller parameters.
type Options struct {
	// BaseFrameDuration is the delay between ticks at speed 1.
	BaseFrameDuration time.Duration

	// MinSpeed and MaxSpeed bound every speed multiplier.
	MinSpeed, MaxSpeed float64

	// DefaultSpeed is the multiplier of a freshly loaded session.
	DefaultSpeed float64

	// Scheduler schedules playback ticks. Defaults to WallClock.
	Scheduler Scheduler

	// Logger receives debug and info records. Defaults to slog.Default().
	Logger *slog.Logger

	// Observers are subscribed at construction.
	Observers []Observer

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns a one-second base delay, speeds in [0.3, 2.0]
// starting at 1.0, the wall clock and the default logger.
func DefaultOptions() Options {
	return Options{
		BaseFrameDuration: DefaultBaseFrameDuration,
		MinSpeed:          DefaultMinSpeed,
		MaxSpeed:          DefaultMaxSpeed,
		DefaultSpeed:      DefaultSpeed,
		Scheduler:         WallClock{},
		Logger:            slog.Default(),
	}
}

// WithBaseFrameDuration sets the delay between ticks at speed 1.
// Non-positive durations are an ErrOptionViolation.
func WithBaseFrameDuration(d time.Duration) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: base frame duration must be positive (%s)", ErrOptionViolation, d)
			return
		}
		o.BaseFrameDuration = d
	}
}

// WithSpeedBounds sets the speed range and the initial speed.
//
//	0 < lo <= initial <= hi, otherwise ErrOptionViolation
func WithSpeedBounds(lo, hi, initial float64) Option {
	return func(o *Options) {
		if !(lo > 0) || !(hi >= lo) || initial < lo || initial > hi {
			o.err = fmt.Errorf("%w: speed bounds want 0 < %g <= %g <= %g", ErrOptionViolation, lo, initial, hi)
			return
		}
		o.MinSpeed, o.MaxSpeed, o.DefaultSpeed = lo, hi, initial
	}
}

// WithScheduler replaces the wall clock, typically with a manual one in tests.
func WithScheduler(s Scheduler) Option {
	return func(o *Options) {
		if s != nil {
			o.Scheduler = s
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver subscribes fn for the lifetime of the controller.
func WithObserver(fn Observer) Option {
	return func(o *Options) {
		if fn != nil {
			o.Observers = append(o.Observers, fn)
		}
	}
}

// clamp bounds m to [lo, hi]; NaN maps to def.
func clamp(m, lo, hi, def float64) float64 {
	if math.IsNaN(m) {
		return def
	}
	return math.Min(math.Max(m, lo), hi)
}
