// Package replay implements the transport layered over an instrumented
// algorithm: load, play, pause, single steps in both directions, seek,
// speed and reset.
//
// A Controller drives exactly one Instrumentation at a time. How it steps
// depends on what the instrumentation can do:
//
//   - Seeker: any frame is computed from its index, so backward steps and
//     seeks call FrameAt directly.
//   - Reverser: the live state follows the cursor and a backward step calls
//     Undo, the exact inverse of the last Next.
//   - anything else: every produced frame is cached; backward steps and
//     seeks below the newest frame read the cache, seeks past it replay
//     forward with Next.
//
// Playback is cooperative. Each tick is scheduled through a Scheduler and
// carries the generation it was scheduled in; Load, Pause, Reset, Seek and
// the step operations bump the generation, so a tick that fires late finds
// itself stale and does nothing.
//
// Stepping past either end is not a failure of the session: it returns a
// *BoundaryError (errors.Is(err, ErrBoundary)) and leaves every field of the
// session as it was.
package replay
