// Package frame defines the Frame value: one immutable snapshot of an
// instrumented algorithm, addressed by its position in a replay sequence.
//
// What:
//
//   - Frame: index, narrative line, highlighted listing line, ordered
//     variables and named container snapshots.
//   - Container: array (per-index flags), queue/stack/list (ordered items),
//     map (ordered key→value entries) or grid (cell states).
//   - Builder: assembles a Frame while deep-copying every input, so that
//     the live working state of an instrumentation never aliases a Frame.
//
// Why:
//
//   - A Frame is the only channel between an instrumentation, the replay
//     controller and any renderer. Renderers never see live algorithm state.
//   - Frames are pure functions of (input, steps applied). Two sessions fed
//     the same input and step count produce frames that compare equal with
//     Frame.SameState, which makes backward stepping well defined.
//
// Errors:
//
//   - ErrConfiguration: umbrella sentinel wrapped by every instrumentation
//     constructor that rejects its input (empty array, bad window size,
//     jagged grid, ...).
//   - ErrExhausted: no further frame in the requested direction.
//   - ErrOutOfRange: random access outside the sequence.
package frame
