// Package window instruments contiguous-window scans over an integer array.
//
// What:
//
//   - Fixed: a window of constant size slides one cell per frame while the
//     running sum and the best (maximum) window so far are tracked. Frame i
//     covers [i, i+size-1] and is computed from i alone, so Fixed supports
//     random access.
//   - Variable: a greedy expand/shrink loop looking for the longest window
//     whose sum does not exceed a limit. Shrink decisions depend on the
//     accumulated sum, so Variable only steps forward; replayers keep the
//     produced frames to step back.
//
// Options:
//
//   - WithClampOversize(): a Fixed window larger than the array is clamped
//     to the whole array (a single frame) instead of being rejected.
//
// Errors (all wrap frame.ErrConfiguration):
//
//   - ErrWindowSize:  size < 1, or size > len(arr) without clamping.
//   - ErrEmptyArray:  Variable needs at least one element.
//   - ErrNegative:    Variable requires non-negative values and limit.
package window
