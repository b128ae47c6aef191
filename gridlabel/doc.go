// Package gridlabel labels the connected components ("islands") of a 2D grid
// with a row-major scan plus depth-first flood fill, and instruments that
// process frame by frame.
//
// What:
//
//   - Grid wraps a rectangular [][]int with a tunable LandThreshold and
//     4- or 8-connectivity.
//   - Grid.ConnectedComponents returns the islands directly (no frames).
//   - Labeler replays the labeling: the scan visits every cell in row-major
//     order; an unlabeled land cell gets the next component id (1-based)
//     and is flood-filled through an explicit stack, neighbors taken in the
//     order down, up, right, left (then the diagonals under Conn8).
//
// Frames:
//
//   - one "skip" frame per scanned cell that is water or already labeled,
//   - one "discover" frame per new component,
//   - one "visit" frame per cell labeled by the flood fill,
//   - an initial frame and a final "done" frame.
//
// Every popped stack entry is bounds- and label-checked before it expands
// anything, which is the only base case of the fill and what keeps cyclic
// regions finite.
//
// Complexity:
//
//   - ConnectedComponents: O(W×H×d), Memory: O(W×H)    (d = 4 or 8).
//   - Labeler:             O(W×H×d) frames in total, O(W×H) live state.
//
// Errors (wrapping frame.ErrConfiguration):
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
package gridlabel
