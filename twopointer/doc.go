// Package twopointer instruments the sorted-array two-pointer search for a
// pair summing to a target.
//
// The pointers only ever move toward each other, so the state after i
// comparisons is a function of i and the input alone. Search therefore
// implements random access (FrameAt) without keeping any history, and
// stepping backward is simply FrameAt(i-1).
//
// Frame layout:
//
//	variables:  left, right, sum (while comparing), target, found
//	containers: "array" (left/right/match flags), "attempts" (list)
//
// Complexity: FrameAt(i) is O(i); Len is computed once in O(n).
package twopointer
