// Package frequency instruments a left-to-right frequency count: each step
// reads one array element and increments its tally in a value→count map,
// while the most frequent value so far is tracked.
//
// Counter is incrementally steppable and reversible. Undo applies the exact
// inverse of the last Next: the tally of the last consumed value is
// decremented and the key is removed once it reaches zero, so stepping
// forward to k and back to j yields the very map obtained by stepping
// forward to j.
//
// Tie-breaking: when several values share the highest count, the value
// whose first occurrence came earliest wins. Map entries are likewise kept
// in first-occurrence order.
package frequency
