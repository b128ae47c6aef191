// Package twosum instruments the single-pass hash-map two-sum over an
// unsorted array: for every element the complement target-value is looked
// up in a value→index map, and the element is stored when no match exists.
//
// Finder is reversible. Each forward step pushes one entry onto an undo log
// (the stored value and the index it replaced, if any); Undo pops it and
// restores the map exactly, including an overwritten index for a repeated
// value.
package twosum
