// Package graph validates a raw trading network and builds the immutable
// graph the layout, render and interaction layers operate on.
//
// Malformed input never fails the build:
//
//   - duplicate node ids collapse to the first occurrence
//   - edges that reference unknown nodes are dropped
//   - negative or non-finite weights are clamped to 0
//   - duplicate edges between the same ordered pair are summed
//
// Each recovery appends a [Warning]. [Build] is a pure function; running it
// twice on the same input yields the same graph and the same warnings.
package graph
