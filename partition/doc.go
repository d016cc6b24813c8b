// Package partition computes the block decomposition of the global grid:
// the near-square block-grid shape for a given owner count, the per-block
// dimensions, and the divisibility checks that make the decomposition
// gap-free and overlap-free.
package partition
