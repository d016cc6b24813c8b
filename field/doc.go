// Package field holds the temperature data structures: the coordinator's
// global grid, the per-owner double-buffered block with its one-cell halo
// ring, and the text snapshot writer.
package field
