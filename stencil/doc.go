// Package stencil implements the explicit 5-point diffusion update, split
// into a halo-independent interior pass (overlapped with communication) and
// a halo-dependent exterior pass, each fanned out across a fixed pool of
// worker goroutines over a static disjoint partition.
package stencil
