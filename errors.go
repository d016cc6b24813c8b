package heatgrid

import "errors"

// Sentinel errors returned by the Simulation.
//
// All configuration errors are fatal and collective: a run either starts
// with every owner correctly configured or it does not start at all. There
// are no recoverable error paths inside the iteration loop.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidThreadCount is returned for a non-positive per-owner
	// thread-pool size.
	ErrInvalidThreadCount = errors.New("invalid thread count")

	// ErrInitialFieldRequired is returned when Run is called without an
	// initial field.
	ErrInitialFieldRequired = errors.New("initial field is required")

	// ErrFieldSizeMismatch is returned when the initial field dimensions do
	// not match the configured grid.
	ErrFieldSizeMismatch = errors.New("initial field does not match configured grid size")

	// ErrAlreadyRun is returned when Run is called twice on one Simulation.
	// A Simulation is single-shot: topology, blocks and transfer buffers
	// belong to exactly one run.
	ErrAlreadyRun = errors.New("simulation already run")
)
