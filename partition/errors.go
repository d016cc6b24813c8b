package partition

import "errors"

// Sentinel errors returned by Plan. All of them are fatal configuration
// errors: a run never proceeds past a failed plan.
var (
	// ErrPrimeWorkerCount is returned when the owner count is prime (>2)
	// and therefore has no non-trivial block-grid factorization.
	ErrPrimeWorkerCount = errors.New("worker count is prime")

	// ErrIndivisibleGrid is returned when the grid cells cannot be split
	// evenly across the owners or the chosen block shape.
	ErrIndivisibleGrid = errors.New("grid not evenly divisible")

	// ErrInvalidWorkerCount is returned for a non-positive owner count.
	ErrInvalidWorkerCount = errors.New("invalid worker count")

	// ErrInvalidGridSize is returned for non-positive grid dimensions.
	ErrInvalidGridSize = errors.New("invalid grid size")
)
