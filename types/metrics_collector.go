package types

// MetricsCollector receives simulation measurements.
//
// Implementations must be safe for concurrent use: every owner reports its
// own step and pass durations, and halo counters are incremented from all
// owners at once.
//
// The library ships two implementations: a no-op collector (the default)
// and a Prometheus-backed one in internal/metrics.
type MetricsCollector interface {
	// RecordScatterDuration records the time spent distributing the global
	// field to the owners, in seconds.
	RecordScatterDuration(seconds float64)

	// RecordGatherDuration records the time spent collecting the final
	// blocks back into the global field, in seconds.
	RecordGatherDuration(seconds float64)

	// RecordStepDuration records the wall time of one complete iteration
	// (post, compute, await, swap) on one owner, in seconds.
	RecordStepDuration(seconds float64)

	// RecordPassDuration records the wall time of one compute pass on one
	// owner, in seconds. Pass is "interior" or "exterior".
	RecordPassDuration(pass string, seconds float64)

	// IncrementHaloTransfers counts one completed halo transfer of the
	// given number of cells in the given receive direction.
	IncrementHaloTransfers(direction string, cells int)

	// RecordRunDuration records the wall time of the whole iteration phase,
	// scatter to gather, in seconds.
	RecordRunDuration(seconds float64)
}
