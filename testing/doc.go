// Package testing provides helpers for tests of heatgrid and of code built
// on it: an embedded NATS server and a testing.T-backed logger.
package testing
