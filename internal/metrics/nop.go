// Package metrics provides MetricsCollector implementations: a no-op
// default and a Prometheus-backed collector.
package metrics

import "github.com/arloliu/heatgrid/types"

// NopMetrics implements a no-op metrics collector.
//
// All measurements are discarded. This is the default collector, so the hot
// loop pays only an interface call when metrics are not wired up.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordScatterDuration discards the scatter duration.
func (n *NopMetrics) RecordScatterDuration(_ /* seconds */ float64) {
	// No-op
}

// RecordGatherDuration discards the gather duration.
func (n *NopMetrics) RecordGatherDuration(_ /* seconds */ float64) {
	// No-op
}

// RecordStepDuration discards the step duration.
func (n *NopMetrics) RecordStepDuration(_ /* seconds */ float64) {
	// No-op
}

// RecordPassDuration discards the compute pass duration.
func (n *NopMetrics) RecordPassDuration(_ /* pass */ string, _ /* seconds */ float64) {
	// No-op
}

// IncrementHaloTransfers discards the halo transfer count.
func (n *NopMetrics) IncrementHaloTransfers(_ /* direction */ string, _ /* cells */ int) {
	// No-op
}

// RecordRunDuration discards the run duration.
func (n *NopMetrics) RecordRunDuration(_ /* seconds */ float64) {
	// No-op
}
