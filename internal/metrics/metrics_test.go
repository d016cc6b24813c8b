package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNopCollector(t *testing.T) {
	t.Parallel()

	// The no-op collector must swallow everything without side effects.
	c := NewNop()
	c.RecordScatterDuration(0.1)
	c.RecordGatherDuration(0.1)
	c.RecordStepDuration(0.01)
	c.RecordPassDuration("interior", 0.005)
	c.IncrementHaloTransfers("up", 128)
	c.RecordRunDuration(1.5)
}

func TestPrometheusCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewPrometheus(reg, "test")

	c.RecordScatterDuration(0.05)
	c.RecordGatherDuration(0.04)
	c.RecordStepDuration(0.001)
	c.RecordPassDuration("interior", 0.0005)
	c.RecordPassDuration("exterior", 0.0002)
	c.IncrementHaloTransfers("up", 160)
	c.IncrementHaloTransfers("up", 160)
	c.IncrementHaloTransfers("left", 128)
	c.RecordRunDuration(0.2)

	require.Equal(t, 2.0, testutil.ToFloat64(c.haloTransfers.WithLabelValues("up")))
	require.Equal(t, 320.0, testutil.ToFloat64(c.haloCells.WithLabelValues("up")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.haloTransfers.WithLabelValues("left")))
	require.Equal(t, 128.0, testutil.ToFloat64(c.haloCells.WithLabelValues("left")))

	// All metric families registered under the namespace.
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 7)
}

func TestPrometheusCollectorDefaults(t *testing.T) {
	t.Parallel()

	// A nil registerer falls back to the default registry; use a private one
	// here to avoid polluting it, but verify the namespace default.
	c := NewPrometheus(prometheus.NewRegistry(), "")
	require.Equal(t, "heatgrid", c.namespace)
}
