package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/heatgrid/types"
)

// PrometheusCollector implements types.MetricsCollector backed by
// Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	scatterDuration prometheus.Histogram
	gatherDuration  prometheus.Histogram
	stepDuration    prometheus.Histogram
	passDuration    *prometheus.HistogramVec
	haloTransfers   *prometheus.CounterVec
	haloCells       *prometheus.CounterVec
	runDuration     prometheus.Histogram
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "heatgrid" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "heatgrid"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.scatterDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "transport",
			Name:      "scatter_duration_seconds",
			Help:      "Duration of the initial block scatter in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~4s
		})

		p.gatherDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "transport",
			Name:      "gather_duration_seconds",
			Help:      "Duration of the final block gather in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		})

		p.stepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "iteration",
			Name:      "step_duration_seconds",
			Help:      "Per-owner duration of one complete time step in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms .. ~1.6s
		})

		p.passDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "iteration",
			Name:      "pass_duration_seconds",
			Help:      "Per-owner duration of one compute pass in seconds by pass (interior, exterior).",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"pass"})

		p.haloTransfers = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "halo",
			Name:      "transfers_total",
			Help:      "Completed halo receives by direction.",
		}, []string{"direction"})

		p.haloCells = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "halo",
			Name:      "cells_total",
			Help:      "Halo cells received by direction.",
		}, []string{"direction"})

		p.runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "iteration",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the whole iteration phase in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		})

		p.reg.MustRegister(p.scatterDuration)
		p.reg.MustRegister(p.gatherDuration)
		p.reg.MustRegister(p.stepDuration)
		p.reg.MustRegister(p.passDuration)
		p.reg.MustRegister(p.haloTransfers)
		p.reg.MustRegister(p.haloCells)
		p.reg.MustRegister(p.runDuration)
	})
}

// RecordScatterDuration observes the scatter duration.
func (p *PrometheusCollector) RecordScatterDuration(seconds float64) {
	p.ensureRegistered()
	p.scatterDuration.Observe(seconds)
}

// RecordGatherDuration observes the gather duration.
func (p *PrometheusCollector) RecordGatherDuration(seconds float64) {
	p.ensureRegistered()
	p.gatherDuration.Observe(seconds)
}

// RecordStepDuration observes one owner's step duration.
func (p *PrometheusCollector) RecordStepDuration(seconds float64) {
	p.ensureRegistered()
	p.stepDuration.Observe(seconds)
}

// RecordPassDuration observes one owner's compute pass duration.
func (p *PrometheusCollector) RecordPassDuration(pass string, seconds float64) {
	p.ensureRegistered()
	p.passDuration.WithLabelValues(pass).Observe(seconds)
}

// IncrementHaloTransfers counts one completed halo receive.
func (p *PrometheusCollector) IncrementHaloTransfers(direction string, cells int) {
	p.ensureRegistered()
	p.haloTransfers.WithLabelValues(direction).Inc()
	p.haloCells.WithLabelValues(direction).Add(float64(cells))
}

// RecordRunDuration observes the whole-run duration.
func (p *PrometheusCollector) RecordRunDuration(seconds float64) {
	p.ensureRegistered()
	p.runDuration.Observe(seconds)
}
