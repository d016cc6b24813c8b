package heatgrid

import (
	"github.com/arloliu/heatgrid/stencil"
	"github.com/arloliu/heatgrid/types"
)

// Option configures a Simulation with optional dependencies.
type Option func(*simulationOptions)

// simulationOptions holds optional Simulation configuration.
type simulationOptions struct {
	transport types.Transport
	logger    types.Logger
	metrics   types.MetricsCollector
	params    *stencil.Params
}

// WithTransport sets the message transport the owners exchange blocks and
// halos through. Defaults to the in-process channel mesh.
//
// Example:
//
//	mesh, _ := transport.NewNATSMesh(nc, cfg.SubjectPrefix, cfg.Workers)
//	sim, err := heatgrid.New(cfg, heatgrid.WithTransport(mesh))
func WithTransport(t types.Transport) Option {
	return func(o *simulationOptions) {
		o.transport = t
	}
}

// WithLogger sets a logger (compatible with zap.SugaredLogger). Defaults to
// a no-op logger.
func WithLogger(logger types.Logger) Option {
	return func(o *simulationOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector. Defaults to a no-op collector.
//
// Example:
//
//	collector := metrics.NewPrometheus(nil, "heatgrid")
//	sim, err := heatgrid.New(cfg, heatgrid.WithMetrics(collector))
func WithMetrics(metrics types.MetricsCollector) Option {
	return func(o *simulationOptions) {
		o.metrics = metrics
	}
}

// WithStencilParams overrides the diffusion coefficients from Config.
// Intended for tests; production runs configure them through Config.
func WithStencilParams(params stencil.Params) Option {
	return func(o *simulationOptions) {
		o.params = &params
	}
}
