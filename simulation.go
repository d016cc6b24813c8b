package heatgrid

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/heatgrid/field"
	"github.com/arloliu/heatgrid/internal/checksum"
	"github.com/arloliu/heatgrid/internal/logger"
	"github.com/arloliu/heatgrid/internal/metrics"
	"github.com/arloliu/heatgrid/partition"
	"github.com/arloliu/heatgrid/stencil"
	"github.com/arloliu/heatgrid/transport"
	"github.com/arloliu/heatgrid/types"
)

// Simulation runs one distributed heat-diffusion computation: it decomposes
// the grid, spawns one owner per block, scatters the initial field, drives
// the fixed number of halo-exchanged stencil steps and gathers the result.
//
// A Simulation is single-shot. Construct with New, call Run once.
//
// Concurrency model, per the design:
//   - owners are independent SPMD units sharing no field memory and
//     coordinating only through point-to-point transfers
//   - inside an owner, a fixed pool of worker goroutines fans out each
//     compute pass over a static disjoint partition (no locks)
//   - all transport posting and awaiting for a rank happens on that
//     owner's own goroutine
type Simulation struct {
	cfg       Config
	layout    types.Layout
	params    stencil.Params
	transport types.Transport
	logger    types.Logger
	metrics   types.MetricsCollector

	ran atomic.Bool
}

// New creates a Simulation from the configuration.
//
// The grid decomposition is planned here, so every configuration error —
// prime worker count, indivisible grid, bad thread count — surfaces before
// any block is allocated or any transfer posted. Failures are collective by
// construction: a Simulation that failed New never starts any owner.
//
// Parameters:
//   - cfg: Run configuration (defaults applied in place of zero values)
//   - opts: Optional transport, logger, metrics, stencil parameters
//
// Returns:
//   - *Simulation: Ready-to-run simulation
//   - error: Configuration or partitioning error
//
// Example:
//
//	cfg := heatgrid.DefaultConfig()
//	cfg.Workers = 4
//	sim, err := heatgrid.New(cfg, heatgrid.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	final, err := sim.Run(ctx, field.Initial(cfg.NX, cfg.NY))
func New(cfg Config, opts ...Option) (*Simulation, error) {
	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout, err := partition.Plan(cfg.Workers, cfg.NX, cfg.NY)
	if err != nil {
		return nil, fmt.Errorf("plan decomposition: %w", err)
	}

	options := &simulationOptions{}
	for _, opt := range opts {
		opt(options)
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	meshInstance := options.transport
	if meshInstance == nil {
		meshInstance = transport.NewChannelMesh(cfg.Workers)
	}

	params := cfg.Params
	if options.params != nil {
		params = *options.params
	}

	cfg.ValidateWithWarnings(loggerInstance)

	loggerInstance.Info("planned decomposition",
		"nx", cfg.NX, "ny", cfg.NY, "steps", cfg.Steps,
		"workers", layout.Workers, "threads", cfg.Threads,
		"layout", layout.String(),
	)

	return &Simulation{
		cfg:       cfg,
		layout:    layout,
		params:    params,
		transport: meshInstance,
		logger:    loggerInstance,
		metrics:   metricsCollector,
	}, nil
}

// Layout returns the planned block decomposition.
func (s *Simulation) Layout() types.Layout {
	return s.layout
}

// Run executes the simulation on the given initial field and returns the
// gathered final field.
//
// All owner endpoints are created before any owner starts: transport setup
// is collective, matching the collective scatter that follows. Any owner
// error cancels the shared context, aborting every other owner rather than
// leaving some stalled mid-protocol.
//
// Parameters:
//   - ctx: Cancels the whole run
//   - initial: NX×NY initial temperature field (not modified)
//
// Returns:
//   - *field.Global: Gathered final field
//   - error: First owner or transport error
func (s *Simulation) Run(ctx context.Context, initial *field.Global) (*field.Global, error) {
	if initial == nil {
		return nil, ErrInitialFieldRequired
	}
	if initial.NX != s.cfg.NX || initial.NY != s.cfg.NY {
		return nil, fmt.Errorf("%w: field %dx%d, config %dx%d",
			ErrFieldSizeMismatch, initial.NX, initial.NY, s.cfg.NX, s.cfg.NY)
	}
	if !s.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRun
	}

	owners, result, err := s.buildOwners(initial)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, o := range owners {
		wg.Add(1)
		go func(o *owner) {
			defer wg.Done()
			if err := o.run(runCtx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				cancel()
			}
		}(o)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	elapsed := time.Since(start)
	s.metrics.RecordRunDuration(elapsed.Seconds())
	s.logger.Info("run complete",
		"steps", s.cfg.Steps,
		"elapsed", elapsed,
		"checksum", fmt.Sprintf("%016x", checksum.Field(result)),
	)

	return result, nil
}

// buildOwners allocates the per-rank state: endpoint, neighbor set and
// double-buffered block. A local block allocation or endpoint failure here
// aborts the run before anything was scattered.
func (s *Simulation) buildOwners(initial *field.Global) ([]*owner, *field.Global, error) {
	result := field.NewGlobal(s.cfg.NX, s.cfg.NY)

	owners := make([]*owner, s.layout.Workers)
	for r := range owners {
		rank := types.Rank(r)

		ep, err := s.transport.Endpoint(rank)
		if err != nil {
			for _, o := range owners[:r] {
				o.ep.Close()
			}

			return nil, nil, fmt.Errorf("endpoint for rank %d: %w", rank, err)
		}

		owners[r] = &owner{
			rank:    rank,
			layout:  s.layout,
			nb:      s.layout.Neighbors(rank),
			ep:      ep,
			local:   field.NewLocal(s.layout.Rows, s.layout.Columns),
			params:  s.params,
			threads: s.cfg.Threads,
			steps:   s.cfg.Steps,
			logger:  s.logger,
			metrics: s.metrics,
		}
	}

	owners[coordinator].initial = initial
	owners[coordinator].result = result

	return owners, result, nil
}
