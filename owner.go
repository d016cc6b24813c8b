package heatgrid

import (
	"context"
	"fmt"
	"time"

	"github.com/arloliu/heatgrid/field"
	"github.com/arloliu/heatgrid/stencil"
	"github.com/arloliu/heatgrid/types"
)

// coordinator is the rank that scatters the initial field and gathers the
// final one. It is a regular block owner on top of those duties.
const coordinator types.Rank = 0

// owner is one block owner: the SPMD unit executing the full run for its
// rank. All transport posting and awaiting happens on the owner's own
// goroutine; only the stencil passes fan out further.
type owner struct {
	rank    types.Rank
	layout  types.Layout
	nb      types.Neighbors
	ep      types.Endpoint
	local   *field.Local
	params  stencil.Params
	threads int
	steps   int
	logger  types.Logger
	metrics types.MetricsCollector

	// Coordinator only: source of the scatter and target of the gather.
	initial *field.Global
	result  *field.Global
}

// run executes scatter, the iteration loop and gather for this rank.
func (o *owner) run(ctx context.Context) error {
	defer o.ep.Close()

	o.logger.Debug("owner starting",
		"rank", int(o.rank),
		"up", int(o.nb.Up), "down", int(o.nb.Down),
		"left", int(o.nb.Left), "right", int(o.nb.Right),
	)

	if err := o.scatter(ctx); err != nil {
		return fmt.Errorf("rank %d scatter: %w", o.rank, err)
	}

	start := time.Now()
	if err := o.iterate(ctx); err != nil {
		return fmt.Errorf("rank %d: %w", o.rank, err)
	}
	elapsed := time.Since(start)

	if err := o.gather(ctx); err != nil {
		return fmt.Errorf("rank %d gather: %w", o.rank, err)
	}

	o.logger.Debug("owner finished", "rank", int(o.rank), "elapsed", elapsed)

	return nil
}

// iterate runs the fixed number of time steps. Each step follows the
// POST → OVERLAP_COMPUTE → AWAIT_RECV → EXTERIOR_COMPUTE → AWAIT_SEND → SWAP
// sequence; the interior pass has no halo dependency and runs while the
// transfers are in flight, purely to hide their latency.
func (o *owner) iterate(ctx context.Context) error {
	hx := newHaloExchange(o.ep, o.nb, o.layout.Rows, o.layout.Columns, o.metrics)

	for step := 0; step < o.steps; step++ {
		stepStart := time.Now()
		src, dst := o.local.Current(), o.local.Next()

		pend, err := hx.post(src)
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}

		passStart := time.Now()
		stencil.UpdateInterior(o.params, src, dst, o.threads)
		o.metrics.RecordPassDuration("interior", time.Since(passStart).Seconds())

		if err := hx.awaitRecvs(ctx, &pend, dst); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}

		passStart = time.Now()
		stencil.UpdateExterior(o.params, src, dst, o.nb, o.threads)
		o.metrics.RecordPassDuration("exterior", time.Since(passStart).Seconds())

		if err := hx.awaitSends(ctx, &pend); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}

		o.local.Swap()
		o.metrics.RecordStepDuration(time.Since(stepStart).Seconds())
	}

	return nil
}

// scatter distributes the initial field: the coordinator extracts and sends
// every other owner's block and copies its own in place; everyone else
// receives its block into generation 0's interior. Halo rings are left at
// zero.
func (o *owner) scatter(ctx context.Context) error {
	start := time.Now()

	if o.rank == coordinator {
		handles := make([]types.Handle, 0, o.layout.Workers-1)
		for peer := types.Rank(1); int(peer) < o.layout.Workers; peer++ {
			h, err := o.ep.PostSend(peer, types.TagScatter, o.initial.ExtractBlock(o.layout, peer))
			if err != nil {
				return fmt.Errorf("send block to rank %d: %w", peer, err)
			}
			handles = append(handles, h)
		}
		for _, h := range handles {
			if err := h.Await(ctx); err != nil {
				return err
			}
		}

		if err := o.local.Current().FillInterior(o.initial.ExtractBlock(o.layout, coordinator)); err != nil {
			return err
		}

		o.metrics.RecordScatterDuration(time.Since(start).Seconds())

		return nil
	}

	buf := make([]float64, o.layout.Rows*o.layout.Columns)
	h, err := o.ep.PostRecv(coordinator, types.TagScatter, buf)
	if err != nil {
		return err
	}
	if err := h.Await(ctx); err != nil {
		return err
	}

	return o.local.Current().FillInterior(buf)
}

// gather is the exact inverse of scatter, run once after the last
// iteration. The current generation holds the final result (parity
// Steps%2 after the swaps).
func (o *owner) gather(ctx context.Context) error {
	start := time.Now()

	if o.rank == coordinator {
		buf := make([]float64, o.layout.Rows*o.layout.Columns)
		for peer := types.Rank(1); int(peer) < o.layout.Workers; peer++ {
			h, err := o.ep.PostRecv(peer, types.TagGather, buf)
			if err != nil {
				return fmt.Errorf("receive block from rank %d: %w", peer, err)
			}
			if err := h.Await(ctx); err != nil {
				return err
			}
			if err := o.result.PlaceBlock(o.layout, peer, buf); err != nil {
				return err
			}
		}

		if err := o.result.PlaceBlock(o.layout, coordinator, o.local.Current().InteriorPayload()); err != nil {
			return err
		}

		o.metrics.RecordGatherDuration(time.Since(start).Seconds())

		return nil
	}

	h, err := o.ep.PostSend(coordinator, types.TagGather, o.local.Current().InteriorPayload())
	if err != nil {
		return err
	}

	return h.Await(ctx)
}
