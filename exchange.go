package heatgrid

import (
	"context"
	"fmt"

	"github.com/arloliu/heatgrid/field"
	"github.com/arloliu/heatgrid/types"
)

// haloExchange runs the per-iteration border exchange for one owner.
//
// Each iteration it posts one non-blocking receive and one non-blocking
// send per direction with a real neighbor, then waits for the receives
// before the exterior pass and for the sends before the generation swap.
// Directions with no neighbor are skipped entirely: their halo cells are
// the physical boundary and stay zero.
//
// Staging buffers are allocated once and reused every iteration. Row
// transfers (up/down) are contiguous runs of Columns cells; column
// transfers (left/right) are strided in block memory and are staged so each
// one travels as a single logical transfer.
//
// The four corner cells of the halo ring are never transferred: the 5-point
// stencil reads only axis neighbors, so no computation ever touches them.
type haloExchange struct {
	ep      types.Endpoint
	nb      types.Neighbors
	rows    int
	cols    int
	metrics types.MetricsCollector

	sendBuf [4][]float64
	recvBuf [4][]float64
}

// pendingTransfers holds the handles of one iteration's posted transfers,
// indexed by direction. Entries for None directions stay nil.
type pendingTransfers struct {
	recvs [4]types.Handle
	sends [4]types.Handle
}

func newHaloExchange(ep types.Endpoint, nb types.Neighbors, rows, cols int, metrics types.MetricsCollector) *haloExchange {
	hx := &haloExchange{ep: ep, nb: nb, rows: rows, cols: cols, metrics: metrics}

	for _, d := range types.Directions {
		if !nb.At(d).Valid() {
			continue
		}
		n := cols
		if d == types.Left || d == types.Right {
			n = rows
		}
		hx.sendBuf[d] = make([]float64, n)
		hx.recvBuf[d] = make([]float64, n)
	}

	return hx
}

// post issues this iteration's transfers: receives of the neighbors' edges
// and sends of src's own edge cells. src is the generation read this step;
// the received values are applied to the written generation's halo ring by
// awaitRecvs.
func (hx *haloExchange) post(src *field.Block) (pendingTransfers, error) {
	var pend pendingTransfers

	for _, d := range types.Directions {
		peer := hx.nb.At(d)
		if !peer.Valid() {
			continue
		}

		recv, err := hx.ep.PostRecv(peer, types.HaloTag(d), hx.recvBuf[d])
		if err != nil {
			return pend, fmt.Errorf("post %s receive: %w", d, err)
		}
		pend.recvs[d] = recv

		hx.stageEdge(src, d)

		// The peer files this edge under its opposite direction: our top
		// edge becomes the up-neighbor's down halo.
		send, err := hx.ep.PostSend(peer, types.HaloTag(d.Opposite()), hx.sendBuf[d])
		if err != nil {
			return pend, fmt.Errorf("post %s send: %w", d, err)
		}
		pend.sends[d] = send
	}

	return pend, nil
}

// stageEdge copies src's edge cells facing direction d into the send
// staging buffer.
func (hx *haloExchange) stageEdge(src *field.Block, d types.Direction) {
	switch d {
	case types.Up:
		src.CopyEdgeRow(1, hx.sendBuf[d])
	case types.Down:
		src.CopyEdgeRow(hx.rows, hx.sendBuf[d])
	case types.Left:
		src.CopyEdgeColumn(1, hx.sendBuf[d])
	case types.Right:
		src.CopyEdgeColumn(hx.cols, hx.sendBuf[d])
	}
}

// awaitRecvs blocks until every posted receive completed, then applies the
// received edges to dst's halo ring. dst is the generation written this
// step; nothing else ever writes its ring.
func (hx *haloExchange) awaitRecvs(ctx context.Context, pend *pendingTransfers, dst *field.Block) error {
	for _, d := range types.Directions {
		h := pend.recvs[d]
		if h == nil {
			continue
		}
		if err := h.Await(ctx); err != nil {
			return fmt.Errorf("await %s receive: %w", d, err)
		}

		switch d {
		case types.Up:
			dst.SetHaloRow(0, hx.recvBuf[d])
		case types.Down:
			dst.SetHaloRow(hx.rows+1, hx.recvBuf[d])
		case types.Left:
			dst.SetHaloColumn(0, hx.recvBuf[d])
		case types.Right:
			dst.SetHaloColumn(hx.cols+1, hx.recvBuf[d])
		}

		hx.metrics.IncrementHaloTransfers(d.String(), len(hx.recvBuf[d]))
	}

	return nil
}

// awaitSends blocks until every posted send completed. The staging buffers
// are refilled only on the next post, so completing here guarantees the
// next iteration cannot overwrite an in-flight payload.
func (hx *haloExchange) awaitSends(ctx context.Context, pend *pendingTransfers) error {
	for _, d := range types.Directions {
		h := pend.sends[d]
		if h == nil {
			continue
		}
		if err := h.Await(ctx); err != nil {
			return fmt.Errorf("await %s send: %w", d, err)
		}
	}

	return nil
}
