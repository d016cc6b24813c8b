package transport

import (
	"context"
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/heatgrid/types"
)

// mailboxDepth bounds the in-flight messages per (receiver, sender, tag)
// triple. The iteration protocol keeps at most one halo transfer in flight
// per triple, plus one scatter/gather message; the depth leaves headroom for
// an owner running an iteration ahead of a neighbor.
const mailboxDepth = 4

// ChannelMesh is the in-process Transport: owners are goroutines in one
// address space and transfers are copies through buffered Go channels.
//
// It is the default transport of Simulation and the reference for the NATS
// mesh's semantics: per-(receiver, sender, tag) FIFO delivery of copied
// payloads.
type ChannelMesh struct {
	workers int
	boxes   *xsync.Map[uint64, chan []float64]
}

var _ types.Transport = (*ChannelMesh)(nil)

// NewChannelMesh creates an in-process mesh for the given owner count.
//
// Parameters:
//   - workers: Number of owner ranks (endpoints 0..workers-1)
//
// Returns:
//   - *ChannelMesh: Mesh ready to hand out endpoints
func NewChannelMesh(workers int) *ChannelMesh {
	return &ChannelMesh{
		workers: workers,
		boxes:   xsync.NewMap[uint64, chan []float64](),
	}
}

// Endpoint returns the endpoint for the given rank.
func (m *ChannelMesh) Endpoint(rank types.Rank) (types.Endpoint, error) {
	if int(rank) < 0 || int(rank) >= m.workers {
		return nil, fmt.Errorf("%w: rank %d of %d workers", ErrUnknownRank, rank, m.workers)
	}

	return &channelEndpoint{mesh: m, rank: rank}, nil
}

// mailbox returns the delivery channel for (to, from, tag), creating it on
// first use. Senders and receivers race to materialize the same mailbox,
// hence the concurrent map.
func (m *ChannelMesh) mailbox(to, from types.Rank, tag types.Tag) chan []float64 {
	key := uint64(to)<<24 | uint64(from)<<8 | uint64(tag)
	box, _ := m.boxes.LoadOrStore(key, make(chan []float64, mailboxDepth))

	return box
}

type channelEndpoint struct {
	mesh *ChannelMesh
	rank types.Rank
}

var _ types.Endpoint = (*channelEndpoint)(nil)

func (e *channelEndpoint) Rank() types.Rank {
	return e.rank
}

// PostSend copies the payload and hands it to the receiver's mailbox. The
// copy happens before PostSend returns, so the caller's buffer is free for
// reuse immediately; Await reports when the mailbox accepted the message.
func (e *channelEndpoint) PostSend(to types.Rank, tag types.Tag, payload []float64) (types.Handle, error) {
	if int(to) < 0 || int(to) >= e.mesh.workers {
		return nil, fmt.Errorf("%w: send to rank %d", ErrUnknownRank, to)
	}

	msg := make([]float64, len(payload))
	copy(msg, payload)

	box := e.mesh.mailbox(to, e.rank, tag)
	done := make(chan struct{})
	go func() {
		box <- msg
		close(done)
	}()

	return &channelHandle{done: done}, nil
}

// PostRecv registers interest in the next message from (from, tag). The
// payload is copied into buf when the handle is awaited.
func (e *channelEndpoint) PostRecv(from types.Rank, tag types.Tag, buf []float64) (types.Handle, error) {
	if int(from) < 0 || int(from) >= e.mesh.workers {
		return nil, fmt.Errorf("%w: recv from rank %d", ErrUnknownRank, from)
	}

	return &channelHandle{box: e.mesh.mailbox(e.rank, from, tag), buf: buf}, nil
}

func (e *channelEndpoint) Close() error {
	return nil
}

// channelHandle is a pending channel transfer: a send completion signal or
// a receive waiting on its mailbox.
type channelHandle struct {
	done chan struct{}  // sends
	box  chan []float64 // receives
	buf  []float64
}

func (h *channelHandle) Await(ctx context.Context) error {
	if h.done != nil {
		select {
		case <-h.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case msg := <-h.box:
		if len(msg) != len(h.buf) {
			return fmt.Errorf("%w: got %d cells, posted buffer holds %d", ErrSizeMismatch, len(msg), len(h.buf))
		}
		copy(h.buf, msg)

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
