package transport

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/arloliu/heatgrid/types"
)

// DefaultSubjectPrefix is the subject namespace used when none is given.
// Running several simulations on one NATS deployment requires distinct
// prefixes, or their transfers would cross-deliver.
const DefaultSubjectPrefix = "heatgrid"

// NATSMesh is the distributed Transport: every transfer is one core NATS
// message on the subject <prefix>.<to>.<from>.<tag>.
//
// Each endpoint holds a single wildcard synchronous subscription covering
// everything addressed to its rank and demultiplexes by subject. Creating
// the endpoint subscribes and flushes, so all endpoints of a run must exist
// before any owner posts its first send — the same collective-setup rule
// the channel mesh gets for free.
//
// Core NATS is at-most-once; the transport layer is assumed reliable per
// the error-handling design, so a lost message surfaces as a stuck await
// cancelled by the run context, not as a retry.
type NATSMesh struct {
	nc      *nats.Conn
	prefix  string
	workers int
}

var _ types.Transport = (*NATSMesh)(nil)

// NewNATSMesh creates a NATS-backed mesh.
//
// Parameters:
//   - nc: Established NATS connection shared by the local endpoints
//   - prefix: Subject namespace (DefaultSubjectPrefix if empty)
//   - workers: Number of owner ranks
//
// Returns:
//   - *NATSMesh: Mesh ready to hand out endpoints
//   - error: ErrConnRequired when nc is nil
func NewNATSMesh(nc *nats.Conn, prefix string, workers int) (*NATSMesh, error) {
	if nc == nil {
		return nil, ErrConnRequired
	}
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	return &NATSMesh{nc: nc, prefix: prefix, workers: workers}, nil
}

// Endpoint subscribes the rank's wildcard inbox and returns its endpoint.
func (m *NATSMesh) Endpoint(rank types.Rank) (types.Endpoint, error) {
	if int(rank) < 0 || int(rank) >= m.workers {
		return nil, fmt.Errorf("%w: rank %d of %d workers", ErrUnknownRank, rank, m.workers)
	}

	sub, err := m.nc.SubscribeSync(fmt.Sprintf("%s.%d.>", m.prefix, rank))
	if err != nil {
		return nil, fmt.Errorf("subscribe rank %d inbox: %w", rank, err)
	}

	// A full run's halo traffic can burst past the client default of 512k
	// pending messages only in pathological configurations, but the bulk
	// scatter payloads can exceed the default byte limit easily.
	if err := sub.SetPendingLimits(-1, -1); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("set pending limits: %w", err)
	}

	// Make the subscription visible on the server before any peer sends.
	if err := m.nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("flush rank %d subscription: %w", rank, err)
	}

	return &natsEndpoint{
		mesh:    m,
		rank:    rank,
		sub:     sub,
		stashed: make(map[string][][]byte),
	}, nil
}

// natsEndpoint serves one rank. Per the Endpoint contract all posting and
// awaiting happens on the owner's designated goroutine, so the stash map
// needs no locking.
type natsEndpoint struct {
	mesh *NATSMesh
	rank types.Rank
	sub  *nats.Subscription

	// stashed holds messages read off the wire while awaiting a different
	// subject. FIFO per subject.
	stashed map[string][][]byte

	closed bool
}

var _ types.Endpoint = (*natsEndpoint)(nil)

func (e *natsEndpoint) Rank() types.Rank {
	return e.rank
}

func (e *natsEndpoint) subject(to, from types.Rank, tag types.Tag) string {
	return fmt.Sprintf("%s.%d.%d.%d", e.mesh.prefix, to, from, tag)
}

// PostSend publishes the payload to the peer's inbox. Publish buffers
// asynchronously, so posting never blocks on the network; awaiting the
// handle flushes the connection, guaranteeing the server has the message.
func (e *natsEndpoint) PostSend(to types.Rank, tag types.Tag, payload []float64) (types.Handle, error) {
	if e.closed {
		return nil, ErrClosed
	}
	if int(to) < 0 || int(to) >= e.mesh.workers {
		return nil, fmt.Errorf("%w: send to rank %d", ErrUnknownRank, to)
	}

	if err := e.mesh.nc.Publish(e.subject(to, e.rank, tag), encodeFloats(payload)); err != nil {
		return nil, fmt.Errorf("publish to rank %d: %w", to, err)
	}

	return &natsSendHandle{nc: e.mesh.nc}, nil
}

// PostRecv registers interest in the next message from (from, tag).
func (e *natsEndpoint) PostRecv(from types.Rank, tag types.Tag, buf []float64) (types.Handle, error) {
	if e.closed {
		return nil, ErrClosed
	}
	if int(from) < 0 || int(from) >= e.mesh.workers {
		return nil, fmt.Errorf("%w: recv from rank %d", ErrUnknownRank, from)
	}

	return &natsRecvHandle{ep: e, subject: e.subject(e.rank, from, tag), buf: buf}, nil
}

func (e *natsEndpoint) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	return e.sub.Unsubscribe()
}

// next returns the oldest message for subject, draining the wire into the
// stash until it shows up. Transfers posted in one order and awaited in
// another (receives from four directions complete in arrival order) are
// reordered here.
func (e *natsEndpoint) next(ctx context.Context, subject string) ([]byte, error) {
	if q := e.stashed[subject]; len(q) > 0 {
		e.stashed[subject] = q[1:]
		return q[0], nil
	}

	for {
		msg, err := e.sub.NextMsgWithContext(ctx)
		if err != nil {
			return nil, err
		}
		if msg.Subject == subject {
			return msg.Data, nil
		}
		e.stashed[msg.Subject] = append(e.stashed[msg.Subject], msg.Data)
	}
}

type natsSendHandle struct {
	nc *nats.Conn
}

func (h *natsSendHandle) Await(ctx context.Context) error {
	if err := h.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush send: %w", err)
	}

	return nil
}

type natsRecvHandle struct {
	ep      *natsEndpoint
	subject string
	buf     []float64
}

func (h *natsRecvHandle) Await(ctx context.Context) error {
	data, err := h.ep.next(ctx, h.subject)
	if err != nil {
		return fmt.Errorf("await %s: %w", h.subject, err)
	}

	return decodeFloats(data, h.buf)
}
