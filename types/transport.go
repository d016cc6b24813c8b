package types

import "context"

// Tag distinguishes the message classes exchanged between owners.
//
// The scatter/gather tags are used exactly once per run for the bulk block
// redistribution; the halo tags are used every iteration, one per receive
// direction.
type Tag uint8

const (
	// TagScatter carries one owner's initial block interior, coordinator to owner.
	TagScatter Tag = iota

	// TagGather carries one owner's final block interior, owner to coordinator.
	TagGather

	// tagHaloBase is the first of four per-direction halo tags.
	tagHaloBase
)

// HaloTag returns the tag for a halo transfer that the receiver stores on
// its d edge. The sender of an edge toward direction d therefore publishes
// with HaloTag(d.Opposite()).
func HaloTag(d Direction) Tag {
	return tagHaloBase + Tag(d)
}

// Handle tracks one posted non-blocking transfer.
//
// A Handle is single-use: Await blocks until the transfer completes (for a
// receive, until the payload has been copied into the posted buffer) and
// must be called exactly once.
type Handle interface {
	// Await blocks until the transfer completes or ctx is done.
	//
	// Returns:
	//   - error: ctx.Err() on cancellation, transport failure otherwise
	Await(ctx context.Context) error
}

// Endpoint is one owner's connection to the transport mesh.
//
// Endpoints follow the single-designated-thread discipline of the owner
// loop: all posting and awaiting for a rank happens on one goroutine, so
// implementations are not required to be safe for concurrent use.
type Endpoint interface {
	// Rank returns the owner rank this endpoint belongs to.
	Rank() Rank

	// PostSend posts a non-blocking send of payload to the given peer.
	// The payload is captured before PostSend returns; the caller may reuse
	// the backing slice immediately. Awaiting the handle guarantees the
	// transfer has been handed to the mesh.
	PostSend(to Rank, tag Tag, payload []float64) (Handle, error)

	// PostRecv posts a non-blocking receive from the given peer. The
	// matching payload is copied into buf when the handle is awaited; buf
	// must be sized exactly to the expected transfer length.
	PostRecv(from Rank, tag Tag, buf []float64) (Handle, error)

	// Close releases the endpoint's mesh resources.
	Close() error
}

// Transport produces one endpoint per owner rank.
//
// All endpoints of a run must be created before any owner starts posting:
// the setup is collective, matching the collective scatter that follows.
type Transport interface {
	// Endpoint returns the endpoint for the given rank. Called exactly once
	// per rank per run.
	Endpoint(rank Rank) (Endpoint, error)
}
