package transport

import "errors"

// Transport errors. The transport layer is assumed reliable (no retry, no
// corruption handling); these all indicate unrecoverable misuse or failure.
var (
	// ErrUnknownRank is returned when a transfer names a rank outside the
	// mesh.
	ErrUnknownRank = errors.New("unknown rank")

	// ErrSizeMismatch is returned when a received payload does not match
	// the posted buffer size.
	ErrSizeMismatch = errors.New("transfer size mismatch")

	// ErrClosed is returned when posting on a closed endpoint.
	ErrClosed = errors.New("endpoint closed")

	// ErrConnRequired is returned when the NATS connection is nil.
	ErrConnRequired = errors.New("NATS connection is required")
)
