// Package transport provides the point-to-point message meshes the owners
// exchange blocks and halos through: an in-process channel mesh for
// single-process runs and a NATS-backed mesh for distributed ones.
//
// Both implement types.Transport with the same semantics: FIFO delivery per
// (receiver, sender, tag) triple, payloads copied on send, non-blocking
// posts with explicit awaits.
package transport
