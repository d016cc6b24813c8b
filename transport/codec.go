package transport

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Halo and block payloads travel as little-endian float64 cells with no
// framing beyond the subject: the receiver knows the exact cell count of
// every transfer from the layout, so a length prefix would be redundant.

// encodeFloats packs cells into a little-endian byte payload.
func encodeFloats(cells []float64) []byte {
	out := make([]byte, 8*len(cells))
	for i, v := range cells {
		binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
	}

	return out
}

// decodeFloats unpacks a little-endian byte payload into dst, whose length
// must match the transfer exactly.
func decodeFloats(data []byte, dst []float64) error {
	if len(data) != 8*len(dst) {
		return fmt.Errorf("%w: got %d bytes, posted buffer holds %d cells", ErrSizeMismatch, len(data), len(dst))
	}

	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}

	return nil
}
