// Package checksum fingerprints temperature fields for determinism checks
// and log output.
package checksum

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/heatgrid/field"
)

// Field returns the xxh3 hash of the field's cells in row-major order.
//
// Two fields hash equal exactly when they are bit-identical, which is the
// property the determinism guarantee is stated in (varying the per-owner
// thread count must not change a single bit of the result).
func Field(g *field.Global) uint64 {
	h := xxh3.New()

	var word [8]byte
	for _, v := range g.Cells() {
		binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
		_, _ = h.Write(word[:])
	}

	return h.Sum64()
}
