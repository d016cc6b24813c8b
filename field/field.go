package field

import (
	"fmt"

	"github.com/arloliu/heatgrid/types"
)

// Global is the full NX×NY temperature field.
//
// It exists only on the coordinator: once before the scatter and once after
// the gather. Cells are stored row-major with the X coordinate as the row
// index, matching the block decomposition.
type Global struct {
	NX, NY int
	data   []float64
}

// NewGlobal allocates a zero-valued nx×ny field.
func NewGlobal(nx, ny int) *Global {
	return &Global{NX: nx, NY: ny, data: make([]float64, nx*ny)}
}

// Initial builds the canonical initial condition
//
//	u(x,y) = x·(NX−x−1)·y·(NY−y−1)
//
// which is hottest in the middle of the domain and exactly zero on all four
// edges.
func Initial(nx, ny int) *Global {
	g := NewGlobal(nx, ny)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			g.data[x*ny+y] = float64(x * (nx - x - 1) * y * (ny - y - 1))
		}
	}

	return g
}

// At returns the cell value at (x, y).
func (g *Global) At(x, y int) float64 {
	return g.data[x*g.NY+y]
}

// Set stores v at (x, y).
func (g *Global) Set(x, y int, v float64) {
	g.data[x*g.NY+y] = v
}

// Cells exposes the raw row-major cell storage. Used by the checksum helper
// and the snapshot writer; callers must not resize it.
func (g *Global) Cells() []float64 {
	return g.data
}

// Equal reports whether two fields have identical dimensions and bit-equal
// cells.
func (g *Global) Equal(o *Global) bool {
	if g.NX != o.NX || g.NY != o.NY {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}

	return true
}

// ExtractBlock copies the rectangular region owned by rank r into a fresh
// contiguous Rows×Columns payload, in block-row-major order. This is the
// scatter-side half of the bulk redistribution.
func (g *Global) ExtractBlock(l types.Layout, r types.Rank) []float64 {
	x0, y0 := l.BlockOrigin(r)
	payload := make([]float64, l.Rows*l.Columns)
	for i := 0; i < l.Rows; i++ {
		src := (x0+i)*g.NY + y0
		copy(payload[i*l.Columns:(i+1)*l.Columns], g.data[src:src+l.Columns])
	}

	return payload
}

// PlaceBlock copies a contiguous Rows×Columns payload back into the region
// owned by rank r. This is the gather-side inverse of ExtractBlock.
func (g *Global) PlaceBlock(l types.Layout, r types.Rank, payload []float64) error {
	if len(payload) != l.Rows*l.Columns {
		return fmt.Errorf("block payload for rank %d has %d cells, want %d", r, len(payload), l.Rows*l.Columns)
	}

	x0, y0 := l.BlockOrigin(r)
	for i := 0; i < l.Rows; i++ {
		dst := (x0+i)*g.NY + y0
		copy(g.data[dst:dst+l.Columns], payload[i*l.Columns:(i+1)*l.Columns])
	}

	return nil
}
