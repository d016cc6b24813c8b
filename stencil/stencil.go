package stencil

import (
	"github.com/arloliu/heatgrid/field"
	"github.com/arloliu/heatgrid/types"
)

// Params holds the diffusion coefficients of the explicit forward-difference
// scheme. They are fixed for a whole run.
//
// The usual stability bound for an explicit 5-point scheme is CX+CY <= 0.5.
// It is not enforced here; Config.ValidateWithWarnings flags violations.
type Params struct {
	// CX is the diffusion coefficient along the X (row) axis.
	CX float64 `yaml:"cx"`

	// CY is the diffusion coefficient along the Y (column) axis.
	CY float64 `yaml:"cy"`
}

// DefaultParams returns the reference coefficients cx=cy=0.1.
func DefaultParams() Params {
	return Params{CX: 0.1, CY: 0.1}
}

// point computes one cell of the new generation:
//
//	new(x,y) = T(x,y) + cx·(T(x+1,y)+T(x−1,y)−2·T(x,y)) + cy·(T(x,y+1)+T(x,y−1)−2·T(x,y))
//
// Neighbor reads that land on the halo ring come from dst, whose ring holds
// this iteration's freshly received edges (or the permanent zero of a
// physical boundary); everything else reads the old generation src. The
// expression shape is identical for every cell so results do not depend on
// which pass or thread computed it.
func point(p Params, src, dst *field.Block, x, y int) {
	c := src.At(x, y)
	dst.Set(x, y, c+
		p.CX*(ringRead(src, dst, x+1, y)+ringRead(src, dst, x-1, y)-2*c)+
		p.CY*(ringRead(src, dst, x, y+1)+ringRead(src, dst, x, y-1)-2*c))
}

// ringRead reads (x, y) from the halo ring of dst or the interior of src.
func ringRead(src, dst *field.Block, x, y int) float64 {
	if x == 0 || x == src.Rows+1 || y == 0 || y == src.Cols+1 {
		return dst.At(x, y)
	}

	return src.At(x, y)
}

// UpdateInterior computes the interior sub-region of the new generation:
// local rows 2..rows−1 by columns 2..cols−1. These cells sit at least two
// cells away from every block edge, so their stencil never touches the halo
// ring and the pass can overlap with in-flight halo transfers.
//
// The rows are fanned out across threads in static contiguous chunks; the
// call returns after every worker finished (implicit barrier).
func UpdateInterior(p Params, src, dst *field.Block, threads int) {
	rows, cols := src.Rows, src.Cols
	parallelFor(threads, 2, rows, func(lo, hi int) {
		for x := lo; x < hi; x++ {
			for y := 2; y <= cols-1; y++ {
				c := src.At(x, y)
				dst.Set(x, y, c+
					p.CX*(src.At(x+1, y)+src.At(x-1, y)-2*c)+
					p.CY*(src.At(x, y+1)+src.At(x, y-1)-2*c))
			}
		}
	})
}

// UpdateExterior computes the one-cell border strip excluded by
// UpdateInterior, after the needed halo values have arrived.
//
// Ownership is disjoint so every cell is written exactly once per step:
//   - the top and bottom row passes own their full span, corners included
//   - the column passes cover only rows 2..rows−1
//   - an edge whose neighbor is None lies on the physical boundary and is
//     never written at all (those cells stay 0 for the whole run)
//
// For blocks a single cell thick, the opposing row (or column) passes would
// target the same cells; the second pass is skipped to keep the write-once
// property.
func UpdateExterior(p Params, src, dst *field.Block, nb types.Neighbors, threads int) {
	rows, cols := src.Rows, src.Cols

	colLo, colHi := 1, cols
	if !nb.Left.Valid() {
		colLo = 2
	}
	if !nb.Right.Valid() {
		colHi = cols - 1
	}

	if nb.Up.Valid() {
		parallelFor(threads, colLo, colHi+1, func(lo, hi int) {
			for y := lo; y < hi; y++ {
				point(p, src, dst, 1, y)
			}
		})
	}
	if nb.Down.Valid() && !(rows == 1 && nb.Up.Valid()) {
		parallelFor(threads, colLo, colHi+1, func(lo, hi int) {
			for y := lo; y < hi; y++ {
				point(p, src, dst, rows, y)
			}
		})
	}
	if nb.Left.Valid() {
		parallelFor(threads, 2, rows, func(lo, hi int) {
			for x := lo; x < hi; x++ {
				point(p, src, dst, x, 1)
			}
		})
	}
	if nb.Right.Valid() && !(cols == 1 && nb.Left.Valid()) {
		parallelFor(threads, 2, rows, func(lo, hi int) {
			for x := lo; x < hi; x++ {
				point(p, src, dst, x, cols)
			}
		})
	}
}
