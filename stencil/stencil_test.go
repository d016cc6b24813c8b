package stencil

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/heatgrid/field"
	"github.com/arloliu/heatgrid/types"
)

func TestDefaultParams(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	require.Equal(t, 0.1, p.CX)
	require.Equal(t, 0.1, p.CY)
}

// fillBlock loads a rows x cols interior with f(x, y) in local coordinates.
func fillBlock(t *testing.T, rows, cols int, f func(x, y int) float64) *field.Block {
	t.Helper()

	b := field.NewBlock(rows, cols)
	payload := make([]float64, rows*cols)
	for x := 1; x <= rows; x++ {
		for y := 1; y <= cols; y++ {
			payload[(x-1)*cols+(y-1)] = f(x, y)
		}
	}
	require.NoError(t, b.FillInterior(payload))

	return b
}

func TestUpdateInteriorSingleBlock(t *testing.T) {
	t.Parallel()

	// A lone 4x4 block holding the canonical initial condition of the 4x4
	// domain: 4.0 at the four center cells, zero on the edge cells. One step
	// with cx=cy=0.1 turns every center cell into
	//   4 + 0.1*(4+0-8) + 0.1*(4+0-8) = 3.2
	src := fillBlock(t, 4, 4, func(x, y int) float64 {
		gx, gy := x-1, y-1
		return float64(gx * (4 - gx - 1) * gy * (4 - gy - 1))
	})
	dst := field.NewBlock(4, 4)

	UpdateInterior(DefaultParams(), src, dst, 1)

	for _, x := range []int{2, 3} {
		for _, y := range []int{2, 3} {
			require.InDelta(t, 3.2, dst.At(x, y), 1e-12, "cell (%d,%d)", x, y)
		}
	}

	// Edge cells sit outside the interior pass and stay untouched.
	for i := 1; i <= 4; i++ {
		require.Zero(t, dst.At(1, i))
		require.Zero(t, dst.At(4, i))
		require.Zero(t, dst.At(i, 1))
		require.Zero(t, dst.At(i, 4))
	}
}

func TestUpdateInteriorDeterministicAcrossThreads(t *testing.T) {
	t.Parallel()

	const rows, cols = 17, 23

	src := fillBlock(t, rows, cols, func(x, y int) float64 {
		return math.Sin(float64(x)) * math.Cos(float64(y)) * 100
	})
	p := Params{CX: 0.12, CY: 0.08}

	ref := field.NewBlock(rows, cols)
	UpdateInterior(p, src, ref, 1)

	for threads := 2; threads <= 8; threads++ {
		dst := field.NewBlock(rows, cols)
		UpdateInterior(p, src, dst, threads)

		for x := 1; x <= rows; x++ {
			for y := 1; y <= cols; y++ {
				require.Equal(t, ref.At(x, y), dst.At(x, y),
					"threads=%d cell (%d,%d)", threads, x, y)
			}
		}
	}
}

func TestUpdateExteriorCoverage(t *testing.T) {
	t.Parallel()

	const rows, cols = 5, 6
	allNeighbors := types.Neighbors{Up: 1, Down: 2, Left: 3, Right: 4}

	tests := []struct {
		name string
		nb   types.Neighbors
		// owned reports whether the exterior passes must write local (x, y).
		owned func(x, y int) bool
	}{
		{
			name: "all neighbors",
			nb:   allNeighbors,
			owned: func(x, y int) bool {
				return x == 1 || x == rows || y == 1 || y == cols
			},
		},
		{
			name: "no neighbors",
			nb:   types.Neighbors{Up: types.None, Down: types.None, Left: types.None, Right: types.None},
			owned: func(x, y int) bool {
				return false
			},
		},
		{
			name: "top-left corner block",
			nb:   types.Neighbors{Up: types.None, Down: 2, Left: types.None, Right: 4},
			owned: func(x, y int) bool {
				if x == 1 || y == 1 {
					return false // physical boundary
				}

				return x == rows || y == cols
			},
		},
		{
			name: "interior strip without left right",
			nb:   types.Neighbors{Up: 1, Down: 2, Left: types.None, Right: types.None},
			owned: func(x, y int) bool {
				if y == 1 || y == cols {
					return false
				}

				return x == 1 || x == rows
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fillBlock(t, rows, cols, func(x, y int) float64 {
				return float64(x*10 + y)
			})

			// Sentinel interior: any cell the passes write flips from NaN.
			dst := field.NewBlock(rows, cols)
			for x := 1; x <= rows; x++ {
				for y := 1; y <= cols; y++ {
					dst.Set(x, y, math.NaN())
				}
			}

			UpdateExterior(DefaultParams(), src, dst, tt.nb, 1)

			for x := 1; x <= rows; x++ {
				for y := 1; y <= cols; y++ {
					written := !math.IsNaN(dst.At(x, y))
					require.Equal(t, tt.owned(x, y), written, "cell (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestUpdateExteriorReadsHaloFromNewGeneration(t *testing.T) {
	t.Parallel()

	const rows, cols = 3, 3

	src := fillBlock(t, rows, cols, func(x, y int) float64 {
		return 1
	})
	dst := field.NewBlock(rows, cols)

	// The freshly received top edge lives in the written generation's ring.
	dst.SetHaloRow(0, []float64{5, 5, 5})

	nb := types.Neighbors{Up: 1, Down: types.None, Left: types.None, Right: types.None}
	UpdateExterior(Params{CX: 0.1, CY: 0.1}, src, dst, nb, 1)

	// point (1,2): up neighbor 5 from the ring, down neighbor 1 from src,
	// left and right 1 from src.
	// 1 + 0.1*(1+5-2) + 0.1*(1+1-2) = 1.4
	require.InDelta(t, 1.4, dst.At(1, 2), 1e-12)
}

func TestUpdateExteriorSingleRowBlock(t *testing.T) {
	t.Parallel()

	// One cell thick: the top and bottom passes would target the same row,
	// so only the top pass runs.
	const rows, cols = 1, 5

	src := fillBlock(t, rows, cols, func(x, y int) float64 {
		return float64(y)
	})

	dst := field.NewBlock(rows, cols)
	for y := 1; y <= cols; y++ {
		dst.Set(1, y, math.NaN())
	}

	nb := types.Neighbors{Up: 1, Down: 2, Left: 3, Right: 4}
	UpdateExterior(DefaultParams(), src, dst, nb, 1)

	for y := 1; y <= cols; y++ {
		require.False(t, math.IsNaN(dst.At(1, y)), "cell (1,%d) not written", y)
	}
}

func TestUpdateExteriorSingleColumnBlock(t *testing.T) {
	t.Parallel()

	const rows, cols = 5, 1

	src := fillBlock(t, rows, cols, func(x, y int) float64 {
		return float64(x)
	})

	dst := field.NewBlock(rows, cols)
	for x := 1; x <= rows; x++ {
		dst.Set(x, 1, math.NaN())
	}

	nb := types.Neighbors{Up: 1, Down: 2, Left: 3, Right: 4}
	UpdateExterior(DefaultParams(), src, dst, nb, 1)

	for x := 1; x <= rows; x++ {
		require.False(t, math.IsNaN(dst.At(x, 1)), "cell (%d,1) not written", x)
	}
}

func TestUpdateExteriorDeterministicAcrossThreads(t *testing.T) {
	t.Parallel()

	const rows, cols = 11, 13

	src := fillBlock(t, rows, cols, func(x, y int) float64 {
		return float64((x*31 + y*17) % 97)
	})
	nb := types.Neighbors{Up: 1, Down: 2, Left: 3, Right: 4}
	p := Params{CX: 0.2, CY: 0.15}

	ref := field.NewBlock(rows, cols)
	UpdateExterior(p, src, ref, nb, 1)

	for threads := 2; threads <= 8; threads++ {
		dst := field.NewBlock(rows, cols)
		UpdateExterior(p, src, dst, nb, threads)

		for x := 1; x <= rows; x++ {
			for y := 1; y <= cols; y++ {
				require.Equal(t, ref.At(x, y), dst.At(x, y),
					"threads=%d cell (%d,%d)", threads, x, y)
			}
		}
	}
}

func TestParallelFor(t *testing.T) {
	t.Parallel()

	t.Run("covers range exactly once", func(t *testing.T) {
		for _, threads := range []int{1, 2, 3, 7, 16} {
			counts := make([]atomic.Int32, 100)

			parallelFor(threads, 10, 90, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					counts[i].Add(1)
				}
			})

			for i := range counts {
				want := int32(0)
				if i >= 10 && i < 90 {
					want = 1
				}
				require.Equal(t, want, counts[i].Load(), "threads=%d index %d", threads, i)
			}
		}
	})

	t.Run("empty range", func(t *testing.T) {
		called := false
		parallelFor(4, 5, 5, func(lo, hi int) { called = true })
		require.False(t, called)

		parallelFor(4, 5, 3, func(lo, hi int) { called = true })
		require.False(t, called)
	})

	t.Run("more threads than span", func(t *testing.T) {
		var total atomic.Int32
		parallelFor(16, 0, 3, func(lo, hi int) {
			total.Add(int32(hi - lo))
		})
		require.Equal(t, int32(3), total.Load())
	})
}
