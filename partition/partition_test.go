package partition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/heatgrid/types"
)

func TestPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		workers int
		nx, ny  int
		want    types.Layout
	}{
		{
			name:    "single owner",
			workers: 1, nx: 8, ny: 8,
			want: types.Layout{Workers: 1, XDim: 1, YDim: 1, Rows: 8, Columns: 8},
		},
		{
			name:    "two owners split along x",
			workers: 2, nx: 8, ny: 8,
			want: types.Layout{Workers: 2, XDim: 2, YDim: 1, Rows: 4, Columns: 8},
		},
		{
			name:    "square count square grid",
			workers: 4, nx: 256, ny: 320,
			want: types.Layout{Workers: 4, XDim: 2, YDim: 2, Rows: 128, Columns: 160},
		},
		{
			name:    "perfect square count",
			workers: 9, nx: 9, ny: 9,
			want: types.Layout{Workers: 9, XDim: 3, YDim: 3, Rows: 3, Columns: 3},
		},
		{
			name:    "near-square factor pair",
			workers: 6, nx: 6, ny: 6,
			want: types.Layout{Workers: 6, XDim: 3, YDim: 2, Rows: 2, Columns: 3},
		},
		{
			name:    "aspect swap for wide domain",
			workers: 12, nx: 240, ny: 320,
			want: types.Layout{Workers: 12, XDim: 3, YDim: 4, Rows: 80, Columns: 80},
		},
		{
			name:    "no swap when domain is tall",
			workers: 12, nx: 320, ny: 240,
			want: types.Layout{Workers: 12, XDim: 4, YDim: 3, Rows: 80, Columns: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.workers, tt.nx, tt.ny)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPlanTiling(t *testing.T) {
	t.Parallel()

	// Whatever the factorization, the blocks must tile the domain exactly.
	cases := []struct{ workers, nx, ny int }{
		{1, 4, 4},
		{2, 8, 8},
		{4, 256, 320},
		{6, 12, 18},
		{8, 16, 32},
		{9, 27, 27},
		{16, 64, 64},
	}

	for _, c := range cases {
		l, err := Plan(c.workers, c.nx, c.ny)
		require.NoError(t, err)
		require.Equal(t, c.workers, l.XDim*l.YDim, "workers %d", c.workers)
		require.Equal(t, c.nx, l.Rows*l.XDim, "workers %d", c.workers)
		require.Equal(t, c.ny, l.Columns*l.YDim, "workers %d", c.workers)
	}
}

func TestPlanErrors(t *testing.T) {
	t.Parallel()

	t.Run("prime worker count", func(t *testing.T) {
		for _, w := range []int{3, 5, 7, 11, 13} {
			_, err := Plan(w, w*10, w*10)
			require.ErrorIs(t, err, ErrPrimeWorkerCount, "workers %d", w)
		}
	})

	t.Run("two workers allowed", func(t *testing.T) {
		_, err := Plan(2, 8, 8)
		require.NoError(t, err)
	})

	t.Run("indivisible cell count", func(t *testing.T) {
		_, err := Plan(4, 5, 5)
		require.ErrorIs(t, err, ErrIndivisibleGrid)
	})

	t.Run("indivisible along one axis", func(t *testing.T) {
		// 4x9 has 36 cells, divisible by 4 owners, but the 2x2 block grid
		// cannot split NY=9 evenly.
		_, err := Plan(4, 4, 9)
		require.ErrorIs(t, err, ErrIndivisibleGrid)
	})

	t.Run("invalid worker count", func(t *testing.T) {
		_, err := Plan(0, 8, 8)
		require.ErrorIs(t, err, ErrInvalidWorkerCount)

		_, err = Plan(-1, 8, 8)
		require.ErrorIs(t, err, ErrInvalidWorkerCount)
	})

	t.Run("invalid grid size", func(t *testing.T) {
		_, err := Plan(1, 0, 8)
		require.ErrorIs(t, err, ErrInvalidGridSize)

		_, err = Plan(1, 8, -2)
		require.ErrorIs(t, err, ErrInvalidGridSize)
	})
}

func TestFactorPair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		w, xdim, ydim int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{4, 2, 2},
		{6, 3, 2},
		{8, 2, 4}, // scan starts at 3, first divisor is 2
		{12, 4, 3},
		{16, 4, 4},
	}

	for _, tt := range tests {
		x, y := factorPair(tt.w)
		require.Equal(t, tt.xdim, x, "w=%d", tt.w)
		require.Equal(t, tt.ydim, y, "w=%d", tt.w)
		require.Equal(t, tt.w, x*y, "w=%d", tt.w)
	}
}

func TestIsPrime(t *testing.T) {
	t.Parallel()

	primes := []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 97}
	for _, n := range primes {
		require.True(t, isPrime(n), "%d", n)
	}

	composites := []int{0, 1, 4, 6, 8, 9, 15, 21, 25, 49, 91}
	for _, n := range composites {
		require.False(t, isPrime(n), "%d", n)
	}
}
