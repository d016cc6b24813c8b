package partition

import (
	"fmt"
	"math"

	"github.com/arloliu/heatgrid/types"
)

// Plan computes the block decomposition of an nx×ny grid across workers
// owners.
//
// The block grid shape is the factor pair of workers closest to square: the
// scan starts at ⌊√workers⌋+1 and walks down, taking the first divisor as
// the row count. When the domain is taller along Y than X and the chosen
// shape fights the aspect ratio, the two factors are swapped so blocks
// track the domain's proportions.
//
// Parameters:
//   - workers: Owner count (>= 1)
//   - nx: Global grid height (X axis, rows)
//   - ny: Global grid width (Y axis, columns)
//
// Returns:
//   - types.Layout: Block grid shape and per-block dimensions
//   - error: ErrPrimeWorkerCount for prime workers > 2, ErrIndivisibleGrid
//     when the grid does not divide evenly
func Plan(workers, nx, ny int) (types.Layout, error) {
	if workers < 1 {
		return types.Layout{}, fmt.Errorf("%w: worker count %d", ErrInvalidWorkerCount, workers)
	}
	if nx < 1 || ny < 1 {
		return types.Layout{}, fmt.Errorf("%w: grid %dx%d", ErrInvalidGridSize, nx, ny)
	}

	// A prime owner count only factors as 1×W, which degenerates into a
	// strip decomposition; reject it outright. W=1 and W=2 still have a
	// usable factorization.
	if workers > 2 && isPrime(workers) {
		return types.Layout{}, fmt.Errorf("%w: %d workers", ErrPrimeWorkerCount, workers)
	}

	if (nx*ny)%workers != 0 {
		return types.Layout{}, fmt.Errorf("%w: %d cells across %d workers", ErrIndivisibleGrid, nx*ny, workers)
	}

	xdim, ydim := factorPair(workers)

	// Match the block aspect to the domain aspect.
	if ny > nx && ydim < xdim {
		xdim, ydim = ydim, xdim
	}

	// The prime check above guarantees a factor pair exists, but the block
	// dimensions must still divide the domain exactly.
	if nx%xdim != 0 {
		return types.Layout{}, fmt.Errorf("%w: NX=%d not divisible by xdim=%d", ErrIndivisibleGrid, nx, xdim)
	}
	if ny%ydim != 0 {
		return types.Layout{}, fmt.Errorf("%w: NY=%d not divisible by ydim=%d", ErrIndivisibleGrid, ny, ydim)
	}

	return types.Layout{
		Workers: workers,
		XDim:    xdim,
		YDim:    ydim,
		Rows:    nx / xdim,
		Columns: ny / ydim,
	}, nil
}

// factorPair returns the factor pair (x, w/x) of w with x the largest
// divisor not exceeding ⌊√w⌋+1, scanning downward. For any non-prime w (and
// for w <= 2) the scan terminates at the latest at x=1.
func factorPair(w int) (xdim, ydim int) {
	for x := int(math.Sqrt(float64(w))) + 1; x >= 1; x-- {
		if w%x == 0 {
			return x, w / x
		}
	}

	return 1, w
}

// isPrime reports whether n > 2 has no divisor other than 1 and itself.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}

	return true
}
