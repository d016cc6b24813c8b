package stencil

import "sync"

// parallelFor runs body over the half-open index range [lo, hi), statically
// split into at most threads contiguous chunks. Chunks are disjoint, so no
// two workers ever write the same cell; the call returns only after all
// workers finished, giving the caller an implicit barrier between passes.
//
// With one thread (or a span smaller than two) the body runs inline.
func parallelFor(threads, lo, hi int, body func(lo, hi int)) {
	span := hi - lo
	if span <= 0 {
		return
	}
	if threads > span {
		threads = span
	}
	if threads <= 1 {
		body(lo, hi)
		return
	}

	chunk := span / threads
	rem := span % threads

	var wg sync.WaitGroup
	start := lo
	for t := 0; t < threads; t++ {
		end := start + chunk
		if t < rem {
			end++
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			body(s, e)
		}(start, end)

		start = end
	}
	wg.Wait()
}
