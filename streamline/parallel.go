package streamline

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// parallelThreshold is the minimum seed count to use parallel
// integration. Below this, single-threaded is faster due to goroutine
// overhead.
const parallelThreshold = 64

// integrateAll traces every seed, inline or fanned out over a worker
// pool. Results are written by seed index, so the output is identical
// for any worker count.
func integrateAll(it *integrator, seeds []r3.Vec, workers int) []*Line {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Line, len(seeds))
	if workers == 1 || len(seeds) < parallelThreshold {
		for i, seed := range seeds {
			results[i] = it.trace(seed)
		}
		return results
	}

	chunkSize := (len(seeds) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, len(seeds))
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				results[i] = it.trace(seeds[i])
			}
		}(start, end)
	}
	wg.Wait()
	return results
}
