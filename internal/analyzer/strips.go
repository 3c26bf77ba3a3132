package analyzer

import (
	"runtime"
	"sync"
)

// forEachStrip runs fn over horizontal strips of [0,height) in parallel
// and waits for completion. Strips are disjoint, so workers may write
// to row-indexed shared slices without synchronization.
func forEachStrip(height, workers int, fn func(startY, endY int)) {
	if height <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		fn(0, height)
		return
	}

	rowsPerWorker := (height + workers - 1) / workers // ceil division
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		startY := i * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > height {
			endY = height
		}
		if startY >= endY {
			break
		}
		wg.Add(1)
		go func(startY, endY int) {
			defer wg.Done()
			fn(startY, endY)
		}(startY, endY)
	}
	wg.Wait()
}
