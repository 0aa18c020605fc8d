package tensor

import (
	"sync"
	"sync/atomic"
)

// workers bounds the goroutines Linear spreads batch rows across.
var workers atomic.Int64

func init() {
	workers.Store(1)
}

// SetWorkers sets how many goroutines share the rows of a Linear call.
// n <= 1 runs rows on the calling goroutine.
func SetWorkers(n int) {
	workers.Store(int64(max(n, 1)))
}

func workerCount() int {
	return int(max(workers.Load(), 1))
}

// forRows calls fn over contiguous row ranges covering [0, rows), one
// range per worker.
func forRows(rows int, fn func(lo, hi int)) {
	if rows <= 0 {
		return
	}

	n := min(workerCount(), rows)
	if n == 1 {
		fn(0, rows)
		return
	}

	chunk := (rows + n - 1) / n

	var wg sync.WaitGroup
	for lo := 0; lo < rows; lo += chunk {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, min(lo+chunk, rows))
	}

	wg.Wait()
}
