package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool runs submitted functions on a fixed set of goroutines. With a single
// worker every function runs inline on the caller's goroutine.
type Pool struct {
	wg      sync.WaitGroup
	Workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start returns a pool with numWorkers goroutines, or GOMAXPROCS when
// numWorkers < 1. Wait(true) closes the pool; it cannot be reused after.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Rows splits [0, height) into contiguous bands, one per worker at most,
// runs fn on each band and returns once every band is done.
func Rows(numWorkers, height int, fn func(y0, y1 int)) {
	if numWorkers == 1 || height < 2 {
		fn(0, height)
		return
	}

	pool := Start(numWorkers)
	bands := min(pool.Workers, height)
	step := (height + bands - 1) / bands
	for y0 := 0; y0 < height; y0 += step {
		y1 := min(y0+step, height)
		pool.Do(func() { fn(y0, y1) })
	}
	pool.Wait(true)
}
