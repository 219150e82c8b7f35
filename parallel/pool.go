package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted jobs on a fixed set of goroutines. A pool with a single
// worker runs every job inline on the caller's goroutine.
type Pool struct {
	wg      sync.WaitGroup
	work    chan func()
	workers int
	close   func()
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{workers: numWorkers, close: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// Do queues f. It must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting jobs and blocks until every queued job has finished.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
