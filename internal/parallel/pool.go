// Package parallel provides the process-wide worker pool and the
// chunked-range dispatch used by the solver kernels on large grids.
package parallel

import (
	"runtime"
	"sync"
)

// Pool executes submitted tasks on a fixed set of worker goroutines.
// It holds no task state between submissions, so concurrent solver
// calls can share one pool without interfering.
type Pool struct {
	tasks   chan func()
	workers int
}

var (
	shared     *Pool
	sharedOnce sync.Once
)

// Shared returns the lazily-initialized process-wide pool. It is never
// shut down; it is a process resource, not owned by any single call.
func Shared() *Pool {
	sharedOnce.Do(func() {
		shared = NewPool(runtime.NumCPU())
	})
	return shared
}

func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		tasks:   make(chan func(), workers*chunksPerWorker),
		workers: workers,
	}
	for w := 0; w < workers; w++ {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	for task := range p.tasks {
		task()
	}
}

func (p *Pool) Submit(task func()) { p.tasks <- task }

func (p *Pool) Workers() int { return p.workers }
