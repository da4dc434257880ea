// Package worker offloads synchronous, blocking library calls to a fixed
// pool of goroutines so the request-handling path never runs them inline.
package worker

import (
	"context"
	"fmt"
	"sync"
)

type job struct {
	fn   func() error
	done chan error
}

// Pool is a fixed-capacity set of workers draining a shared job channel.
// A hung job occupies its worker slot indefinitely; there is no timeout
// and no cancellation once a job has been handed to a worker.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
}

// New starts size workers. Size must be at least 1.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{jobs: make(chan job)}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for j := range p.jobs {
		j.done <- safeRun(j.fn)
	}
}

// Do hands fn to a worker and blocks until it completes, returning fn's
// error. The context only guards the wait for a free worker: once the job
// is submitted the caller is committed to its result.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	j := job{fn: fn, done: make(chan error, 1)}
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-j.done
}

// Close stops accepting jobs and waits for in-flight work to finish.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}

func safeRun(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker job panicked: %v", r)
		}
	}()
	return fn()
}
