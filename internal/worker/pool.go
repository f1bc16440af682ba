package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/baharkarakas/bloglist-backend/internal/metrics"
)

var ErrStopped = errors.New("worker pool stopped")

type task func()

// Pool runs CPU-bound jobs on a fixed number of goroutines.
type Pool struct {
	wg     sync.WaitGroup
	jobs   chan task
	mu     sync.RWMutex
	closed bool
}

func NewPool(n int) *Pool {
	if n <= 0 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
				job()
			}
		}()
	}
	return p
}

// Do runs f on the pool and waits for it to finish. It returns early with the
// context's error if ctx is done before f is queued or completes.
func (p *Pool) Do(ctx context.Context, f func()) error {
	done := make(chan struct{})
	job := func() {
		defer close(done)
		if ctx.Err() != nil {
			return
		}
		f()
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrStopped
	}
	select {
	case p.jobs <- job:
		metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
	case <-ctx.Done():
		p.mu.RUnlock()
		return ctx.Err()
	}
	p.mu.RUnlock()

	select {
	case <-done:
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop drains queued jobs and waits for the workers to exit.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
