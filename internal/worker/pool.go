package worker

import (
	"context"
	"sync"
)

// Pool runs a fixed handler over a batch of jobs with bounded concurrency.
// Results keep no particular order.
type Pool[J, R any] struct {
	workers int
	handle  func(context.Context, J) R
}

// NewPool creates a pool with the given worker count and handler
func NewPool[J, R any](workers int, handle func(context.Context, J) R) *Pool[J, R] {
	if workers <= 0 {
		workers = 1
	}
	return &Pool[J, R]{workers: workers, handle: handle}
}

// Run processes all jobs and returns their results. It stops feeding new
// jobs once ctx is cancelled; in-flight handlers see the cancelled context.
func (p *Pool[J, R]) Run(ctx context.Context, jobs []J) []R {
	jobCh := make(chan J)
	resultCh := make(chan R, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				resultCh <- p.handle(ctx, job)
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobCh <- job:
			}
		}
	}()

	wg.Wait()
	close(resultCh)

	results := make([]R, 0, len(jobs))
	for result := range resultCh {
		results = append(results, result)
	}
	return results
}
