// Package batch is the one place context.Context and concurrency enter
// this module: per the engine's single-threaded-core design, every
// e-graph/scheduler/heuristic operation is synchronous and
// context-free, but callers with several independent jobs over
// disjoint e-graphs (or independent ILP calls within one heuristic
// evaluation) can run them across a worker pool. Run submits each job,
// collects results in the caller's original order, and returns the
// first job error together with whatever jobs did complete.
package batch

import (
	"context"
	"sync"

	"github.com/exprsat/eqsat/internal/parallel"
)

// Job is one independent unit of work submitted to a Run call.
type Job[T any] func() T

// Run submits every job in jobs to pool and blocks until all have
// completed (or ctx is cancelled). Results are returned in the same
// order as jobs, regardless of completion order. If ctx is cancelled
// before a job could be submitted, that job's slot holds the zero
// value of T and err is ctx.Err(); already-submitted jobs still run to
// completion since the pool does not cancel in-flight tasks. If ctx is
// cancelled while submitted jobs are still running, Run returns without
// waiting for them: their slots hold the zero value of T.
func Run[T any](ctx context.Context, pool *parallel.WorkerPool, jobs []Job[T]) ([]T, error) {
	results := make([]T, len(jobs))
	var wg sync.WaitGroup
	var firstErr error
	var mu sync.Mutex

	for i, job := range jobs {
		i, job := i, job
		wg.Add(1)
		task := func() {
			defer wg.Done()
			v := job()
			mu.Lock()
			results[i] = v
			mu.Unlock()
		}
		if err := pool.Submit(ctx, task); err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
		return results, firstErr
	case <-ctx.Done():
	}
	mu.Lock()
	defer mu.Unlock()
	if firstErr == nil {
		firstErr = ctx.Err()
	}
	return append([]T(nil), results...), firstErr
}
