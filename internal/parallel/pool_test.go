package parallel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestWorkerPoolRunsSubmittedTasks(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Shutdown()

	ctx := context.Background()
	var wg sync.WaitGroup
	var completed int64
	var mu sync.Mutex

	for i := 0; i < 20; i++ {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			mu.Lock()
			completed++
			mu.Unlock()
		}
		if err := pool.Submit(ctx, task); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	wg.Wait()
	if completed != 20 {
		t.Fatalf("completed = %d, want 20", completed)
	}
}

func TestWorkerPoolDefaultsWorkerCountWhenNonPositive(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Shutdown()

	if pool.maxWorkers <= 0 {
		t.Fatalf("maxWorkers = %d, want > 0", pool.maxWorkers)
	}
}

func TestWorkerPoolSubmitAfterShutdownFails(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Shutdown()

	if err := pool.Submit(context.Background(), func() {}); !errors.Is(err, ErrPoolShutdown) {
		t.Fatalf("err = %v, want ErrPoolShutdown", err)
	}
}

func TestWorkerPoolSubmitRespectsContextCancellation(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Shutdown()

	unblock := make(chan struct{})
	defer close(unblock)

	// Saturate the single worker plus its 4-slot buffer so the next
	// submission has nowhere to go and must wait on ctx.
	if err := pool.Submit(context.Background(), func() { <-unblock }); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := pool.Submit(context.Background(), func() {}); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := pool.Submit(ctx, func() {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestWorkerPoolShutdownIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Shutdown()
	pool.Shutdown()
}

func BenchmarkWorkerPool(b *testing.B) {
	pool := NewWorkerPool(4)
	defer pool.Shutdown()

	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			task := func() {
				time.Sleep(1 * time.Millisecond)
			}
			pool.Submit(ctx, task)
		}
	})
}
