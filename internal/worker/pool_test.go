package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsJobs(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	var ran atomic.Bool
	if err := pool.Do(context.Background(), func() error {
		ran.Store(true)
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran.Load() {
		t.Fatalf("job did not run")
	}
}

func TestPoolPropagatesError(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	want := errors.New("boom")
	if err := pool.Do(context.Background(), func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestPoolRecoversPanics(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	err := pool.Do(context.Background(), func() error { panic("bad job") })
	if err == nil {
		t.Fatalf("expected panic to surface as error")
	}
}

func TestPoolLimitsConcurrency(t *testing.T) {
	const size = 3
	pool := New(size)
	defer pool.Close()

	var running, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < size*4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Do(context.Background(), func() error {
				n := running.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	if got := peak.Load(); got > size {
		t.Fatalf("observed %d concurrent jobs, pool size is %d", got, size)
	}
}

func TestPoolSubmissionHonorsContext(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	release := make(chan struct{})
	go pool.Do(context.Background(), func() error {
		<-release
		return nil
	})
	// Give the blocking job time to occupy the only worker.
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Do(ctx, func() error { return nil })
	close(release)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error while waiting for a worker, got %v", err)
	}
}
