package mutation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCollapsesBurst(t *testing.T) {
	d := NewDebouncer(60 * time.Millisecond)

	var mu sync.Mutex
	var executed []int

	errs := make(chan error, 3)
	for i := 1; i <= 3; i++ {
		value := i
		go func() {
			errs <- d.Do(context.Background(), "availability/acc-1", func(ctx context.Context) error {
				mu.Lock()
				executed = append(executed, value)
				mu.Unlock()
				return nil
			})
		}()
		time.Sleep(10 * time.Millisecond)
	}

	for i := 0; i < 3; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("waiter %d error: %v", i, err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(executed) != 1 {
		t.Fatalf("executed %d times, want 1", len(executed))
	}
	if executed[0] != 3 {
		t.Fatalf("executed call %d, want the last call of the burst", executed[0])
	}
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	ran := map[string]int{}

	var wg sync.WaitGroup
	for _, key := range []string{"availability/a", "availability/b"} {
		wg.Add(1)
		key := key
		go func() {
			defer wg.Done()
			if err := d.Do(context.Background(), key, func(ctx context.Context) error {
				mu.Lock()
				ran[key]++
				mu.Unlock()
				return nil
			}); err != nil {
				t.Errorf("do %s: %v", key, err)
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if ran["availability/a"] != 1 || ran["availability/b"] != 1 {
		t.Fatalf("each key must execute once, got %v", ran)
	}
}

func TestDebouncerSharesError(t *testing.T) {
	d := NewDebouncer(40 * time.Millisecond)
	wantErr := errors.New("write failed")

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			errs <- d.Do(context.Background(), "featured/acc-1", func(ctx context.Context) error {
				return wantErr
			})
		}()
		time.Sleep(10 * time.Millisecond)
	}

	for i := 0; i < 2; i++ {
		if err := <-errs; !errors.Is(err, wantErr) {
			t.Fatalf("waiter %d error = %v, want %v", i, err, wantErr)
		}
	}
}

func TestDebouncerCancelledWaiterDoesNotStopWrite(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	executed := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Do(ctx, "availability/acc-1", func(ctx context.Context) error {
		close(executed)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	// The scheduled write still fires after the waiter gave up.
	select {
	case <-executed:
	case <-time.After(time.Second):
		t.Fatal("debounced write never ran")
	}
}

func TestFlushRunsPendingImmediately(t *testing.T) {
	d := NewDebouncer(time.Hour)

	done := make(chan error, 1)
	executed := make(chan struct{})
	go func() {
		done <- d.Do(context.Background(), "availability/acc-1", func(ctx context.Context) error {
			close(executed)
			return nil
		})
	}()

	time.Sleep(20 * time.Millisecond)
	d.Flush()

	select {
	case <-executed:
	case <-time.After(time.Second):
		t.Fatal("flush did not run the pending write")
	}
	if err := <-done; err != nil {
		t.Fatalf("waiter error after flush: %v", err)
	}
}

func TestGroupSharesInFlightCall(t *testing.T) {
	g := NewGroup()

	var mu sync.Mutex
	calls := 0
	started := make(chan struct{})
	release := make(chan struct{})

	results := make(chan any, 2)
	go func() {
		value, _ := g.Do("bookings/u1", func() (any, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			close(started)
			<-release
			return 42, nil
		})
		results <- value
	}()
	<-started

	go func() {
		value, _ := g.Do("bookings/u1", func() (any, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return -1, nil
		})
		results <- value
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		if value := <-results; value != 42 {
			t.Fatalf("result %d = %v, want the shared 42", i, value)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("fn ran %d times, want 1", calls)
	}
}

func TestDebouncerRapidReschedulesReleaseEveryWaiter(t *testing.T) {
	// A window this short makes the timer fire while new calls are still
	// landing, so rescheduling races against consumption on every
	// iteration. Each Do must still return, and the write must still run.
	d := NewDebouncer(50 * time.Microsecond)

	var executed atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if err := d.Do(context.Background(), "availability/acc-1", func(ctx context.Context) error {
					executed.Add(1)
					return nil
				}); err != nil {
					t.Errorf("do error: %v", err)
					return
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("waiters still parked after traffic stopped")
	}
	if executed.Load() == 0 {
		t.Fatal("debounced write never ran")
	}
}
