// Package mutation coordinates write traffic against the database: a
// debouncer that collapses bursts of repeated writes into one call
// (latest-wins), and a single-flight group that shares one in-flight call
// between identical concurrent requests.
package mutation

import (
	"context"
	"sync"
	"time"
)

// Debouncer collapses calls sharing a key that arrive within the quiet
// window into a single execution. Semantics are latest-wins: the last
// call's function runs, earlier calls in the window are dropped, and every
// waiter receives the outcome of the one execution. Use it only for writes
// where the final value is the whole story (availability flags, featured
// toggles), never for operations that must each take effect.
type Debouncer struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*pendingCall
}

type pendingCall struct {
	timer *time.Timer
	fn    func(ctx context.Context) error
	ctx   context.Context
	done  chan struct{}
	err   error
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = 300 * time.Millisecond
	}
	return &Debouncer{
		window:  window,
		pending: make(map[string]*pendingCall),
	}
}

// Do schedules fn under key and blocks until the debounced execution
// finishes or ctx is cancelled. N calls within the window produce exactly
// one execution, using the last call's fn.
func (d *Debouncer) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	d.mu.Lock()
	call, ok := d.pending[key]
	if ok {
		// Latest wins: replace the payload and restart the quiet window.
		call.fn = fn
		call.ctx = context.WithoutCancel(ctx)
		call.timer.Reset(d.window)
	} else {
		call = &pendingCall{
			fn:   fn,
			ctx:  context.WithoutCancel(ctx),
			done: make(chan struct{}),
		}
		d.pending[key] = call
		call.timer = time.AfterFunc(d.window, func() {
			d.fire(key, call)
		})
	}
	d.mu.Unlock()

	select {
	case <-call.done:
		return call.err
	case <-ctx.Done():
		// The scheduled write still runs; only this waiter gives up.
		return ctx.Err()
	}
}

func (d *Debouncer) fire(key string, call *pendingCall) {
	d.mu.Lock()
	// A Reset racing with the timer firing can re-arm it, so a second fire
	// may arrive for a call that was already consumed here or by Flush.
	// Only the fire that still owns the map entry runs and closes done.
	if d.pending[key] != call {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	fn, ctx := call.fn, call.ctx
	d.mu.Unlock()

	call.err = fn(ctx)
	close(call.done)
}

// Flush runs every pending call immediately. Shutdown and tests.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	calls := make(map[string]*pendingCall, len(d.pending))
	for key, call := range d.pending {
		if call.timer.Stop() {
			calls[key] = call
		}
	}
	for key := range calls {
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for _, call := range calls {
		call.err = call.fn(call.ctx)
		close(call.done)
	}
}

// Group is a single-flight: concurrent Do calls with the same key share one
// execution and its result.
type Group struct {
	mu    sync.Mutex
	calls map[string]*groupCall
}

type groupCall struct {
	done  chan struct{}
	value any
	err   error
}

func NewGroup() *Group {
	return &Group{calls: make(map[string]*groupCall)}
}

// Do executes fn once per key at a time; duplicate concurrent callers wait
// for the in-flight execution and receive its result.
func (g *Group) Do(key string, fn func() (any, error)) (any, error) {
	g.mu.Lock()
	if call, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-call.done
		return call.value, call.err
	}

	call := &groupCall{done: make(chan struct{})}
	g.calls[key] = call
	g.mu.Unlock()

	call.value, call.err = fn()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
	close(call.done)

	return call.value, call.err
}
