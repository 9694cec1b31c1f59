package utils

import (
	"context"
	"time"
)

// WithTimeout races op against a timer. On timeout the fallback value is
// returned together with context.DeadlineExceeded so callers can tell a
// fallback apart from a real result.
func WithTimeout[T any](ctx context.Context, timeout time.Duration, fallback T, op func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}

	done := make(chan result, 1)
	go func() {
		value, err := op(ctx)
		done <- result{value: value, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		return fallback, ctx.Err()
	}
}
