package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithTimeoutReturnsValue(t *testing.T) {
	got, err := WithTimeout(context.Background(), time.Second, -1, func(ctx context.Context) (int, error) {
		return 7, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestWithTimeoutPropagatesError(t *testing.T) {
	wantErr := errors.New("query failed")
	got, err := WithTimeout(context.Background(), time.Second, "fallback", func(ctx context.Context) (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if got != "" {
		t.Fatalf("got %q, want empty result from op", got)
	}
}

func TestWithTimeoutFallsBackOnDeadline(t *testing.T) {
	got, err := WithTimeout(context.Background(), 20*time.Millisecond, "fallback", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "late", ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if got != "fallback" {
		t.Fatalf("got %q, want the fallback value", got)
	}
}
