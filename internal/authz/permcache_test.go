package authz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeChecker struct {
	mu      sync.Mutex
	grants  map[Permission]bool
	err     error
	errOn   Permission
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *fakeChecker) check(ctx context.Context, _ uuid.UUID, permission Permission) (bool, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	if f.err != nil && (f.errOn == "" || f.errOn == permission) {
		return false, f.err
	}
	return f.grants[permission], nil
}

func (f *fakeChecker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPermissionCheckCachesResult(t *testing.T) {
	checker := &fakeChecker{grants: map[Permission]bool{PermissionDelete: true}}
	cache := NewPermissionCache(5*time.Minute, checker.check, zap.NewNop())

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		ok, err := cache.Check(context.Background(), userID, PermissionDelete)
		if err != nil {
			t.Fatalf("check %d error: %v", i, err)
		}
		if !ok {
			t.Fatalf("check %d: expected granted", i)
		}
	}
	if checker.callCount() != 1 {
		t.Fatalf("backing store hit %d times, want 1", checker.callCount())
	}

	// Denials are cached the same way as grants.
	ok, err := cache.Check(context.Background(), userID, PermissionMaster)
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	if ok {
		t.Fatal("expected denied")
	}
	if _, err := cache.Check(context.Background(), userID, PermissionMaster); err != nil {
		t.Fatalf("second check error: %v", err)
	}
	if checker.callCount() != 2 {
		t.Fatalf("backing store hit %d times, want 2", checker.callCount())
	}
}

func TestPermissionEntryExpires(t *testing.T) {
	checker := &fakeChecker{grants: map[Permission]bool{PermissionDelete: true}}
	cache := NewPermissionCache(time.Minute, checker.check, zap.NewNop())

	base := time.Now()
	cache.SetNowFunc(func() time.Time { return base })

	userID := uuid.New()
	cache.Set(userID, PermissionDelete, true)

	if _, ok := cache.Get(userID, PermissionDelete); !ok {
		t.Fatal("fresh entry should hit")
	}

	cache.SetNowFunc(func() time.Time { return base.Add(2 * time.Minute) })
	if _, ok := cache.Get(userID, PermissionDelete); ok {
		t.Fatal("expired entry should miss")
	}

	// The expired read evicted the entry.
	if cache.Len() != 0 {
		t.Fatalf("len = %d after lazy eviction, want 0", cache.Len())
	}
}

func TestPermissionSetOverwrites(t *testing.T) {
	cache := NewPermissionCache(time.Minute, nil, zap.NewNop())

	base := time.Now()
	cache.SetNowFunc(func() time.Time { return base })

	userID := uuid.New()
	cache.Set(userID, PermissionDelete, true)

	// A later Set replaces the value and restarts the TTL.
	cache.SetNowFunc(func() time.Time { return base.Add(50 * time.Second) })
	cache.Set(userID, PermissionDelete, false)

	cache.SetNowFunc(func() time.Time { return base.Add(100 * time.Second) })
	result, ok := cache.Get(userID, PermissionDelete)
	if !ok {
		t.Fatal("rewritten entry should still be fresh")
	}
	if result {
		t.Fatal("expected the overwritten value")
	}
}

func TestPreloadFillsCache(t *testing.T) {
	checker := &fakeChecker{grants: map[Permission]bool{PermissionDelete: true}}
	cache := NewPermissionCache(time.Minute, checker.check, zap.NewNop())

	userID := uuid.New()
	perms := []Permission{PermissionDelete, PermissionMaster}
	if err := cache.Preload(context.Background(), userID, perms); err != nil {
		t.Fatalf("preload error: %v", err)
	}
	if cache.Len() != 2 {
		t.Fatalf("len = %d, want 2", cache.Len())
	}

	// Subsequent checks resolve from the cache.
	ok, err := cache.Check(context.Background(), userID, PermissionDelete)
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	if !ok {
		t.Fatal("expected granted")
	}
	if checker.callCount() != 2 {
		t.Fatalf("backing store hit %d times, want 2 from the preload only", checker.callCount())
	}
}

func TestPreloadAbortsOnFirstError(t *testing.T) {
	checker := &fakeChecker{
		grants: map[Permission]bool{PermissionDelete: true},
		err:    errors.New("store down"),
		errOn:  PermissionMaster,
	}
	cache := NewPermissionCache(time.Minute, checker.check, zap.NewNop())

	userID := uuid.New()
	err := cache.Preload(context.Background(), userID, []Permission{PermissionDelete, PermissionMaster})
	if err == nil {
		t.Fatal("expected preload error")
	}

	// The permission checked before the failure stays cached; nothing was
	// granted for the one that failed.
	if _, ok := cache.Get(userID, PermissionDelete); !ok {
		t.Fatal("expected the first permission cached")
	}
	if _, ok := cache.Get(userID, PermissionMaster); ok {
		t.Fatal("failed permission must not be cached")
	}
}

func TestPreloadSharesInFlightRun(t *testing.T) {
	checker := &fakeChecker{
		grants:  map[Permission]bool{PermissionDelete: true},
		started: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
	cache := NewPermissionCache(time.Minute, checker.check, zap.NewNop())

	userID := uuid.New()
	perms := []Permission{PermissionDelete}

	errs := make(chan error, 2)
	go func() {
		errs <- cache.Preload(context.Background(), userID, perms)
	}()
	<-checker.started

	// The second caller joins the in-flight run instead of starting another.
	go func() {
		errs <- cache.Preload(context.Background(), userID, perms)
	}()
	time.Sleep(50 * time.Millisecond)

	close(checker.release)
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("preload %d error: %v", i, err)
		}
	}
	if checker.callCount() != 1 {
		t.Fatalf("backing store hit %d times, want 1 shared run", checker.callCount())
	}
}

func TestClearDropsEverything(t *testing.T) {
	cache := NewPermissionCache(time.Minute, nil, zap.NewNop())

	userID := uuid.New()
	cache.Set(userID, PermissionDelete, true)
	cache.Set(userID, PermissionMaster, false)

	cache.Clear()
	if cache.Len() != 0 {
		t.Fatalf("len = %d after clear, want 0", cache.Len())
	}
}
