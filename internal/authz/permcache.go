package authz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckFunc answers a single permission check against the backing store.
type CheckFunc func(ctx context.Context, userID uuid.UUID, permission Permission) (bool, error)

// PermissionCache memoizes (user, permission) check results for a fixed TTL.
// Expired entries are removed lazily when read; there is no background sweep.
// The cache is an injected dependency, never a package-level singleton, so
// logout reset and test isolation stay explicit.
type PermissionCache struct {
	ttl   time.Duration
	check CheckFunc
	now   func() time.Time
	log   *zap.Logger

	mu      sync.Mutex
	entries map[permKey]permEntry

	flightMu sync.Mutex
	flight   *preloadFlight
}

type permKey struct {
	userID     uuid.UUID
	permission Permission
}

type permEntry struct {
	result   bool
	storedAt time.Time
}

type preloadFlight struct {
	done chan struct{}
	err  error
}

func NewPermissionCache(ttl time.Duration, check CheckFunc, log *zap.Logger) *PermissionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PermissionCache{
		ttl:     ttl,
		check:   check,
		now:     time.Now,
		log:     log.With(zap.String("component", "permission_cache")),
		entries: make(map[permKey]permEntry),
	}
}

// Set stores the result, unconditionally overwriting any previous entry with
// a fresh timestamp.
func (c *PermissionCache) Set(userID uuid.UUID, permission Permission, result bool) {
	c.mu.Lock()
	c.entries[permKey{userID, permission}] = permEntry{result: result, storedAt: c.now()}
	c.mu.Unlock()
}

// Get returns the cached result. Absent or expired entries miss; an expired
// entry is deleted as a side effect of the read.
func (c *PermissionCache) Get(userID uuid.UUID, permission Permission) (bool, bool) {
	key := permKey{userID, permission}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return false, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return false, false
	}
	return entry.result, true
}

// Check resolves the permission through the cache, falling through to the
// backing store on a miss and caching the answer.
func (c *PermissionCache) Check(ctx context.Context, userID uuid.UUID, permission Permission) (bool, error) {
	if result, ok := c.Get(userID, permission); ok {
		return result, nil
	}

	result, err := c.check(ctx, userID, permission)
	if err != nil {
		return false, fmt.Errorf("check permission %s: %w", permission, err)
	}

	c.Set(userID, permission, result)
	return result, nil
}

// Preload batch-fetches every requested permission through the backing store
// before resolving. Only one preload runs at a time; concurrent callers wait
// on the in-flight run and share its outcome. Nothing is granted
// optimistically while the preload is pending.
func (c *PermissionCache) Preload(ctx context.Context, userID uuid.UUID, permissions []Permission) error {
	c.flightMu.Lock()
	if f := c.flight; f != nil {
		c.flightMu.Unlock()
		select {
		case <-f.done:
			return f.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f := &preloadFlight{done: make(chan struct{})}
	c.flight = f
	c.flightMu.Unlock()

	f.err = c.preload(ctx, userID, permissions)

	c.flightMu.Lock()
	c.flight = nil
	c.flightMu.Unlock()
	close(f.done)

	return f.err
}

func (c *PermissionCache) preload(ctx context.Context, userID uuid.UUID, permissions []Permission) error {
	for _, permission := range permissions {
		result, err := c.check(ctx, userID, permission)
		if err != nil {
			c.log.Warn("Permission preload aborted",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("permission", string(permission)),
			)
			return fmt.Errorf("preload permission %s: %w", permission, err)
		}
		c.Set(userID, permission, result)
	}

	c.log.Debug("Permissions preloaded",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(permissions)),
	)
	return nil
}

// Clear drops all entries. Intended for logout.
func (c *PermissionCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[permKey]permEntry)
	c.mu.Unlock()
}

// Len reports the live entry count, expired entries included until read.
func (c *PermissionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// SetNowFunc overrides the clock. Tests only.
func (c *PermissionCache) SetNowFunc(now func() time.Time) {
	c.now = now
}
