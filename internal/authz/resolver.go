package authz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleStore is the slice of the role repository the resolver needs.
type RoleStore interface {
	FindRolesByUserID(ctx context.Context, userID uuid.UUID) ([]Role, bool, error)
	HasRole(ctx context.Context, userID uuid.UUID, role Role) (bool, error)
}

// Snapshot is the resolved view of a principal's access.
type Snapshot struct {
	Primary    Role
	Roles      []Role
	Master     bool
	IsAdmin    bool
	IsPartner  bool
	IsCustomer bool
}

// Resolver maps a principal to its granted roles. Lookups are cached with a
// stale-time window: a fresh entry is returned without a round-trip, and a
// refetch happens only on expiry or explicit Refresh. The cache stores the
// full granted-role set, so probing one role never clobbers another.
type Resolver struct {
	store     RoleStore
	staleTime time.Duration
	now       func() time.Time
	log       *zap.Logger

	mu      sync.Mutex
	entries map[uuid.UUID]*roleEntry
}

type roleEntry struct {
	roles     map[Role]struct{}
	primary   Role
	master    bool
	fetchedAt time.Time
}

const lookupRetries = 2

func NewResolver(store RoleStore, staleTime time.Duration, log *zap.Logger) *Resolver {
	if staleTime <= 0 {
		staleTime = 5 * time.Minute
	}
	return &Resolver{
		store:     store,
		staleTime: staleTime,
		now:       time.Now,
		log:       log.With(zap.String("component", "role_resolver")),
		entries:   make(map[uuid.UUID]*roleEntry),
	}
}

// Resolve returns the access snapshot for the principal. A nil principal
// resolves to an empty snapshot without touching the store.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	if userID == uuid.Nil {
		return Snapshot{}, nil
	}

	entry, err := r.entry(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	r.mu.Lock()
	snap := entry.snapshot()
	r.mu.Unlock()
	return snap, nil
}

// HasRole answers whether the principal holds the role. A hit on the cached
// set resolves without a lookup; a miss issues exactly one lookup and, when
// confirmed, adds the role to the set.
func (r *Resolver) HasRole(ctx context.Context, userID uuid.UUID, role Role) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}

	entry, err := r.entry(ctx, userID)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	_, cached := entry.roles[role]
	r.mu.Unlock()
	if cached {
		return true, nil
	}

	granted, err := r.store.HasRole(ctx, userID, role)
	if err != nil {
		r.log.Error("Role probe failed",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
		)
		return false, fmt.Errorf("probe role %s: %w", role, err)
	}

	if granted {
		r.mu.Lock()
		entry.roles[role] = struct{}{}
		r.mu.Unlock()
	}

	return granted, nil
}

// Refresh drops the cached entry and fetches a fresh one.
func (r *Resolver) Refresh(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	if userID == uuid.Nil {
		return Snapshot{}, nil
	}

	r.mu.Lock()
	delete(r.entries, userID)
	r.mu.Unlock()

	return r.Resolve(ctx, userID)
}

// Invalidate drops the cached entry without refetching.
func (r *Resolver) Invalidate(userID uuid.UUID) {
	r.mu.Lock()
	delete(r.entries, userID)
	r.mu.Unlock()
}

// Clear drops every cached entry. Intended for shutdown and tests.
func (r *Resolver) Clear() {
	r.mu.Lock()
	r.entries = make(map[uuid.UUID]*roleEntry)
	r.mu.Unlock()
}

// SetNowFunc overrides the clock. Tests only.
func (r *Resolver) SetNowFunc(now func() time.Time) {
	r.now = now
}

func (r *Resolver) entry(ctx context.Context, userID uuid.UUID) (*roleEntry, error) {
	r.mu.Lock()
	entry, ok := r.entries[userID]
	if ok && r.now().Sub(entry.fetchedAt) < r.staleTime {
		r.mu.Unlock()
		return entry, nil
	}
	r.mu.Unlock()

	roles, master, err := r.fetch(ctx, userID)
	if err != nil {
		r.log.Error("Role lookup failed",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("resolve roles for %s: %w", userID.String(), err)
	}

	entry = &roleEntry{
		roles:     make(map[Role]struct{}, len(roles)),
		master:    master,
		fetchedAt: r.now(),
	}
	for i, role := range roles {
		if i == 0 {
			entry.primary = role
		}
		entry.roles[role] = struct{}{}
	}

	r.mu.Lock()
	r.entries[userID] = entry
	r.mu.Unlock()

	return entry, nil
}

func (r *Resolver) fetch(ctx context.Context, userID uuid.UUID) ([]Role, bool, error) {
	var lastErr error
	for attempt := 0; attempt <= lookupRetries; attempt++ {
		roles, master, err := r.store.FindRolesByUserID(ctx, userID)
		if err == nil {
			return roles, master, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, false, lastErr
}

func (e *roleEntry) snapshot() Snapshot {
	snap := Snapshot{
		Primary: e.primary,
		Master:  e.master,
	}
	for role := range e.roles {
		snap.Roles = append(snap.Roles, role)
		switch role {
		case RoleAdmin:
			snap.IsAdmin = true
		case RolePartner:
			snap.IsPartner = true
		case RoleCustomer:
			snap.IsCustomer = true
		}
	}
	return snap
}
