package authz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeRoleStore struct {
	roles  []Role
	master bool

	findErr  error
	probeErr error

	findCalls  int
	probeCalls int
	probed     []Role
}

func (s *fakeRoleStore) FindRolesByUserID(_ context.Context, _ uuid.UUID) ([]Role, bool, error) {
	s.findCalls++
	if s.findErr != nil {
		return nil, false, s.findErr
	}
	return s.roles, s.master, nil
}

func (s *fakeRoleStore) HasRole(_ context.Context, _ uuid.UUID, role Role) (bool, error) {
	s.probeCalls++
	s.probed = append(s.probed, role)
	if s.probeErr != nil {
		return false, s.probeErr
	}
	for _, granted := range s.roles {
		if granted == role {
			return true, nil
		}
	}
	return false, nil
}

func TestResolveNilPrincipal(t *testing.T) {
	store := &fakeRoleStore{roles: []Role{RoleCustomer}}
	r := NewResolver(store, time.Minute, zap.NewNop())

	snap, err := r.Resolve(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if len(snap.Roles) != 0 || snap.Master || snap.IsAdmin {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if store.findCalls != 0 {
		t.Fatalf("store touched %d times for nil principal", store.findCalls)
	}
}

func TestResolveCachesWithinStaleWindow(t *testing.T) {
	store := &fakeRoleStore{roles: []Role{RoleCustomer, RolePartner}}
	r := NewResolver(store, 5*time.Minute, zap.NewNop())

	base := time.Now()
	r.SetNowFunc(func() time.Time { return base })

	userID := uuid.New()
	first, err := r.Resolve(context.Background(), userID)
	if err != nil {
		t.Fatalf("first resolve error: %v", err)
	}
	if !first.IsCustomer || !first.IsPartner {
		t.Fatalf("wrong snapshot: %+v", first)
	}
	if first.Primary != RoleCustomer {
		t.Fatalf("primary = %s, want %s", first.Primary, RoleCustomer)
	}

	r.SetNowFunc(func() time.Time { return base.Add(4 * time.Minute) })
	if _, err := r.Resolve(context.Background(), userID); err != nil {
		t.Fatalf("second resolve error: %v", err)
	}
	if store.findCalls != 1 {
		t.Fatalf("findCalls = %d, want 1 within the stale window", store.findCalls)
	}

	r.SetNowFunc(func() time.Time { return base.Add(6 * time.Minute) })
	if _, err := r.Resolve(context.Background(), userID); err != nil {
		t.Fatalf("third resolve error: %v", err)
	}
	if store.findCalls != 2 {
		t.Fatalf("findCalls = %d, want refetch after expiry", store.findCalls)
	}
}

func TestHasRoleShortCircuitsOnCachedSet(t *testing.T) {
	store := &fakeRoleStore{roles: []Role{RoleCustomer, RolePartner}}
	r := NewResolver(store, 5*time.Minute, zap.NewNop())

	userID := uuid.New()
	if _, err := r.Resolve(context.Background(), userID); err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	ok, err := r.HasRole(context.Background(), userID, RolePartner)
	if err != nil {
		t.Fatalf("has role error: %v", err)
	}
	if !ok {
		t.Fatal("expected granted role")
	}
	if store.probeCalls != 0 {
		t.Fatalf("probeCalls = %d, want 0 on a cached hit", store.probeCalls)
	}
}

func TestHasRoleProbeAddsToCachedSet(t *testing.T) {
	store := &fakeRoleStore{roles: []Role{RoleCustomer}}
	r := NewResolver(store, 5*time.Minute, zap.NewNop())

	userID := uuid.New()
	if _, err := r.Resolve(context.Background(), userID); err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	// The grant lands after the snapshot was cached.
	store.roles = append(store.roles, RolePartner)

	ok, err := r.HasRole(context.Background(), userID, RolePartner)
	if err != nil {
		t.Fatalf("has role error: %v", err)
	}
	if !ok {
		t.Fatal("expected probe to confirm the role")
	}
	if store.probeCalls != 1 {
		t.Fatalf("probeCalls = %d, want 1", store.probeCalls)
	}

	// Confirmed roles join the cached set so the next check skips the probe.
	ok, err = r.HasRole(context.Background(), userID, RolePartner)
	if err != nil {
		t.Fatalf("second has role error: %v", err)
	}
	if !ok || store.probeCalls != 1 {
		t.Fatalf("want cached hit after probe, got ok=%v probeCalls=%d", ok, store.probeCalls)
	}

	// The customer role cached at resolve time was not clobbered.
	ok, err = r.HasRole(context.Background(), userID, RoleCustomer)
	if err != nil {
		t.Fatalf("customer has role error: %v", err)
	}
	if !ok || store.probeCalls != 1 {
		t.Fatalf("probing one role must not evict another, ok=%v probeCalls=%d", ok, store.probeCalls)
	}
}

func TestHasRoleDeniedNotCached(t *testing.T) {
	store := &fakeRoleStore{roles: []Role{RoleCustomer}}
	r := NewResolver(store, 5*time.Minute, zap.NewNop())

	userID := uuid.New()
	ok, err := r.HasRole(context.Background(), userID, RoleAdmin)
	if err != nil {
		t.Fatalf("has role error: %v", err)
	}
	if ok {
		t.Fatal("role should be denied")
	}

	// A denial is never cached; the next check probes again.
	if _, err := r.HasRole(context.Background(), userID, RoleAdmin); err != nil {
		t.Fatalf("second has role error: %v", err)
	}
	if store.probeCalls != 2 {
		t.Fatalf("probeCalls = %d, want 2", store.probeCalls)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	store := &fakeRoleStore{roles: []Role{RoleCustomer}}
	r := NewResolver(store, 5*time.Minute, zap.NewNop())

	userID := uuid.New()
	if _, err := r.Resolve(context.Background(), userID); err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	store.roles = []Role{RoleCustomer, RolePartner}
	r.Invalidate(userID)

	snap, err := r.Resolve(context.Background(), userID)
	if err != nil {
		t.Fatalf("resolve after invalidate error: %v", err)
	}
	if !snap.IsPartner {
		t.Fatalf("expected fresh snapshot with partner role, got %+v", snap)
	}
	if store.findCalls != 2 {
		t.Fatalf("findCalls = %d, want 2", store.findCalls)
	}
}

func TestClearDropsAllEntries(t *testing.T) {
	store := &fakeRoleStore{roles: []Role{RoleCustomer}}
	r := NewResolver(store, 5*time.Minute, zap.NewNop())

	first, second := uuid.New(), uuid.New()
	for _, userID := range []uuid.UUID{first, second} {
		if _, err := r.Resolve(context.Background(), userID); err != nil {
			t.Fatalf("resolve error: %v", err)
		}
	}

	r.Clear()

	if _, err := r.Resolve(context.Background(), first); err != nil {
		t.Fatalf("resolve after clear error: %v", err)
	}
	if store.findCalls != 3 {
		t.Fatalf("findCalls = %d, want refetch after clear", store.findCalls)
	}
}

func TestResolveRetriesLookup(t *testing.T) {
	store := &fakeRoleStore{findErr: errors.New("connection reset")}
	r := NewResolver(store, 5*time.Minute, zap.NewNop())

	_, err := r.Resolve(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if store.findCalls != lookupRetries+1 {
		t.Fatalf("findCalls = %d, want %d", store.findCalls, lookupRetries+1)
	}
}

func TestMasterSnapshot(t *testing.T) {
	store := &fakeRoleStore{roles: []Role{RoleAdmin}, master: true}
	r := NewResolver(store, 5*time.Minute, zap.NewNop())

	snap, err := r.Resolve(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if !snap.Master || !snap.IsAdmin {
		t.Fatalf("expected master admin snapshot, got %+v", snap)
	}
}
