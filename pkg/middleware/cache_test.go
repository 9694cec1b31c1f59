package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeResponseStore struct {
	entries map[string][]byte
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{entries: map[string][]byte{}}
}

func (s *fakeResponseStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *fakeResponseStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.entries[key] = value
	return nil
}

func cachedHandler(store *fakeResponseStore, calls *int, handler http.HandlerFunc) http.Handler {
	mw := ResponseCache(store, time.Minute, zap.NewNop())
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		handler(w, r)
	}))
}

func TestResponseCacheServesRepeatGet(t *testing.T) {
	store := newFakeResponseStore()
	calls := 0
	h := cachedHandler(store, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accommodations":[]}`))
	})

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/accommodations?page=1", nil))

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/accommodations?page=1", nil))

	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatal("second response not served from cache")
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("cached body %q differs from original %q", second.Body.String(), first.Body.String())
	}
}

func TestResponseCacheSkipsAuthenticatedRequests(t *testing.T) {
	store := newFakeResponseStore()
	calls := 0
	// Echo the credential so a cross-user leak would be visible in the body.
	h := cachedHandler(store, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bookings_for":"` + r.Header.Get("Authorization") + `"}`))
	})

	reqA := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	reqA.Header.Set("Authorization", "Bearer user-a")
	recA := httptest.NewRecorder()
	h.ServeHTTP(recA, reqA)

	reqB := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	reqB.Header.Set("Authorization", "Bearer user-b")
	recB := httptest.NewRecorder()
	h.ServeHTTP(recB, reqB)

	if calls != 2 {
		t.Fatalf("handler ran %d times, want 2 for authenticated requests", calls)
	}
	if recB.Header().Get("X-Cache") == "HIT" {
		t.Fatal("authenticated response served from cache")
	}
	if got := recB.Body.String(); got != `{"bookings_for":"Bearer user-b"}` {
		t.Fatalf("second user received %q", got)
	}
	if len(store.entries) != 0 {
		t.Fatalf("authenticated responses stored: %v", store.entries)
	}
}

func TestResponseCacheOnlyStoresOK(t *testing.T) {
	store := newFakeResponseStore()
	calls := 0
	h := cachedHandler(store, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tours/missing", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tours/missing", nil))

	if calls != 2 {
		t.Fatalf("handler ran %d times, want 2 when nothing is cacheable", calls)
	}
	if len(store.entries) != 0 {
		t.Fatalf("non-200 response stored: %v", store.entries)
	}
}
