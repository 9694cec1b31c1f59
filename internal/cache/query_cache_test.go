package cache

import (
	"testing"
	"time"
)

func TestKeyJoinsParts(t *testing.T) {
	if got := Key("bookings", "u1", "page-10-0"); got != "bookings/u1/page-10-0" {
		t.Fatalf("Key = %q", got)
	}
	if got := Key("accommodations"); got != "accommodations" {
		t.Fatalf("Key = %q", got)
	}
}

func TestGetMissesAfterStaleWindow(t *testing.T) {
	c := NewQueryCache(time.Minute)

	base := time.Now()
	c.SetNowFunc(func() time.Time { return base })

	c.Set("accommodations/featured", []string{"a", "b"})

	value, ok := c.Get("accommodations/featured")
	if !ok {
		t.Fatal("fresh entry should hit")
	}
	if list, _ := value.([]string); len(list) != 2 {
		t.Fatalf("unexpected cached value %v", value)
	}

	c.SetNowFunc(func() time.Time { return base.Add(2 * time.Minute) })
	if _, ok := c.Get("accommodations/featured"); ok {
		t.Fatal("stale entry should miss")
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d after stale read, want 0", c.Len())
	}
}

func TestInvalidateDropsPrefixSubtree(t *testing.T) {
	c := NewQueryCache(time.Minute)

	c.Set("bookings", 1)
	c.Set("bookings/u1/page-10-0", 2)
	c.Set("bookings/u2/page-10-0", 3)
	c.Set("bookings2/u1", 4)
	c.Set("events/upcoming", 5)

	removed := c.Invalidate("bookings")
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}

	// "bookings2" shares the prefix bytes but not the hierarchy.
	if _, ok := c.Get("bookings2/u1"); !ok {
		t.Fatal("sibling key dropped by prefix invalidation")
	}
	if _, ok := c.Get("events/upcoming"); !ok {
		t.Fatal("unrelated key dropped")
	}
	if _, ok := c.Get("bookings/u1/page-10-0"); ok {
		t.Fatal("invalidated key still readable")
	}
}

func TestInvalidateMultiplePrefixes(t *testing.T) {
	c := NewQueryCache(time.Minute)

	c.Set("accommodations/page-10-0", 1)
	c.Set("accommodations/featured", 2)
	c.Set("tours/page-10-0", 3)

	removed := c.Invalidate("accommodations", "tours")
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d, want 0", c.Len())
	}
}

func TestSetRefreshesTimestamp(t *testing.T) {
	c := NewQueryCache(time.Minute)

	base := time.Now()
	c.SetNowFunc(func() time.Time { return base })
	c.Set("events/upcoming", 1)

	c.SetNowFunc(func() time.Time { return base.Add(50 * time.Second) })
	c.Set("events/upcoming", 2)

	c.SetNowFunc(func() time.Time { return base.Add(100 * time.Second) })
	value, ok := c.Get("events/upcoming")
	if !ok {
		t.Fatal("rewritten entry should still be fresh")
	}
	if value != 2 {
		t.Fatalf("value = %v, want 2", value)
	}
}
