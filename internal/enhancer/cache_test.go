package enhancer

import (
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	cache := NewCache()

	if _, ok := cache.Get("missing"); ok {
		t.Error("Get() on empty cache should report absent")
	}

	cache.Set("k1", "v1")
	got, ok := cache.Get("k1")
	if !ok {
		t.Fatal("Get() after Set() should report present")
	}
	if got != "v1" {
		t.Errorf("Get() = %q, want %q", got, "v1")
	}
}

func TestCache_Overwrite(t *testing.T) {
	cache := NewCache()

	cache.Set("k1", "v1")
	cache.Set("k1", "v2")

	got, ok := cache.Get("k1")
	if !ok || got != "v2" {
		t.Errorf("Get() after overwrite = %q, %v; want %q, true", got, ok, "v2")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestCache_Expiry(t *testing.T) {
	cache := NewCache()
	now := time.Now()
	cache.now = func() time.Time { return now }

	cache.Set("k1", "v1")

	// Just inside the TTL the entry is still valid.
	now = now.Add(CacheTTL - time.Second)
	if _, ok := cache.Get("k1"); !ok {
		t.Error("Get() inside TTL should report present")
	}

	// At the TTL boundary the entry is expired and lazily evicted.
	now = now.Add(time.Second)
	if _, ok := cache.Get("k1"); ok {
		t.Error("Get() at TTL boundary should report absent")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() after lazy eviction = %d, want 0", cache.Len())
	}
}

func TestCache_SetRefreshesTTL(t *testing.T) {
	cache := NewCache()
	now := time.Now()
	cache.now = func() time.Time { return now }

	cache.Set("k1", "v1")
	now = now.Add(CacheTTL - time.Minute)
	cache.Set("k1", "v2")

	// The overwrite restarted the clock.
	now = now.Add(time.Hour)
	got, ok := cache.Get("k1")
	if !ok || got != "v2" {
		t.Errorf("Get() after refresh = %q, %v; want %q, true", got, ok, "v2")
	}
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache()

	cache.Set("k1", "v1")
	cache.Set("k2", "v2")
	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", cache.Len())
	}
	if _, ok := cache.Get("k1"); ok {
		t.Error("Get() after Clear() should report absent")
	}
}
