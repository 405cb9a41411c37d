package cache

import (
	"testing"
	"time"
)

// TestCacheGetSet verifies basic set/get and miss behavior.
func TestCacheGetSet(t *testing.T) {
	c := New[string](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) = hit, want miss")
	}

	c.Set("a", "alpha")
	v, ok := c.Get("a")
	if !ok || v != "alpha" {
		t.Errorf("Get(a) = %q/%v, want alpha/true", v, ok)
	}
}

// TestCacheInvalidate verifies single-key and full invalidation.
func TestCacheInvalidate(t *testing.T) {
	c := New[int](4, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) after Invalidate = hit")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("Get(b) = miss, want hit")
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len after Purge = %d, want 0", c.Len())
	}
}

// TestCacheBounded verifies LRU eviction once the size limit is hit.
func TestCacheBounded(t *testing.T) {
	c := New[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry survived past the size limit")
	}
}

// TestCacheTTL verifies entries expire.
func TestCacheTTL(t *testing.T) {
	c := New[int](4, 20*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived past its TTL")
	}
}
