package cache

import (
	"strconv"
	"testing"
	"time"
)

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[int](3, time.Minute)

	for i := 0; i < 4; i++ {
		c.Set("k"+strconv.Itoa(i), i)
	}

	if _, ok := c.Get("k0"); ok {
		t.Error("oldest entry should have been evicted")
	}
	for i := 1; i < 4; i++ {
		if v, ok := c.Get("k" + strconv.Itoa(i)); !ok || v != i {
			t.Errorf("expected k%d=%d to survive, got %v ok=%v", i, i, v, ok)
		}
	}
}

func TestLRUCacheGetRefreshesRecency(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Get("a") // a is now most recently used
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted, not a")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should still be cached")
	}
}

func TestLRUCacheTTL(t *testing.T) {
	c := NewLRUCache[string](10, 10*time.Millisecond)
	c.Set("k", "v")

	if _, ok := c.Get("k"); !ok {
		t.Fatal("fresh entry should be readable")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should miss")
	}
	if n := c.Size(); n != 0 {
		t.Errorf("expired entry should be removed on access, size=%d", n)
	}
}

func TestLRUCachePurge(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Purge()

	if n := c.Size(); n != 0 {
		t.Errorf("purge should empty the cache, size=%d", n)
	}
	c.Set("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Error("cache should be usable after purge")
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRUCache[int](10, 5*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)

	time.Sleep(10 * time.Millisecond)
	if n := c.CleanExpired(); n != 2 {
		t.Errorf("expected 2 expired entries cleaned, got %d", n)
	}
}
