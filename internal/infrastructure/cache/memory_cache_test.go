package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGetDelete(t *testing.T) {
	cache := NewMemoryCache(2, time.Minute)
	ctx := context.Background()

	for _, kv := range [][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}} {
		if err := cache.Set(ctx, kv[0], kv[1], 0); err != nil {
			t.Fatalf("Set(%s) error = %v", kv[0], err)
		}
	}

	if _, found, _ := cache.Get(ctx, "a"); found {
		t.Fatalf("Get(a) expected eviction")
	}
	value, found, err := cache.Get(ctx, " c ")
	if err != nil || !found || value != "3" {
		t.Fatalf("Get(c) = %q, %v, %v", value, found, err)
	}

	if err := cache.Delete(ctx, "c"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, _ := cache.Get(ctx, "c"); found {
		t.Fatalf("Get(c) expected found=false after delete")
	}
	if err := cache.Set(ctx, "", "v", 0); err == nil {
		t.Fatalf("Set() expected error for empty key")
	}
	if _, _, err := cache.Get(ctx, "  "); err == nil {
		t.Fatalf("Get() expected error for blank key")
	}
}

func TestMemoryCacheExpiresEntries(t *testing.T) {
	cache := NewMemoryCache(8, 50*time.Millisecond)
	ctx := context.Background()

	if err := cache.Set(ctx, "player_name:s1:x", "confuser", time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if value, found, err := cache.Get(ctx, "player_name:s1:x"); err != nil || !found || value != "confuser" {
		t.Fatalf("Get() before expiry = %q, %v, %v", value, found, err)
	}

	time.Sleep(150 * time.Millisecond)

	if _, found, err := cache.Get(ctx, "player_name:s1:x"); err != nil || found {
		t.Fatalf("Get() after expiry found = %v, err = %v, want miss", found, err)
	}
}
