package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"modpanel/internal/infrastructure/persistence/gormsql/model"
)

func setupSQLCache(t *testing.T) *SQLCache {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "cache.db")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&model.CacheEntry{}); err != nil {
		t.Fatalf("auto migrate cache_entries: %v", err)
	}

	return NewSQLCache(db)
}

func TestSQLCacheSetGetDelete(t *testing.T) {
	cache := setupSQLCache(t)
	ctx := context.Background()
	key := "player_name:s1:ae51c849-3f2a-4a37-986d-55ed5b02307f"

	if err := cache.Set(ctx, key, "confuser", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, found, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatalf("Get() expected found=true")
	}
	if value != "confuser" {
		t.Fatalf("Get() value = %q", value)
	}

	if err := cache.Set(ctx, key, "confuser2", 0); err != nil {
		t.Fatalf("Set(update) error = %v", err)
	}

	value, found, err = cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || value != "confuser2" {
		t.Fatalf("Get() after update = %q, found=%v", value, found)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, found, err = cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() after delete error = %v", err)
	}
	if found {
		t.Fatalf("Get() expected found=false after delete")
	}
}

func TestSQLCacheExpiresEntries(t *testing.T) {
	cache := setupSQLCache(t)
	ctx := context.Background()

	base := time.Unix(1_700_000_000, 0)
	cache.now = func() time.Time { return base }

	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, found, _ := cache.Get(ctx, "k"); !found {
		t.Fatalf("Get() before expiry expected found=true")
	}

	cache.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, found, _ := cache.Get(ctx, "k"); found {
		t.Fatalf("Get() after expiry expected found=false")
	}
}

func TestSQLCacheRejectsEmptyKey(t *testing.T) {
	cache := setupSQLCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "", "v", 0); err == nil {
		t.Fatalf("Set() expected error for empty key")
	}
	if _, _, err := cache.Get(ctx, " "); err == nil {
		t.Fatalf("Get() expected error for empty key")
	}
	if err := cache.Delete(ctx, ""); err == nil {
		t.Fatalf("Delete() expected error for empty key")
	}
}
