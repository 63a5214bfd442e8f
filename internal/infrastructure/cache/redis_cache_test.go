package cache

import (
	"context"
	"testing"
	"time"
)

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not a url", 16, time.Minute); err == nil {
		t.Fatalf("NewRedisCache() expected error for invalid url")
	}
}

func TestNewRedisCacheFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0", 16, time.Minute); err == nil {
		t.Fatalf("NewRedisCache() expected ping error")
	}
}

func TestRedisCacheKeyIsNamespaced(t *testing.T) {
	if got := redisCacheKey("player_name:s1:x"); got != "modpanel/player_name:s1:x" {
		t.Fatalf("redisCacheKey() = %q", got)
	}
}
