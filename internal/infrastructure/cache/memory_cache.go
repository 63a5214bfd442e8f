package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"modpanel/internal/ports"
)

// MemoryCache is a process-local LRU with a single TTL for every entry; the
// per-call ttl argument is ignored.
type MemoryCache struct {
	lru *expirable.LRU[string, string]
}

var _ ports.Cache = (*MemoryCache)(nil)

// NewMemoryCache builds an LRU holding up to size entries. A size or ttl of zero means unlimited.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return "", false, err
	}
	value, ok := c.lru.Get(trimmedKey)
	return value, ok, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value string, _ time.Duration) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}
	c.lru.Add(trimmedKey, value)
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}
	c.lru.Remove(trimmedKey)
	return nil
}
