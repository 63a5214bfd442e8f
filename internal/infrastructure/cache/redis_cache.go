package cache

import (
	"context"
	"errors"
	"time"

	rediscache "github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"

	"modpanel/internal/errs"
	"modpanel/internal/ports"
)

// RedisCache shares entries between panel instances, fronted by a small local TinyLFU.
type RedisCache struct {
	data       *rediscache.Cache
	client     *redis.Client
	defaultTTL time.Duration
}

var _ ports.Cache = (*RedisCache)(nil)

func NewRedisCache(ctx context.Context, redisURL string, localSize int, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errs.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opt)
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "ping redis")
	}

	opts := &rediscache.Options{Redis: client}
	if localSize > 0 && ttl > 0 {
		opts.LocalCache = rediscache.NewTinyLFU(localSize, ttl)
	}
	return &RedisCache{
		data:       rediscache.New(opts),
		client:     client,
		defaultTTL: ttl,
	}, nil
}

func redisCacheKey(key string) string {
	return "modpanel/" + key
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return "", false, err
	}

	var value string
	if err := c.data.Get(ctx, redisCacheKey(trimmedKey), &value); err != nil {
		if errors.Is(err, rediscache.ErrCacheMiss) {
			return "", false, nil
		}
		return "", false, errs.Wrap(err, "get redis cache key")
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if err := c.data.Set(&rediscache.Item{
		Ctx:   ctx,
		Key:   redisCacheKey(trimmedKey),
		Value: value,
		TTL:   ttl,
	}); err != nil {
		return errs.Wrap(err, "set redis cache key")
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	if err := c.data.Delete(ctx, redisCacheKey(trimmedKey)); err != nil && !errors.Is(err, rediscache.ErrCacheMiss) {
		return errs.Wrap(err, "delete redis cache key")
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
