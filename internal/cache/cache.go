// Package cache provides a thin JSON cache over Redis for read-heavy
// directory and catalog listings. A nil client degrades to a no-op so dev
// mode works without Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get unmarshals the cached value into dest. The boolean reports a hit;
// cache errors are swallowed into a miss so Redis outages never fail reads.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, dest) == nil
}

// Set stores val under key for the configured TTL, best effort.
func (c *Cache) Set(ctx context.Context, key string, val any) {
	if c == nil || c.rdb == nil {
		return
	}
	payload, err := json.Marshal(val)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, payload, c.ttl)
}

// Delete drops the given keys after a write invalidates them.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return
	}
}
