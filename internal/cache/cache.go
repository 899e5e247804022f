// Package cache caches mobile payloads in Redis so config reads do not hit
// the database on every app launch.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wingbank/appconfig/pkg/metrics"
)

// TTLs per collection. Translations change rarely; the mobile config payload
// embeds release gates so it turns over faster.
const (
	TranslationsTTL = time.Hour
	MobileConfigTTL = 10 * time.Minute
)

// Cache is a JSON value cache. A nil Cache is a no-op passthrough so the
// server runs without Redis in development.
type Cache struct {
	RDB    *redis.Client
	Prefix string
}

// New returns a cache over the given Redis DSN, or nil when dsn is empty.
func New(dsn, prefix string) (*Cache, error) {
	if dsn == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, err
	}
	return &Cache{RDB: redis.NewClient(opt), Prefix: prefix}, nil
}

func (c *Cache) key(collection, suffix string) string {
	k := c.Prefix + collection
	if suffix != "" {
		k += ":" + suffix
	}
	return k
}

// Get unmarshals the cached value into dst. The bool reports a hit.
func (c *Cache) Get(ctx context.Context, collection, suffix string, dst any) (bool, error) {
	if c == nil || c.RDB == nil {
		return false, nil
	}
	data, err := c.RDB.Get(ctx, c.key(collection, suffix)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues(collection).Inc()
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	metrics.CacheHits.WithLabelValues(collection).Inc()
	return true, nil
}

// Set stores v as JSON under the collection key with the given TTL.
func (c *Cache) Set(ctx context.Context, collection, suffix string, v any, ttl time.Duration) error {
	if c == nil || c.RDB == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, c.key(collection, suffix), data, ttl).Err()
}

// Invalidate drops every key under a collection. Called after admin writes.
func (c *Cache) Invalidate(ctx context.Context, collection string) error {
	if c == nil || c.RDB == nil {
		return nil
	}
	var cursor uint64
	pattern := c.key(collection, "*")
	// the bare collection key has no suffix
	if err := c.RDB.Del(ctx, c.key(collection, "")).Err(); err != nil {
		return err
	}
	for {
		keys, next, err := c.RDB.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.RDB.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
