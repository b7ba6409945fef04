package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys for cached catalog reads.
const (
	FeaturedKey   = "catalog:featured"
	CategoriesKey = "catalog:categories"
)

// MedicineKey is the cache key of a single medicine detail.
func MedicineKey(id string) string { return fmt.Sprintf("catalog:medicine:%s", id) }

// CategoryKey is the cache key of a single category detail.
func CategoryKey(id string) string { return fmt.Sprintf("catalog:category:%s", id) }

// Catalog is a JSON cache-aside store for hot catalog reads backed by Redis.
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration

	hits   atomic.Int64
	misses atomic.Int64
	errs   atomic.Int64
}

// NewCatalog wraps an existing Redis client; ttl applies to every entry.
func NewCatalog(rdb *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{rdb: rdb, ttl: ttl}
}

// Load decodes the entry at key into dst. A miss returns (false, nil).
func (c *Catalog) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.misses.Add(1)
		return false, nil
	}
	if err != nil {
		c.errs.Add(1)
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// corrupt entry, treat as a miss and let the caller overwrite it
		c.misses.Add(1)
		return false, nil
	}
	c.hits.Add(1)
	return true, nil
}

// Store writes v as JSON with the configured TTL.
func (c *Catalog) Store(ctx context.Context, key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.errs.Add(1)
		return err
	}
	return nil
}

// Delete removes keys in a single pipeline round trip.
func (c *Catalog) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	pipe := c.rdb.Pipeline()
	for _, k := range keys {
		pipe.Del(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.errs.Add(1)
		return err
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *Catalog) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

// Counters reports hit/miss/error totals since start or the last reset.
func (c *Catalog) Counters() Counters {
	return Counters{Hits: c.hits.Load(), Misses: c.misses.Load(), Errors: c.errs.Load()}
}

// ResetCounters clears recorded counters.
func (c *Catalog) ResetCounters() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.errs.Store(0)
}

// Counters summarises cache effectiveness.
type Counters struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}
