package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/carebase/counseld/internal/domain"
	"github.com/carebase/counseld/internal/metrics"
)

const (
	keyPrefix     = "counseld:"
	scanBatchSize = 100
)

// TagCache implements domain.Cache on Redis. Entries live under
// "counseld:<tag>:<key>" so a whole tag can be dropped with one key scan.
type TagCache struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

func NewTagCache(rdb goredis.Cmdable, ttl time.Duration) *TagCache {
	return &TagCache{rdb: rdb, ttl: ttl}
}

func cacheKey(tag domain.CacheTag, key string) string {
	return keyPrefix + string(tag) + ":" + key
}

// Get reads a cached entry into dest. Redis errors and undecodable payloads
// are reported as misses so the caller falls through to the source of truth.
func (c *TagCache) Get(ctx context.Context, tag domain.CacheTag, key string, dest any) (bool, error) {
	data, err := c.rdb.Get(ctx, cacheKey(tag, key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.CacheMissesTotal.WithLabelValues(string(tag)).Inc()
		return false, nil
	}
	if err != nil {
		slog.Warn("cache read failed, falling through", "tag", tag, "key", key, "error", err)
		metrics.CacheMissesTotal.WithLabelValues(string(tag)).Inc()
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		slog.Warn("failed to unmarshal cached entry, falling through", "tag", tag, "key", key, "error", err)
		metrics.CacheMissesTotal.WithLabelValues(string(tag)).Inc()
		return false, nil
	}

	metrics.CacheHitsTotal.WithLabelValues(string(tag)).Inc()
	return true, nil
}

// Set stores an entry best-effort. A failed write is logged, not returned:
// the next read simply misses.
func (c *TagCache) Set(ctx context.Context, tag domain.CacheTag, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.rdb.Set(ctx, cacheKey(tag, key), encoded, c.ttl).Err(); err != nil {
		slog.Warn("cache write failed", "tag", tag, "key", key, "error", err)
	}
	return nil
}

// Invalidate removes every entry under the given tags. Invalidation must not
// fail silently: a stale survivor would serve wrong data until its TTL.
func (c *TagCache) Invalidate(ctx context.Context, tags ...domain.CacheTag) error {
	for _, tag := range tags {
		var (
			cursor  uint64
			removed int64
		)
		pattern := keyPrefix + string(tag) + ":*"

		for {
			keys, next, err := c.rdb.Scan(ctx, cursor, pattern, scanBatchSize).Result()
			if err != nil {
				return fmt.Errorf("failed to scan cache tag %s: %w", tag, err)
			}

			if len(keys) > 0 {
				deleted, err := c.rdb.Del(ctx, keys...).Result()
				if err != nil {
					return fmt.Errorf("failed to invalidate cache tag %s: %w", tag, err)
				}
				removed += deleted
			}

			cursor = next
			if cursor == 0 {
				break
			}
		}

		metrics.CacheInvalidationsTotal.WithLabelValues(string(tag)).Add(float64(removed))
	}
	return nil
}
