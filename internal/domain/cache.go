package domain

import "context"

// CacheTag groups cache entries that are invalidated together.
type CacheTag string

const (
	CacheSessionDates CacheTag = "session_dates"
	CacheSessionStats CacheTag = "session_stats"
	CacheSessionList  CacheTag = "session_list"
)

// Cache is a key-based invalidatable lookup layer. Implementations are
// best-effort on the read path: a failed lookup reports a miss so callers
// fall through to the source of truth. Invalidation removes every entry
// under the given tags.
type Cache interface {
	Get(ctx context.Context, tag CacheTag, key string, dest any) (bool, error)
	Set(ctx context.Context, tag CacheTag, key string, value any) error
	Invalidate(ctx context.Context, tags ...CacheTag) error
}
