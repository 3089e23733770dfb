// Package redis implements the Redis-backed tag cache.
//
// Cached read models (session dates, stats, day listings) are grouped under
// tags so writers can invalidate a whole family of keys without knowing the
// individual key shapes. All reads are best-effort: a Redis failure degrades
// to a cache miss, never to a request failure.
package redis
