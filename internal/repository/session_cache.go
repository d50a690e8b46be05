package repository

// session_cache.go keeps a Redis lookaside cache in front of the
// session-token resolution done by the session middleware. When Redis is
// unavailable the cache degrades to a no-op and every lookup falls through
// to the database; the service stays correct, just slower.

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionCache maps session tokens to user ids with a bounded lifetime.
// The store remains authoritative: entries only short-circuit the token
// lookup, never the user fetch, and expiry here does not invalidate the
// session itself.
type SessionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionCache wraps the given client. A nil client is allowed and
// yields a cache whose operations all no-op.
func NewSessionCache(rdb *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionCache{rdb: rdb, ttl: ttl}
}

// Get returns the user id cached for token, if any. Redis errors are
// treated as misses.
func (c *SessionCache) Get(ctx context.Context, token string) (uint64, bool) {
	if c == nil || c.rdb == nil || token == "" {
		return 0, false
	}
	v, err := c.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Set records token -> userID. Failures are ignored; the next lookup just
// misses.
func (c *SessionCache) Set(ctx context.Context, token string, userID uint64) {
	if c == nil || c.rdb == nil || token == "" {
		return
	}
	_ = c.rdb.Set(ctx, sessionKeyPrefix+token, strconv.FormatUint(userID, 10), c.ttl).Err()
}

// Del drops the cached entry for token, used on logout and user deletion.
func (c *SessionCache) Del(ctx context.Context, token string) {
	if c == nil || c.rdb == nil || token == "" {
		return
	}
	_ = c.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}
