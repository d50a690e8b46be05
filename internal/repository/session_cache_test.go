package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Without a Redis client every cache operation must be a safe no-op so the
// session middleware can run against the database alone.
func TestSessionCacheDegradesWithoutRedis(t *testing.T) {
	ctx := context.Background()

	for name, c := range map[string]*SessionCache{
		"nil cache":  nil,
		"nil client": NewSessionCache(nil, 0),
	} {
		_, ok := c.Get(ctx, "tok")
		require.False(t, ok, name)
		require.NotPanics(t, func() { c.Set(ctx, "tok", 1) }, name)
		require.NotPanics(t, func() { c.Del(ctx, "tok") }, name)
	}
}

func TestSessionCacheIgnoresEmptyToken(t *testing.T) {
	c := NewSessionCache(nil, 0)
	_, ok := c.Get(context.Background(), "")
	require.False(t, ok)
}
