package metrics

import (
	"context"
	"time"

	"github.com/RachelRYuan/Blogen/internal/cache"
)

// countStore defines the database operations needed by CountsCache.
// This interface allows for easier testing without requiring a full store.
type countStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CountPosts(ctx context.Context) (int64, error)
}

// CountsCache provides a read-through cache for the user and post count
// gauges. It queries the database on cache miss and updates the cache for
// subsequent requests, so the periodic gauge refresh stays cheap.
type CountsCache struct {
	store countStore
	cache cache.CacheWithFetch[int64]
}

// NewCountsCache creates a new counts cache for gauge refreshes.
func NewCountsCache(store countStore, c cache.CacheWithFetch[int64]) *CountsCache {
	return &CountsCache{
		store: store,
		cache: c,
	}
}

// GetUsersCount retrieves the number of registered users.
func (m *CountsCache) GetUsersCount(ctx context.Context, ttl time.Duration) (int64, error) {
	return m.cache.GetWithFetch(
		ctx,
		"counts:users",
		ttl,
		func(ctx context.Context, key string) (int64, error) {
			return m.store.CountUsers(ctx)
		},
	)
}

// GetPostsCount retrieves the number of posts.
func (m *CountsCache) GetPostsCount(ctx context.Context, ttl time.Duration) (int64, error) {
	return m.cache.GetWithFetch(
		ctx,
		"counts:posts",
		ttl,
		func(ctx context.Context, key string) (int64, error) {
			return m.store.CountPosts(ctx)
		},
	)
}
