package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RachelRYuan/Blogen/internal/cache"
)

type fakeCountStore struct {
	userCalls int
	postCalls int
	users     int64
	posts     int64
	err       error
}

func (f *fakeCountStore) CountUsers(ctx context.Context) (int64, error) {
	f.userCalls++
	return f.users, f.err
}

func (f *fakeCountStore) CountPosts(ctx context.Context) (int64, error) {
	f.postCalls++
	return f.posts, f.err
}

func TestCountsCache_ReadThrough(t *testing.T) {
	store := &fakeCountStore{users: 12, posts: 48}
	cc := NewCountsCache(store, cache.NewMemoryCache[int64]())
	ctx := context.Background()

	users, err := cc.GetUsersCount(ctx, time.Minute)
	if err != nil {
		t.Fatalf("GetUsersCount failed: %v", err)
	}
	if users != 12 {
		t.Errorf("expected 12 users, got %d", users)
	}

	// Second read must come from cache
	if _, err := cc.GetUsersCount(ctx, time.Minute); err != nil {
		t.Fatalf("GetUsersCount failed on cache hit: %v", err)
	}
	if store.userCalls != 1 {
		t.Errorf("expected 1 database call, got %d", store.userCalls)
	}

	posts, err := cc.GetPostsCount(ctx, time.Minute)
	if err != nil {
		t.Fatalf("GetPostsCount failed: %v", err)
	}
	if posts != 48 {
		t.Errorf("expected 48 posts, got %d", posts)
	}
}

func TestCountsCache_StoreError(t *testing.T) {
	store := &fakeCountStore{err: errors.New("db down")}
	cc := NewCountsCache(store, cache.NewMemoryCache[int64]())

	if _, err := cc.GetUsersCount(context.Background(), time.Minute); err == nil {
		t.Fatal("expected error when database is unavailable")
	}
}
