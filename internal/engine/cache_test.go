package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, CacheKey("search", "golang context", "5"), CacheKey("search", "golang context", "5"))
	})

	t.Run("different inputs differ", func(t *testing.T) {
		assert.NotEqual(t, CacheKey("search", "golang", "5"), CacheKey("search", "golang", "10"))
	})

	t.Run("has prefix", func(t *testing.T) {
		assert.Equal(t, "vr:", CacheKey("test")[:3])
	})
}

func TestCacheGetSet(t *testing.T) {
	c := NewCache("", time.Minute, 100, 5*time.Minute)
	defer c.Close()

	ctx := context.Background()
	key := CacheKey("test", "round-trip")

	_, ok := c.Get(ctx, key)
	assert.False(t, ok, "expected miss on empty cache")

	c.Set(ctx, key, []byte("hello"))

	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, "hello", string(got))

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestCacheExpiration(t *testing.T) {
	c := NewCache("", time.Millisecond, 100, 5*time.Minute)
	defer c.Close()

	ctx := context.Background()
	key := CacheKey("test", "expiry")

	c.Set(ctx, key, []byte("temp"))
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok, "expected miss after TTL expiry")
}

func TestCacheEviction(t *testing.T) {
	c := NewCache("", time.Minute, 3, 5*time.Minute)
	defer c.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		c.Set(ctx, CacheKey("evict", fmt.Sprintf("item-%d", i)), []byte(fmt.Sprintf("v%d", i)))
	}
	assert.LessOrEqual(t, c.len(), 3)
}

func TestCacheNilIsMiss(t *testing.T) {
	var c *Cache
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
	c.Set(context.Background(), "k", []byte("v"))
	assert.NoError(t, c.Close())
}

func TestCacheRedisTier(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	key := CacheKey("search", "redis")

	first := NewCache("redis://"+mr.Addr(), time.Minute, 100, 5*time.Minute)
	first.Set(ctx, key, []byte("from-l2"))
	require.NoError(t, first.Close())
	assert.True(t, mr.Exists(key))

	// A fresh cache has an empty L1 and must fall through to Redis.
	second := NewCache("redis://"+mr.Addr(), time.Minute, 100, 5*time.Minute)
	defer second.Close()
	got, ok := second.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, "from-l2", string(got))
}

func TestCacheJSONHelpers(t *testing.T) {
	c := NewCache("", time.Minute, 100, 5*time.Minute)
	defer c.Close()
	ctx := context.Background()

	in := []CandidateVideo{{ID: "a", Title: "A", LikeCount: 3, ViewCount: 10}}
	CacheStoreJSON(ctx, c, "k", in)

	out, ok := CacheLoadJSON[[]CandidateVideo](ctx, c, "k")
	require.True(t, ok)
	assert.Equal(t, in, out)

	c.Set(ctx, "bad", []byte("{not json"))
	_, ok = CacheLoadJSON[[]CandidateVideo](ctx, c, "bad")
	assert.False(t, ok)
}
