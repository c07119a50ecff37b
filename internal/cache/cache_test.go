package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return New(rdb, time.Minute), mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []entry{{Name: "cardiology", Count: 3}})

	var got []entry
	require.True(t, c.Get(ctx, "k", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "cardiology", got[0].Name)
	assert.Equal(t, 3, got[0].Count)
}

func TestCacheMissAndDelete(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	var got entry
	assert.False(t, c.Get(ctx, "absent", &got))

	c.Set(ctx, "k", entry{Name: "x"})
	c.Delete(ctx, "k")
	assert.False(t, c.Get(ctx, "k", &got))
}

func TestCacheCorruptPayloadIsMiss(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("k", "{not json"))

	var got entry
	assert.False(t, c.Get(ctx, "k", &got))
}

func TestCacheNilClientNoOp(t *testing.T) {
	c := New(nil, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "k", entry{Name: "x"})
	var got entry
	assert.False(t, c.Get(ctx, "k", &got))
	c.Delete(ctx, "k")

	var nilCache *Cache
	assert.False(t, nilCache.Get(ctx, "k", &got))
}
