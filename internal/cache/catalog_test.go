package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

func newCatalog(t *testing.T, ttl time.Duration) (*Catalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCatalog(rdb, ttl), mr
}

func TestCatalogStoreLoad(t *testing.T) {
	c, mr := newCatalog(t, time.Minute)
	ctx := context.Background()

	var got snapshot
	ok, err := c.Load(ctx, MedicineKey("m1"), &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Store(ctx, MedicineKey("m1"), snapshot{ID: "m1", Price: 12.5}))
	ok, err = c.Load(ctx, MedicineKey("m1"), &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, snapshot{ID: "m1", Price: 12.5}, got)

	mr.FastForward(2 * time.Minute)
	ok, err = c.Load(ctx, MedicineKey("m1"), &got)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, Counters{Hits: 1, Misses: 2}, c.Counters())
}

func TestCatalogDeleteAndCorruptEntry(t *testing.T) {
	c, mr := newCatalog(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Store(ctx, FeaturedKey, []snapshot{{ID: "a"}}))
	require.NoError(t, c.Store(ctx, CategoriesKey, []snapshot{{ID: "b"}}))
	require.NoError(t, c.Delete(ctx, FeaturedKey, CategoriesKey, MedicineKey("none")))
	assert.False(t, mr.Exists(FeaturedKey))
	assert.False(t, mr.Exists(CategoriesKey))

	require.NoError(t, mr.Set(MedicineKey("bad"), "{not json"))
	var got snapshot
	ok, err := c.Load(ctx, MedicineKey("bad"), &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogUnavailable(t *testing.T) {
	c, mr := newCatalog(t, time.Minute)
	mr.Close()

	var got snapshot
	_, err := c.Load(context.Background(), FeaturedKey, &got)
	assert.Error(t, err)
	assert.Error(t, c.Ping(context.Background()))
	assert.EqualValues(t, 1, c.Counters().Errors)
}
