package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStorage instance
func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStorage(client, time.Hour), mr
}

func TestRedisStorage_LoadMissingIsEmpty(t *testing.T) {
	storage, _ := setupTestRedis(t)

	items, err := storage.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestRedisStorage_SaveAndLoad(t *testing.T) {
	storage, mr := setupTestRedis(t)
	ctx := context.Background()

	items := []Item{
		{Product: product("a", "10.00"), Quantity: 2},
		{Product: product("b", "5.50"), Quantity: 1},
	}
	require.NoError(t, storage.Save(ctx, "c1", items))

	stored, err := mr.Get("sauda-cart:c1")
	require.NoError(t, err)
	var raw []Item
	require.NoError(t, json.Unmarshal([]byte(stored), &raw))
	assert.Len(t, raw, 2)

	got, err := storage.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestRedisStorage_SaveSetsTTL(t *testing.T) {
	storage, mr := setupTestRedis(t)

	require.NoError(t, storage.Save(context.Background(), "c1", []Item{{Product: product("a", "1.00"), Quantity: 1}}))
	assert.Equal(t, time.Hour, mr.TTL("sauda-cart:c1"))
}

func TestRedisStorage_SaveEmptyDeletes(t *testing.T) {
	storage, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "c1", []Item{{Product: product("a", "1.00"), Quantity: 1}}))
	require.True(t, mr.Exists("sauda-cart:c1"))

	require.NoError(t, storage.Save(ctx, "c1", []Item{}))
	assert.False(t, mr.Exists("sauda-cart:c1"))
}

func TestRedisStorage_LoadInvalidJSON(t *testing.T) {
	storage, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("sauda-cart:c1", `[{"product":`))

	_, err := storage.Load(context.Background(), "c1")
	require.ErrorContains(t, err, "unmarshal cart failed")
}

func TestRedisStorage_ServerDown(t *testing.T) {
	storage, mr := setupTestRedis(t)
	mr.Close()

	_, err := storage.Load(context.Background(), "c1")
	require.ErrorContains(t, err, "redis get failed")
}

func TestMemoryStorage_RoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	items, err := storage.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, items)

	want := []Item{{Product: product("a", "3.00"), Quantity: 4}}
	require.NoError(t, storage.Save(ctx, "c1", want))

	got, err := storage.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// stored by value, later edits to the slice do not leak in
	want[0].Quantity = 99
	got, err = storage.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 4, got[0].Quantity)
}
