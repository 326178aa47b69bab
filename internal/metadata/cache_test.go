package metadata

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupCache(t *testing.T) *Cache {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE catalog_cache (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		expires_at TIMESTAMP NOT NULL
	)`)
	require.NoError(t, err)
	return NewCache(db)
}

func TestCacheSetGet(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", []byte(`{"a":1}`), time.Hour))
	got, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), got)
}

func TestCacheOverwrite(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("old"), time.Hour))
	require.NoError(t, cache.Set(ctx, "k", []byte("new"), time.Hour))

	got, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestCacheExpiry(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), -time.Minute))
	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
}

func TestCachePrune(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "expired", []byte("v"), -time.Minute))
	require.NoError(t, cache.Set(ctx, "live", []byte("v"), time.Hour))

	pruned, err := cache.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	_, ok := cache.Get(ctx, "live")
	assert.True(t, ok)
}
