// Package metadata caches catalog API responses between matching passes.
package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Cache is a SQLite-backed key/value store with per-entry TTLs. Catalog
// lookups are slow and rate limited, so responses are kept across passes
// and process restarts.
type Cache struct {
	db *sql.DB
}

// NewCache creates a cache over the shared database.
func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

// Get retrieves a cached value by key. An expired entry counts as a miss
// and is deleted on the way out.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	var expiresAt time.Time

	row := c.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM catalog_cache WHERE key = ?", key)
	if err := row.Scan(&value, &expiresAt); err != nil {
		return nil, false
	}

	if !time.Now().Before(expiresAt) {
		_, _ = c.db.ExecContext(ctx, "DELETE FROM catalog_cache WHERE key = ?", key)
		return nil, false
	}
	return value, true
}

// Set stores a value, replacing any previous entry under the same key.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO catalog_cache (key, value, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Prune removes all expired entries and returns the number removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx,
		"DELETE FROM catalog_cache WHERE expires_at < ?", time.Now())
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}
