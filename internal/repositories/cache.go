package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/statsweb/internal/shared"
)

// CacheRepository implements services.Cacher on top of the api_cache table.
type CacheRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCacheRepository creates a new CacheRepository with the given database connection
func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{db: db, now: time.Now}
}

// OpenCache opens the SQLite database at path, applies migrations and returns the repository.
func OpenCache(path string) (*CacheRepository, *sql.DB, error) {
	if path == "" {
		return nil, nil, shared.ErrCacheDisabled
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, err
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}

	return NewCacheRepository(db), db, nil
}

// Get returns the body stored under key when it is at most maxAge old.
//
// A maxAge of zero or less accepts entries of any age.
func (r *CacheRepository) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, error) {
	var body []byte
	var fetchedAt time.Time

	err := r.db.QueryRowContext(ctx, "SELECT body, fetched_at FROM api_cache WHERE key = ?", key).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if maxAge > 0 && r.now().Sub(fetchedAt) > maxAge {
		return nil, shared.ErrCacheMiss
	}

	return body, nil
}

// Put stores body under key, replacing any previous entry.
func (r *CacheRepository) Put(ctx context.Context, key string, body []byte) error {
	query := `
		INSERT INTO api_cache (key, body, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, body, r.now().UTC()); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Purge deletes every entry and returns how many were removed.
func (r *CacheRepository) Purge(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM api_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return res.RowsAffected()
}

// Prune deletes entries older than maxAge and returns how many were removed.
func (r *CacheRepository) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := r.now().Add(-maxAge).UTC()
	res, err := r.db.ExecContext(ctx, "DELETE FROM api_cache WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of cached entries.
func (r *CacheRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM api_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}
