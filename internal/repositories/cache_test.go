package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/statsweb/internal/shared"
)

// setupTestCache creates an in-memory cache with migrations applied and a controllable clock.
func setupTestCache(t *testing.T) (*CacheRepository, *time.Time) {
	t.Helper()

	repo, db, err := OpenCache(":memory:")
	if err != nil {
		t.Fatalf("failed to open test cache: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	return repo, &now
}

func TestCacheRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Put And Get", func(t *testing.T) {
		repo, _ := setupTestCache(t)

		if err := repo.Put(ctx, "genre:rock", []byte(`{"item":{"tag":"rock"}}`)); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		body, err := repo.Get(ctx, "genre:rock", time.Minute)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if string(body) != `{"item":{"tag":"rock"}}` {
			t.Errorf("unexpected body: %s", body)
		}
	})

	t.Run("Miss", func(t *testing.T) {
		repo, _ := setupTestCache(t)

		if _, err := repo.Get(ctx, "genre:none", time.Minute); !errors.Is(err, shared.ErrCacheMiss) {
			t.Errorf("expected ErrCacheMiss, got %v", err)
		}
	})

	t.Run("Stale Entry Is A Miss", func(t *testing.T) {
		repo, now := setupTestCache(t)

		if err := repo.Put(ctx, "track:1", []byte(`{}`)); err != nil {
			t.Fatalf("failed to put: %v", err)
		}
		*now = now.Add(10 * time.Minute)

		if _, err := repo.Get(ctx, "track:1", 5*time.Minute); !errors.Is(err, shared.ErrCacheMiss) {
			t.Errorf("expected stale entry to miss, got %v", err)
		}
		if _, err := repo.Get(ctx, "track:1", 0); err != nil {
			t.Errorf("expected zero maxAge to accept any age, got %v", err)
		}
	})

	t.Run("Put Replaces", func(t *testing.T) {
		repo, now := setupTestCache(t)

		repo.Put(ctx, "track:1", []byte(`old`))
		*now = now.Add(time.Hour)
		if err := repo.Put(ctx, "track:1", []byte(`new`)); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}

		body, err := repo.Get(ctx, "track:1", time.Minute)
		if err != nil {
			t.Fatalf("failed to get replaced entry: %v", err)
		}
		if string(body) != "new" {
			t.Errorf("expected replaced body, got %s", body)
		}

		if n, _ := repo.Count(ctx); n != 1 {
			t.Errorf("expected 1 entry, got %d", n)
		}
	})

	t.Run("Prune", func(t *testing.T) {
		repo, now := setupTestCache(t)

		repo.Put(ctx, "genre:old", []byte(`1`))
		*now = now.Add(2 * time.Hour)
		repo.Put(ctx, "genre:new", []byte(`2`))

		removed, err := repo.Prune(ctx, time.Hour)
		if err != nil {
			t.Fatalf("failed to prune: %v", err)
		}
		if removed != 1 {
			t.Errorf("expected 1 pruned entry, got %d", removed)
		}
		if _, err := repo.Get(ctx, "genre:new", 0); err != nil {
			t.Errorf("expected fresh entry to survive, got %v", err)
		}
	})

	t.Run("Purge", func(t *testing.T) {
		repo, _ := setupTestCache(t)

		repo.Put(ctx, "a", []byte(`1`))
		repo.Put(ctx, "b", []byte(`2`))

		removed, err := repo.Purge(ctx)
		if err != nil {
			t.Fatalf("failed to purge: %v", err)
		}
		if removed != 2 {
			t.Errorf("expected 2 purged entries, got %d", removed)
		}
		if n, _ := repo.Count(ctx); n != 0 {
			t.Errorf("expected empty cache, got %d", n)
		}
	})
}

func TestOpenCacheDisabled(t *testing.T) {
	if _, _, err := OpenCache(""); !errors.Is(err, shared.ErrCacheDisabled) {
		t.Errorf("expected ErrCacheDisabled, got %v", err)
	}
}
