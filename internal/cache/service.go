// Package cache implements the read-through, time-boxed cache over
// remote fetches. When the fetch path fails, an expired entry is still
// served as a degraded read and flagged stale.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clinicore/syncengine/internal/clock"
	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/internal/storage"
)

// Fetcher is the remote call abstraction a read-through Get refreshes
// from. It must respect ctx cancellation; the cache bounds it with a
// timeout.
type Fetcher func(ctx context.Context) ([]byte, error)

// Result is a cache read outcome. Stale marks values served past their
// TTL because no network path was available.
type Result struct {
	StoredAt time.Time
	Value    []byte
	Stale    bool
}

// Service defines the cache layer
type Service interface {
	// Get returns the cached value for (kind, key) if fresh, otherwise
	// refreshes via fetch. On fetch failure the last stored value is
	// returned stale; if nothing was ever cached, the error wraps
	// models.ErrNotAvailableOffline.
	Get(ctx context.Context, kind, key string, ttl time.Duration, fetch Fetcher) (*Result, error)

	// Invalidate drops every cached entry of a resource kind
	Invalidate(ctx context.Context, kind string) error
}

type service struct {
	store        storage.CacheStorage
	logger       *slog.Logger
	clk          clock.Clock
	fetchTimeout time.Duration
}

// NewService creates a new cache service. fetchTimeout bounds every
// fetch attempt; zero selects the default of 15 seconds.
func NewService(store storage.CacheStorage, clk clock.Clock, fetchTimeout time.Duration, logger *slog.Logger) Service {
	if fetchTimeout <= 0 {
		fetchTimeout = 15 * time.Second
	}
	return &service{
		store:        store,
		logger:       logger,
		clk:          clk,
		fetchTimeout: fetchTimeout,
	}
}

// Get implements read-through with degraded-read fallback
func (s *service) Get(ctx context.Context, kind, key string, ttl time.Duration, fetch Fetcher) (*Result, error) {
	now := s.clk.Now()

	entry, err := s.store.GetCacheEntry(ctx, kind, key)
	if err != nil && !errors.Is(err, storage.ErrCacheEntryNotFound) {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	if entry != nil && !entry.Expired(now) {
		return &Result{Value: entry.Value, StoredAt: entry.StoredAt}, nil
	}

	// Entry missing or expired: attempt a bounded live fetch
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	value, fetchErr := fetch(fetchCtx)
	if fetchErr == nil {
		fresh := &models.CacheEntry{
			Kind:      kind,
			Key:       key,
			Value:     value,
			StoredAt:  now,
			ExpiresAt: now.Add(ttl),
		}
		if err := s.store.SaveCacheEntry(ctx, fresh); err != nil {
			return nil, fmt.Errorf("failed to store cache entry: %w", err)
		}
		return &Result{Value: value, StoredAt: now}, nil
	}

	// Fetch failed (including timeout): degrade to the stale value if
	// one was ever stored
	if entry != nil {
		s.logger.Warn("serving stale cache entry",
			"kind", kind,
			"key", key,
			"stored_at", entry.StoredAt,
			"error", fetchErr)
		return &Result{Value: entry.Value, StoredAt: entry.StoredAt, Stale: true}, nil
	}

	return nil, fmt.Errorf("%w: %s/%s: %s", models.ErrNotAvailableOffline, kind, key, fetchErr)
}

// Invalidate drops every cached entry of a resource kind
func (s *service) Invalidate(ctx context.Context, kind string) error {
	if err := s.store.InvalidateKind(ctx, kind); err != nil {
		return fmt.Errorf("failed to invalidate kind %s: %w", kind, err)
	}
	s.logger.Debug("invalidated cache kind", "kind", kind)
	return nil
}
