package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dwkang/goalplanner/internal/contracts"
	"github.com/dwkang/goalplanner/pkg/redis"
)

// CachedStore wraps a PriceStore with a Redis read-through cache for
// series lookups. Writes invalidate the cached range entries lazily by
// TTL; the store stays the source of truth.
type CachedStore struct {
	inner contracts.PriceStore
	cache *redis.Cache
	log   zerolog.Logger
}

// NewCachedStore wraps a store with a cache. With caching disabled in
// config the wrapper degrades to pass-through.
func NewCachedStore(inner contracts.PriceStore, cache *redis.Cache, log zerolog.Logger) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: cache,
		log:   log.With().Str("component", "store.cached").Logger(),
	}
}

func (s *CachedStore) SaveSeries(ctx context.Context, series *contracts.PriceSeries) error {
	return s.inner.SaveSeries(ctx, series)
}

func (s *CachedStore) GetSeries(ctx context.Context, symbol string, from, to time.Time) (*contracts.PriceSeries, error) {
	key := redis.SeriesKey(symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))

	var cached contracts.PriceSeries
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		s.log.Debug().Str("symbol", symbol).Msg("series cache hit")
		return &cached, nil
	}

	series, err := s.inner.GetSeries(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, series, redis.TTLDaily); err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("series cache write failed")
	}
	return series, nil
}

func (s *CachedStore) GetLatest(ctx context.Context, symbol string) (*contracts.PricePoint, error) {
	key := redis.LatestKey(symbol)

	var cached contracts.PricePoint
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	point, err := s.inner.GetLatest(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, point, redis.TTLShort); err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("latest cache write failed")
	}
	return point, nil
}

func (s *CachedStore) Symbols(ctx context.Context) ([]string, error) {
	return s.inner.Symbols(ctx)
}
