package flights

import (
	"context"
	"errors"
	"time"

	"github.com/RyanRana/reallycheapflightfinderbro/pkg/cache"
	"github.com/RyanRana/reallycheapflightfinderbro/pkg/logger"
)

// CachedSource decorates a PriceSource with a short-lived response cache.
// The provider is idempotent for identical inputs within a short window, so
// serving a cached response inside the TTL is equivalent to calling it.
type CachedSource struct {
	source PriceSource
	cache  *cache.Manager
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedSource wraps source with the given cache manager and TTL. A
// non-positive TTL falls back to cache.DefaultTTL.
func NewCachedSource(source PriceSource, manager *cache.Manager, ttl time.Duration, log *logger.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	if log == nil {
		log = logger.Discard()
	}
	return &CachedSource{source: source, cache: manager, ttl: ttl, log: log}
}

// Search implements PriceSource. Cache failures other than a miss are
// logged and treated as misses; a cache write failure never fails the search.
func (s *CachedSource) Search(ctx context.Context, args SearchArgs) ([]Itinerary, error) {
	key := s.key(args)

	var cached []Itinerary
	err := s.cache.GetJSON(ctx, key, &cached)
	if err == nil {
		s.log.Debug("price lookup served from cache", "key", key)
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("price cache read failed", "key", key, "error", err)
	}

	itineraries, err := s.source.Search(ctx, args)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, key, itineraries, s.ttl); err != nil {
		s.log.Warn("price cache write failed", "key", key, "error", err)
	}
	return itineraries, nil
}

func (s *CachedSource) key(args SearchArgs) string {
	ret := ""
	if args.Return != nil {
		ret = args.Return.Format(time.DateOnly)
	}
	return cache.FlightSearchKey(
		args.Origin, args.Destination,
		args.Departure.Format(time.DateOnly), ret,
		string(args.Cabin), args.Adults)
}
