package flights

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanRana/reallycheapflightfinderbro/pkg/cache"
)

func newCachedSource(t *testing.T, source PriceSource, ttl time.Duration) (*CachedSource, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	manager := cache.NewManager(cache.NewRedisCache(client, "test"))
	return NewCachedSource(source, manager, ttl, nil), mr
}

func TestCachedSourceServesFromCache(t *testing.T) {
	var calls atomic.Int64
	source := SourceFunc(func(ctx context.Context, args SearchArgs) ([]Itinerary, error) {
		calls.Add(1)
		return oneItinerary(250), nil
	})
	cached, _ := newCachedSource(t, source, 5*time.Minute)
	ctx := context.Background()

	first, err := cached.Search(ctx, testArgs())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := cached.Search(ctx, testArgs())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load())
}

func TestCachedSourceExpiresAfterTTL(t *testing.T) {
	var calls atomic.Int64
	source := SourceFunc(func(ctx context.Context, args SearchArgs) ([]Itinerary, error) {
		calls.Add(1)
		return oneItinerary(250), nil
	})
	cached, mr := newCachedSource(t, source, 5*time.Minute)
	ctx := context.Background()

	_, err := cached.Search(ctx, testArgs())
	require.NoError(t, err)

	mr.FastForward(6 * time.Minute)

	_, err = cached.Search(ctx, testArgs())
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestCachedSourceDistinctQueriesMiss(t *testing.T) {
	var calls atomic.Int64
	source := SourceFunc(func(ctx context.Context, args SearchArgs) ([]Itinerary, error) {
		calls.Add(1)
		return oneItinerary(250), nil
	})
	cached, _ := newCachedSource(t, source, 5*time.Minute)
	ctx := context.Background()

	_, err := cached.Search(ctx, testArgs())
	require.NoError(t, err)

	other := testArgs()
	other.Destination = "SFO"
	_, err = cached.Search(ctx, other)
	require.NoError(t, err)

	assert.Equal(t, int64(2), calls.Load())
}
