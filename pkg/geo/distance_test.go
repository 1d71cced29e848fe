package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKnownRoute(t *testing.T) {
	t.Parallel()

	// JFK-LAX is roughly 2,475 great-circle miles.
	d := Distance("JFK", "LAX")
	assert.InDelta(t, 2475, d, 25)

	// Distance is symmetric.
	assert.InDelta(t, d, Distance("LAX", "JFK"), 0.001)
}

func TestDistanceUnknownAirportFallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultDistanceMiles, Distance("XXX", "LAX"))
	assert.Equal(t, DefaultDistanceMiles, Distance("JFK", "ZZZ"))
	assert.Equal(t, DefaultDistanceMiles, Distance("XXX", "ZZZ"))
}

func TestRouteClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want RouteType
	}{
		{"same country", "JFK", "LAX", RouteDomestic},
		{"different country", "JFK", "LHR", RouteInternational},
		{"canada", "SEA", "YVR", RouteInternational},
		{"unknown origin defaults to domestic", "XXX", "LAX", RouteDomestic},
		{"unknown destination defaults to domestic", "JFK", "ZZZ", RouteDomestic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.a, tt.b))
		})
	}
}

func TestOptimalHubsExcludesEndpoints(t *testing.T) {
	t.Parallel()

	hubs := OptimalHubs("JFK", "LAX")
	require.Len(t, hubs, 3)
	assert.NotContains(t, hubs, "JFK")
	assert.NotContains(t, hubs, "LAX")
}

func TestOptimalHubsPrefersOnRouteHubs(t *testing.T) {
	t.Parallel()

	// Denver sits almost on the JFK-LAX great circle, so it should rank
	// ahead of far-off-route hubs like Miami-adjacent ATL.
	hubs := OptimalHubs("JFK", "LAX")
	assert.Contains(t, hubs, "DEN")
}

func TestLookup(t *testing.T) {
	t.Parallel()

	a, ok := Lookup("ORD")
	require.True(t, ok)
	assert.Equal(t, "Chicago", a.City)
	assert.Equal(t, "US", a.Country)
	assert.Equal(t, "America/Chicago", a.Timezone)

	_, ok = Lookup("???")
	assert.False(t, ok)
}
