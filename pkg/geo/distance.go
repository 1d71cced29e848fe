// Package geo provides the static airport table, great-circle distances,
// route classification, and hub ranking used by the deal search.
package geo

import (
	"math"
	"sort"
)

const (
	// EarthRadiusMiles is the mean radius of Earth in miles.
	EarthRadiusMiles = 3959.0

	// DefaultDistanceMiles is the conservative fallback returned when either
	// airport code is not in the table.
	DefaultDistanceMiles = 1000.0
)

// RouteType classifies a route by the countries of its endpoints.
type RouteType string

const (
	RouteDomestic      RouteType = "domestic"
	RouteInternational RouteType = "international"
)

// majorHubs is the fixed set of US hubs considered for connection routing.
var majorHubs = []string{"ORD", "ATL", "DFW", "DEN", "IAH", "SFO", "LAX", "JFK", "EWR"}

// Haversine calculates the great-circle distance between two points
// on Earth given their latitude and longitude in decimal degrees.
// Returns the distance in miles.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Distance returns the great-circle distance in miles between two airports.
// Unknown codes never fail; they fall back to DefaultDistanceMiles.
func Distance(a, b string) float64 {
	from, okA := Lookup(a)
	to, okB := Lookup(b)
	if !okA || !okB {
		return DefaultDistanceMiles
	}
	return Haversine(from.Lat, from.Lon, to.Lat, to.Lon)
}

// Route classifies a route as domestic or international. Unknown codes
// degrade to domestic.
func Route(a, b string) RouteType {
	from, okA := Lookup(a)
	to, okB := Lookup(b)
	if !okA || !okB {
		return RouteDomestic
	}
	if from.Country == to.Country {
		return RouteDomestic
	}
	return RouteInternational
}

// OptimalHubs ranks the major hubs by the extra distance a connection
// through the hub adds to the direct route, and returns the best three.
// The route endpoints are never returned as hubs.
func OptimalHubs(origin, destination string) []string {
	direct := Distance(origin, destination)

	type detour struct {
		hub   string
		extra float64
	}
	candidates := make([]detour, 0, len(majorHubs))
	for _, hub := range majorHubs {
		if hub == origin || hub == destination {
			continue
		}
		extra := Distance(origin, hub) + Distance(hub, destination) - direct
		candidates = append(candidates, detour{hub: hub, extra: extra})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].extra < candidates[j].extra
	})

	n := 3
	if len(candidates) < n {
		n = len(candidates)
	}
	hubs := make([]string, 0, n)
	for _, c := range candidates[:n] {
		hubs = append(hubs, c.hub)
	}
	return hubs
}
