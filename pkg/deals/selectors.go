// Package deals implements the deal search: heuristic selectors, the six
// discovery strategies, the zero-call itinerary analyzer, the curation
// pipeline, and the orchestrating engine.
package deals

import (
	"github.com/RyanRana/reallycheapflightfinderbro/config"
	"github.com/RyanRana/reallycheapflightfinderbro/pkg/geo"
)

// nearbyAirports maps a major airport to its viable alternates, ordered by
// how often swapping them actually saves money.
var nearbyAirports = map[string][]string{
	"JFK": {"EWR", "LGA"},
	"EWR": {"JFK", "LGA"},
	"LGA": {"JFK", "EWR"},
	"LAX": {"BUR", "ONT", "LGB", "SNA"},
	"SFO": {"OAK", "SJC"},
	"ORD": {"MDW"},
	"IAD": {"DCA", "BWI"},
	"MIA": {"FLL", "PBI"},
}

// eastCoast and westCoast are the closed sets used for transcontinental
// route detection.
var (
	eastCoast = map[string]bool{"JFK": true, "EWR": true, "LGA": true, "BOS": true, "DCA": true, "PHL": true}
	westCoast = map[string]bool{"LAX": true, "SFO": true, "SEA": true, "PDX": true, "SAN": true}
)

// genericHubs is the fallback hub preference order for routes that are not
// transcontinental.
var genericHubs = []string{"ORD", "ATL", "DFW", "DEN", "LAX", "SFO", "JFK", "MIA"}

// beyondByDestination keys likely hidden-city "beyond" targets by the real
// destination: cities a through-ticket would plausibly continue to.
var beyondByDestination = map[string][]string{
	"JFK": {"BOS", "PHL"},
	"BOS": {"PVD", "MHT"},
	"ATL": {"BHM", "SAV"},
	"MIA": {"FLL", "PBI"},
	"ORD": {"MKE", "MSN"},
	"DFW": {"AUS", "OKC"},
	"DEN": {"COS", "ABQ"},
	"LAX": {"SAN", "SFO"},
	"SFO": {"SMF", "PDX"},
	"SEA": {"PDX", "YVR"},
}

// positioningCities are cheap-departure cities worth a prior-day hop.
var positioningCities = []string{"FLL", "MIA"}

// NearbyAlternatives returns alternative airports for code. The cheaper the
// baseline, the fewer alternates are worth spending calls on: one below
// $100, two below $200, all of them otherwise.
func NearbyAlternatives(code string, basePrice float64) []string {
	alternates := nearbyAirports[code]
	switch {
	case basePrice < 100 && len(alternates) > 1:
		return alternates[:1]
	case basePrice < 200 && len(alternates) > 2:
		return alternates[:2]
	default:
		return alternates
	}
}

// SmartHubs picks split-ticket hubs for a route. Transcontinental routes get
// the one hub that splits them well (DEN eastbound-origin, ORD westbound);
// anything else gets the first generic hub that is not a route endpoint.
// Below the hub threshold no hub is worth two extra calls.
func SmartHubs(cfg config.SearchConfig, origin, destination string, basePrice float64) []string {
	if basePrice < cfg.HubMinBase {
		return nil
	}
	if eastCoast[origin] && westCoast[destination] {
		return []string{"DEN"}
	}
	if westCoast[origin] && eastCoast[destination] {
		return []string{"ORD"}
	}
	for _, hub := range genericHubs {
		if hub != origin && hub != destination {
			return []string{hub}
		}
	}
	return nil
}

// SmartBeyondCities returns up to two hidden-city "beyond" destinations for
// the route: cities a through-ticket over the real destination could
// terminate at. Destinations missing from the table fall back to the hubs a
// connection over the destination would most plausibly route through.
func SmartBeyondCities(origin, destination string) []string {
	var candidates []string
	switch {
	case eastCoast[origin] && westCoast[destination]:
		candidates = []string{"DEN", "ORD", "DFW"}
	case len(beyondByDestination[destination]) > 0:
		candidates = beyondByDestination[destination]
	default:
		candidates = geo.OptimalHubs(origin, destination)
	}

	beyond := make([]string, 0, 2)
	for _, c := range candidates {
		if c == origin || c == destination {
			continue
		}
		beyond = append(beyond, c)
		if len(beyond) == 2 {
			break
		}
	}
	return beyond
}

// PositioningCities returns candidate cheap-departure cities, excluding the
// route endpoints.
func PositioningCities(origin, destination string) []string {
	cities := make([]string, 0, len(positioningCities))
	for _, c := range positioningCities {
		if c == origin || c == destination {
			continue
		}
		cities = append(cities, c)
	}
	return cities
}

// ShouldCheckPositioning reports whether the baseline is expensive enough
// for a prior-day positioning hop to pay off.
func ShouldCheckPositioning(cfg config.SearchConfig, basePrice float64) bool {
	return basePrice > cfg.PositioningMinBase
}

// ShouldCheckHiddenCity reports whether hidden-city probing is worthwhile.
func ShouldCheckHiddenCity(cfg config.SearchConfig, basePrice float64) bool {
	return basePrice > cfg.HiddenCityMinBase
}
