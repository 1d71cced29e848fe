package deals

import (
	"sort"
	"time"

	"github.com/RyanRana/reallycheapflightfinderbro/flights"
)

// Selection pipeline targets. Specials are admitted until the set reaches
// specialsTarget, diversity groups fill toward groupsTarget, and price-band
// backfill stops at bandsTarget. The final output is capped separately.
const (
	specialsTarget = 30
	groupsTarget   = 40
	bandsTarget    = 35
	priceBandWidth = 10
)

// timeBuckets in selection order.
var timeBuckets = []string{"morning", "afternoon", "evening", "overnight"}

// dedupKey identifies one physical flight for curation purposes.
type dedupKey struct {
	airline      string
	flightNumber string
	date         string // ISO-8601 departure date of the first leg
}

func keyFor(d flights.Deal) dedupKey {
	if len(d.Legs) == 0 {
		return dedupKey{}
	}
	first := d.Legs[0]
	return dedupKey{
		airline:      first.Airline,
		flightNumber: first.FlightNumber,
		date:         first.DepartAt.Format(time.DateOnly),
	}
}

func bucketFor(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return "morning"
	case h >= 12 && h < 18:
		return "afternoon"
	case h >= 18:
		return "evening"
	default:
		return "overnight"
	}
}

// Curate deduplicates the discovered deals and selects a diverse set of at
// most limit, sorted ascending by price. Diversity axes: time of day,
// carrier, strategy, and price band, with the globally cheapest deal always
// selected first.
func Curate(deals []flights.Deal, limit int) []flights.Deal {
	if len(deals) == 0 || limit < 1 {
		return nil
	}

	// Collapse duplicates up front, keeping first insertion.
	unique := make([]flights.Deal, 0, len(deals))
	seenInput := make(map[dedupKey]bool, len(deals))
	for _, d := range deals {
		if len(d.Legs) == 0 {
			continue
		}
		key := keyFor(d)
		if seenInput[key] {
			continue
		}
		seenInput[key] = true
		unique = append(unique, d)
	}
	if len(unique) == 0 {
		return nil
	}

	cheapest := unique[0]
	for _, d := range unique[1:] {
		if d.PriceUSD < cheapest.PriceUSD {
			cheapest = d
		}
	}

	// Advisory groupings.
	var specials []flights.Deal
	byBucket := make(map[string][]flights.Deal)
	byAirline := make(map[string][]flights.Deal)
	for _, d := range unique {
		if d.Strategy != flights.StrategyStandard {
			specials = append(specials, d)
		}
		byBucket[bucketFor(d.DepartureDate())] = append(byBucket[bucketFor(d.DepartureDate())], d)
		byAirline[d.Legs[0].Airline] = append(byAirline[d.Legs[0].Airline], d)
	}
	for bucket := range byBucket {
		sortDealsByPrice(byBucket[bucket])
	}
	for airline := range byAirline {
		sortDealsByPrice(byAirline[airline])
	}

	var selected []flights.Deal
	seen := make(map[dedupKey]bool)
	add := func(d flights.Deal) {
		key := keyFor(d)
		if seen[key] {
			return
		}
		seen[key] = true
		selected = append(selected, d)
	}

	// 1. The cheapest deal is never displaced by diversity.
	add(cheapest)

	// 2. Special (non-standard) deals.
	for _, d := range specials {
		if len(selected) >= specialsTarget {
			break
		}
		add(d)
	}

	// 3. Up to two per time-of-day bucket.
	for _, bucket := range timeBuckets {
		group := byBucket[bucket]
		if len(group) > 2 {
			group = group[:2]
		}
		for _, d := range group {
			if len(selected) >= groupsTarget {
				break
			}
			add(d)
		}
	}

	// 4. Up to two per airline, airlines in lexical order for determinism.
	airlines := make([]string, 0, len(byAirline))
	for airline := range byAirline {
		airlines = append(airlines, airline)
	}
	sort.Strings(airlines)
	for _, airline := range airlines {
		group := byAirline[airline]
		if len(group) > 2 {
			group = group[:2]
		}
		for _, d := range group {
			if len(selected) >= groupsTarget {
				break
			}
			add(d)
		}
	}

	// 5. Backfill previously-unseen $10 price bands.
	bands := make(map[int]bool)
	for _, d := range selected {
		bands[priceBand(d.PriceUSD)] = true
	}
	for _, d := range unique {
		if len(selected) >= bandsTarget {
			break
		}
		band := priceBand(d.PriceUSD)
		if bands[band] || seen[keyFor(d)] {
			continue
		}
		bands[band] = true
		add(d)
	}

	sortDealsByPrice(selected)
	if len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

func priceBand(price float64) int {
	return int(price/priceBandWidth) * priceBandWidth
}
