package deals

import (
	"fmt"
	"sort"
	"time"

	"github.com/RyanRana/reallycheapflightfinderbro/flights"
)

// analyzer thresholds: the minimum saving that makes a pattern worth
// calling out, and the longest layover still considered tolerable.
const (
	redEyeMinSavings     = 5.0
	layoverMinSavings    = 30.0
	layoverMaxWorthIt    = 240 // minutes
	connectingMinSavings = 20.0
	topPricesForAverage  = 5
)

// baselineStats are the price anchors the analyzer measures against.
type baselineStats struct {
	basePrice      float64 // cheapest itinerary
	avgPrice       float64 // mean of the five cheapest
	cheapestDirect float64 // cheapest direct, falling back to basePrice
}

func computeBaselineStats(itineraries []flights.Itinerary) baselineStats {
	prices := make([]float64, 0, len(itineraries))
	direct := 0.0
	for _, it := range itineraries {
		prices = append(prices, it.PriceUSD)
		if it.Direct() && (direct == 0 || it.PriceUSD < direct) {
			direct = it.PriceUSD
		}
	}
	sort.Float64s(prices)

	stats := baselineStats{}
	if len(prices) > 0 {
		stats.basePrice = prices[0]
	}
	n := topPricesForAverage
	if len(prices) < n {
		n = len(prices)
	}
	if n > 0 {
		sum := 0.0
		for _, p := range prices[:n] {
			sum += p
		}
		stats.avgPrice = sum / float64(n)
	}
	stats.cheapestDirect = direct
	if stats.cheapestDirect == 0 {
		stats.cheapestDirect = stats.basePrice
	}
	return stats
}

// analyzerKey deduplicates itineraries that are the same physical flight.
type analyzerKey struct {
	airline      string
	flightNumber string
	departAt     time.Time
}

// Analyze runs the zero-call pass over already-fetched itineraries and
// emits red-eye, early-bird, layover, budget-carrier, and connecting deals.
// Each category is sorted ascending by price; no upstream calls are made.
func Analyze(q flights.Query, itineraries []flights.Itinerary) []flights.Deal {
	if len(itineraries) == 0 {
		return nil
	}

	stats := computeBaselineStats(itineraries)

	seen := make(map[analyzerKey]bool, len(itineraries))
	var redEyes, earlyBirds, layovers, budgetCarrier, connecting []flights.Deal

	for _, it := range itineraries {
		if len(it.Legs) == 0 {
			continue
		}
		first := it.Legs[0]
		key := analyzerKey{airline: first.Airline, flightNumber: first.FlightNumber, departAt: first.DepartAt}
		if seen[key] {
			continue
		}
		seen[key] = true

		hour := first.DepartAt.Hour()

		if hour >= 22 || hour <= 5 {
			explanation := fmt.Sprintf("Red-eye departure at %s", first.DepartAt.Format("15:04"))
			if saving := stats.avgPrice - it.PriceUSD; saving > redEyeMinSavings {
				explanation = fmt.Sprintf("Red-eye departure at %s saves $%.0f vs the average fare",
					first.DepartAt.Format("15:04"), saving)
			}
			redEyes = append(redEyes, newAnalyzerDeal(it, riskRedEye, explanation))
		}

		if hour >= 6 && hour <= 8 {
			earlyBirds = append(earlyBirds, newAnalyzerDeal(it, riskEarlyBird,
				fmt.Sprintf("Early-bird departure at %s, typically cheaper than midday flights", first.DepartAt.Format("15:04"))))
		}

		if lo, ok := firstLayover(it); ok {
			explanation := fmt.Sprintf("Connection in %s (%dm layover)", lo.Airport, lo.DurationMin)
			if stats.cheapestDirect-it.PriceUSD > layoverMinSavings && lo.DurationMin < layoverMaxWorthIt {
				explanation = fmt.Sprintf("Connection in %s (%dm layover) worth it: $%.0f under the cheapest direct",
					lo.Airport, lo.DurationMin, stats.cheapestDirect-it.PriceUSD)
			}
			layovers = append(layovers, newAnalyzerDeal(it, riskLayover, explanation))

			if stats.cheapestDirect-it.PriceUSD > connectingMinSavings {
				connecting = append(connecting, newAnalyzerDeal(it, riskConnecting,
					fmt.Sprintf("Connecting itinerary %d%% under the cheapest direct ($%.0f)",
						savingsPercent(stats.cheapestDirect, it.PriceUSD), stats.cheapestDirect)))
			}
		}

		if hasBudgetLeg(it) {
			budgetCarrier = append(budgetCarrier, newAnalyzerDeal(it, riskBudgetCarrier,
				fmt.Sprintf("%s fare at $%.0f; bags and seat selection usually cost extra", first.Airline, it.PriceUSD)))
		}
	}

	var deals []flights.Deal
	for _, category := range [][]flights.Deal{redEyes, earlyBirds, layovers, budgetCarrier, connecting} {
		sortDealsByPrice(category)
		deals = append(deals, category...)
	}
	return deals
}

func newAnalyzerDeal(it flights.Itinerary, risk int, explanation string) flights.Deal {
	return flights.Deal{
		PriceUSD:    it.PriceUSD,
		Strategy:    flights.StrategyStandard,
		RiskScore:   risk,
		BookingLink: flights.BookingLink(it),
		Explanation: explanation,
		Legs:        it.Legs,
		Itineraries: []flights.Itinerary{it},
	}
}

func firstLayover(it flights.Itinerary) (flights.Layover, bool) {
	for _, leg := range it.Legs {
		if len(leg.Layovers) > 0 {
			return leg.Layovers[0], true
		}
	}
	return flights.Layover{}, false
}

func sortDealsByPrice(deals []flights.Deal) {
	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].PriceUSD < deals[j].PriceUSD
	})
}
