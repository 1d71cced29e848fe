package deals

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RyanRana/reallycheapflightfinderbro/config"
	"github.com/RyanRana/reallycheapflightfinderbro/flights"
)

// Risk scores per strategy. Risk reflects what can go wrong for the
// traveller, not the odds of the fare existing.
const (
	riskBaseline      = 0
	riskNearbyAirport = 10
	riskRedEye        = 5
	riskEarlyBird     = 5
	riskLayover       = 10
	riskConnecting    = 10
	riskBudgetCarrier = 15
	riskSplitTicket   = 40
	riskPositioning   = 50
	riskHiddenCity    = 65
)

// budgetAirlines is the static list of low-cost carriers, matched
// case-insensitively as a substring of any leg's airline name.
var budgetAirlines = []string{"Spirit", "Frontier", "Allegiant", "Sun Country", "Southwest", "JetBlue", "Breeze"}

// IsBudgetAirline reports whether the airline display name belongs to a
// low-cost carrier.
func IsBudgetAirline(airline string) bool {
	lower := strings.ToLower(airline)
	for _, b := range budgetAirlines {
		if strings.Contains(lower, strings.ToLower(b)) {
			return true
		}
	}
	return false
}

func hasBudgetLeg(it flights.Itinerary) bool {
	for _, leg := range it.Legs {
		if IsBudgetAirline(leg.Airline) {
			return true
		}
	}
	return false
}

// savingsPercent rounds the saving over base to a whole percentage.
func savingsPercent(base, price float64) int {
	if base <= 0 {
		return 0
	}
	return int(math.Round((base - price) / base * 100))
}

func oneWayArgs(q flights.Query, origin, destination string, departure time.Time) flights.SearchArgs {
	return flights.SearchArgs{
		Origin:      origin,
		Destination: destination,
		Departure:   departure,
		Cabin:       q.Cabin,
		Adults:      q.Passengers.Adults,
	}
}

// NearbyAirportDeals probes alternative origin and destination airports.
// Only the provider-preferred itinerary of each probe is considered, and it
// must be direct and beat the baseline by the configured margin.
func NearbyAirportDeals(ctx context.Context, cfg config.SearchConfig, q flights.Query, basePrice float64, caller *flights.BudgetedSource) []flights.Deal {
	if basePrice < cfg.NearbyMinBase {
		return nil
	}

	var deals []flights.Deal

	keep := func(top flights.Itinerary, substitution string) {
		savings := basePrice - top.PriceUSD
		deals = append(deals, flights.Deal{
			PriceUSD:    top.PriceUSD,
			Strategy:    flights.StrategyStandard,
			RiskScore:   riskNearbyAirport,
			BookingLink: flights.BookingLink(top),
			Explanation: fmt.Sprintf("%s: save $%.0f (%d%%) on a direct flight",
				substitution, savings, savingsPercent(basePrice, top.PriceUSD)),
			Legs:        top.Legs,
			Itineraries: []flights.Itinerary{top},
		})
	}

	for _, alt := range NearbyAlternatives(q.Origin, basePrice) {
		if ctx.Err() != nil {
			return deals
		}
		results := caller.Call(ctx, oneWayArgs(q, alt, q.Destination, q.Departure), "nearby origin "+alt)
		if len(results) == 0 {
			continue
		}
		if top := results[0]; top.Direct() && top.PriceUSD < cfg.NearbyMaxRatio*basePrice {
			keep(top, fmt.Sprintf("Depart from %s instead of %s", alt, q.Origin))
		}
	}

	for _, alt := range NearbyAlternatives(q.Destination, basePrice) {
		if ctx.Err() != nil {
			return deals
		}
		results := caller.Call(ctx, oneWayArgs(q, q.Origin, alt, q.Departure), "nearby destination "+alt)
		if len(results) == 0 {
			continue
		}
		if top := results[0]; top.Direct() && top.PriceUSD < cfg.NearbyMaxRatio*basePrice {
			keep(top, fmt.Sprintf("Fly into %s instead of %s", alt, q.Destination))
		}
	}

	return deals
}

// SplitTicketDeals books the route as two independent tickets through a
// hub. Both hub legs are fetched in parallel; the pair counts only if the
// combined price beats the baseline margin. There is no missed-connection
// protection across the two tickets, hence the risk score.
func SplitTicketDeals(ctx context.Context, cfg config.SearchConfig, q flights.Query, basePrice float64, caller *flights.BudgetedSource) []flights.Deal {
	if basePrice < cfg.SplitMinBase {
		return nil
	}

	var deals []flights.Deal
	for _, hub := range SmartHubs(cfg, q.Origin, q.Destination, basePrice) {
		if ctx.Err() != nil {
			return deals
		}

		var first, second []flights.Itinerary
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			first = caller.Call(gctx, oneWayArgs(q, q.Origin, hub, q.Departure), "split leg "+q.Origin+"-"+hub)
			return nil
		})
		g.Go(func() error {
			second = caller.Call(gctx, oneWayArgs(q, hub, q.Destination, q.Departure), "split leg "+hub+"-"+q.Destination)
			return nil
		})
		_ = g.Wait()

		if len(first) == 0 || len(second) == 0 {
			continue
		}

		leg1, leg2 := first[0], second[0]
		total := leg1.PriceUSD + leg2.PriceUSD
		if total >= cfg.SplitMaxRatio*basePrice {
			continue
		}

		legs := append(append([]flights.Leg{}, leg1.Legs...), leg2.Legs...)
		deals = append(deals, flights.Deal{
			PriceUSD:    total,
			Strategy:    flights.StrategyStandard,
			RiskScore:   riskSplitTicket,
			BookingLink: flights.BookingLink(leg1),
			Explanation: fmt.Sprintf(
				"Split ticket via %s: book %s-%s ($%.0f) and %s-%s ($%.0f) separately, $%.0f total vs $%.0f. No protection if the first booking cancels.",
				hub, q.Origin, hub, leg1.PriceUSD, hub, q.Destination, leg2.PriceUSD, total, basePrice),
			Legs:        legs,
			Itineraries: []flights.Itinerary{leg1, leg2},
		})
	}
	return deals
}

// PositioningDeals tries a prior-day hop to a cheap departure city followed
// by the main flight from there. Worth probing only on expensive baselines.
func PositioningDeals(ctx context.Context, cfg config.SearchConfig, q flights.Query, basePrice float64, caller *flights.BudgetedSource) []flights.Deal {
	if basePrice < cfg.PositioningMinBase {
		return nil
	}

	dayBefore := q.Departure.AddDate(0, 0, -1)

	var deals []flights.Deal
	for _, city := range PositioningCities(q.Origin, q.Destination) {
		if ctx.Err() != nil {
			return deals
		}

		var positioning, main []flights.Itinerary
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			positioning = caller.Call(gctx, oneWayArgs(q, q.Origin, city, dayBefore), "positioning hop "+q.Origin+"-"+city)
			return nil
		})
		g.Go(func() error {
			main = caller.Call(gctx, oneWayArgs(q, city, q.Destination, q.Departure), "positioning main "+city+"-"+q.Destination)
			return nil
		})
		_ = g.Wait()

		if len(positioning) == 0 || len(main) == 0 {
			continue
		}

		hop, onward := positioning[0], main[0]
		total := hop.PriceUSD + onward.PriceUSD
		if total >= cfg.PositioningMaxRatio*basePrice {
			continue
		}

		legs := append(append([]flights.Leg{}, hop.Legs...), onward.Legs...)
		deals = append(deals, flights.Deal{
			PriceUSD:    total,
			Strategy:    flights.StrategyStandard,
			RiskScore:   riskPositioning,
			BookingLink: flights.BookingLink(hop),
			Explanation: fmt.Sprintf(
				"Position to %s on %s ($%.0f), then fly %s-%s on %s ($%.0f): $%.0f total vs $%.0f. Two separate bookings and an overnight stay.",
				city, dayBefore.Format(time.DateOnly), hop.PriceUSD,
				city, q.Destination, q.Departure.Format(time.DateOnly), onward.PriceUSD, total, basePrice),
			Legs:        legs,
			Itineraries: []flights.Itinerary{hop, onward},
		})
	}
	return deals
}

// maxBeyondCities caps how many beyond-city probes hidden-city search may
// spend budget on.
const maxBeyondCities = 5

// HiddenCityDeals books a through-ticket past the real destination and
// disembarks at the layover. High risk: it violates carrier terms of
// service and checked bags travel to the ticketed destination.
func HiddenCityDeals(ctx context.Context, cfg config.SearchConfig, q flights.Query, basePrice float64, caller *flights.BudgetedSource) []flights.Deal {
	if basePrice < cfg.HiddenCityMinBase {
		return nil
	}

	beyond := SmartBeyondCities(q.Origin, q.Destination)
	if len(beyond) > maxBeyondCities {
		beyond = beyond[:maxBeyondCities]
	}

	var deals []flights.Deal
	for _, city := range beyond {
		if ctx.Err() != nil {
			return deals
		}
		results := caller.Call(ctx, oneWayArgs(q, q.Origin, city, q.Departure), "hidden city via "+city)
		for _, it := range results {
			layover, ok := it.LayoverAt(q.Destination)
			if !ok {
				continue
			}
			deals = append(deals, flights.Deal{
				PriceUSD:    it.PriceUSD,
				Strategy:    flights.StrategyHiddenCity,
				RiskScore:   riskHiddenCity,
				BookingLink: flights.BookingLink(it),
				Explanation: fmt.Sprintf(
					"Book %s-%s ($%.0f) and get off at the %s layover (%dm). Carry-on only; violates the airline's terms of service.",
					q.Origin, city, it.PriceUSD, q.Destination, layover.DurationMin),
				Legs:        it.Legs,
				Itineraries: []flights.Itinerary{it},
			})
		}
	}
	return deals
}

// ExtractConnectingDeals is the zero-call connecting-flight extractor: from
// an already-fetched itinerary set it keeps connections priced well under
// the cheapest direct flight.
func ExtractConnectingDeals(cfg config.SearchConfig, itineraries []flights.Itinerary, cheapestDirect float64) []flights.Deal {
	if cheapestDirect <= 0 {
		return nil
	}

	var deals []flights.Deal
	for _, it := range itineraries {
		if len(it.Legs) == 0 {
			continue
		}
		if len(it.Legs) <= 1 && !it.HasLayovers() {
			continue
		}
		if it.PriceUSD >= cfg.ConnectingMaxRatio*cheapestDirect {
			continue
		}
		deals = append(deals, flights.Deal{
			PriceUSD:    it.PriceUSD,
			Strategy:    flights.StrategyStandard,
			RiskScore:   riskConnecting,
			BookingLink: flights.BookingLink(it),
			Explanation: fmt.Sprintf("Connecting flight at $%.0f, %d%% under the cheapest direct ($%.0f)",
				it.PriceUSD, savingsPercent(cheapestDirect, it.PriceUSD), cheapestDirect),
			Legs:        it.Legs,
			Itineraries: []flights.Itinerary{it},
		})
	}
	return deals
}

// BudgetAirlineItineraries is the zero-call budget-airline filter: it keeps
// itineraries with at least one leg on a low-cost carrier.
func BudgetAirlineItineraries(itineraries []flights.Itinerary) []flights.Itinerary {
	var kept []flights.Itinerary
	for _, it := range itineraries {
		if hasBudgetLeg(it) {
			kept = append(kept, it)
		}
	}
	return kept
}
