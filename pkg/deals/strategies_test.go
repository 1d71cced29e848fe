package deals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanRana/reallycheapflightfinderbro/config"
	"github.com/RyanRana/reallycheapflightfinderbro/flights"
)

func testBudget(src *scriptedSource, max int) *flights.BudgetedSource {
	return flights.NewBudgeted(src, max, nil)
}

func TestNearbyAirportDealsFindsDirectAlternative(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	src.add("EWR", "LAX", makeItinerary("United", "UA100", 300, 10, withRoute("EWR", "LAX")))

	cfg := config.DefaultSearchConfig()
	deals := NearbyAirportDeals(context.Background(), cfg, testQuery(), 400, testBudget(src, 15))

	require.Len(t, deals, 1)
	assert.Equal(t, 300.0, deals[0].PriceUSD)
	assert.Equal(t, riskNearbyAirport, deals[0].RiskScore)
	assert.Contains(t, deals[0].Explanation, "Depart from EWR instead of JFK")
	assert.True(t, deals[0].Itineraries[0].Direct())
}

func TestNearbyAirportDealsRejectsConnections(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	src.add("EWR", "LAX", makeItinerary("United", "UA100", 300, 10,
		withRoute("EWR", "LAX"), withLayover("ORD", 60)))

	cfg := config.DefaultSearchConfig()
	deals := NearbyAirportDeals(context.Background(), cfg, testQuery(), 400, testBudget(src, 15))
	assert.Empty(t, deals)
}

func TestNearbyAirportDealsRequiresMargin(t *testing.T) {
	t.Parallel()

	// 350 is under the 400 baseline but not under the 340 margin.
	src := newScriptedSource()
	src.add("EWR", "LAX", makeItinerary("United", "UA100", 350, 10, withRoute("EWR", "LAX")))

	cfg := config.DefaultSearchConfig()
	deals := NearbyAirportDeals(context.Background(), cfg, testQuery(), 400, testBudget(src, 15))
	assert.Empty(t, deals)
}

func TestNearbyAirportDealsBelowThreshold(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	cfg := config.DefaultSearchConfig()
	deals := NearbyAirportDeals(context.Background(), cfg, testQuery(), 60, testBudget(src, 15))

	assert.Empty(t, deals)
	assert.Zero(t, src.callCount())
}

func TestNearbyAirportDealsProbesBothEnds(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	cfg := config.DefaultSearchConfig()
	NearbyAirportDeals(context.Background(), cfg, testQuery(), 400, testBudget(src, 15))

	routes := src.calledRoutes()
	// Two origin alternates plus four destination alternates.
	assert.Len(t, routes, 6)
	assert.Contains(t, routes, "EWR-LAX")
	assert.Contains(t, routes, "JFK-BUR")
}

func TestNearbyAirportDealsStopsAtBudget(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	cfg := config.DefaultSearchConfig()
	budget := testBudget(src, 2)
	NearbyAirportDeals(context.Background(), cfg, testQuery(), 400, budget)

	assert.Equal(t, 2, src.callCount())
	assert.Equal(t, 2, budget.Used())
}

func TestSplitTicketDealsViaHub(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	src.add("JFK", "DEN", makeItinerary("United", "UA10", 150, 8, withRoute("JFK", "DEN")))
	src.add("DEN", "LAX", makeItinerary("United", "UA20", 180, 14, withRoute("DEN", "LAX")))

	cfg := config.DefaultSearchConfig()
	deals := SplitTicketDeals(context.Background(), cfg, testQuery(), 400, testBudget(src, 15))

	require.Len(t, deals, 1)
	d := deals[0]
	assert.Equal(t, 330.0, d.PriceUSD)
	assert.Equal(t, riskSplitTicket, d.RiskScore)
	require.Len(t, d.Itineraries, 2)
	assert.Len(t, d.Legs, 2)
	assert.Contains(t, d.Explanation, "via DEN")
	assert.Contains(t, d.Explanation, "JFK-DEN ($150)")
	assert.Contains(t, d.Explanation, "DEN-LAX ($180)")
}

func TestSplitTicketDealsRequiresMargin(t *testing.T) {
	t.Parallel()

	// 200+180 = 380, over the 340 margin for a 400 baseline.
	src := newScriptedSource()
	src.add("JFK", "DEN", makeItinerary("United", "UA10", 200, 8, withRoute("JFK", "DEN")))
	src.add("DEN", "LAX", makeItinerary("United", "UA20", 180, 14, withRoute("DEN", "LAX")))

	cfg := config.DefaultSearchConfig()
	deals := SplitTicketDeals(context.Background(), cfg, testQuery(), 400, testBudget(src, 15))
	assert.Empty(t, deals)
}

func TestSplitTicketDealsNeedsBothLegs(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	src.add("JFK", "DEN", makeItinerary("United", "UA10", 150, 8, withRoute("JFK", "DEN")))

	cfg := config.DefaultSearchConfig()
	deals := SplitTicketDeals(context.Background(), cfg, testQuery(), 400, testBudget(src, 15))
	assert.Empty(t, deals)
}

func TestPositioningDeals(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	src.add("JFK", "FLL", makeItinerary("JetBlue", "B6700", 80, 9, withRoute("JFK", "FLL")))
	src.add("FLL", "LAX", makeItinerary("Spirit Airlines", "NK80", 180, 11, withRoute("FLL", "LAX")))

	cfg := config.DefaultSearchConfig()
	deals := PositioningDeals(context.Background(), cfg, testQuery(), 400, testBudget(src, 15))

	require.Len(t, deals, 1)
	d := deals[0]
	assert.Equal(t, 260.0, d.PriceUSD)
	assert.Equal(t, riskPositioning, d.RiskScore)
	assert.Contains(t, d.Explanation, "Position to FLL")
	assert.Contains(t, d.Explanation, "overnight stay")
	require.Len(t, d.Itineraries, 2)
}

func TestPositioningDealsHopIsDayBefore(t *testing.T) {
	t.Parallel()

	var hopDeparture string
	src := newScriptedSource()
	probe := flights.SourceFunc(func(ctx context.Context, args flights.SearchArgs) ([]flights.Itinerary, error) {
		if args.Destination == "FLL" {
			hopDeparture = args.Departure.Format("2006-01-02")
		}
		return src.Search(ctx, args)
	})

	cfg := config.DefaultSearchConfig()
	PositioningDeals(context.Background(), cfg, testQuery(), 400, flights.NewBudgeted(probe, 15, nil))
	assert.Equal(t, "2026-08-31", hopDeparture)
}

func TestPositioningDealsBelowThreshold(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	cfg := config.DefaultSearchConfig()
	deals := PositioningDeals(context.Background(), cfg, testQuery(), 250, testBudget(src, 15))

	assert.Empty(t, deals)
	assert.Zero(t, src.callCount())
}

func TestHiddenCityDeals(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	src.add("JFK", "DEN",
		makeItinerary("United", "UA500", 280, 10, withRoute("JFK", "DEN"), withLayover("LAX", 75)),
		makeItinerary("United", "UA501", 220, 12, withRoute("JFK", "DEN"), withLayover("ORD", 60)),
	)

	cfg := config.DefaultSearchConfig()
	deals := HiddenCityDeals(context.Background(), cfg, testQuery(), 400, testBudget(src, 15))

	// Only the itinerary that actually connects through LAX qualifies.
	require.Len(t, deals, 1)
	d := deals[0]
	assert.Equal(t, flights.StrategyHiddenCity, d.Strategy)
	assert.Equal(t, riskHiddenCity, d.RiskScore)
	assert.Equal(t, 280.0, d.PriceUSD)
	assert.Contains(t, d.Explanation, "get off at the LAX layover")
	assert.Contains(t, d.Explanation, "terms of service")
}

func TestHiddenCityDealsTransconBeyondCities(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	cfg := config.DefaultSearchConfig()
	HiddenCityDeals(context.Background(), cfg, testQuery(), 400, testBudget(src, 15))

	assert.Equal(t, []string{"JFK-DEN", "JFK-ORD"}, src.calledRoutes())
}

func TestHiddenCityDealsBelowThreshold(t *testing.T) {
	t.Parallel()

	src := newScriptedSource()
	cfg := config.DefaultSearchConfig()
	deals := HiddenCityDeals(context.Background(), cfg, testQuery(), 90, testBudget(src, 15))

	assert.Empty(t, deals)
	assert.Zero(t, src.callCount())
}

func TestExtractConnectingDeals(t *testing.T) {
	t.Parallel()

	itineraries := []flights.Itinerary{
		makeItinerary("Delta", "DL1", 300, 9),
		makeItinerary("United", "UA2", 250, 10, withLayover("DEN", 90)),
		makeItinerary("United", "UA3", 280, 11, withLayover("ORD", 120)),
	}

	cfg := config.DefaultSearchConfig()
	deals := ExtractConnectingDeals(cfg, itineraries, 300)

	// 250 clears the 270 margin, 280 does not, and the direct never counts.
	require.Len(t, deals, 1)
	assert.Equal(t, 250.0, deals[0].PriceUSD)
	assert.Equal(t, riskConnecting, deals[0].RiskScore)
}

func TestExtractConnectingDealsNoDirectBaseline(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultSearchConfig()
	assert.Nil(t, ExtractConnectingDeals(cfg, []flights.Itinerary{makeItinerary("Delta", "DL1", 300, 9)}, 0))
}

func TestIsBudgetAirline(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBudgetAirline("Spirit Airlines"))
	assert.True(t, IsBudgetAirline("frontier airlines"))
	assert.True(t, IsBudgetAirline("Sun Country Airlines"))
	assert.False(t, IsBudgetAirline("Delta Air Lines"))
	assert.False(t, IsBudgetAirline(""))
}

func TestBudgetAirlineItineraries(t *testing.T) {
	t.Parallel()

	itineraries := []flights.Itinerary{
		makeItinerary("Delta", "DL1", 300, 9),
		makeItinerary("Spirit Airlines", "NK2", 120, 10),
		makeItinerary("Breeze Airways", "MX3", 140, 11),
	}
	kept := BudgetAirlineItineraries(itineraries)

	require.Len(t, kept, 2)
	assert.Equal(t, "NK2", kept[0].Legs[0].FlightNumber)
	assert.Equal(t, "MX3", kept[1].Legs[0].FlightNumber)
}

func TestSavingsPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 25, savingsPercent(400, 300))
	assert.Equal(t, 17, savingsPercent(300, 250))
	assert.Equal(t, 0, savingsPercent(0, 100))
}
