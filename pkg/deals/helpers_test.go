package deals

import (
	"context"
	"sync"
	"time"

	"github.com/RyanRana/reallycheapflightfinderbro/flights"
)

var testDeparture = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

// itinOpt mutates a generated test itinerary.
type itinOpt func(*flights.Itinerary)

func withLayover(airport string, durationMin int) itinOpt {
	return func(it *flights.Itinerary) {
		it.Legs[0].Layovers = append(it.Legs[0].Layovers, flights.Layover{Airport: airport, DurationMin: durationMin})
	}
}

func withRoute(origin, destination string) itinOpt {
	return func(it *flights.Itinerary) {
		it.Legs[0].Origin = origin
		it.Legs[len(it.Legs)-1].Destination = destination
	}
}

func withToken(token string) itinOpt {
	return func(it *flights.Itinerary) {
		it.BookingToken = token
	}
}

// makeItinerary builds a single-leg itinerary departing on the test date at
// the given hour.
func makeItinerary(airline, flightNumber string, price float64, departHour int, opts ...itinOpt) flights.Itinerary {
	depart := time.Date(2026, 9, 1, departHour, 0, 0, 0, time.UTC)
	it := flights.Itinerary{
		Legs: []flights.Leg{{
			Origin:       "JFK",
			Destination:  "LAX",
			DepartAt:     depart,
			ArriveAt:     depart.Add(6 * time.Hour),
			Airline:      airline,
			FlightNumber: flightNumber,
			DurationMin:  360,
		}},
		PriceUSD: price,
		Currency: "USD",
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// scriptedSource is a concurrency-safe fake provider keyed by route. Routes
// without a script return an empty result, like a provider with no inventory.
type scriptedSource struct {
	mu     sync.Mutex
	routes map[string][]flights.Itinerary
	calls  []string
	err    error
}

func newScriptedSource() *scriptedSource {
	return &scriptedSource{routes: make(map[string][]flights.Itinerary)}
}

func (s *scriptedSource) add(origin, destination string, itineraries ...flights.Itinerary) {
	s.routes[origin+"-"+destination] = itineraries
}

func (s *scriptedSource) Search(ctx context.Context, args flights.SearchArgs) ([]flights.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, args.Origin+"-"+args.Destination)
	if s.err != nil {
		return nil, s.err
	}
	return s.routes[args.Origin+"-"+args.Destination], nil
}

func (s *scriptedSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *scriptedSource) calledRoutes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func testQuery() flights.Query {
	return flights.Query{
		Origin:      "JFK",
		Destination: "LAX",
		Departure:   testDeparture,
		Cabin:       flights.Economy,
		Passengers:  flights.Passengers{Adults: 1},
	}
}
