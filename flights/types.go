// Package flights defines the domain types of the deal search, the upstream
// price-provider interface, and the budgeted caller that meters access to it.
package flights

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	// ErrInvalidInput is returned for malformed queries. No upstream call is
	// ever issued for an invalid query.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBudgetZero is returned when the configured per-search call budget
	// is below one.
	ErrBudgetZero = errors.New("per-search call budget must be at least 1")
)

// Cabin is the requested service class.
type Cabin string

const (
	Economy  Cabin = "economy"
	Premium  Cabin = "premium"
	Business Cabin = "business"
	First    Cabin = "first"
)

// ParseCabin maps a request string to a Cabin, defaulting to economy.
func ParseCabin(s string) Cabin {
	switch Cabin(s) {
	case Premium, "premium_economy":
		return Premium
	case Business:
		return Business
	case First:
		return First
	default:
		return Economy
	}
}

// Passengers holds the party composition for a search.
type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children,omitempty"`
	Infants  int `json:"infants,omitempty"`
}

// Query is one origin/destination/date deal search.
type Query struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Departure   time.Time  `json:"departure"`
	Return      *time.Time `json:"return,omitempty"`
	Cabin       Cabin      `json:"cabin"`
	Passengers  Passengers `json:"passengers"`
	Flexible    bool       `json:"flexible,omitempty"`
}

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidIATA reports whether code is a three-letter uppercase IATA code.
func ValidIATA(code string) bool {
	return iataPattern.MatchString(code)
}

// Validate checks the query against the input contract. now anchors the
// past-date check.
func (q Query) Validate(now time.Time) error {
	if !ValidIATA(q.Origin) {
		return fmt.Errorf("%w: origin %q is not a valid IATA code", ErrInvalidInput, q.Origin)
	}
	if !ValidIATA(q.Destination) {
		return fmt.Errorf("%w: destination %q is not a valid IATA code", ErrInvalidInput, q.Destination)
	}
	if q.Origin == q.Destination {
		return fmt.Errorf("%w: origin and destination are both %s", ErrInvalidInput, q.Origin)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if q.Departure.Before(today) {
		return fmt.Errorf("%w: departure date %s is in the past", ErrInvalidInput, q.Departure.Format(time.DateOnly))
	}
	if q.Return != nil && q.Return.Before(q.Departure) {
		return fmt.Errorf("%w: return date precedes departure", ErrInvalidInput)
	}
	if q.Passengers.Adults < 1 {
		return fmt.Errorf("%w: at least one adult passenger required", ErrInvalidInput)
	}
	return nil
}

// Layover is a stop within a single leg.
type Layover struct {
	Airport     string `json:"airport"`
	DurationMin int    `json:"duration_min"`
}

// Leg is one bookable flight segment of an itinerary.
type Leg struct {
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	DepartAt     time.Time `json:"depart_at"`
	ArriveAt     time.Time `json:"arrive_at"`
	Airline      string    `json:"airline"`
	FlightNumber string    `json:"flight_number"`
	DurationMin  int       `json:"duration_min"`
	Layovers     []Layover `json:"layovers,omitempty"`
}

// Itinerary is a priced option returned by the upstream provider.
type Itinerary struct {
	Legs         []Leg   `json:"legs"`
	PriceUSD     float64 `json:"price_usd"`
	Currency     string  `json:"currency"`
	BookingToken string  `json:"booking_token,omitempty"`
}

// Direct reports whether the itinerary is a single leg with no layovers.
func (it Itinerary) Direct() bool {
	return len(it.Legs) == 1 && len(it.Legs[0].Layovers) == 0
}

// FinalDestination returns the arrival airport of the last leg.
func (it Itinerary) FinalDestination() string {
	if len(it.Legs) == 0 {
		return ""
	}
	return it.Legs[len(it.Legs)-1].Destination
}

// HasLayovers reports whether any leg contains a layover.
func (it Itinerary) HasLayovers() bool {
	for _, leg := range it.Legs {
		if len(leg.Layovers) > 0 {
			return true
		}
	}
	return false
}

// LayoverAt returns the first layover at the given airport, if any.
func (it Itinerary) LayoverAt(code string) (Layover, bool) {
	for _, leg := range it.Legs {
		for _, lo := range leg.Layovers {
			if lo.Airport == code {
				return lo, true
			}
		}
	}
	return Layover{}, false
}

// Strategy names the heuristic that produced a deal.
type Strategy string

const (
	StrategyStandard   Strategy = "standard"
	StrategyHiddenCity Strategy = "hidden-city"
	StrategyAward      Strategy = "award"
	StrategyErrorFare  Strategy = "error"
	StrategyCurrency   Strategy = "currency"
	StrategyThrowaway  Strategy = "throwaway"
)

// Deal is one discovered saving opportunity.
//
// Itineraries holds the separately bookable pieces: two for split-ticket and
// positioning deals, one for everything else. Legs is the flattened journey
// and is never empty.
type Deal struct {
	PriceUSD    float64     `json:"price_usd"`
	Strategy    Strategy    `json:"strategy"`
	RiskScore   int         `json:"risk_score"`
	BookingLink string      `json:"booking_link"`
	Explanation string      `json:"explanation"`
	Legs        []Leg       `json:"legs"`
	Itineraries []Itinerary `json:"itineraries,omitempty"`
}

// DepartureDate returns the timestamp keyed for time-of-day bucketing.
func (d Deal) DepartureDate() time.Time {
	if len(d.Legs) == 0 {
		return time.Time{}
	}
	return d.Legs[0].DepartAt
}
