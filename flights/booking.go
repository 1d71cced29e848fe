package flights

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// providerBookingURL turns an opaque provider booking token into a checkout
// link. Tokens take priority over everything else because they pin the exact
// fare that was quoted.
const providerBookingURL = "https://www.google.com/travel/flights/booking?token="

// carrierBookingTemplates maps a lowercase carrier-name fragment to a deep
// link template. Placeholders are filled with URL-encoded origin,
// destination, and ISO-8601 date, in that order.
var carrierBookingTemplates = []struct {
	match    string
	template string
}{
	{"united", "https://www.united.com/en/us/fsr/choose-flights?f=%s&t=%s&d=%s&tt=1&sc=7&px=1"},
	{"american", "https://www.aa.com/booking/find-flights?tripType=oneWay&originAirport=%s&destinationAirport=%s&departDate=%s"},
	{"delta", "https://www.delta.com/flight-search/book-a-flight?originCity=%s&destinationCity=%s&departureDate=%s&tripType=ONE_WAY"},
	{"southwest", "https://www.southwest.com/air/booking/select.html?originationAirportCode=%s&destinationAirportCode=%s&departureDate=%s&tripType=oneway"},
	{"jetblue", "https://www.jetblue.com/booking/flights?from=%s&to=%s&depart=%s&isMultiCity=false&noOfRoute=1"},
	{"alaska", "https://www.alaskaair.com/search/results?O=%s&D=%s&OD=%s&RT=false"},
	{"spirit", "https://www.spirit.com/book/flights?from=%s&to=%s&departDate=%s&tripType=oneWay"},
	{"frontier", "https://booking.flyfrontier.com/Flight/Select?o1=%s&d1=%s&dd1=%s"},
}

// BookingLink builds an absolute booking URL for an itinerary.
//
// Priority: provider booking token, then a carrier deep link matched on the
// first leg's airline, then a universal flight-search fallback.
func BookingLink(it Itinerary) string {
	if it.BookingToken != "" {
		return providerBookingURL + url.QueryEscape(it.BookingToken)
	}
	if len(it.Legs) == 0 {
		return ""
	}

	first := it.Legs[0]
	origin := url.QueryEscape(strings.ToUpper(first.Origin))
	destination := url.QueryEscape(strings.ToUpper(it.FinalDestination()))
	date := url.QueryEscape(first.DepartAt.Format(time.DateOnly))

	airline := strings.ToLower(first.Airline)
	for _, c := range carrierBookingTemplates {
		if strings.Contains(airline, c.match) {
			return fmt.Sprintf(c.template, origin, destination, date)
		}
	}

	return fallbackSearchURL(first.Origin, it.FinalDestination(), first.DepartAt)
}

// fallbackSearchURL is the universal search-engine link used when no
// carrier-specific template applies.
func fallbackSearchURL(origin, destination string, departure time.Time) string {
	q := fmt.Sprintf("flights from %s to %s on %s",
		strings.ToUpper(origin), strings.ToUpper(destination), departure.Format(time.DateOnly))
	return "https://www.google.com/travel/flights?q=" + url.QueryEscape(q)
}
