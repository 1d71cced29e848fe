package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/text/currency"

	"github.com/RyanRana/reallycheapflightfinderbro/config"
)

// Client is a PriceSource backed by an HTTP flight-price API. It is safe
// for concurrent use.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
}

func clientRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return false, ctx.Err()
			}
		}
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return true, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
}

// NewClient builds a provider client from config. Credentials are opaque;
// they are forwarded as a bearer token.
func NewClient(cfg config.ProviderConfig) *Client {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = time.Second
	client.Logger = nil
	client.CheckRetry = clientRetryPolicy()
	client.HTTPClient.Timeout = cfg.Timeout

	return &Client{
		http:    client,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// Provider wire format. Kept private; the rest of the system only sees
// Itinerary values.
type searchResponse struct {
	Status      string          `json:"status"`
	Itineraries []wireItinerary `json:"itineraries"`
}

type wireItinerary struct {
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	BookingToken string    `json:"booking_token"`
	Legs         []wireLeg `json:"legs"`
}

type wireLeg struct {
	Origin       string        `json:"origin"`
	Destination  string        `json:"destination"`
	DepartureAt  time.Time     `json:"departure_at"`
	ArrivalAt    time.Time     `json:"arrival_at"`
	Airline      string        `json:"airline"`
	FlightNumber string        `json:"flight_number"`
	DurationMin  int           `json:"duration_min"`
	Layovers     []wireLayover `json:"layovers"`
}

type wireLayover struct {
	Airport     string `json:"airport"`
	DurationMin int    `json:"duration_min"`
}

// Search implements PriceSource. A non-success provider status yields an
// empty list; transport and decode failures surface as errors for the
// budgeted caller to absorb.
func (c *Client) Search(ctx context.Context, args SearchArgs) ([]Itinerary, error) {
	endpoint, err := c.searchURL(args)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	if decoded.Status != "success" {
		return nil, nil
	}

	return mapItineraries(decoded.Itineraries), nil
}

func (c *Client) searchURL(args SearchArgs) (string, error) {
	u, err := url.Parse(c.baseURL + "/v1/search")
	if err != nil {
		return "", fmt.Errorf("provider base url: %w", err)
	}
	q := u.Query()
	q.Set("origin", args.Origin)
	q.Set("destination", args.Destination)
	q.Set("departure", args.Departure.Format(time.DateOnly))
	if args.Return != nil {
		q.Set("return", args.Return.Format(time.DateOnly))
	}
	q.Set("cabin", string(args.Cabin))
	q.Set("adults", fmt.Sprint(args.Adults))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// mapItineraries converts wire itineraries, dropping anything unusable:
// zero or negative prices, empty leg lists, and non-USD quotes (the core is
// USD pass-through only).
func mapItineraries(wire []wireItinerary) []Itinerary {
	itineraries := make([]Itinerary, 0, len(wire))
	for _, w := range wire {
		if w.Price <= 0 || len(w.Legs) == 0 {
			continue
		}
		unit, err := currency.ParseISO(w.Currency)
		if err != nil || unit != currency.USD {
			continue
		}

		legs := make([]Leg, 0, len(w.Legs))
		for _, wl := range w.Legs {
			layovers := make([]Layover, 0, len(wl.Layovers))
			for _, lo := range wl.Layovers {
				layovers = append(layovers, Layover{Airport: lo.Airport, DurationMin: lo.DurationMin})
			}
			legs = append(legs, Leg{
				Origin:       wl.Origin,
				Destination:  wl.Destination,
				DepartAt:     wl.DepartureAt,
				ArriveAt:     wl.ArrivalAt,
				Airline:      wl.Airline,
				FlightNumber: wl.FlightNumber,
				DurationMin:  wl.DurationMin,
				Layovers:     layovers,
			})
		}
		itineraries = append(itineraries, Itinerary{
			Legs:         legs,
			PriceUSD:     w.Price,
			Currency:     currency.USD.String(),
			BookingToken: w.BookingToken,
		})
	}
	return itineraries
}
