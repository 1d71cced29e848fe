package deals

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RyanRana/reallycheapflightfinderbro/config"
	"github.com/RyanRana/reallycheapflightfinderbro/flights"
	"github.com/RyanRana/reallycheapflightfinderbro/pkg/geo"
	"github.com/RyanRana/reallycheapflightfinderbro/pkg/logger"
)

// Engine runs one deal search end to end: baseline call, concurrent
// strategy dispatch under a shared call budget, the zero-call analyzer, and
// curation. An Engine is stateless across searches and safe for concurrent
// use.
type Engine struct {
	source flights.PriceSource
	cfg    config.SearchConfig
	log    *logger.Logger
}

// NewEngine builds an engine over the given price source.
func NewEngine(source flights.PriceSource, cfg config.SearchConfig, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{source: source, cfg: cfg, log: log}
}

// Result is the curated output of one search.
type Result struct {
	SearchID string         `json:"search_id"`
	Deals    []flights.Deal `json:"deals"`
}

// Search validates the query, fans out the eligible strategies under the
// per-search budget, and returns the curated deal set sorted ascending by
// price. Upstream failures and budget exhaustion are absorbed; the only
// error returns are invalid input and a zero budget. On context
// cancellation whatever has been gathered is curated and returned.
func (e *Engine) Search(ctx context.Context, q flights.Query) (*Result, error) {
	if e.cfg.MaxCallsPerSearch < 1 {
		return nil, flights.ErrBudgetZero
	}
	if err := q.Validate(time.Now()); err != nil {
		return nil, err
	}

	searchID := uuid.NewString()
	log := e.log.WithField("search_id", searchID)
	log.Info("starting deal search",
		"origin", q.Origin, "destination", q.Destination,
		"departure", q.Departure.Format(time.DateOnly),
		"distance_mi", int(geo.Distance(q.Origin, q.Destination)),
		"route", string(geo.Route(q.Origin, q.Destination)),
		"budget", e.cfg.MaxCallsPerSearch)

	budget := flights.NewBudgeted(e.source, e.cfg.MaxCallsPerSearch, log)

	baseline := budget.Call(ctx, flights.SearchArgs{
		Origin:      q.Origin,
		Destination: q.Destination,
		Departure:   q.Departure,
		Return:      q.Return,
		Cabin:       q.Cabin,
		Adults:      q.Passengers.Adults,
	}, "baseline")
	if len(baseline) == 0 {
		log.Info("baseline search returned nothing, curating empty result")
		return &Result{SearchID: searchID}, nil
	}
	basePrice := baseline[0].PriceUSD

	type task struct {
		name string
		run  func(context.Context) []flights.Deal
	}

	// Gate each strategy by its threshold before dispatch; cheap baselines
	// never even schedule the task.
	var tasks []task
	if basePrice >= e.cfg.NearbyMinBase {
		tasks = append(tasks, task{"nearby-airport", func(ctx context.Context) []flights.Deal {
			return NearbyAirportDeals(ctx, e.cfg, q, basePrice, budget)
		}})
	}
	if basePrice >= e.cfg.SplitMinBase {
		tasks = append(tasks, task{"split-ticket", func(ctx context.Context) []flights.Deal {
			return SplitTicketDeals(ctx, e.cfg, q, basePrice, budget)
		}})
	}
	if ShouldCheckPositioning(e.cfg, basePrice) {
		tasks = append(tasks, task{"positioning", func(ctx context.Context) []flights.Deal {
			return PositioningDeals(ctx, e.cfg, q, basePrice, budget)
		}})
	}
	if ShouldCheckHiddenCity(e.cfg, basePrice) {
		tasks = append(tasks, task{"hidden-city", func(ctx context.Context) []flights.Deal {
			return HiddenCityDeals(ctx, e.cfg, q, basePrice, budget)
		}})
	}
	tasks = append(tasks,
		task{"analyzer", func(context.Context) []flights.Deal {
			return Analyze(q, baseline)
		}},
		task{"connecting-extractor", func(context.Context) []flights.Deal {
			return ExtractConnectingDeals(e.cfg, baseline, cheapestDirectPrice(baseline, basePrice))
		}},
	)

	// Each task writes into its own slot so the join order, and with it the
	// curation input, is deterministic regardless of scheduling.
	results := make([][]flights.Deal, len(tasks))
	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		go func(slot int, name string, run func(context.Context) []flights.Deal) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Error(nil, "strategy task panicked, dropping its deals",
						"strategy", name, "panic", fmt.Sprint(r))
				}
			}()
			results[slot] = run(ctx)
		}(i, t.name, t.run)
	}
	wg.Wait()

	baselineDeal := e.baselineDeal(q, baseline)
	all := make([]flights.Deal, 0, 64)
	all = append(all, baselineDeal)
	for _, deals := range results {
		all = append(all, deals...)
	}

	curated := Curate(all, e.cfg.MaxResults)
	curated = ensureDealPresent(curated, baselineDeal, e.cfg.MaxResults)

	log.Info("deal search complete",
		"deals", len(curated), "calls_used", budget.Used(), "base_price", basePrice)
	return &Result{SearchID: searchID, Deals: curated}, nil
}

// baselineDeal marks the cheapest baseline itinerary as the standard deal.
func (e *Engine) baselineDeal(q flights.Query, baseline []flights.Itinerary) flights.Deal {
	cheapest := baseline[0]
	for _, it := range baseline[1:] {
		if it.PriceUSD < cheapest.PriceUSD {
			cheapest = it
		}
	}
	return flights.Deal{
		PriceUSD:    cheapest.PriceUSD,
		Strategy:    flights.StrategyStandard,
		RiskScore:   riskBaseline,
		BookingLink: flights.BookingLink(cheapest),
		Explanation: fmt.Sprintf("Best standard fare %s-%s at $%.0f", q.Origin, q.Destination, cheapest.PriceUSD),
		Legs:        cheapest.Legs,
		Itineraries: []flights.Itinerary{cheapest},
	}
}

func cheapestDirectPrice(itineraries []flights.Itinerary, fallback float64) float64 {
	price := 0.0
	for _, it := range itineraries {
		if it.Direct() && (price == 0 || it.PriceUSD < price) {
			price = it.PriceUSD
		}
	}
	if price == 0 {
		return fallback
	}
	return price
}

// ensureDealPresent guarantees the baseline deal survives curation: the
// diversity pipeline may displace it, in which case the most expensive
// selection makes room.
func ensureDealPresent(curated []flights.Deal, deal flights.Deal, limit int) []flights.Deal {
	key := keyFor(deal)
	for _, d := range curated {
		if keyFor(d) == key {
			return curated
		}
	}
	if len(curated) >= limit && len(curated) > 0 {
		curated = curated[:len(curated)-1]
	}
	curated = append(curated, deal)
	sortDealsByPrice(curated)
	return curated
}
