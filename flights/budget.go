package flights

import (
	"context"
	"sync/atomic"

	"github.com/RyanRana/reallycheapflightfinderbro/pkg/logger"
)

// DefaultMaxCalls is the default per-search upstream call budget.
const DefaultMaxCalls = 15

// BudgetedSource wraps a PriceSource with a shared per-search call budget.
// The budget protects cost, not correctness: once spent, every further call
// returns an empty list and strategies are expected to move on.
//
// One BudgetedSource lives for the lifetime of a single search and is safe
// for concurrent use by all of its strategy goroutines.
type BudgetedSource struct {
	source PriceSource
	max    int64
	used   atomic.Int64
	log    *logger.Logger
}

// NewBudgeted wraps source with a budget of max calls. A max below one
// falls back to DefaultMaxCalls; the engine rejects such configs up front
// with ErrBudgetZero.
func NewBudgeted(source PriceSource, max int, log *logger.Logger) *BudgetedSource {
	if max < 1 {
		max = DefaultMaxCalls
	}
	if log == nil {
		log = logger.Discard()
	}
	return &BudgetedSource{source: source, max: int64(max), log: log}
}

// acquire reserves one budget unit. The compare-and-swap loop keeps
// used <= max at every observation point even under concurrent callers.
func (b *BudgetedSource) acquire() bool {
	for {
		used := b.used.Load()
		if used >= b.max {
			return false
		}
		if b.used.CompareAndSwap(used, used+1) {
			return true
		}
	}
}

// Call issues one upstream lookup, identified in logs by reason. It returns
// an empty list when the budget is exhausted or when the upstream call
// fails; neither case is an error to the caller.
func (b *BudgetedSource) Call(ctx context.Context, args SearchArgs, reason string) []Itinerary {
	if !b.acquire() {
		b.log.Debug("search budget exhausted, skipping upstream call",
			"reason", reason, "origin", args.Origin, "destination", args.Destination)
		return nil
	}

	b.log.Debug("upstream call",
		"reason", reason, "origin", args.Origin, "destination", args.Destination,
		"used", b.Used(), "max", b.max)

	itineraries, err := b.source.Search(ctx, args)
	if err != nil {
		b.log.Warn("upstream search failed",
			"reason", reason, "origin", args.Origin, "destination", args.Destination, "error", err)
		return nil
	}
	return itineraries
}

// Used returns the number of budget units consumed so far.
func (b *BudgetedSource) Used() int {
	return int(b.used.Load())
}

// Remaining returns the number of calls still available.
func (b *BudgetedSource) Remaining() int {
	rem := b.max - b.used.Load()
	if rem < 0 {
		return 0
	}
	return int(rem)
}
