package flights

import (
	"context"
	"time"
)

// SearchArgs are the inputs of a single upstream price lookup.
type SearchArgs struct {
	Origin      string
	Destination string
	Departure   time.Time
	Return      *time.Time
	Cabin       Cabin
	Adults      int
}

// PriceSource is the opaque interface to an upstream flight-price provider.
//
// Implementations return their preferred itinerary first and an empty list
// for any failure class they absorb internally; transport-level failures may
// surface as errors, which callers treat the same as an empty list. A
// PriceSource must be safe for concurrent use.
type PriceSource interface {
	Search(ctx context.Context, args SearchArgs) ([]Itinerary, error)
}

// SourceFunc adapts a function to the PriceSource interface.
type SourceFunc func(ctx context.Context, args SearchArgs) ([]Itinerary, error)

// Search implements PriceSource.
func (f SourceFunc) Search(ctx context.Context, args SearchArgs) ([]Itinerary, error) {
	return f(ctx, args)
}
