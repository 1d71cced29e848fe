package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RyanRana/reallycheapflightfinderbro/flights"
	"github.com/RyanRana/reallycheapflightfinderbro/pkg/deals"
)

// Searcher runs one deal search. Satisfied by *deals.Engine.
type Searcher interface {
	Search(ctx context.Context, q flights.Query) (*deals.Result, error)
}

// SearchRequest represents a deal search request
type SearchRequest struct {
	Origin      string   `json:"origin" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	Departure   string   `json:"departure" binding:"required"`
	Return      string   `json:"return,omitempty"`
	Flexible    bool     `json:"flexible,omitempty"`
	Cabins      []string `json:"cabins,omitempty"`
	Passengers  struct {
		Adults   int `json:"adults" binding:"required,min=1"`
		Children int `json:"children" binding:"min=0"`
		Infants  int `json:"infants" binding:"min=0"`
	} `json:"passengers" binding:"required"`
}

// toQuery converts the wire request into a domain query. Only the first
// requested cabin is searched; the rest are advisory.
func (r SearchRequest) toQuery() (flights.Query, error) {
	departure, err := time.Parse(time.DateOnly, r.Departure)
	if err != nil {
		return flights.Query{}, errors.New("departure must be formatted YYYY-MM-DD")
	}

	q := flights.Query{
		Origin:      r.Origin,
		Destination: r.Destination,
		Departure:   departure,
		Cabin:       flights.Economy,
		Flexible:    r.Flexible,
		Passengers: flights.Passengers{
			Adults:   r.Passengers.Adults,
			Children: r.Passengers.Children,
			Infants:  r.Passengers.Infants,
		},
	}
	if len(r.Cabins) > 0 {
		q.Cabin = flights.ParseCabin(r.Cabins[0])
	}
	if r.Return != "" {
		ret, err := time.Parse(time.DateOnly, r.Return)
		if err != nil {
			return flights.Query{}, errors.New("return must be formatted YYYY-MM-DD")
		}
		q.Return = &ret
	}
	return q, nil
}

// CreateSearch returns a handler that runs a deal search synchronously
func CreateSearch(searcher Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		query, err := req.toQuery()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := searcher.Search(c.Request.Context(), query)
		if err != nil {
			if errors.Is(err, flights.ErrInvalidInput) || errors.Is(err, flights.ErrBudgetZero) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"search_id": result.SearchID,
			"deals":     result.Deals,
		})
	}
}
