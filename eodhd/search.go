package eodhd

import (
	"context"
	"net/url"

	"github.com/etnz/stockchart"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string          `json:"Code"`
	Exchange          string          `json:"Exchange"`
	Name              string          `json:"Name"`
	Type              string          `json:"Type"`
	Country           string          `json:"Country"`
	Currency          string          `json:"Currency"`
	ISIN              string          `json:"ISIN"`
	PreviousClose     float64         `json:"previousClose"`
	PreviousCloseDate stockchart.Date `json:"previousCloseDate"`
}

// Ticker returns the EODHD ticker of the result, usable as a symbol.
func (r SearchResult) Ticker() string { return r.Code + "." + r.Exchange }

// Search searches for instruments by name, code or ISIN.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	var results []SearchResult
	if err := c.get(ctx, "/search/"+url.PathEscape(term), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
