package eodhd

import (
	"context"
	"net/url"
	"strings"

	"github.com/etnz/stockchart"
	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

// Ticker returns the EODHD ticker of a symbol.
//
// Currency pairs like "USD/KRW" are quoted on the virtual FOREX exchange,
// symbols with an explicit exchange ("MCD.US") are kept as is, anything else is
// an index ("KS11" is "KS11.INDX").
func Ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if from, to, ok := strings.Cut(symbol, "/"); ok {
		return from + to + ".FOREX"
	}
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".INDX"
}

// isForex reports whether the ticker is a currency pair.
func isForex(ticker string) bool { return strings.HasSuffix(ticker, ".FOREX") }

// bar is a daily price as returned by the eod endpoint.
type bar struct {
	Date  stockchart.Date `json:"date"`
	Open  decimal.Decimal `json:"open"`
	Close decimal.Decimal `json:"close"`
}

// Fetch returns the daily close prices of symbol over r.
//
// An empty series is returned when the provider has no data for that range.
func (c *Client) Fetch(ctx context.Context, symbol string, r stockchart.Range) (*stockchart.Series, error) {
	ticker := Ticker(symbol)
	series := new(stockchart.Series)

	if isForex(ticker) {
		// eodhd forex close values are unreliable, often equal to the open.
		// The open of the next day is closer to the truth, so be it.
		bars, err := c.fetchBars(ctx, ticker, r.From.Add(1), r.To.Add(1))
		if err != nil {
			return nil, err
		}
		for _, b := range bars {
			series.Append(b.Date.Add(-1), b.Open)
		}
	} else {
		bars, err := c.fetchBars(ctx, ticker, r.From, r.To)
		if err != nil {
			return nil, err
		}
		for _, b := range bars {
			series.Append(b.Date, b.Close)
		}
	}

	log.Debug().Str("symbol", symbol).Str("ticker", ticker).Int("points", series.Len()).Msg("eodhd prices")
	return series, nil
}

// fetchBars returns the daily bars for a given ticker, bounds included.
func (c *Client) fetchBars(ctx context.Context, ticker string, from, to stockchart.Date) ([]bar, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2017-01-05&to=2017-02-10
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	params := url.Values{}
	params.Set("from", from.String())
	params.Set("to", to.String())
	params.Set("period", "d")
	params.Set("order", "a")

	content := make([]bar, 0)
	if err := c.get(ctx, "/eod/"+ticker, params, &content); err != nil {
		return nil, err
	}
	return content, nil
}
