// Package yahoo retrieves daily close prices from the Yahoo Finance chart API.
//
// It is the fallback provider when no EODHD key is available.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stockchart"
	"github.com/etnz/stockchart/httpcache"
	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the chart endpoint root.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// userAgent is required by the endpoint, which rejects the default Go one.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) stockchart"

// Client is a Yahoo Finance chart client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New returns a client on baseURL, or DefaultBaseURL if empty.
// Responses are cached on disk for the day.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	cached := httpcache.NewClient("", stockchart.Daily)
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Transport: withUserAgent{cached.Transport}},
		limiter:    rate.NewLimiter(rate.Limit(2), 1),
	}
}

type withUserAgent struct{ base http.RoundTripper }

func (t withUserAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return t.base.RoundTrip(req)
}

// Ticker returns the Yahoo ticker of a symbol.
//
// Currency pairs like "USD/KRW" become "USDKRW=X", bare index codes get the
// "^" prefix, anything else is kept as is.
func Ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if from, to, ok := strings.Cut(symbol, "/"); ok {
		return from + to + "=X"
	}
	if strings.ContainsAny(symbol, ".^=") {
		return symbol
	}
	return "^" + symbol
}

// Fetch returns the daily close prices of symbol over r.
func (c *Client) Fetch(ctx context.Context, symbol string, r stockchart.Range) (*stockchart.Series, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("yahoo rate limiter: %w", err)
	}
	ticker := Ticker(symbol)

	params := url.Values{}
	params.Set("period1", fmt.Sprint(r.From.Time().Unix()))
	params.Set("period2", fmt.Sprint(r.To.Add(1).Time().Unix()))
	params.Set("interval", "1d")
	params.Set("events", "history")
	addr := c.baseURL + url.PathEscape(ticker) + "?" + params.Encode()

	var payload any
	if err := httpcache.GetJSON(ctx, c.httpClient, addr, &payload); err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	series, err := parseChart(payload, r)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	log.Debug().Str("symbol", symbol).Str("ticker", ticker).Int("points", series.Len()).Msg("yahoo prices")
	return series, nil
}

// parseChart extracts the close series from a chart payload.
//
//	{"chart": {"result": [{
//	    "meta": {"gmtoffset": 32400, ...},
//	    "timestamp": [1199232000, ...],
//	    "indicators": {"quote": [{"close": [1853.45, null, ...], ...}]}
//	}], "error": null}}
func parseChart(payload any, r stockchart.Range) (*stockchart.Series, error) {
	if description, err := jsonpath.Get("$.chart.error.description", payload); err == nil && description != nil {
		return nil, fmt.Errorf("chart error: %v", description)
	}

	series := new(stockchart.Series)
	jtimestamps, err := jsonpath.Get("$.chart.result[0].timestamp", payload)
	if err != nil {
		// No timestamp at all is how the API says there is no data in the range.
		return series, nil
	}
	timestamps, ok := jtimestamps.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected timestamp list %T", jtimestamps)
	}
	jcloses, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", payload)
	if err != nil {
		return nil, fmt.Errorf("missing close prices: %w", err)
	}
	closes, ok := jcloses.([]any)
	if !ok || len(closes) != len(timestamps) {
		return nil, fmt.Errorf("close prices do not match timestamps")
	}

	// Timestamps are the session open, in UTC. The exchange offset gives back the local trading day.
	var offset float64
	if joffset, err := jsonpath.Get("$.chart.result[0].meta.gmtoffset", payload); err == nil {
		offset, _ = joffset.(float64)
	}

	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			return nil, fmt.Errorf("invalid timestamp %v", jts)
		}
		price, ok := closes[i].(float64)
		if !ok {
			// null close for holidays and partial sessions
			continue
		}
		on := stockchart.DateOf(time.Unix(int64(ts+offset), 0).UTC())
		if !r.Contains(on) {
			continue
		}
		series.Append(on, decimal.NewFromFloat(price))
	}
	return series, nil
}
