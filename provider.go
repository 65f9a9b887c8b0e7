package stockchart

import (
	"context"
	"errors"
	"fmt"

	"github.com/phuslu/log"
)

// Provider retrieves daily close prices.
type Provider interface {
	// Fetch returns the close prices of symbol over r. The series can be
	// empty if the provider has no data in that range.
	Fetch(ctx context.Context, symbol string, r Range) (*Series, error)
}

// Quote is an instrument with its close prices over the chart range.
type Quote struct {
	Instrument Instrument
	Series     *Series
	Rebased    RebasedSeries
}

// Start returns the first trading day and its close price.
func (q Quote) Start() (Date, Money, bool) {
	on, price, ok := q.Series.Baseline()
	return on, M(price, q.Instrument.Currency), ok
}

// FetchQuotes fetches every instrument over r, in order.
//
// Instruments that fail are reported in the joined error and left out of the
// result, so that a single failing symbol does not prevent the chart.
func FetchQuotes(ctx context.Context, p Provider, instruments []Instrument, r Range) ([]Quote, error) {
	var quotes []Quote
	var errs error
	for _, inst := range instruments {
		series, err := p.Fetch(ctx, inst.Symbol, r)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("failed to fetch %s (%s): %w", inst.Name, inst.Symbol, err))
			continue
		}
		q := Quote{Instrument: inst, Series: series, Rebased: Rebase(series)}
		if series.Len() == 0 {
			log.Warn().Str("instrument", inst.Name).Str("range", r.String()).Msg("no prices")
		} else if q.Rebased.Degenerate() {
			log.Warn().Str("instrument", inst.Name).Msg("zero baseline, rebased values are not finite")
		}
		quotes = append(quotes, q)
	}
	return quotes, errs
}
