package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/etnz/stockchart"
)

// analyze fetches the configured instruments and reconciles them with the event table.
//
// Instruments that cannot be fetched are reported on stderr, the analysis
// fails only if none could be.
func analyze(ctx context.Context, c stockchart.Config) (*stockchart.Analysis, error) {
	filter, err := c.EventFilter()
	if err != nil {
		return nil, err
	}
	events, err := loadEvents(c)
	if err != nil {
		return nil, err
	}
	p, err := newProvider(c)
	if err != nil {
		return nil, err
	}
	quotes, err := stockchart.FetchQuotes(ctx, p, c.Instruments, filter.Range())
	if err != nil {
		if len(quotes) == 0 {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return stockchart.Analyze(filter, quotes, events), nil
}
