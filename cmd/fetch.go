package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockchart"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	overrides
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches and prints the close prices of a symbol" }
func (*fetchCmd) Usage() string {
	return `stockchart fetch [-from <date>] [-to <date>] [-provider eodhd|yahoo] <symbol>

  Fetches the daily close prices of a symbol over the range and prints them,
  one "date<TAB>close<TAB>rebased" line per trading day.

Usage Examples:
$ stockchart fetch -from 2008-01-01 -to 2008-01-31 KS11
$ stockchart fetch -provider yahoo USD/KRW
`
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: a single symbol is required.")
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)

	cfg, err := loadConfig(&c.overrides)
	if err != nil {
		return fail("invalid configuration: %v", err)
	}
	r, _ := cfg.DateRange()
	p, err := newProvider(cfg)
	if err != nil {
		return fail("%v", err)
	}
	series, err := p.Fetch(ctx, symbol, r)
	if err != nil {
		return fail("%v", err)
	}
	if series.Len() == 0 {
		fmt.Fprintf(os.Stderr, "No prices for %s in %s.\n", symbol, r)
		return subcommands.ExitSuccess
	}
	rebased := stockchart.Rebase(series)
	i := 0
	for on, price := range series.Values() {
		_, v := rebased.At(i)
		fmt.Printf("%s\t%s\t%.2f\n", on, price, v)
		i++
	}
	return subcommands.ExitSuccess
}
