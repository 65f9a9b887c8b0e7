package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockchart/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	overrides
	raw bool
}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "prints the start date, start price and change of every instrument"
}
func (*summaryCmd) Usage() string {
	return `stockchart summary [-raw] [-from <date>] [-to <date>] [-events <file.csv>] [-provider eodhd|yahoo]

  Prints, for every configured instrument, the first trading day of the range
  with its close price, the last one, and the change of the rebased series.
  The event days follow.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.overrides.SetFlags(f)
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown instead of rendering it for the terminal.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Error: summary takes no argument.")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig(&c.overrides)
	if err != nil {
		return fail("invalid configuration: %v", err)
	}
	a, err := analyze(ctx, cfg)
	if err != nil {
		return fail("%v", err)
	}
	md := renderer.SummaryMarkdown(renderer.NewSummary(a, cfg.Chart.Title))
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
