package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockchart/chart"
	"github.com/google/subcommands"
	"github.com/phuslu/log"
)

type chartCmd struct {
	overrides
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "renders the PDF chart of the indices with the event markers" }
func (*chartCmd) Usage() string {
	return `stockchart chart [-o <file.pdf>] [-labels] [-from <date>] [-to <date>] [-events <file.csv>] [-provider eodhd|yahoo]

  Fetches the close prices of the configured instruments, rebases them to 100
  on the first day, selects the events overlapping the range and renders one
  panel per instrument, a panel with all close prices and a panel with all
  rebased series. Every event day is drawn as a dashed vertical line.

Usage Examples:
# Writes the default chart
$ stockchart chart

# Zoom on the 2008 crisis, with the event labels
$ stockchart chart -from 2008-06-01 -to 2009-06-30 -labels -o crisis.pdf
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.overrides.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output PDF file. Overrides the configuration.")
	f.BoolVar(&c.showLabels, "labels", false, "Print the event labels next to the markers.")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Error: chart takes no argument.")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig(&c.overrides)
	if err != nil {
		return fail("invalid configuration: %v", err)
	}
	ticks, _ := cfg.TickPeriod()

	a, err := analyze(ctx, cfg)
	if err != nil {
		return fail("%v", err)
	}

	out, err := os.Create(cfg.Chart.Output)
	if err != nil {
		return fail("cannot create chart: %v", err)
	}
	defer out.Close()
	opts := chart.Options{Title: cfg.Chart.Title, ShowLabels: cfg.Chart.ShowLabels, Ticks: ticks}
	if err := chart.Render(out, a, opts); err != nil {
		return fail("%v", err)
	}
	if err := out.Close(); err != nil {
		return fail("cannot write chart: %v", err)
	}
	log.Info().Str("output", cfg.Chart.Output).Int("panels", len(a.Quotes)+2).Int("markers", a.Timeline.Len()).Msg("chart written")
	return subcommands.ExitSuccess
}
