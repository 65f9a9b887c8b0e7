package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockchart"
	"github.com/etnz/stockchart/renderer"
	"github.com/google/subcommands"
)

type eventsCmd struct {
	overrides
	country string
	raw     bool
}

func (*eventsCmd) Name() string     { return "events" }
func (*eventsCmd) Synopsis() string { return "prints the event days marked on the chart" }
func (*eventsCmd) Usage() string {
	return `stockchart events [-country <name>] [-raw] [-from <date>] [-to <date>] [-events <file.csv>]

  Reads the event table, keeps the events of the configured countries and
  categories that overlap the range, and prints one line per marker day with
  the events sharing it. No price is fetched.

Usage Examples:
$ stockchart events -country China
`
}

func (c *eventsCmd) SetFlags(f *flag.FlagSet) {
	c.overrides.SetFlags(f)
	f.StringVar(&c.country, "country", "", "Only print the markers of that country.")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown instead of rendering it for the terminal.")
}

func (c *eventsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Error: events takes no argument.")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig(&c.overrides)
	if err != nil {
		return fail("invalid configuration: %v", err)
	}
	filter, err := cfg.EventFilter()
	if err != nil {
		return fail("%v", err)
	}
	events, err := loadEvents(cfg)
	if err != nil {
		return fail("%v", err)
	}
	if c.country != "" {
		events = keep(events, stockchart.ByCountry(c.country))
	}

	a := stockchart.Analyze(filter, nil, events)
	md := renderer.TimelineMarkdown(renderer.NewSummary(a, ""))
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

func keep(events []stockchart.Event, predicate func(stockchart.Event) bool) []stockchart.Event {
	var kept []stockchart.Event
	for _, e := range events {
		if predicate(e) {
			kept = append(kept, e)
		}
	}
	return kept
}
