package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stockchart/eodhd"
	"github.com/google/subcommands"
)

// searchCmd implements the "search" command.
type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "searches for symbols on EODHD" }
func (*searchCmd) Usage() string {
	return `stockchart search <search term>

  Searches for instruments via EOD Historical Data API and prints
  ready-to-use configuration entries for the results.

  Requires the EODHD_API_KEY environment variable to be set or passed as a flag.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	searchTerm := strings.Join(f.Args(), " ")

	key := eodhdAPIKey()
	if key == "" {
		return fail("EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable", eodhd.APIKeyEnv)
	}
	setupLogger("info")

	results, err := eodhd.New(key).Search(ctx, searchTerm)
	if err != nil {
		return fail("searching symbols: %v", err)
	}
	if len(results) == 0 {
		fmt.Printf("No results found for '%s'.\n", searchTerm)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(results), searchTerm)
	for _, item := range results {
		fmt.Printf("➡️   Name       : %s (%s)\n", item.Name, item.Ticker())
		fmt.Printf("    Type        : %s, Country: %s, Currency: %s\n", item.Type, item.Country, item.Currency)
		fmt.Printf("    Prev. Close : %.2f on %s\n", item.PreviousClose, item.PreviousCloseDate)
		fmt.Printf("    [[instruments]]\n    name = %q\n    symbol = %q\n    currency = %q\n\n", item.Name, item.Ticker(), item.Currency)
	}
	return subcommands.ExitSuccess
}
