// Package cmd implements the CLI application to chart indices against market events.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockchart"
	"github.com/etnz/stockchart/eodhd"
	"github.com/etnz/stockchart/yahoo"
	"github.com/google/subcommands"
	"github.com/phuslu/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&chartCmd{}, "chart")
	c.Register(&summaryCmd{}, "chart")
	c.Register(&eventsCmd{}, "chart")

	c.Register(&fetchCmd{}, "prices")
	c.Register(&searchCmd{}, "prices")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "stockchart.toml", "Path to the configuration file (.toml, .yaml or .yml). Built-in defaults are used if it does not exist.")
var eodhdAPIFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for consuming EODHD.com API. This flag takes precedence over the "+eodhd.APIKeyEnv+" environment variable. You can get one at https://eodhd.com/")

// eodhdAPIKey retrieves the EODHD API key from the command-line flag or the environment variable.
func eodhdAPIKey() string {
	if *eodhdAPIFlag != "" {
		return *eodhdAPIFlag
	}
	return os.Getenv(eodhd.APIKeyEnv)
}

// overrides are the configuration values that can be set on the command line.
type overrides struct {
	from, to   string
	events     string
	provider   string
	output     string
	showLabels bool
}

func (o *overrides) SetFlags(f *flag.FlagSet) {
	f.StringVar(&o.from, "from", "", "First day of the chart range (YYYY-MM-DD). Overrides the configuration.")
	f.StringVar(&o.to, "to", "", "Last day of the chart range (YYYY-MM-DD). Overrides the configuration.")
	f.StringVar(&o.events, "events", "", "Event table (CSV). Overrides the configuration.")
	f.StringVar(&o.provider, "provider", "", "Price provider, 'eodhd' or 'yahoo'. Overrides the configuration.")
}

// apply sets the overridden values in c.
func (o *overrides) apply(c *stockchart.Config) {
	if o.from != "" {
		c.Range.From = o.from
	}
	if o.to != "" {
		c.Range.To = o.to
	}
	if o.events != "" {
		c.Events.File = o.events
	}
	if o.provider != "" {
		c.Provider = o.provider
	}
	if o.output != "" {
		c.Chart.Output = o.output
	}
	if o.showLabels {
		c.Chart.ShowLabels = true
	}
}

// loadConfig loads the configuration file, applies the command line overrides and sets up the logger.
func loadConfig(o *overrides) (stockchart.Config, error) {
	c, err := stockchart.LoadConfig(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		c, err = stockchart.DefaultConfig(), nil
	}
	if err != nil {
		return c, err
	}
	if o != nil {
		o.apply(&c)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	setupLogger(c.Log.Level)
	if o != nil && o.from+o.to+o.events+o.provider != "" {
		log.Debug().Str("range", c.Range.From+".."+c.Range.To).Str("events", c.Events.File).Str("provider", c.Provider).Msg("command line overrides")
	}
	return c, nil
}

// setupLogger configures the default logger to write human readable lines on stderr.
func setupLogger(level string) {
	if level == "" {
		level = "info"
	}
	log.DefaultLogger = log.Logger{
		Level: log.ParseLevel(level),
		Writer: &log.ConsoleWriter{
			Writer:      os.Stderr,
			ColorOutput: log.IsTerminal(os.Stderr.Fd()),
		},
	}
}

// newProvider returns the price provider named in the configuration.
func newProvider(c stockchart.Config) (stockchart.Provider, error) {
	switch c.Provider {
	case "yahoo":
		return yahoo.New(""), nil
	case "eodhd", "":
		key := eodhdAPIKey()
		if key == "" {
			return nil, fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable, or -provider yahoo", eodhd.APIKeyEnv)
		}
		return eodhd.New(key), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", c.Provider)
	}
}

// loadEvents decodes the configured event table.
func loadEvents(c stockchart.Config) ([]stockchart.Event, error) {
	if c.Events.File == "" {
		return nil, nil
	}
	f, err := os.Open(c.Events.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	events, err := stockchart.DecodeEvents(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read events %q: %w", c.Events.File, err)
	}
	return events, nil
}

// printMarkdown renders md for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	log.Debug().Err(err).Msg("markdown rendering failed")
	fmt.Print(md)
}

// fail prints the error on stderr and returns the failure exit status.
func fail(format string, args ...any) subcommands.ExitStatus {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, "Error: "+strings.TrimSpace(msg))
	return subcommands.ExitFailure
}
