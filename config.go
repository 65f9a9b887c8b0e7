package stockchart

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds everything a chart run depends on.
//
// Dates are kept as strings in the configuration files, see [Config.DateRange].
type Config struct {
	Range       RangeConfig  `toml:"range" yaml:"range"`
	Events      EventsConfig `toml:"events" yaml:"events"`
	Instruments []Instrument `toml:"instruments" yaml:"instruments" validate:"required,min=1,dive"`
	Provider    string       `toml:"provider" yaml:"provider" validate:"oneof=eodhd yahoo"`
	Chart       ChartConfig  `toml:"chart" yaml:"chart"`
	Log         LogConfig    `toml:"log" yaml:"log"`
}

// RangeConfig is the chart date range.
type RangeConfig struct {
	From string `toml:"from" yaml:"from" validate:"required"`
	To   string `toml:"to" yaml:"to" validate:"required"`
}

// EventsConfig locates the event table and selects the events to mark.
type EventsConfig struct {
	File       string   `toml:"file" yaml:"file"`
	Countries  []string `toml:"countries" yaml:"countries" validate:"min=1"`
	Categories []string `toml:"categories" yaml:"categories" validate:"min=1"`
}

// Instrument is a priced symbol to chart.
type Instrument struct {
	Name     string `toml:"name" yaml:"name" validate:"required"`
	Symbol   string `toml:"symbol" yaml:"symbol" validate:"required"`
	Currency string `toml:"currency" yaml:"currency" validate:"omitempty,len=3"`
	// Markers restricts the event markers of the instrument panel to these
	// countries. All markers are drawn when empty.
	Markers []string `toml:"markers" yaml:"markers"`
}

// ChartConfig controls the rendered chart.
type ChartConfig struct {
	Output     string `toml:"output" yaml:"output" validate:"required"`
	Title      string `toml:"title" yaml:"title"`
	ShowLabels bool   `toml:"show_labels" yaml:"show_labels"`
	Ticks      string `toml:"ticks" yaml:"ticks" validate:"omitempty,oneof=monthly yearly"`
}

// LogConfig controls the log output.
type LogConfig struct {
	Level string `toml:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns the configuration of the KOSPI crisis chart: Korean,
// US indices and the USD/KRW rate over 2008-2018, with US and Chinese
// financial crises marked.
func DefaultConfig() Config {
	return Config{
		Range: RangeConfig{From: "2008-01-01", To: "2018-12-31"},
		Events: EventsConfig{
			File:       "market_events_2008_2018_us_china.csv",
			Countries:  []string{"United States", "China"},
			Categories: []string{"banking", "systemic", "currency", "inflation", "sovereign_default"},
		},
		Instruments: []Instrument{
			{Name: "KOSPI", Symbol: "KS11", Currency: "KRW"},
			{Name: "KOSDAQ", Symbol: "KQ11", Currency: "KRW"},
			{Name: "USD/KRW", Symbol: "USD/KRW", Currency: "KRW"},
			{Name: "Dow Jones", Symbol: "DJI", Currency: "USD"},
			{Name: "NASDAQ", Symbol: "IXIC", Currency: "USD"},
		},
		Provider: "eodhd",
		Chart: ChartConfig{
			Output: "stockchart.pdf",
			Title:  "Various index (2008~2018)",
			Ticks:  "yearly",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a configuration file. Values absent from the file are
// taken from the default configuration.
//
// The format is chosen from the file extension: .toml, .yaml or .yml.
func LoadConfig(path string) (Config, error) {
	var c Config
	content, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := c.decode(filepath.Ext(path), content); err != nil {
		return c, fmt.Errorf("cannot decode config %q: %w", path, err)
	}
	c.setDefaults(DefaultConfig())
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return c, nil
}

// setDefaults sets every empty value of c to its value in d.
func (c *Config) setDefaults(d Config) {
	set := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	set(&c.Range.From, d.Range.From)
	set(&c.Range.To, d.Range.To)
	set(&c.Events.File, d.Events.File)
	if len(c.Events.Countries) == 0 {
		c.Events.Countries = d.Events.Countries
	}
	if len(c.Events.Categories) == 0 {
		c.Events.Categories = d.Events.Categories
	}
	if len(c.Instruments) == 0 {
		c.Instruments = d.Instruments
	}
	set(&c.Provider, d.Provider)
	set(&c.Chart.Output, d.Chart.Output)
	set(&c.Chart.Title, d.Chart.Title)
	set(&c.Chart.Ticks, d.Chart.Ticks)
	set(&c.Log.Level, d.Log.Level)
}

// decode decodes content over c according to the file extension.
func (c *Config) decode(ext string, content []byte) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		return dec.Decode(c)
	default:
		return fmt.Errorf("unsupported config format %q, want .toml, .yaml or .yml", ext)
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := c.DateRange(); err != nil {
		return err
	}
	if _, err := c.TickPeriod(); err != nil {
		return err
	}
	return nil
}

// DateRange returns the chart range.
func (c Config) DateRange() (Range, error) {
	from, err := ParseDate(c.Range.From)
	if err != nil {
		return Range{}, fmt.Errorf("range from: %w", err)
	}
	to, err := ParseDate(c.Range.To)
	if err != nil {
		return Range{}, fmt.Errorf("range to: %w", err)
	}
	if to.Before(from) {
		return Range{}, errors.New("range ends before it starts")
	}
	return Range{From: from, To: to}, nil
}

// EventFilter returns the event filter of the configuration.
func (c Config) EventFilter() (EventFilter, error) {
	r, err := c.DateRange()
	if err != nil {
		return EventFilter{}, err
	}
	return NewEventFilter(c.Events.Countries, c.Events.Categories, r), nil
}

// TickPeriod returns the period between chart axis ticks, yearly by default.
func (c Config) TickPeriod() (Period, error) {
	if c.Chart.Ticks == "" {
		return Yearly, nil
	}
	return ParsePeriod(c.Chart.Ticks)
}
