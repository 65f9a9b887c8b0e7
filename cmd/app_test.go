package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/stockchart"
	"github.com/etnz/stockchart/eodhd"
	"github.com/etnz/stockchart/yahoo"
)

func withConfigFile(t *testing.T, path string) {
	t.Helper()
	old := *configFile
	*configFile = path
	t.Cleanup(func() { *configFile = old })
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockchart.yaml")
	if err := os.WriteFile(path, []byte("provider: eodhd\nchart:\n  output: file.pdf\n"), 0644); err != nil {
		t.Fatal(err)
	}
	withConfigFile(t, path)

	o := &overrides{from: "2008-06-01", to: "2009-06-30", provider: "yahoo", output: "cli.pdf", showLabels: true}
	c, err := loadConfig(o)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	r, _ := c.DateRange()
	if want := stockchart.NewRange(stockchart.NewDate(2008, 6, 1), stockchart.NewDate(2009, 6, 30)); r != want {
		t.Errorf("range = %v, want %v", r, want)
	}
	if c.Provider != "yahoo" || c.Chart.Output != "cli.pdf" || !c.Chart.ShowLabels {
		t.Errorf("overrides not applied: %+v", c)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	withConfigFile(t, filepath.Join(t.TempDir(), "absent.toml"))
	c, err := loadConfig(nil)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if len(c.Instruments) != len(stockchart.DefaultConfig().Instruments) {
		t.Errorf("loadConfig() did not fall back to the defaults")
	}
}

func TestLoadConfig_InvalidOverride(t *testing.T) {
	withConfigFile(t, filepath.Join(t.TempDir(), "absent.toml"))
	if _, err := loadConfig(&overrides{from: "2019-01-01"}); err == nil {
		t.Errorf("loadConfig() accepted a range ending before it starts")
	}
}

func TestNewProvider(t *testing.T) {
	t.Setenv(eodhd.APIKeyEnv, "")

	c := stockchart.DefaultConfig()
	if _, err := newProvider(c); err == nil {
		t.Errorf("newProvider(eodhd) without a key succeeded")
	}

	t.Setenv(eodhd.APIKeyEnv, "secret")
	if p, err := newProvider(c); err != nil {
		t.Errorf("newProvider(eodhd) error = %v", err)
	} else if _, ok := p.(*eodhd.Client); !ok {
		t.Errorf("newProvider(eodhd) = %T", p)
	}

	c.Provider = "yahoo"
	if p, err := newProvider(c); err != nil {
		t.Errorf("newProvider(yahoo) error = %v", err)
	} else if _, ok := p.(*yahoo.Client); !ok {
		t.Errorf("newProvider(yahoo) = %T", p)
	}
}

func TestLoadEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	content := "country,category,start_date,end_date\nChina,currency,2015-08-11,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	c := stockchart.DefaultConfig()
	c.Events.File = path
	events, err := loadEvents(c)
	if err != nil || len(events) != 1 {
		t.Errorf("loadEvents() = %v, %v, want one event", events, err)
	}

	c.Events.File = filepath.Join(t.TempDir(), "absent.csv")
	if _, err := loadEvents(c); err == nil {
		t.Errorf("loadEvents() of a missing file succeeded")
	}
}
