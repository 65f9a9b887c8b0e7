package stockchart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeProvider serves fixed series by symbol.
type fakeProvider map[string]*Series

func (p fakeProvider) Fetch(_ context.Context, symbol string, r Range) (*Series, error) {
	s, ok := p[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	out := &Series{}
	for on, v := range s.Values() {
		if r.Contains(on) {
			out.Append(on, v)
		}
	}
	return out, nil
}

func TestFetchQuotes(t *testing.T) {
	p := fakeProvider{
		"KS11": series(t, "2007-12-28", "1897.13", "2008-01-02", "1853.45", "2008-01-03", "1852.73"),
		"DJI":  series(t, "2008-01-02", "13043.96"),
	}
	instruments := []Instrument{
		{Name: "KOSPI", Symbol: "KS11", Currency: "KRW"},
		{Name: "Nikkei", Symbol: "N225", Currency: "JPY"},
		{Name: "Dow Jones", Symbol: "DJI", Currency: "USD"},
	}
	quotes, err := FetchQuotes(context.Background(), p, instruments, chartRange)
	if err == nil {
		t.Errorf("FetchQuotes() error = nil, want the N225 failure")
	}
	if len(quotes) != 2 {
		t.Fatalf("FetchQuotes() returned %d quotes, want 2", len(quotes))
	}

	on, price, ok := quotes[0].Start()
	if !ok || on != NewDate(2008, 1, 2) || price.Currency() != "KRW" || price.Value().String() != "1853.45" {
		t.Errorf("Start() = %v, %v, %v, want 2008-01-02, 1853.45 KRW", on, price, ok)
	}
	if _, v := quotes[0].Rebased.At(0); v != 100 {
		t.Errorf("Rebased[0] = %v, want 100", v)
	}
	if quotes[1].Instrument.Name != "Dow Jones" {
		t.Errorf("quotes[1] = %v, want Dow Jones", quotes[1].Instrument.Name)
	}
}

func TestAnalyze(t *testing.T) {
	events := []Event{
		event("United States", "banking", "2008-09-01", "2008-09-15"),
		event("China", "currency", "2015-08-11", ""),
		event("Japan", "banking", "2008-09-15", ""),
		event("China", "inflation", "2007-01-01", "2007-03-01"),
	}
	a := Analyze(NewEventFilter(countries, categories, chartRange), nil, events)

	if a.Range != chartRange {
		t.Errorf("Range = %v, want %v", a.Range, chartRange)
	}
	if len(a.Events) != 2 {
		t.Errorf("Events = %v, want 2 events", a.Events)
	}

	all := []Date{NewDate(2008, 9, 8), NewDate(2015, 8, 11)}
	if diff := cmp.Diff(all, a.Markers(Instrument{Name: "KOSPI"}), cmp.AllowUnexported(Date{})); diff != "" {
		t.Errorf("Markers() mismatch (-want +got):\n%s", diff)
	}
	china := []Date{NewDate(2015, 8, 11)}
	if diff := cmp.Diff(china, a.Markers(Instrument{Name: "KOSPI", Markers: []string{"China"}}), cmp.AllowUnexported(Date{})); diff != "" {
		t.Errorf("Markers(China) mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_NoEvents(t *testing.T) {
	a := Analyze(NewEventFilter(countries, categories, chartRange), nil, nil)
	if a.Timeline.Len() != 0 || len(a.Markers(Instrument{})) != 0 {
		t.Errorf("Analyze(nil) has markers %v", a.Timeline.Dates())
	}
}
