package stockchart

import "github.com/phuslu/log"

// Analysis is everything needed to draw a chart: quotes and event markers
// over a common range.
type Analysis struct {
	Range    Range
	Quotes   []Quote
	Events   []Event // events kept by the filter, in source order
	Timeline Timeline
}

// Analyze reconciles events with the chart range of the filter.
func Analyze(f EventFilter, quotes []Quote, events []Event) *Analysis {
	kept := f.Filter(events)
	timeline := Reduce(kept)

	dates := timeline.Dates()
	log.Debug().Int("events", len(events)).Int("kept", len(kept)).Int("dates", len(dates)).Msg("event markers")
	if len(dates) == 0 {
		log.Info().Msg("no event survived the filter, check the event file and the filter")
	}
	for _, e := range timeline.Entries()[:min(5, timeline.Len())] {
		log.Debug().Str("date", e.Date.String()).Str("label", e.Label).Msg("event marker")
	}

	return &Analysis{
		Range:    f.Range(),
		Quotes:   quotes,
		Events:   kept,
		Timeline: timeline,
	}
}

// Markers returns the marker dates to draw on the panel of inst.
func (a *Analysis) Markers(inst Instrument) []Date {
	if len(inst.Markers) == 0 {
		return a.Timeline.Dates()
	}
	countries := make(map[string]bool, len(inst.Markers))
	for _, c := range inst.Markers {
		countries[c] = true
	}
	return a.Timeline.DatesWhere(func(e Event) bool { return countries[e.Country] })
}
