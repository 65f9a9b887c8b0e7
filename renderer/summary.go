package renderer

import (
	"strings"

	"github.com/etnz/stockchart"
)

// Summary is the printable view of an analysis.
type Summary struct {
	Title   string
	Range   stockchart.Range
	Quotes  []QuoteRow
	Markers []MarkerRow
}

// QuoteRow is the start and end of an instrument over the range.
type QuoteRow struct {
	Name, Symbol      string
	Start, Last       string
	StartPrice        string
	LastPrice, Change string
}

// MarkerRow is an event day.
type MarkerRow struct {
	Date  stockchart.Date
	Label string
}

// NewSummary builds the summary of an analysis.
func NewSummary(a *stockchart.Analysis, title string) *Summary {
	s := &Summary{Title: title, Range: a.Range}
	for _, q := range a.Quotes {
		row := QuoteRow{Name: q.Instrument.Name, Symbol: q.Instrument.Symbol, Start: "-", Last: "-", StartPrice: "-", LastPrice: "-", Change: "-"}
		if on, price, ok := q.Start(); ok {
			row.Start, row.StartPrice = on.String(), price.String()
		}
		if on, price, ok := q.Series.Latest(); ok {
			row.Last, row.LastPrice = on.String(), stockchart.M(price, q.Instrument.Currency).String()
		}
		if _, change, ok := q.Rebased.Latest(); ok {
			if q.Rebased.Degenerate() {
				row.Change = "n/a"
			} else {
				row.Change = change.SignedString()
			}
		}
		s.Quotes = append(s.Quotes, row)
	}
	for _, e := range a.Timeline.Entries() {
		s.Markers = append(s.Markers, MarkerRow{Date: e.Date, Label: escape(e.Label)})
	}
	return s
}

// escape protects table cells.
func escape(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// SummaryMarkdown renders the start prices, the rebased change and the event markers.
func SummaryMarkdown(s *Summary) string {
	partials := map[string]string{
		"summary_quotes":   "summary_quotes.md",
		"summary_timeline": "timeline.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// TimelineMarkdown renders only the event markers.
func TimelineMarkdown(s *Summary) string {
	return renderTemplate("timeline", "timeline.md", nil, s)
}
