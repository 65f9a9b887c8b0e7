package stockchart

// EventFilter selects the events to mark on a chart.
//
// An event is kept when its country and category are both allowed and its
// interval overlaps the chart range. Empty allow-sets allow nothing.
type EventFilter struct {
	countries  map[string]bool
	categories map[string]bool
	rng        Range
}

// NewEventFilter returns a filter on allowed countries and categories over the chart range r.
func NewEventFilter(countries, categories []string, r Range) EventFilter {
	f := EventFilter{
		countries:  make(map[string]bool, len(countries)),
		categories: make(map[string]bool, len(categories)),
		rng:        r,
	}
	for _, c := range countries {
		f.countries[c] = true
	}
	for _, c := range categories {
		f.categories[c] = true
	}
	return f
}

// Range returns the chart range of the filter.
func (f EventFilter) Range() Range { return f.rng }

// Match reports whether e passes the filter.
//
// An event with an unknown start never matches. An event with an unknown end
// is tested as a single day.
func (f EventFilter) Match(e Event) bool {
	if !f.countries[e.Country] || !f.categories[e.Category] {
		return false
	}
	from, to := e.Interval()
	return f.rng.Overlaps(from, to)
}

// Filter returns the events matching f, in their original order.
//
// The input is not modified.
func (f EventFilter) Filter(events []Event) []Event {
	var kept []Event
	for _, e := range events {
		if f.Match(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

// ByCountry returns a predicate on the event country.
func ByCountry(country string) func(Event) bool {
	return func(e Event) bool { return e.Country == country }
}
