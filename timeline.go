package stockchart

import (
	"slices"
	"strings"
)

// LabelSeparator joins the tags of events sharing the same day.
const LabelSeparator = "; "

// TimelineEntry is a single event marker: one day and the events collapsed on it.
type TimelineEntry struct {
	Date   Date
	Label  string  // "country:category" of each event, joined by LabelSeparator.
	Events []Event // in input order
}

// Timeline is a chronological list of event markers with unique dates.
type Timeline struct {
	entries []TimelineEntry
}

// Midpoint returns the representative day of an event: the middle of its
// interval, truncated to the day. It is the start for single day events, and
// when the end is unknown.
func Midpoint(e Event) Date {
	if e.End.IsZero() {
		return e.Start
	}
	return e.Start.Add(e.Start.DaysUntil(e.End) / 2)
}

// Reduce collapses every event to its midpoint, and merges events sharing the
// same midpoint into a single entry.
//
// Labels are built in input order, so the result only depends on the input
// sequence. Events with an unknown start are skipped.
func Reduce(events []Event) Timeline {
	byDate := make(map[Date]int)
	var entries []TimelineEntry
	for _, e := range events {
		if e.Start.IsZero() {
			continue
		}
		on := Midpoint(e)
		i, ok := byDate[on]
		if !ok {
			i = len(entries)
			byDate[on] = i
			entries = append(entries, TimelineEntry{Date: on})
		}
		entries[i].Events = append(entries[i].Events, e)
	}

	for i := range entries {
		tags := make([]string, len(entries[i].Events))
		for j, e := range entries[i].Events {
			tags[j] = e.Tag()
		}
		entries[i].Label = strings.Join(tags, LabelSeparator)
	}
	slices.SortFunc(entries, func(a, b TimelineEntry) int { return a.Date.Compare(b.Date) })
	return Timeline{entries: entries}
}

// Len returns the number of distinct days.
func (t Timeline) Len() int { return len(t.entries) }

// Entries returns a copy of the entries, sorted by date.
func (t Timeline) Entries() []TimelineEntry { return slices.Clone(t.entries) }

// Dates returns the sorted distinct days.
func (t Timeline) Dates() []Date {
	dates := make([]Date, len(t.entries))
	for i, e := range t.entries {
		dates[i] = e.Date
	}
	return dates
}

// Labels returns the day to label mapping.
func (t Timeline) Labels() map[Date]string {
	labels := make(map[Date]string, len(t.entries))
	for _, e := range t.entries {
		labels[e.Date] = e.Label
	}
	return labels
}

// Label returns the label of a day.
func (t Timeline) Label(on Date) (string, bool) {
	i, found := slices.BinarySearchFunc(t.entries, on, func(e TimelineEntry, d Date) int { return e.Date.Compare(d) })
	if !found {
		return "", false
	}
	return t.entries[i].Label, true
}

// DatesWhere returns the sorted days having at least one event matching the predicate.
func (t Timeline) DatesWhere(predicate func(Event) bool) []Date {
	var dates []Date
	for _, e := range t.entries {
		if slices.ContainsFunc(e.Events, predicate) {
			dates = append(dates, e.Date)
		}
	}
	return dates
}

// CountryDates returns the sorted days having at least one event in that country.
func (t Timeline) CountryDates(country string) []Date {
	return t.DatesWhere(ByCountry(country))
}
