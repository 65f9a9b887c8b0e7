package stockchart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phuslu/log"
)

// ErrSchema is returned when the event source lacks a required column.
var ErrSchema = errors.New("invalid event schema")

// Event columns.
const (
	ColumnCountry   = "country"
	ColumnCategory  = "category"
	ColumnStartDate = "start_date"
	ColumnEndDate   = "end_date"
)

// Event is a macroeconomic or crisis event spanning [Start, End].
//
// Point events have Start == End. A zero End means the source did not
// provide one, the event is then a single day.
type Event struct {
	Country  string
	Category string
	Start    Date
	End      Date
}

// Interval returns the event's [from, to] interval, with a missing end
// defaulting to the start.
func (e Event) Interval() (from, to Date) {
	if e.End.IsZero() {
		return e.Start, e.Start
	}
	return e.Start, e.End
}

// Tag returns the "country:category" label of the event.
func (e Event) Tag() string { return e.Country + ":" + e.Category }

func (e Event) String() string {
	from, to := e.Interval()
	return fmt.Sprintf("%s %s..%s", e.Tag(), from, to)
}

// DecodeEvents reads events from a CSV stream with a header row.
//
// The header must contain the country, category and start_date columns,
// otherwise an error wrapping ErrSchema is returned before any row is read.
// The end_date column is optional, an absent or blank end date defaults to the
// start date. Rows with an unparseable date, or ending before they start, are
// dropped.
func DecodeEvents(r io.Reader) ([]Event, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty event source", ErrSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range []string{ColumnCountry, ColumnCategory, ColumnStartDate} {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %q, found %q", ErrSchema, missing, header)
	}
	endColumn, hasEnd := columns[ColumnEndDate]

	field := func(record []string, i int) string {
		if i < len(record) {
			return record[i]
		}
		return ""
	}

	var events []Event
	dropped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}

		start, err := ParseDate(field(record, columns[ColumnStartDate]))
		if err != nil {
			dropped++
			continue
		}
		end := start
		if hasEnd {
			if raw := strings.TrimSpace(field(record, endColumn)); raw != "" {
				end, err = ParseDate(raw)
				if err != nil || end.Before(start) {
					dropped++
					continue
				}
			}
		}

		events = append(events, Event{
			Country:  strings.TrimSpace(field(record, columns[ColumnCountry])),
			Category: field(record, columns[ColumnCategory]),
			Start:    start,
			End:      end,
		})
	}
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Int("kept", len(events)).Msg("dropped events with invalid dates")
	}
	return events, nil
}
