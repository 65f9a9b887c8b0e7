package stockchart

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeEvents(t *testing.T) {
	input := "\ufeffCountry,category,start_date,end_date,description\n" +
		"United States,banking,2008-09-01,2008-09-15,Lehman\n" +
		" China ,currency,2015-08-11,,devaluation\n" +
		"China,inflation,not-a-date,2011-01-01,dropped\n" +
		"China,inflation,2011-01-01,bad,dropped\n" +
		"China,inflation,2011-02-01,2011-01-01,dropped ends before start\n" +
		"United States,sovereign_default,2011-08-05\n"

	got, err := DecodeEvents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeEvents() error = %v", err)
	}
	want := []Event{
		{Country: "United States", Category: "banking", Start: NewDate(2008, 9, 1), End: NewDate(2008, 9, 15)},
		{Country: "China", Category: "currency", Start: NewDate(2015, 8, 11), End: NewDate(2015, 8, 11)},
		{Country: "United States", Category: "sovereign_default", Start: NewDate(2011, 8, 5), End: NewDate(2011, 8, 5)},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Date{})); diff != "" {
		t.Errorf("DecodeEvents() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEvents_NoEndColumn(t *testing.T) {
	got, err := DecodeEvents(strings.NewReader("start_date,country,category\n2008-09-15,United States,banking\n"))
	if err != nil {
		t.Fatalf("DecodeEvents() error = %v", err)
	}
	if len(got) != 1 || got[0].End != got[0].Start {
		t.Errorf("DecodeEvents() = %v, want a single day event", got)
	}
}

func TestDecodeEvents_Schema(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no country", "category,start_date,end_date\nbanking,2008-09-01,2008-09-15\n"},
		{"no category", "country,start_date\nChina,2008-09-01\n"},
		{"no start", "country,category,end_date\nChina,banking,2008-09-15\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeEvents(strings.NewReader(tt.input))
			if !errors.Is(err, ErrSchema) {
				t.Errorf("DecodeEvents() error = %v, want %v", err, ErrSchema)
			}
			if got != nil {
				t.Errorf("DecodeEvents() = %v, want nil", got)
			}
		})
	}
}

func TestEvent_Interval(t *testing.T) {
	e := Event{Country: "China", Category: "currency", Start: NewDate(2015, 8, 11)}
	from, to := e.Interval()
	if from != e.Start || to != e.Start {
		t.Errorf("Interval() = %v, %v, want %v, %v", from, to, e.Start, e.Start)
	}
	if got, want := e.String(), "China:currency 2015-08-11..2015-08-11"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
