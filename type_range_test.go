package stockchart

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRange_Periods(t *testing.T) {
	tests := []struct {
		name     string
		r        Range
		p        Period
		expected []Range
	}{
		{
			name: "Weekly periods over two weeks",
			r:    NewRange(NewDate(2024, 1, 10), NewDate(2024, 1, 17)), // Wednesday to Wednesday
			p:    Weekly,
			expected: []Range{
				NewRange(NewDate(2024, 1, 8), NewDate(2024, 1, 14)),
				NewRange(NewDate(2024, 1, 15), NewDate(2024, 1, 21)),
			},
		},
		{
			name: "Yearly periods over the chart decade edges",
			r:    NewRange(NewDate(2008, 6, 1), NewDate(2010, 2, 1)),
			p:    Yearly,
			expected: []Range{
				NewRange(NewDate(2008, 1, 1), NewDate(2008, 12, 31)),
				NewRange(NewDate(2009, 1, 1), NewDate(2009, 12, 31)),
				NewRange(NewDate(2010, 1, 1), NewDate(2010, 12, 31)),
			},
		},
		{
			name: "Daily periods",
			r:    NewRange(NewDate(2024, 1, 1), NewDate(2024, 1, 3)),
			p:    Daily,
			expected: []Range{
				NewRange(NewDate(2024, 1, 1), NewDate(2024, 1, 1)),
				NewRange(NewDate(2024, 1, 2), NewDate(2024, 1, 2)),
				NewRange(NewDate(2024, 1, 3), NewDate(2024, 1, 3)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(tt.r.Periods(tt.p))
			if diff := cmp.Diff(tt.expected, got, cmp.AllowUnexported(Date{})); diff != "" {
				t.Errorf("Range.Periods() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRange_Overlaps(t *testing.T) {
	r := NewRange(NewDate(2008, 1, 1), NewDate(2018, 12, 31))
	tests := []struct {
		name     string
		from, to Date
		want     bool
	}{
		{"inside", NewDate(2008, 9, 1), NewDate(2008, 9, 15), true},
		{"straddles start", NewDate(2007, 12, 15), NewDate(2008, 1, 10), true},
		{"straddles end", NewDate(2018, 12, 20), NewDate(2019, 1, 5), true},
		{"covers range", NewDate(2000, 1, 1), NewDate(2020, 1, 1), true},
		{"ends on first day", NewDate(2007, 12, 1), NewDate(2008, 1, 1), true},
		{"starts on last day", NewDate(2018, 12, 31), NewDate(2019, 1, 31), true},
		{"before", NewDate(2007, 12, 1), NewDate(2007, 12, 31), false},
		{"after", NewDate(2019, 1, 1), NewDate(2019, 1, 2), false},
		{"zero start", Date{}, NewDate(2008, 9, 15), false},
		{"zero end", NewDate(2008, 9, 1), Date{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Overlaps(tt.from, tt.to); got != tt.want {
				t.Errorf("%v.Overlaps(%v, %v) = %v, want %v", r, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestRange_Identifier(t *testing.T) {
	tests := []struct {
		r    Range
		want string
	}{
		{NewRange(NewDate(2008, 1, 1), NewDate(2008, 1, 1)), "2008-01-01"},
		{NewRange(NewDate(2008, 1, 1), NewDate(2008, 12, 31)), "2008"},
		{NewRange(NewDate(2008, 2, 1), NewDate(2008, 2, 29)), "2008-02"},
		{NewRange(NewDate(2008, 1, 1), NewDate(2018, 12, 31)), "2008-01-01_2018-12-31"},
	}
	for _, tt := range tests {
		if got := tt.r.Identifier(); got != tt.want {
			t.Errorf("%v.Identifier() = %q, want %q", tt.r, got, tt.want)
		}
	}
}
