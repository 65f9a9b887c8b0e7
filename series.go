package stockchart

import (
	"iter"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// Series stores a chronological series of close prices, one per trading day.
// It ensures that dates are unique and the series is always sorted.
type Series struct {
	days   []Date
	values []decimal.Decimal
}

// NewSeries returns a series built from a date to close price map.
func NewSeries(prices map[Date]decimal.Decimal) *Series {
	s := &Series{
		days:   make([]Date, 0, len(prices)),
		values: make([]decimal.Decimal, 0, len(prices)),
	}
	for on := range prices {
		s.days = append(s.days, on)
	}
	slices.SortFunc(s.days, Date.Compare)
	for _, on := range s.days {
		s.values = append(s.values, prices[on])
	}
	return s
}

// Append adds a point to the series.
//
// Existing value at that date is overwritten.
func (s *Series) Append(on Date, close decimal.Decimal) *Series {
	i, found := slices.BinarySearchFunc(s.days, on, Date.Compare)
	if found {
		// Give higher priority to the last data.
		s.values[i] = close
		return s
	}
	s.days = slices.Insert(s.days, i, on)
	s.values = slices.Insert(s.values, i, close)
	return s
}

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.days) }

// Dates returns a copy of the series dates.
func (s *Series) Dates() []Date { return slices.Clone(s.days) }

// Values returns an iterator over all date/close pairs, in chronological order.
func (s *Series) Values() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range s.days {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}

// Get returns the close at 'day' and true or zero value and false.
func (s *Series) Get(day Date) (decimal.Decimal, bool) {
	i, found := slices.BinarySearchFunc(s.days, day, Date.Compare)
	if !found {
		return decimal.Decimal{}, false
	}
	return s.values[i], true
}

// Baseline returns the first observation of the series, the one Rebase divides by.
// ok is false if the series is empty.
func (s *Series) Baseline() (day Date, close decimal.Decimal, ok bool) {
	if len(s.days) == 0 {
		return Date{}, decimal.Decimal{}, false
	}
	return s.days[0], s.values[0], true
}

// Latest returns the last observation of the series.
func (s *Series) Latest() (day Date, close decimal.Decimal, ok bool) {
	last := len(s.days) - 1
	if last < 0 {
		return Date{}, decimal.Decimal{}, false
	}
	return s.days[last], s.values[last], true
}

// Range returns the range of dates covered by the series.
func (s *Series) Range() (Range, bool) {
	if len(s.days) == 0 {
		return Range{}, false
	}
	return Range{From: s.days[0], To: s.days[len(s.days)-1]}, true
}

// RebasedSeries is a series scaled so that its first value is 100.
type RebasedSeries struct {
	days   []Date
	values []float64
}

// Rebase returns s scaled so that its first observation equals 100:
//
//	rebased[i] = s[i] / s[0] * 100
//
// An empty series gives an empty result. A zero baseline is not guarded: the
// IEEE result of the division (±Inf or NaN) is propagated, see
// [RebasedSeries.Degenerate].
func Rebase(s *Series) RebasedSeries {
	r := RebasedSeries{
		days:   slices.Clone(s.days),
		values: make([]float64, len(s.values)),
	}
	if len(s.values) == 0 {
		return r
	}
	base := s.values[0].InexactFloat64()
	for i, v := range s.values {
		r.values[i] = v.InexactFloat64() / base * 100
	}
	return r
}

// Len returns the number of points.
func (r RebasedSeries) Len() int { return len(r.days) }

// At returns the i-th point.
func (r RebasedSeries) At(i int) (Date, float64) { return r.days[i], r.values[i] }

// Values returns an iterator over all date/value pairs, in chronological order.
func (r RebasedSeries) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range r.days {
			if !yield(on, r.values[i]) {
				return
			}
		}
	}
}

// Latest returns the last value as a percentage change from the baseline.
func (r RebasedSeries) Latest() (Date, Percent, bool) {
	last := len(r.days) - 1
	if last < 0 {
		return Date{}, 0, false
	}
	return r.days[last], Percent(r.values[last] - 100), true
}

// Degenerate reports whether some values are not finite, which happens when
// the baseline is zero.
func (r RebasedSeries) Degenerate() bool {
	for _, v := range r.values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return true
		}
	}
	return false
}
