package chart

import (
	"math"

	"github.com/etnz/stockchart"
)

// linear maps a data interval onto a page interval.
type linear struct {
	d0, d1 float64 // data
	p0, p1 float64 // page
}

func (s linear) at(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.p0 + s.p1) / 2
	}
	return s.p0 + (v-s.d0)*(s.p1-s.p0)/(s.d1-s.d0)
}

// dateScale maps the days of r onto [x0, x1].
type dateScale struct {
	r     stockchart.Range
	scale linear
}

func newDateScale(r stockchart.Range, x0, x1 float64) dateScale {
	return dateScale{r: r, scale: linear{d0: 0, d1: float64(r.Days() - 1), p0: x0, p1: x1}}
}

func (s dateScale) at(on stockchart.Date) float64 {
	return s.scale.at(float64(s.r.From.DaysUntil(on)))
}

// extent returns the min and max of the finite values, ok is false if there is none.
func extent(values ...[]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi, ok = min(lo, v), max(hi, v), true
		}
	}
	return lo, hi, ok
}

// ticks returns about n round values covering [lo, hi], and the expanded
// bounds starting and ending on a tick.
func ticks(lo, hi float64, n int) (values []float64, from, to float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		// flat series, open a unit window around it.
		lo, hi = lo-1, hi+1
	}
	step := niceStep((hi - lo) / float64(max(n, 1)))
	from = math.Floor(lo/step) * step
	to = math.Ceil(hi/step) * step
	for v := from; v <= to+step/2; v += step {
		values = append(values, v)
	}
	return values, from, to
}

// niceStep rounds a raw step to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	switch f := raw / base; {
	case f <= 1:
		return base
	case f <= 2:
		return 2 * base
	case f <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

// dateTicks returns the first day of every period starting within r.
func dateTicks(r stockchart.Range, p stockchart.Period) []stockchart.Date {
	var days []stockchart.Date
	for pr := range r.Periods(p) {
		if r.Contains(pr.From) {
			days = append(days, pr.From)
		}
	}
	return days
}

// tickLabel formats a date tick for a period.
func tickLabel(on stockchart.Date, p stockchart.Period) string {
	switch p {
	case stockchart.Yearly:
		return on.Format("2006")
	case stockchart.Monthly:
		return on.Format("2006-01")
	default:
		return on.String()
	}
}
