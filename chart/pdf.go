// Package chart renders an analysis as a multi-panel PDF chart: one close
// price panel per instrument, a panel with every close price, and a panel with
// every rebased series. Every panel carries the event markers.
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/etnz/stockchart"
	"github.com/go-pdf/fpdf"
)

// Options controls the rendering.
type Options struct {
	Title      string            // title of the combined close price panel
	ShowLabels bool              // print the event label next to each marker
	Ticks      stockchart.Period // date axis ticks, Monthly or Yearly (anything else)
}

// figure size, in mm (14 x 20 inches).
const (
	pageWidth  = 355.6
	pageHeight = 508
	margin     = 15
	panelGap   = 16
	axisWidth  = 18 // room for the value axis labels
)

// palette is the classic ten colors cycle.
var palette = [][3]int{
	{31, 119, 180}, {255, 127, 14}, {44, 160, 44}, {214, 39, 40}, {148, 103, 189},
	{140, 86, 75}, {227, 119, 194}, {127, 127, 127}, {188, 189, 34}, {23, 190, 207},
}

// line is a drawable series.
type line struct {
	name   string
	days   []stockchart.Date
	values []float64
	color  [3]int
}

// panel is one subplot.
type panel struct {
	title   string
	ylabel  string
	lines   []line
	markers []stockchart.Date
	legend  bool
}

// Render writes the chart of a as a PDF document to w.
func Render(w io.Writer, a *stockchart.Analysis, opts Options) error {
	if opts.Ticks != stockchart.Monthly {
		opts.Ticks = stockchart.Yearly
	}
	panels := buildPanels(a, opts)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetTitle(opts.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	r := renderer{pdf: pdf, a: a, opts: opts, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	height := (pageHeight - 2*margin - float64(len(panels)-1)*panelGap) / float64(max(len(panels), 1))
	for i, p := range panels {
		top := margin + float64(i)*(height+panelGap)
		r.panel(p, margin+axisWidth, top, pageWidth-margin, top+height)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to draw chart: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// buildPanels lays out the panels of the figure.
func buildPanels(a *stockchart.Analysis, opts Options) []panel {
	all := a.Timeline.Dates()
	var panels []panel
	var closes, rebased []line
	for i, q := range a.Quotes {
		color := palette[i%len(palette)]

		c := line{name: q.Instrument.Name, color: color}
		for on, v := range q.Series.Values() {
			c.days = append(c.days, on)
			c.values = append(c.values, v.InexactFloat64())
		}
		n := line{name: q.Instrument.Name + " (Normalized)", color: color}
		for on, v := range q.Rebased.Values() {
			n.days = append(n.days, on)
			n.values = append(n.values, v)
		}
		closes, rebased = append(closes, c), append(rebased, n)

		ylabel := "Closing price"
		if strings.Contains(q.Instrument.Symbol, "/") {
			ylabel = "Exchange rate"
		}
		panels = append(panels, panel{
			title:   q.Instrument.Name,
			ylabel:  ylabel,
			lines:   []line{c},
			markers: a.Markers(q.Instrument),
		})
	}

	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("Various index (%d~%d)", a.Range.From.Year(), a.Range.To.Year())
	}
	panels = append(panels,
		panel{title: title, ylabel: "The closing price of an index", lines: closes, markers: all, legend: true},
		panel{title: "A percentage change (As of the Start date 100)", ylabel: "A percentage change (%)", lines: rebased, markers: all, legend: true},
	)
	return panels
}

type renderer struct {
	pdf  *fpdf.Fpdf
	a    *stockchart.Analysis
	opts Options
	tr   func(string) string // UTF-8 to the core fonts encoding
}

// text writes s at (x, y), or centered on x.
func (r renderer) text(x, y float64, s string, centered bool) {
	s = r.tr(s)
	if centered {
		x -= r.pdf.GetStringWidth(s) / 2
	}
	r.pdf.Text(x, y, s)
}

// panel draws p in the [x0, x1] x [y0, y1] box.
func (r renderer) panel(p panel, x0, y0, x1, y1 float64) {
	pdf := r.pdf

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	r.text((x0+x1)/2, y0-2, p.title, true)

	xs := newDateScale(r.a.Range, x0, x1)
	var all [][]float64
	for _, l := range p.lines {
		all = append(all, l.values)
	}
	lo, hi, ok := extent(all...)
	if !ok {
		lo, hi = 0, 1
	}
	yticks, lo, hi := ticks(lo, hi, 5)
	ys := linear{d0: lo, d1: hi, p0: y1, p1: y0}

	// grid and axes
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetLineWidth(0.1)
	pdf.SetDrawColor(220, 220, 220)
	for _, v := range yticks {
		y := ys.at(v)
		pdf.Line(x0, y, x1, y)
		label := formatValue(v, hi-lo)
		pdf.Text(x0-1-pdf.GetStringWidth(label), y+1, label)
	}
	for _, on := range dateTicks(r.a.Range, r.opts.Ticks) {
		x := xs.at(on)
		pdf.Line(x, y0, x, y1)
		r.text(x, y1+4, tickLabel(on, r.opts.Ticks), true)
	}
	pdf.TransformBegin()
	pdf.TransformRotate(90, x0-axisWidth+3, (y0+y1)/2)
	r.text(x0-axisWidth+3, (y0+y1)/2, p.ylabel, true)
	pdf.TransformEnd()

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x0, y0, x1-x0, y1-y0, "D")

	// series
	pdf.SetLineWidth(0.3)
	for _, l := range p.lines {
		pdf.SetDrawColor(l.color[0], l.color[1], l.color[2])
		for i := 1; i < len(l.days); i++ {
			v0, v1 := l.values[i-1], l.values[i]
			if !finite(v0) || !finite(v1) {
				continue
			}
			pdf.Line(xs.at(l.days[i-1]), ys.at(v0), xs.at(l.days[i]), ys.at(v1))
		}
	}

	r.markers(p.markers, xs, y0, y1)

	if p.legend {
		r.legend(p.lines, x0+3, y0+4)
	}
}

// markers draws one dashed vertical line per event day.
func (r renderer) markers(days []stockchart.Date, xs dateScale, y0, y1 float64) {
	pdf := r.pdf
	pdf.SetAlpha(0.6, "Normal")
	pdf.SetDashPattern([]float64{1.5, 1}, 0)
	pdf.SetLineWidth(0.25)
	pdf.SetDrawColor(31, 119, 180)
	pdf.SetFont("Helvetica", "", 5)
	for _, on := range days {
		if !r.a.Range.Contains(on) {
			continue
		}
		x := xs.at(on)
		pdf.Line(x, y0, x, y1)
		if r.opts.ShowLabels {
			label, _ := r.a.Timeline.Label(on)
			pdf.TransformBegin()
			pdf.TransformRotate(90, x, y0)
			r.text(x+1, y0-0.5, label, false)
			pdf.TransformEnd()
		}
	}
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetAlpha(1, "Normal")
}

// legend draws the series names and colors from (x, y) downwards.
func (r renderer) legend(lines []line, x, y float64) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetLineWidth(0.6)
	for i, l := range lines {
		ly := y + float64(i)*3.5
		pdf.SetDrawColor(l.color[0], l.color[1], l.color[2])
		pdf.Line(x, ly-1, x+6, ly-1)
		r.text(x+8, ly, l.name, false)
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// formatValue formats an axis value with the decimals its span needs.
func formatValue(v, span float64) string {
	switch {
	case span >= 10:
		return fmt.Sprintf("%.0f", v)
	case span >= 1:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
