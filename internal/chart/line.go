package chart

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"regimpact/internal/series"
	"regimpact/internal/timeline"
)

// Line is one labelled polyline.
type Line struct {
	Label string
	XYs   plotter.XYs
	Style Style
}

// SeriesXYs converts a series to plot points, leaving out missing values.
func SeriesXYs(s series.Series) plotter.XYs {
	xys := make(plotter.XYs, 0, len(s.Points))
	for _, p := range s.Points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(p.Period), Y: p.Value})
	}
	return xys
}

// IndexXYs places values at x = start, start+1, ... for categorical axes.
func IndexXYs(start float64, values ...float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: start + float64(i), Y: v})
	}
	return xys
}

// RefLine is a labelled horizontal reference line that shows in the legend.
type RefLine struct {
	Y     float64
	Label string
	Style Style
}

// LineChart describes a multi-series line chart with optional regulation
// overlay.
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	Lines  []Line

	// Timeline, when set, adds the pandemic band and milestone lines for
	// milestones from Since onwards.
	Timeline *timeline.Timeline
	Since    int

	ZeroLine bool
	Markers  []Marker
	RefLines []RefLine

	// Ticks replaces the default x ticks, e.g. for categorical periods.
	Ticks []plot.Tick
	// TimeFormat switches the x axis to dates; x values are Unix seconds.
	TimeFormat string

	// YMin and YMax fix the y range when YMax > YMin.
	YMin, YMax float64
}

// Plot builds the chart. ErrNoData is returned when no line has a point.
func (lc LineChart) Plot(th Theme) (*plot.Plot, error) {
	if !lc.hasData() {
		return nil, ErrNoData
	}

	p := th.newPlot(lc.Title, lc.XLabel, lc.YLabel)
	p.Add(plotter.NewGrid())

	if lc.Timeline != nil {
		overlay := regulationOverlay{tl: *lc.Timeline, since: lc.Since, theme: th}
		p.Add(overlay)
		p.Legend.Add(lc.Timeline.Interval().Name, overlay)
	}
	if lc.ZeroLine {
		p.Add(zeroLine())
	}

	for _, l := range lc.Lines {
		if len(l.XYs) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(l.XYs)
		if err != nil {
			return nil, err
		}
		line.LineStyle = draw.LineStyle{Color: l.Style.Color, Width: l.Style.Width, Dashes: l.Style.Dashes}
		p.Add(line)
		if l.Style.Glyph != nil {
			points.GlyphStyle = draw.GlyphStyle{Color: l.Style.Color, Radius: l.Style.Radius, Shape: l.Style.Glyph}
			p.Add(points)
			p.Legend.Add(l.Label, line, points)
		} else {
			p.Legend.Add(l.Label, line)
		}
	}

	for _, r := range lc.RefLines {
		f := horizontalLine(r.Y, draw.LineStyle{Color: r.Style.Color, Width: r.Style.Width, Dashes: r.Style.Dashes})
		p.Add(f)
		p.Legend.Add(r.Label, f)
	}
	for _, m := range lc.Markers {
		p.Add(markerPlotter{Marker: m, theme: th})
	}

	switch {
	case len(lc.Ticks) > 0:
		p.X.Tick.Marker = plot.ConstantTicks(lc.Ticks)
		p.X.Min -= 0.5
		p.X.Max += 0.5
	case lc.TimeFormat != "":
		p.X.Tick.Marker = plot.TimeTicks{Format: lc.TimeFormat}
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
	default:
		p.X.Tick.Marker = yearTicks{}
	}

	if lc.ZeroLine {
		p.Y.Min = math.Min(p.Y.Min, 0)
		p.Y.Max = math.Max(p.Y.Max, 0)
	}
	if lc.YMax > lc.YMin {
		p.Y.Min, p.Y.Max = lc.YMin, lc.YMax
	} else {
		// Leave room for milestone labels and boxed markers.
		p.Y.Max += (p.Y.Max - p.Y.Min) * 0.08
	}
	p.X.Padding = vg.Points(6)
	return p, nil
}

func (lc LineChart) hasData() bool {
	for _, l := range lc.Lines {
		if len(l.XYs) > 0 {
			return true
		}
	}
	return false
}

// yearTicks labels every integer year, or every other one on long axes.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	first, last := int(math.Ceil(min)), int(math.Floor(max))
	step := 1
	if last-first > 16 {
		step = 2
	}
	var ticks []plot.Tick
	for y := first; y <= last; y++ {
		t := plot.Tick{Value: float64(y)}
		if (y-first)%step == 0 {
			t.Label = strconv.Itoa(y)
		}
		ticks = append(ticks, t)
	}
	return ticks
}
