package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// LabelMode selects where bar value labels are drawn.
type LabelMode int

const (
	NoLabels LabelMode = iota
	// LabelInside centers the label in its bar segment.
	LabelInside
	// LabelOutside places the label just past the end of the bar.
	LabelOutside
)

// Bars is one labelled set of values, one per category.
type Bars struct {
	Label  string
	Values []float64
	Fill   color.Color
}

// BarChart describes grouped or stacked bars over named categories.
type BarChart struct {
	Title         string
	CategoryLabel string
	ValueLabel    string
	Categories    []string
	Groups        []Bars

	Horizontal bool
	Stacked    bool
	// TopDown draws the first category at the top of a horizontal chart.
	TopDown bool
	// RotateCategories slants category labels on vertical charts.
	RotateCategories bool

	Labels      LabelMode
	LabelFormat string
	// LabelText formats a label value and takes precedence over LabelFormat.
	LabelText func(v float64) string
	// LabelMin suppresses labels for segments not larger than this value.
	LabelMin float64

	ZeroLine bool
	// Marker is positioned in category units; category i sits at x = i.
	Marker *Marker
	// ValueMax fixes the upper end of the value axis when positive.
	ValueMax float64
}

// Plot builds the chart. ErrNoData is returned for zero categories or
// groups. Missing values are drawn as empty bars.
func (bc BarChart) Plot(th Theme) (*plot.Plot, error) {
	n := len(bc.Categories)
	if n == 0 || len(bc.Groups) == 0 {
		return nil, ErrNoData
	}

	cats, groups := bc.Categories, bc.Groups
	if bc.Horizontal && bc.TopDown {
		cats, groups = reversed(cats, groups)
	}

	xlabel, ylabel := bc.CategoryLabel, bc.ValueLabel
	if bc.Horizontal {
		xlabel, ylabel = ylabel, xlabel
	}
	p := th.newPlot(bc.Title, xlabel, ylabel)
	p.Add(plotter.NewGrid())

	slot := th.Width
	if bc.Horizontal {
		slot = th.Height
	}
	slot = (slot - 2*vg.Inch) / vg.Length(n) * 0.75
	width := slot
	if !bc.Stacked {
		width = slot / vg.Length(len(groups))
	}

	var below *plotter.BarChart
	var labels []plot.Plotter
	cumulative := make([]float64, n)
	for gi, g := range groups {
		values := make(plotter.Values, n)
		for i := range values {
			if i < len(g.Values) && !math.IsNaN(g.Values[i]) {
				values[i] = g.Values[i]
			}
		}

		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return nil, err
		}
		bars.Horizontal = bc.Horizontal
		bars.Color = g.Fill
		if bars.Color == nil {
			bars.Color = Fill(gi)
		}
		bars.LineStyle.Width = vg.Points(0.6)

		var offset vg.Length
		if bc.Stacked {
			if below != nil {
				bars.StackOn(below)
			}
			below = bars
		} else {
			offset = (vg.Length(gi) - vg.Length(len(groups)-1)/2) * width
			bars.Offset = offset
		}
		p.Add(bars)
		if g.Label != "" {
			p.Legend.Add(g.Label, bars)
		}

		if bc.Labels != NoLabels {
			l, err := bc.valueLabels(th, values, cumulative, offset, bars.Color)
			if err != nil {
				return nil, err
			}
			if l != nil {
				labels = append(labels, l)
			}
		}
		if bc.Stacked {
			for i, v := range values {
				cumulative[i] += v
			}
		}
	}
	p.Add(labels...)

	if bc.ZeroLine {
		p.Add(zeroLine())
	}
	if bc.Marker != nil && !bc.Horizontal {
		p.Add(markerPlotter{Marker: *bc.Marker, theme: th})
	}

	if bc.Horizontal {
		p.NominalY(cats...)
		p.X.Min = math.Min(p.X.Min, 0)
		if bc.ValueMax > 0 {
			p.X.Max = bc.ValueMax
		}
	} else {
		p.NominalX(cats...)
		p.Y.Min = math.Min(p.Y.Min, 0)
		if bc.ValueMax > 0 {
			p.Y.Max = bc.ValueMax
		}
		if bc.RotateCategories {
			p.X.Tick.Label.Rotation = math.Pi / 4
			p.X.Tick.Label.XAlign = draw.XRight
			p.X.Tick.Label.YAlign = draw.YCenter
		}
	}
	return p, nil
}

func (bc BarChart) valueLabels(th Theme, values plotter.Values, base []float64, offset vg.Length, fill color.Color) (*plotter.Labels, error) {
	format := bc.LabelFormat
	if format == "" {
		format = "%.0f%%"
	}

	var xys plotter.XYs
	var texts []string
	for i, v := range values {
		if v <= bc.LabelMin {
			continue
		}
		pos := base[i] + v/2
		if bc.Labels == LabelOutside {
			pos = base[i] + v
		}
		xy := plotter.XY{X: float64(i), Y: pos}
		if bc.Horizontal {
			xy = plotter.XY{X: pos, Y: float64(i)}
		}
		xys = append(xys, xy)
		if bc.LabelText != nil {
			texts = append(texts, bc.LabelText(v))
		} else {
			texts = append(texts, fmt.Sprintf(format, v))
		}
	}
	if len(xys) == 0 {
		return nil, nil
	}

	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}

	ink := color.Color(color.Black)
	xalign, yalign := draw.XCenter, draw.YCenter
	pad := vg.Length(0)
	if bc.Labels == LabelInside && isDark(fill) {
		ink = color.White
	}
	if bc.Labels == LabelOutside {
		pad = vg.Points(4)
		if bc.Horizontal {
			xalign = draw.XLeft
		} else {
			yalign = draw.YBottom
		}
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Color = ink
		l.TextStyle[i].Font.Size = th.TickSize
		l.TextStyle[i].XAlign = xalign
		l.TextStyle[i].YAlign = yalign
	}
	if bc.Horizontal {
		l.Offset = vg.Point{X: pad, Y: offset}
	} else {
		l.Offset = vg.Point{X: offset, Y: pad}
	}
	return l, nil
}

func isDark(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < 0xA0
}

func reversed(cats []string, groups []Bars) ([]string, []Bars) {
	n := len(cats)
	rc := make([]string, n)
	for i, c := range cats {
		rc[n-1-i] = c
	}
	rg := make([]Bars, len(groups))
	for gi, g := range groups {
		vals := make([]float64, n)
		for i := 0; i < n && i < len(g.Values); i++ {
			vals[n-1-i] = g.Values[i]
		}
		rg[gi] = Bars{Label: g.Label, Values: vals, Fill: g.Fill}
	}
	return rc, rg
}
