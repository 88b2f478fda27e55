package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"regimpact/internal/timeline"
)

var (
	bandColor     = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x26}
	milestoneLine = draw.LineStyle{Color: Gray(0x22), Width: vg.Points(1.5), Dashes: Dotted}
)

// regulationOverlay shades the pandemic interval and draws a dotted,
// labelled vertical line per milestone on a year axis.
type regulationOverlay struct {
	tl    timeline.Timeline
	since int
	theme Theme
}

func (o regulationOverlay) Plot(c draw.Canvas, p *plot.Plot) {
	trX, _ := p.Transforms(&c)

	start, end := o.tl.Interval().Span()
	x0, x1 := trX(start), trX(end)
	band := c.ClipPolygonX([]vg.Point{
		{X: x0, Y: c.Min.Y},
		{X: x1, Y: c.Min.Y},
		{X: x1, Y: c.Max.Y},
		{X: x0, Y: c.Max.Y},
	})
	c.FillPolygon(bandColor, band)

	sty := o.theme.note(draw.XRight, draw.YTop)
	sty.Rotation = math.Pi / 2
	for _, m := range o.tl.Since(o.since) {
		x := trX(m.X())
		if !c.ContainsX(x) {
			continue
		}
		c.StrokeLine2(milestoneLine, x, c.Min.Y, x, c.Max.Y)
		c.FillText(sty, vg.Point{X: x + vg.Points(3), Y: c.Max.Y - vg.Points(4)}, m.Name)
	}
}

// DataRange widens the x axis to cover every drawn milestone and the band.
// The y range is left to the data.
func (o regulationOverlay) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = o.tl.Interval().Span()
	for _, m := range o.tl.Since(o.since) {
		xmin = math.Min(xmin, m.X())
		xmax = math.Max(xmax, m.X())
	}
	return xmin, xmax, math.Inf(1), math.Inf(-1)
}

// Thumbnail draws the band swatch for the legend.
func (o regulationOverlay) Thumbnail(c *draw.Canvas) {
	c.FillPolygon(bandColor, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
	})
}

// Marker is a vertical reference line at a data x position with a boxed
// label near the top of the plot.
type Marker struct {
	X      float64
	Label  string
	Dashes []vg.Length
}

type markerPlotter struct {
	Marker
	theme Theme
}

func (m markerPlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, _ := p.Transforms(&c)
	x := trX(m.X)
	if !c.ContainsX(x) {
		return
	}
	dashes := m.Dashes
	if dashes == nil {
		dashes = Dotted
	}
	c.StrokeLine2(draw.LineStyle{Color: color.Black, Width: vg.Points(2), Dashes: dashes}, x, c.Min.Y, x, c.Max.Y)
	if m.Label == "" {
		return
	}

	sty := m.theme.note(draw.XCenter, draw.YTop)
	sty.Color = color.Black
	pt := vg.Point{X: x, Y: c.Max.Y - vg.Points(6)}
	box := sty.Rectangle(m.Label).Add(pt)
	pad := vg.Points(3)
	c.FillPolygon(color.White, []vg.Point{
		{X: box.Min.X - pad, Y: box.Min.Y - pad},
		{X: box.Max.X + pad, Y: box.Min.Y - pad},
		{X: box.Max.X + pad, Y: box.Max.Y + pad},
		{X: box.Min.X - pad, Y: box.Max.Y + pad},
	})
	c.FillText(sty, pt, m.Label)
}

// horizontalLine returns a full-width reference line at y.
func horizontalLine(y float64, sty draw.LineStyle) *plotter.Function {
	f := plotter.NewFunction(func(float64) float64 { return y })
	f.LineStyle = sty
	return f
}

// zeroLine is the thin baseline drawn on growth-rate charts.
func zeroLine() *plotter.Function {
	return horizontalLine(0, draw.LineStyle{Color: color.NRGBA{A: 0x80}, Width: vg.Points(0.5)})
}
