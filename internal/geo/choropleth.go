package geo

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"regimpact/internal/chart"
)

// labelDepth is how far below the outlines, in normalized units, the value
// labels hang.
const labelDepth = 0.15

// Greys returns a light-to-dark gray color map over [min, max]. When min
// equals max the range is widened by one so the map stays usable.
func Greys(min, max float64) (palette.ColorMap, error) {
	cm, err := moreland.NewLuminance([]color.Color{
		color.Gray{Y: 0x0A},
		color.Gray{Y: 0x80},
		color.Gray{Y: 0xF7},
	})
	if err != nil {
		return nil, err
	}
	if max <= min {
		max = min + 1
	}
	cm.SetMax(max)
	cm.SetMin(min)
	return greys{cm}, nil
}

// greys flips a dark-to-light luminance map.
type greys struct {
	palette.ColorMap
}

func (g greys) At(v float64) (color.Color, error) {
	lo, hi := g.Min(), g.Max()
	flipped := math.Min(hi, math.Max(lo, lo+hi-v))
	return g.ColorMap.At(flipped)
}

func (g greys) Palette(n int) palette.Palette {
	colors := g.ColorMap.Palette(n).Colors()
	out := make(reversedPalette, len(colors))
	for i, c := range colors {
		out[len(colors)-1-i] = c
	}
	return out
}

type reversedPalette []color.Color

func (p reversedPalette) Colors() []color.Color { return p }

// Panel is one map of the figure: a title and a value per region name.
type Panel struct {
	Title  string
	Values map[string]float64
}

// Choropleth draws panels side by side over the same laid-out regions, with
// one shared gray scale and a horizontal color bar underneath. Build it with
// NewChoropleth; a Choropleth without a color map draws nothing.
type Choropleth struct {
	Title   string
	Metric  string
	Unit    string
	Regions []Region
	Panels  []Panel
	Theme   chart.Theme

	colors palette.ColorMap
}

// NewChoropleth builds the figure and its gray scale over the value range
// of every panel.
func NewChoropleth(title, metric, unit string, regions []Region, panels []Panel, th chart.Theme) (*Choropleth, error) {
	m := &Choropleth{
		Title:   title,
		Metric:  metric,
		Unit:    unit,
		Regions: regions,
		Panels:  panels,
		Theme:   th,
	}
	cm, err := Greys(m.Range())
	if err != nil {
		return nil, fmt.Errorf("color map: %w", err)
	}
	m.colors = cm
	return m, nil
}

// Range returns the smallest and largest value over every panel.
func (m Choropleth) Range() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, p := range m.Panels {
		for _, v := range p.Values {
			if math.IsNaN(v) {
				continue
			}
			min, max = math.Min(min, v), math.Max(max, v)
		}
	}
	if math.IsInf(min, 1) {
		return 0, 1
	}
	return min, max
}

// Draw implements chart.Drawer.
func (m Choropleth) Draw(c draw.Canvas) {
	cm := m.colors
	if cm == nil {
		return
	}
	th := m.Theme
	pad := vg.Points(12)

	title := m.textStyle(th.TitleSize*1.25, draw.XCenter, draw.YTop)
	c.FillText(title, vg.Point{X: c.Center().X, Y: c.Max.Y - pad}, m.Title)
	titleH := title.Height(m.Title) + 2*pad

	size := c.Size()
	barH := vg.Inch
	body := draw.Crop(c, 0, 0, barH+pad, -titleH)
	bar := draw.Crop(c, size.X/4, -size.X/4, pad, -(size.Y - barH))

	row := make([]*plot.Plot, len(m.Panels))
	for i, panel := range m.Panels {
		p := plot.New()
		p.Title.Text = panel.Title
		p.Title.TextStyle.Font.Size = th.LabelSize * 1.25
		p.HideAxes()
		p.Add(regionPlotter{regions: m.Regions, values: panel.Values, colors: cm, unit: m.Unit, theme: th})
		row[i] = p
	}
	if len(row) > 0 {
		tiles := draw.Tiles{Rows: 1, Cols: len(row), PadX: vg.Inch / 2, PadLeft: pad, PadRight: pad}
		canvases := plot.Align([][]*plot.Plot{row}, tiles, body)
		for i, p := range row {
			p.Draw(canvases[0][i])
		}
	}

	cb := plot.New()
	cb.HideY()
	cb.X.Label.Text = m.Metric
	if m.Unit != "" {
		cb.X.Label.Text += " (" + m.Unit + ")"
	}
	cb.X.Label.TextStyle.Font.Size = th.LabelSize
	cb.X.Tick.Label.Font.Size = th.TickSize
	cb.X.Padding = 0
	cb.Add(&plotter.ColorBar{ColorMap: cm})
	cb.Draw(bar)
}

func (m Choropleth) textStyle(size vg.Length, xalign text.XAlignment, yalign text.YAlignment) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		XAlign:  xalign,
		YAlign:  yalign,
		Handler: plot.DefaultTextHandler,
	}
}

// regionPlotter fills each region with the color of its value and hangs a
// boxed name and value label below it. It keeps a 1:1 aspect ratio inside
// the data canvas.
type regionPlotter struct {
	regions []Region
	values  map[string]float64
	colors  palette.ColorMap
	unit    string
	theme   chart.Theme
}

func (rp regionPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, r := range rp.regions {
		x0, y0, x1, y1 := r.Bounds()
		xmin, xmax = math.Min(xmin, x0), math.Max(xmax, x1)
		ymin, ymax = math.Min(ymin, y0), math.Max(ymax, y1)
	}
	return xmin, xmax, ymin - 2*labelDepth - 0.1, ymax
}

func (rp regionPlotter) Plot(c draw.Canvas, _ *plot.Plot) {
	if len(rp.regions) == 0 {
		return
	}
	xmin, xmax, ymin, ymax := rp.DataRange()
	size := c.Size()
	scale := math.Min(float64(size.X)/(xmax-xmin), float64(size.Y)/(ymax-ymin))
	offX := c.Min.X + (size.X-vg.Length((xmax-xmin)*scale))/2
	offY := c.Min.Y + (size.Y-vg.Length((ymax-ymin)*scale))/2
	pt := func(x, y float64) vg.Point {
		return vg.Point{X: offX + vg.Length((x-xmin)*scale), Y: offY + vg.Length((y-ymin)*scale)}
	}

	outline := draw.LineStyle{Color: color.Black, Width: vg.Points(2)}
	for _, r := range rp.regions {
		fill := color.Color(color.White)
		v, ok := rp.values[r.Name]
		if ok && !math.IsNaN(v) {
			if col, err := rp.colors.At(v); err == nil {
				fill = col
			}
		}
		for i := 0; i < r.Shape.NumPolygons(); i++ {
			poly := r.Shape.Polygon(i)
			for j := 0; j < poly.NumLinearRings(); j++ {
				coords := poly.LinearRing(j).Coords()
				pts := make([]vg.Point, len(coords))
				for k, co := range coords {
					pts[k] = pt(co.X(), co.Y())
				}
				if j == 0 {
					c.FillPolygon(fill, pts)
				} else {
					c.FillPolygon(color.White, pts)
				}
				c.StrokeLines(outline, pts)
			}
		}
		rp.label(&c, pt(r.CenterX(), -labelDepth), r.Name, v, ok)
	}
}

func (rp regionPlotter) label(c *draw.Canvas, at vg.Point, name string, v float64, ok bool) {
	txt := name + "\nn/a"
	if ok && !math.IsNaN(v) {
		txt = fmt.Sprintf("%s\n%.1f%s", name, v, rp.unit)
	}
	sty := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, rp.theme.LabelSize),
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
	box := sty.Rectangle(txt).Add(at)
	pad := vg.Points(6)
	corners := []vg.Point{
		{X: box.Min.X - pad, Y: box.Min.Y - pad},
		{X: box.Max.X + pad, Y: box.Min.Y - pad},
		{X: box.Max.X + pad, Y: box.Max.Y + pad},
		{X: box.Min.X - pad, Y: box.Max.Y + pad},
	}
	c.FillPolygon(color.White, corners)
	c.StrokeLines(draw.LineStyle{Color: color.Black, Width: vg.Points(1.5)}, append(corners, corners[0]))
	c.FillText(sty, at, txt)
}
