package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Style is the look of one plotted series.
type Style struct {
	Color  color.Color
	Width  vg.Length
	Dashes []vg.Length
	Glyph  draw.GlyphDrawer
	Radius vg.Length
}

// Line dash patterns.
var (
	Solid   []vg.Length
	Dashed  = []vg.Length{vg.Points(6), vg.Points(3)}
	DashDot = []vg.Length{vg.Points(6), vg.Points(3), vg.Points(1.5), vg.Points(3)}
	Dotted  = []vg.Length{vg.Points(1.5), vg.Points(2.5)}
)

// Gray returns an opaque gray of the given level.
func Gray(level uint8) color.Color {
	return color.Gray{Y: level}
}

// Theme carries the grayscale research-paper styling shared by every chart.
// A Theme is a value; its lookup tables are never modified after DefaultTheme.
type Theme struct {
	Width  vg.Length
	Height vg.Length
	DPI    int

	TitleSize  vg.Length
	LabelSize  vg.Length
	TickSize   vg.Length
	LegendSize vg.Length
	NoteSize   vg.Length

	countries map[string]Style
	sizes     map[string]Style
	cycle     []Style
}

// DefaultTheme returns the 16x9 inch grayscale theme at the given DPI.
func DefaultTheme(dpi int) Theme {
	return Theme{
		Width:      16 * vg.Inch,
		Height:     9 * vg.Inch,
		DPI:        dpi,
		TitleSize:  vg.Points(16),
		LabelSize:  vg.Points(14),
		TickSize:   vg.Points(10),
		LegendSize: vg.Points(10),
		NoteSize:   vg.Points(8),
		countries: map[string]Style{
			"Germany":     {Color: Gray(0x00), Width: vg.Points(2), Dashes: Solid, Glyph: draw.CircleGlyph{}, Radius: vg.Points(3.5)},
			"Ireland":     {Color: Gray(0x44), Width: vg.Points(2), Dashes: Dashed, Glyph: draw.BoxGlyph{}, Radius: vg.Points(3.5)},
			"Switzerland": {Color: Gray(0x88), Width: vg.Points(2), Dashes: DashDot, Glyph: draw.PyramidGlyph{}, Radius: vg.Points(3.5)},
		},
		sizes: map[string]Style{
			"10-249": {Color: Gray(0x00), Width: vg.Points(2), Dashes: Solid, Glyph: draw.CircleGlyph{}, Radius: vg.Points(3.5)},
			"50-249": {Color: Gray(0x33), Width: vg.Points(2), Dashes: Dashed, Glyph: draw.BoxGlyph{}, Radius: vg.Points(3.5)},
			"GE10":   {Color: Gray(0x66), Width: vg.Points(2), Dashes: DashDot, Glyph: draw.PyramidGlyph{}, Radius: vg.Points(3.5)},
			"GE250":  {Color: Gray(0x99), Width: vg.Points(2), Dashes: Dotted, Glyph: draw.SquareGlyph{}, Radius: vg.Points(3.5)},
		},
		cycle: []Style{
			{Color: Gray(0x00), Width: vg.Points(2), Dashes: Solid, Glyph: draw.CircleGlyph{}, Radius: vg.Points(3.5)},
			{Color: Gray(0x33), Width: vg.Points(2), Dashes: Dashed, Glyph: draw.BoxGlyph{}, Radius: vg.Points(3.5)},
			{Color: Gray(0x55), Width: vg.Points(2), Dashes: DashDot, Glyph: draw.PyramidGlyph{}, Radius: vg.Points(3.5)},
			{Color: Gray(0x77), Width: vg.Points(2), Dashes: Dotted, Glyph: draw.SquareGlyph{}, Radius: vg.Points(3.5)},
			{Color: Gray(0xAA), Width: vg.Points(3), Dashes: Solid, Glyph: draw.CrossGlyph{}, Radius: vg.Points(4)},
		},
	}
}

// WithSize returns a copy of t with a different canvas size.
func (t Theme) WithSize(w, h vg.Length) Theme {
	t.Width, t.Height = w, h
	return t
}

// Country returns the line style for a country display name. Unknown names
// fall back to the first cycle style.
func (t Theme) Country(name string) Style {
	if s, ok := t.countries[name]; ok {
		return s
	}
	return t.Cycle(0)
}

// Size returns the line style for an enterprise size bucket code.
func (t Theme) Size(code string) (Style, bool) {
	s, ok := t.sizes[code]
	return s, ok
}

// Cycle returns the i-th style of the generic series cycle.
func (t Theme) Cycle(i int) Style {
	if len(t.cycle) == 0 {
		return Style{Color: Gray(0), Width: vg.Points(2)}
	}
	return t.cycle[i%len(t.cycle)]
}

// Fills are the grayscale bar fills, darkest first.
var Fills = []color.Color{Gray(0x00), Gray(0x44), Gray(0x88), Gray(0xCC), Gray(0xE8), Gray(0xAA), Gray(0x99)}

// Fill returns the i-th bar fill.
func Fill(i int) color.Color {
	return Fills[i%len(Fills)]
}

// newPlot returns a plot with titles, font sizes and legend placement applied.
func (t Theme) newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = t.TitleSize
	p.Title.Padding = vg.Points(10)
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.X.Label.TextStyle.Font.Size = t.LabelSize
	p.Y.Label.TextStyle.Font.Size = t.LabelSize
	p.X.Tick.Label.Font.Size = t.TickSize
	p.Y.Tick.Label.Font.Size = t.TickSize
	p.Legend.TextStyle.Font.Size = t.LegendSize
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(8)
	p.Legend.YOffs = -vg.Points(8)
	return p
}

// note returns the small annotation text style.
func (t Theme) note(xalign text.XAlignment, yalign text.YAlignment) text.Style {
	return text.Style{
		Color:   Gray(0x22),
		Font:    font.From(plot.DefaultFont, t.NoteSize),
		XAlign:  xalign,
		YAlign:  yalign,
		Handler: plot.DefaultTextHandler,
	}
}
