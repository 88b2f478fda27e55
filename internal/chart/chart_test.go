package chart

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"regimpact/internal/series"
	"regimpact/internal/timeline"
)

func testTheme() Theme {
	return DefaultTheme(40).WithSize(8*vg.Inch, 4.5*vg.Inch)
}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
}

func TestSeriesXYsSkipsMissing(t *testing.T) {
	s := series.Series{Entity: "DE", Points: []series.Point{{Period: 2010, Value: 1}, {Period: 2011, Value: math.NaN()}, {Period: 2012, Value: 3}}}
	xys := SeriesXYs(s)
	require.Len(t, xys, 2)
	assert.Equal(t, 2012.0, xys[1].X)

	idx := IndexXYs(1, 5, math.NaN(), 7)
	require.Len(t, idx, 2)
	assert.Equal(t, 3.0, idx[1].X)
}

func TestLineChartWithOverlay(t *testing.T) {
	tl := timeline.Default()
	th := testTheme()
	lc := LineChart{
		Title:  "Growth",
		XLabel: "Year",
		YLabel: "%",
		Lines: []Line{
			{Label: "Germany", XYs: IndexXYs(2010, 1, 2, -1, 4, 5, 2, 3, 1, 0, 2, 3, 4, 5, 6), Style: th.Country("Germany")},
			{Label: "Ireland", XYs: IndexXYs(2010, 3, 2, 1), Style: th.Country("Ireland")},
		},
		Timeline: &tl,
		Since:    2010,
		ZeroLine: true,
	}
	p, err := lc.Plot(th)
	require.NoError(t, err)

	// The overlay pulls the axis out to the AI Act line.
	assert.GreaterOrEqual(t, p.X.Max, timeline.AIAct().X())
	assert.LessOrEqual(t, p.Y.Min, -1.0)

	path := filepath.Join(t.TempDir(), "line.png")
	require.NoError(t, Save(p, th, path))
	requirePNG(t, path)
}

func TestLineChartCategoricalTicks(t *testing.T) {
	lc := LineChart{
		Lines:   []Line{{Label: "avg", XYs: IndexXYs(0, 42, 47, 70), Style: testTheme().Cycle(4)}},
		Ticks:   []plot.Tick{{Value: 0, Label: "DEC 2016"}, {Value: 1, Label: "MAY 2017"}, {Value: 2, Label: "JAN 2018"}},
		Markers: []Marker{{X: 1.5, Label: "GDPR\nImplemented"}},
		YMin:    0,
		YMax:    105,
	}
	p, err := lc.Plot(testTheme())
	require.NoError(t, err)
	assert.Equal(t, -0.5, p.X.Min)
	assert.Equal(t, 2.5, p.X.Max)
	assert.Equal(t, 105.0, p.Y.Max)
}

func TestLineChartNoData(t *testing.T) {
	_, err := LineChart{Lines: []Line{{Label: "empty"}}}.Plot(testTheme())
	assert.ErrorIs(t, err, ErrNoData)

	_, err = LineChart{}.Plot(testTheme())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBarChartGrouped(t *testing.T) {
	bc := BarChart{
		Title:      "YoY",
		Categories: []string{"2016", "2017", "2018", "2019", "2020"},
		Groups: []Bars{
			{Label: "Germany", Values: []float64{1, 2, math.NaN(), 4, 5}},
			{Label: "Ireland", Values: []float64{-3, 2, 1}},
		},
		ZeroLine: true,
		Marker:   &Marker{X: 2, Label: "GDPR"},
		Labels:   LabelOutside,
	}
	th := testTheme()
	p, err := bc.Plot(th)
	require.NoError(t, err)
	assert.LessOrEqual(t, p.Y.Min, -3.0)

	path := filepath.Join(t.TempDir(), "bars.png")
	require.NoError(t, Save(p, th, path))
	requirePNG(t, path)
}

func TestBarChartStackedHorizontal(t *testing.T) {
	bc := BarChart{
		Categories: []string{"PSD2", "DMA"},
		Groups: []Bars{
			{Label: "Negative", Values: []float64{24, 41}, Fill: Gray(0x33)},
			{Label: "No impact", Values: []float64{35, 38}, Fill: Gray(0x66)},
			{Label: "Positive", Values: []float64{40, 22}, Fill: Gray(0xCC)},
		},
		Horizontal: true,
		Stacked:    true,
		TopDown:    true,
		Labels:     LabelInside,
		LabelMin:   5,
		ValueMax:   105,
	}
	p, err := bc.Plot(testTheme())
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.X.Min)
	assert.Equal(t, 105.0, p.X.Max)
}

func TestBarChartNoData(t *testing.T) {
	_, err := BarChart{Groups: []Bars{{Label: "x"}}}.Plot(testTheme())
	assert.ErrorIs(t, err, ErrNoData)

	_, err = BarChart{Categories: []string{"a"}}.Plot(testTheme())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestReversed(t *testing.T) {
	cats, groups := reversed([]string{"a", "b", "c"}, []Bars{{Label: "g", Values: []float64{1, 2}}})
	assert.Equal(t, []string{"c", "b", "a"}, cats)
	assert.Equal(t, 0.0, groups[0].Values[0])
	assert.Equal(t, []float64{0, 2, 1}, groups[0].Values)
}

func TestThemeStyles(t *testing.T) {
	th := DefaultTheme(300)
	assert.Equal(t, 16*vg.Inch, th.Width)
	assert.Equal(t, Gray(0x44), th.Country("Ireland").Color)
	assert.Equal(t, th.Cycle(0), th.Country("Atlantis"))

	_, ok := th.Size("GE250")
	assert.True(t, ok)
	_, ok = th.Size("TOTAL")
	assert.False(t, ok)

	assert.True(t, isDark(Gray(0x33)))
	assert.False(t, isDark(Gray(0xCC)))
}

func TestSaveFullCanvas(t *testing.T) {
	th := testTheme()
	path := filepath.Join(t.TempDir(), "blank.png")
	require.NoError(t, Save(plot.New(), th, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	// 8x4.5 in at 40 dpi, no cropping.
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 180, cfg.Height)
}
