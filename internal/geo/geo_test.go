package geo

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"regimpact/internal/chart"
)

const irelandJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"GID_0": "IRL", "NAME_1": "Leinster"},
     "geometry": {"type": "Polygon", "coordinates": [[[-8,52],[-6,52],[-6,54],[-8,54],[-8,52]]]}},
    {"type": "Feature", "properties": {"GID_0": "IRL", "NAME_1": "Munster"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[-10,51],[-8,51],[-8,53],[-10,53],[-10,51]]]]}},
    {"type": "Feature", "properties": {"GID_0": "GBR", "NAME_1": "Northern Ireland"},
     "geometry": {"type": "Polygon", "coordinates": [[[-8,54],[-5,54],[-5,55.5],[-8,55.5],[-8,54]]]}}
  ]
}`

const squareJSON = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {}, "geometry": {"type": "Polygon",
   "coordinates": [[[6,47],[10,47],[10,49],[6,49],[6,47]]]}}]}`

func TestReadFiltersAndDissolves(t *testing.T) {
	r, err := Read(strings.NewReader(irelandJSON), "Ireland", PropertyEquals("GID_0", "IRL"))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Shape.NumPolygons())

	minX, minY, maxX, maxY := r.Bounds()
	assert.Equal(t, -10.0, minX)
	assert.Equal(t, 51.0, minY)
	assert.Equal(t, -6.0, maxX)
	assert.Equal(t, 54.0, maxY)
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(irelandJSON), "Nowhere", PropertyEquals("GID_0", "XXX"))
	assert.ErrorIs(t, err, ErrEmptyGeometry)

	_, err = Read(strings.NewReader(`{"type": "Feature"}`), "bad", nil)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.geojson"), "x", nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalizeKeepsAspect(t *testing.T) {
	r, err := Read(strings.NewReader(squareJSON), "Switzerland", nil)
	require.NoError(t, err)

	n := r.Normalize()
	minX, minY, maxX, maxY := n.Bounds()
	assert.InDelta(t, 0, minX, 1e-12)
	assert.InDelta(t, 0, minY, 1e-12)
	assert.InDelta(t, 1, maxX, 1e-12)
	assert.InDelta(t, 0.5, maxY, 1e-12)

	// The source region is untouched.
	minX, _, _, _ = r.Bounds()
	assert.Equal(t, 6.0, minX)
}

func TestSideBySide(t *testing.T) {
	a, err := Read(strings.NewReader(squareJSON), "A", nil)
	require.NoError(t, err)
	b, err := Read(strings.NewReader(irelandJSON), "B", nil)
	require.NoError(t, err)

	laid := SideBySide([]Region{a, b, a}, 0.3)
	require.Len(t, laid, 3)
	for i, r := range laid {
		minX, _, _, _ := r.Bounds()
		assert.InDelta(t, float64(i)*1.3, minX, 1e-12)
	}
	assert.InDelta(t, 0.5, laid[0].CenterX(), 1e-12)
}

func TestGreysLightToDark(t *testing.T) {
	cm, err := Greys(0, 10)
	require.NoError(t, err)

	lo, err := cm.At(0)
	require.NoError(t, err)
	hi, err := cm.At(10)
	require.NoError(t, err)
	assert.Greater(t, gray(lo), gray(hi))

	flat, err := Greys(5, 5)
	require.NoError(t, err)
	assert.Equal(t, 6.0, flat.Max())
}

func TestChoroplethSave(t *testing.T) {
	a, err := Read(strings.NewReader(squareJSON), "Germany", nil)
	require.NoError(t, err)
	b, err := Read(strings.NewReader(irelandJSON), "Ireland", PropertyEquals("GID_0", "IRL"))
	require.NoError(t, err)

	m, err := NewChoropleth("Impact of GDPR on Internet Usage Growth Rate", "Internet Usage Growth Rate", "%",
		SideBySide([]Region{b, a}, 0.3),
		[]Panel{
			{Title: "Before GDPR (2010-2017)", Values: map[string]float64{"Ireland": 2.7, "Germany": 0.5}},
			{Title: "After GDPR (2018+)", Values: map[string]float64{"Ireland": 2.6}},
		},
		chart.DefaultTheme(30))
	require.NoError(t, err)
	lo, hi := m.Range()
	assert.Equal(t, 0.5, lo)
	assert.Equal(t, 2.7, hi)

	th := m.Theme.WithSize(14*vg.Inch, 4*vg.Inch)
	path := filepath.Join(t.TempDir(), "map.png")
	require.NoError(t, chart.Save(m, th, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func gray(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

func TestChoroplethWithoutColorMap(t *testing.T) {
	c := draw.New(vgimg.New(4*vg.Inch, 2*vg.Inch))
	assert.NotPanics(t, func() { Choropleth{Title: "empty"}.Draw(c) })

	m, err := NewChoropleth("No values", "Growth", "%", nil, []Panel{{Title: "Before"}}, chart.DefaultTheme(30))
	require.NoError(t, err)
	assert.NotNil(t, m.colors)
	assert.NotPanics(t, func() { m.Draw(c) })
}
