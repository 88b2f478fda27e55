// Package geo loads country outlines from GeoJSON and lays them out side by
// side in a shared unit space for the before/after choropleth figures.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ErrEmptyGeometry is returned when no polygon survives loading.
var ErrEmptyGeometry = errors.New("no polygon geometry")

// Region is one named outline, held as a single multipolygon.
type Region struct {
	Name  string
	Shape *geom.MultiPolygon
}

// Filter selects features by their properties.
type Filter func(props map[string]any) bool

// PropertyEquals keeps features whose string property key equals value.
func PropertyEquals(key, value string) Filter {
	return func(props map[string]any) bool {
		s, ok := props[key].(string)
		return ok && s == value
	}
}

// Load reads a GeoJSON FeatureCollection from path.
func Load(path, name string, keep Filter) (Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return Region{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r, err := Read(f, name, keep)
	if err != nil {
		return Region{}, fmt.Errorf("read %s: %w", path, err)
	}
	return r, nil
}

// Read decodes a FeatureCollection and dissolves every kept polygon feature
// into one region. A nil keep accepts every feature. Non-polygonal features
// are ignored.
func Read(r io.Reader, name string, keep Filter) (Region, error) {
	var fc geojson.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return Region{}, err
	}

	var shape *geom.MultiPolygon
	add := func(p *geom.Polygon) error {
		if p.Empty() {
			return nil
		}
		if shape == nil {
			shape = geom.NewMultiPolygon(p.Layout())
		}
		return shape.Push(p)
	}

	for _, feat := range fc.Features {
		if keep != nil && !keep(feat.Properties) {
			continue
		}
		switch g := feat.Geometry.(type) {
		case *geom.Polygon:
			if err := add(g); err != nil {
				return Region{}, fmt.Errorf("%s: %w", name, err)
			}
		case *geom.MultiPolygon:
			for i := 0; i < g.NumPolygons(); i++ {
				if err := add(g.Polygon(i)); err != nil {
					return Region{}, fmt.Errorf("%s: %w", name, err)
				}
			}
		}
	}
	if shape == nil || shape.NumPolygons() == 0 {
		return Region{}, fmt.Errorf("%s: %w", name, ErrEmptyGeometry)
	}
	return Region{Name: name, Shape: shape}, nil
}

// Bounds returns the x and y extent of the region.
func (r Region) Bounds() (minX, minY, maxX, maxY float64) {
	b := r.Shape.Bounds()
	return b.Min(0), b.Min(1), b.Max(0), b.Max(1)
}

// CenterX is the horizontal middle of the bounding box, where labels go.
func (r Region) CenterX() float64 {
	minX, _, maxX, _ := r.Bounds()
	return (minX + maxX) / 2
}

// Normalize moves the region to the origin and scales it so its larger
// side is 1, keeping the aspect ratio.
func (r Region) Normalize() Region {
	minX, minY, maxX, maxY := r.Bounds()
	scale := math.Max(maxX-minX, maxY-minY)
	if scale == 0 {
		scale = 1
	}
	return r.transform(func(x, y float64) (float64, float64) {
		return (x - minX) / scale, (y - minY) / scale
	})
}

// Translate shifts the region by (dx, dy).
func (r Region) Translate(dx, dy float64) Region {
	return r.transform(func(x, y float64) (float64, float64) {
		return x + dx, y + dy
	})
}

func (r Region) transform(fn func(x, y float64) (float64, float64)) Region {
	stride := r.Shape.Stride()
	flat := make([]float64, len(r.Shape.FlatCoords()))
	copy(flat, r.Shape.FlatCoords())
	for i := 0; i+1 < len(flat); i += stride {
		flat[i], flat[i+1] = fn(flat[i], flat[i+1])
	}

	endss := make([][]int, len(r.Shape.Endss()))
	for i, ends := range r.Shape.Endss() {
		endss[i] = append([]int(nil), ends...)
	}
	return Region{Name: r.Name, Shape: geom.NewMultiPolygonFlat(r.Shape.Layout(), flat, endss)}
}

// SideBySide normalizes every region and places region i at x offset
// i*(1+spacing), in the given order.
func SideBySide(regions []Region, spacing float64) []Region {
	out := make([]Region, len(regions))
	for i, r := range regions {
		out[i] = r.Normalize().Translate(float64(i)*(1+spacing), 0)
	}
	return out
}
