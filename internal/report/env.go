// Package report is the chart battery of the regulation-impact study: the
// catalog of chart jobs, the environment they draw from, the runner that
// renders them, and the derived-metrics exports.
package report

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"regimpact/internal/chart"
	"regimpact/internal/dataset"
	"regimpact/internal/geo"
	"regimpact/internal/timeline"
)

// Input names one source file under the data directory.
type Input string

const (
	Prices          Input = "broadband prices.csv"
	IndividualCloud Input = "Individual Cloud Service Use.csv"
	GERD            Input = "GERD OECD.csv"
	Traffic         Input = "broadband traffic.csv"
	EnterpriseCloud Input = "Cloud Computing Services.csv"
	BRED            Input = "BRED OECD.csv"
	InternetUsage   Input = "Internet Usage _ UN DATA.csv"
	GOVERD          Input = "GOVERD OECD.csv"
	Speed           Input = "broadband speed.csv"
	HRED            Input = "HRED OECD.csv"
	VPN             Input = "multiTimeline.csv"
)

// countries are the compared countries, in legend order, and their Eurostat
// geo codes.
var (
	countries    = []string{"Germany", "Ireland", "Switzerland"}
	countryCodes = []string{"DE", "IE", "CH"}
	countryNames = map[string]string{"DE": "Germany", "IE": "Ireland", "CH": "Switzerland"}
)

// Countries returns the compared countries in legend order.
func Countries() []string {
	out := make([]string, len(countries))
	copy(out, countries)
	return out
}

// mapCountries is the left-to-right order on the choropleth figures.
var mapCountries = []struct {
	name string
	file string
	keep geo.Filter
}{
	{name: "Ireland", file: "ireland.geojson", keep: geo.PropertyEquals("GID_0", "IRL")},
	{name: "Germany", file: "germany.geojson"},
	{name: "Switzerland", file: "switzerland.geojson"},
}

// mapSpacing is the gap between two normalized outlines.
const mapSpacing = 0.3

// Options are the settings an Env is built from.
type Options struct {
	DataDir    string
	GeoDir     string
	DPI        int
	MinYear    int
	CutoffYear int
}

// Env holds everything chart jobs read: loaded tables, map outlines, the
// shared theme and the regulation timeline. It is read-only once built and
// safe for concurrent jobs.
type Env struct {
	Theme    chart.Theme
	Timeline timeline.Timeline
	MinYear  int
	Cutoff   int

	tables  map[Input]*dataset.Table
	regions []geo.Region
}

// NewEnv builds an Env over already loaded tables and laid out regions.
func NewEnv(opts Options, tables map[Input]*dataset.Table, regions []geo.Region) *Env {
	if tables == nil {
		tables = make(map[Input]*dataset.Table)
	}
	return &Env{
		Theme:    chart.DefaultTheme(opts.DPI),
		Timeline: timeline.Default(),
		MinYear:  opts.MinYear,
		Cutoff:   opts.CutoffYear,
		tables:   tables,
		regions:  regions,
	}
}

// LoadEnv reads the given inputs from opts.DataDir, plus the map outlines
// from opts.GeoDir when maps is set. Files are read concurrently; the first
// failure is returned.
func LoadEnv(ctx context.Context, opts Options, inputs []Input, maps bool) (*Env, error) {
	tables := make([]*dataset.Table, len(inputs))
	g, _ := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			t, err := dataset.LoadCSV(filepath.Join(opts.DataDir, string(in)))
			if err != nil {
				return fmt.Errorf("load %s: %w", in, err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byInput := make(map[Input]*dataset.Table, len(inputs))
	for i, in := range inputs {
		byInput[in] = tables[i]
	}

	var regions []geo.Region
	if maps {
		var err error
		if regions, err = LoadRegions(opts.GeoDir); err != nil {
			return nil, err
		}
	}
	return NewEnv(opts, byInput, regions), nil
}

// LoadRegions reads, normalizes and lays out the three country outlines.
func LoadRegions(dir string) ([]geo.Region, error) {
	regions := make([]geo.Region, 0, len(mapCountries))
	for _, mc := range mapCountries {
		r, err := geo.Load(filepath.Join(dir, mc.file), mc.name, mc.keep)
		if err != nil {
			return nil, fmt.Errorf("load %s outline: %w", mc.name, err)
		}
		regions = append(regions, r.Normalize())
	}
	return geo.SideBySide(regions, mapSpacing), nil
}

// Table returns a loaded input.
func (e *Env) Table(in Input) (*dataset.Table, error) {
	t, ok := e.tables[in]
	if !ok {
		return nil, fmt.Errorf("input %q not loaded", in)
	}
	return t, nil
}

// Has reports whether in was loaded.
func (e *Env) Has(in Input) bool {
	_, ok := e.tables[in]
	return ok
}

// Regions returns the laid out map outlines.
func (e *Env) Regions() []geo.Region {
	return e.regions
}

// Inputs returns the distinct inputs the jobs read, sorted, and whether any
// of them draws a map.
func Inputs(jobs []Job) (inputs []Input, maps bool) {
	seen := make(map[Input]bool)
	for _, j := range jobs {
		maps = maps || j.Maps
		for _, in := range j.Inputs {
			if !seen[in] {
				seen[in] = true
				inputs = append(inputs, in)
			}
		}
	}
	sort.Slice(inputs, func(i, k int) bool { return inputs[i] < inputs[k] })
	return inputs, maps
}
