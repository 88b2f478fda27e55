package report

import (
	"fmt"
	"strconv"

	"regimpact/internal/chart"
	"regimpact/internal/metrics"
	"regimpact/internal/pipeline"
	"regimpact/internal/series"
	"regimpact/internal/timeline"
)

var (
	preFill  = chart.Gray(0xCC)
	postFill = chart.Gray(0x66)
)

// trafficCutoffs are the regulation years compared on the traffic chart.
var trafficCutoffs = []int{2018, 2022, 2023}

// growth maps a loader through year-over-year growth, keeping only series
// with at least two periods.
func growth(load loader) loader {
	return func(e *Env) ([]series.Series, error) {
		all, err := load(e)
		if err != nil {
			return nil, err
		}
		return pipeline.Map(pipeline.MinLen(all, 2), metrics.GrowthRates), nil
	}
}

// windowJob compares GERD growth in the five years around one milestone.
func windowJob(id string, m timeline.Milestone) Job {
	title := "YoY GERD Growth Rate Comparison Around " + m.Label()
	return Job{
		ID:     id,
		Name:   "yoy_growth_" + m.ShortName(),
		Title:  title,
		Inputs: []Input{GERD},
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			all, err := e.oecd(GERD)
			if err != nil {
				return nil, err
			}

			year := m.Date.Year()
			years := []int{year - 2, year - 1, year, year + 1, year + 2}
			cats := make([]string, len(years))
			for i, y := range years {
				cats[i] = strconv.Itoa(y)
			}

			var groups []chart.Bars
			for _, country := range countries {
				s, ok := series.Find(all, country)
				if !ok {
					continue
				}
				groups = append(groups, chart.Bars{
					Label:  country,
					Values: metrics.ValuesAt(s, years),
					Fill:   th.Country(country).Color,
				})
			}
			return plotted(chart.BarChart{
				Title:         title,
				CategoryLabel: "Year",
				ValueLabel:    "GERD Growth Rate (%)",
				Categories:    cats,
				Groups:        groups,
				ZeroLine:      true,
				Marker:        &chart.Marker{X: 2},
			}, th)
		},
	}
}

func windowJobs(tl timeline.Timeline) []Job {
	var jobs []Job
	for i, m := range tl.Milestones() {
		jobs = append(jobs, windowJob(fmt.Sprintf("20%c", 'a'+i), m))
	}
	return jobs
}

// trafficJob compares mean traffic growth before and after each regulation.
func trafficJob() Job {
	title := "Broadband Traffic Growth Rate Before/After Each Regulation"
	load := growth((*Env).traffic)
	return Job{
		ID:     "22",
		Name:   "traffic_growth_before_after",
		Title:  title,
		Inputs: []Input{Traffic},
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			all, err := load(e)
			if err != nil {
				return nil, err
			}

			var cats []string
			for _, y := range trafficCutoffs {
				cats = append(cats, fmt.Sprintf("Before %d", y), fmt.Sprintf("After %d", y))
			}
			var groups []chart.Bars
			for _, s := range all {
				var values []float64
				for _, y := range trafficCutoffs {
					pre, post := metrics.SplitMeans(s, y)
					values = append(values, pre, post)
				}
				groups = append(groups, chart.Bars{Label: s.Entity, Values: values, Fill: th.Country(s.Entity).Color})
			}
			return plotted(chart.BarChart{
				Title:            title,
				CategoryLabel:    "Period",
				ValueLabel:       "Average Traffic Growth Rate (%)",
				Categories:       cats,
				Groups:           groups,
				RotateCategories: true,
				ZeroLine:         true,
			}, th)
		},
	}
}

// prePostLabels are the legend labels of the two compared periods.
func (e *Env) prePostLabels() (pre, post string) {
	return fmt.Sprintf("Pre-GDPR (%d-%d)", e.MinYear, e.Cutoff-1), fmt.Sprintf("Post-GDPR (%d+)", e.Cutoff)
}

// prePostChart draws the pre and post cutoff means side by side per entity.
func (e *Env) prePostChart(title, ylabel string, changes []metrics.Change) chart.BarChart {
	preLabel, postLabel := e.prePostLabels()
	cats := make([]string, len(changes))
	pre := chart.Bars{Label: preLabel, Values: make([]float64, len(changes)), Fill: preFill}
	post := chart.Bars{Label: postLabel, Values: make([]float64, len(changes)), Fill: postFill}
	for i, c := range changes {
		cats[i] = c.Entity
		pre.Values[i] = c.Pre
		post.Values[i] = c.Post
	}
	return chart.BarChart{
		Title:         title,
		CategoryLabel: "Country",
		ValueLabel:    ylabel,
		Categories:    cats,
		Groups:        []chart.Bars{pre, post},
	}
}

// prePostJob compares growth means around the configured cutoff.
func prePostJob(id, name, title, ylabel string, in Input, load loader, zero bool) Job {
	return Job{
		ID:     id,
		Name:   name,
		Title:  title,
		Inputs: []Input{in},
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			all, err := load(e)
			if err != nil {
				return nil, err
			}
			bc := e.prePostChart(title, ylabel, metrics.Compare(all, e.Cutoff))
			bc.ZeroLine = zero
			return plotted(bc, th)
		},
	}
}

// allCountries keeps a row for every country, empty when the loader has no
// data for it, so absent countries still show as zero bars.
func allCountries(load loader) loader {
	return func(e *Env) ([]series.Series, error) {
		all, err := load(e)
		if err != nil {
			return nil, err
		}
		out := make([]series.Series, len(countries))
		for i, country := range countries {
			s, ok := series.Find(all, country)
			if !ok {
				s = series.Series{Entity: country}
			}
			out[i] = s
		}
		return out, nil
	}
}

func comparisonJobs() []Job {
	return append(windowJobs(timeline.Default()),
		trafficJob(),
		prePostJob("24a", "internet_usage_comparison",
			"Pre vs Post-GDPR: Internet Usage Growth Rate Comparison",
			"Internet Usage Growth Rate (%)", InternetUsage, growth((*Env).internetUsage), false),
		prePostJob("24b", "cloud_adoption_comparison",
			"Pre vs Post-GDPR: Cloud Adoption Growth Rate Comparison",
			"Cloud Adoption Growth Rate (%)", IndividualCloud, growth((*Env).individualCloud), false),
		prePostJob("24c", "gerd_comparison",
			"Pre vs Post-GDPR: GERD Growth Rate Comparison",
			"GERD Growth Rate (%)", GERD, allCountries(oecdLoader(GERD)), true),
	)
}
