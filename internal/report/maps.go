package report

import (
	"fmt"

	"gonum.org/v1/plot/vg"

	"regimpact/internal/chart"
	"regimpact/internal/geo"
	"regimpact/internal/metrics"
)

// mapJob draws the before and after cutoff means of one metric on the three
// country outlines.
func mapJob(id, name, metric string, in Input, load loader) Job {
	return Job{
		ID:     id,
		Name:   name,
		Title:  "Impact of GDPR on " + metric,
		Inputs: []Input{in},
		Maps:   true,
		Width:  28 * vg.Inch,
		Height: 10 * vg.Inch,
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			if len(e.Regions()) == 0 {
				return nil, chart.ErrNoData
			}
			all, err := load(e)
			if err != nil {
				return nil, err
			}
			changes := metrics.Compare(all, e.Cutoff)
			if len(changes) == 0 {
				return nil, chart.ErrNoData
			}

			before := make(map[string]float64, len(changes))
			after := make(map[string]float64, len(changes))
			for _, c := range changes {
				before[c.Entity] = c.Pre
				after[c.Entity] = c.Post
			}
			m, err := geo.NewChoropleth("Impact of GDPR on "+metric, metric, "%", e.Regions(), []geo.Panel{
				{Title: fmt.Sprintf("Before GDPR (%d-%d)\n%s", e.MinYear, e.Cutoff-1, metric), Values: before},
				{Title: fmt.Sprintf("After GDPR (%d+)\n%s", e.Cutoff, metric), Values: after},
			}, th)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
	}
}

func mapJobs() []Job {
	return []Job{
		mapJob("26", "choropleth_internet_growth", "Internet Usage Growth Rate",
			InternetUsage, growth((*Env).internetUsage)),
		mapJob("27", "choropleth_cloud_adoption_growth", "Individual Cloud Adoption Growth Rate",
			IndividualCloud, growth((*Env).individualCloud)),
		mapJob("28", "choropleth_gerd_growth", "Total R&D (GERD) Growth Rate",
			GERD, oecdLoader(GERD)),
	}
}
