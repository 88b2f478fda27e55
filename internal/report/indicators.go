package report

import (
	"strings"

	"regimpact/internal/metrics"
	"regimpact/internal/pipeline"
	"regimpact/internal/series"
)

// Indicator is one measured quantity of the regulation comparison.
type Indicator struct {
	Key   string
	Name  string
	Input Input
	// Growth compares year-over-year growth of the loaded values rather
	// than the values themselves. The OECD tables already hold growth rates.
	Growth bool

	load loader
}

// Indicators returns the measured quantities in report order.
func Indicators() []Indicator {
	inds := []Indicator{
		{Key: "internet_usage", Name: "Internet usage", Input: InternetUsage, Growth: true, load: (*Env).internetUsage},
		{Key: "individual_cloud", Name: "Individual cloud adoption", Input: IndividualCloud, Growth: true, load: (*Env).individualCloud},
		{Key: "enterprise_cloud", Name: "Enterprise cloud adoption (10-249)", Input: EnterpriseCloud, Growth: true, load: func(e *Env) ([]series.Series, error) {
			return e.enterpriseCloud(smeSize)
		}},
		{Key: "broadband_traffic", Name: "Broadband traffic", Input: Traffic, Growth: true, load: (*Env).traffic},
		{Key: "broadband_prices", Name: "Broadband prices (100-200 Mbps)", Input: Prices, Growth: true, load: (*Env).prices},
	}
	for _, src := range rdSources {
		inds = append(inds, Indicator{Key: strings.ToLower(src.Name), Name: src.Long + " (" + src.Name + ")", Input: src.Input, load: oecdLoader(src.Input)})
	}
	return inds
}

// IndicatorInputs lists the inputs the indicators read.
func IndicatorInputs(inds []Indicator) []Input {
	out := make([]Input, 0, len(inds))
	seen := make(map[Input]bool)
	for _, ind := range inds {
		if !seen[ind.Input] {
			seen[ind.Input] = true
			out = append(out, ind.Input)
		}
	}
	return out
}

// Metrics are the derived values of one indicator.
type Metrics struct {
	Indicator Indicator
	// Rates are the compared growth rates per country.
	Rates   []series.Series
	Changes []metrics.Change
	Index   []series.Series
}

// Compute derives growth, the pre/post cutoff comparison and the cumulative
// index for every indicator whose input is loaded.
func Compute(e *Env, inds []Indicator) ([]Metrics, error) {
	out := make([]Metrics, 0, len(inds))
	for _, ind := range inds {
		if !e.Has(ind.Input) {
			continue
		}
		all, err := ind.load(e)
		if err != nil {
			return nil, err
		}
		if ind.Growth {
			all = pipeline.Map(pipeline.MinLen(all, 2), metrics.GrowthRates)
		}
		out = append(out, Metrics{
			Indicator: ind,
			Rates:     all,
			Changes:   metrics.Compare(all, e.Cutoff),
			Index:     pipeline.Map(all, metrics.CumulativeIndex),
		})
	}
	return out, nil
}
