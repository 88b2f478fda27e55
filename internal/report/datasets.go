package report

import (
	"regimpact/internal/dataset"
	"regimpact/internal/pipeline"
	"regimpact/internal/series"
)

// UN data column names.
const (
	unCountryColumn = "Country or Area"
	unYearColumn    = "Year"
	unValueColumn   = "Value"
)

const priceOffer = "FI_MBPS100-200"

// Enterprise size buckets and their legend labels. Buckets missing from
// sizeLabels are not drawn.
var (
	sizeLabels = map[string]string{
		"10-249": "10-249 employees",
		"50-249": "50-249 employees",
		"GE10":   "10+ employees",
		"GE250":  "250+ employees",
	}
)

const (
	smeSize   = "10-249"
	largeSize = "GE250"
)

// eurostat runs a country query over a Eurostat long table.
func (e *Env) eurostat(in Input, where dataset.Predicate, codes ...string) ([]series.Series, error) {
	t, err := e.Table(in)
	if err != nil {
		return nil, err
	}
	q := pipeline.Eurostat(e.MinYear, codes...)
	q.Where = where
	q.Names = countryNames
	return q.Run(t)
}

// prices is the 100-200 Mbps fixed offer price for Germany and Ireland.
func (e *Env) prices() ([]series.Series, error) {
	return e.eurostat(Prices, priceFilter(), "DE", "IE")
}

func priceFilter() dataset.Predicate {
	return dataset.Equals(pipeline.OfferColumn, priceOffer)
}

// gigabitCoverage is the share of households covered above 1 Gbps.
func (e *Env) gigabitCoverage() ([]series.Series, error) {
	return e.eurostat(Speed, dataset.Equals(pipeline.SpeedColumn, "GBPS_GT1"), countryCodes...)
}

func (e *Env) individualCloud() ([]series.Series, error) {
	return e.eurostat(IndividualCloud, nil, countryCodes...)
}

func (e *Env) traffic() ([]series.Series, error) {
	return e.eurostat(Traffic, nil, countryCodes...)
}

// enterpriseCloud is cloud adoption for one enterprise size bucket per country.
func (e *Env) enterpriseCloud(size string) ([]series.Series, error) {
	return e.eurostat(EnterpriseCloud, dataset.Equals(pipeline.SizeColumn, size), countryCodes...)
}

// enterpriseSizes is cloud adoption per size bucket within one country, in
// order of first appearance.
func (e *Env) enterpriseSizes(code string, sizes ...string) ([]series.Series, error) {
	t, err := e.Table(EnterpriseCloud)
	if err != nil {
		return nil, err
	}
	q := pipeline.Query{
		EntityColumn: pipeline.SizeColumn,
		PeriodColumn: pipeline.TimeColumn,
		ValueColumn:  pipeline.ObsColumn,
		Entities:     sizes,
		Where:        dataset.Equals(pipeline.GeoColumn, code),
		MinPeriod:    e.MinYear,
	}
	return q.Run(t)
}

// internetUsage is the UN share of the population using the internet.
func (e *Env) internetUsage() ([]series.Series, error) {
	t, err := e.Table(InternetUsage)
	if err != nil {
		return nil, err
	}
	q := pipeline.Query{
		EntityColumn: unCountryColumn,
		PeriodColumn: unYearColumn,
		ValueColumn:  unValueColumn,
		Entities:     countries,
		MinPeriod:    e.MinYear,
	}
	return q.Run(t)
}

// oecd reshapes one of the wide OECD R&D growth tables.
func (e *Env) oecd(in Input) ([]series.Series, error) {
	t, err := e.Table(in)
	if err != nil {
		return nil, err
	}
	return pipeline.Wide(t, e.MinYear, countries...), nil
}

// rdSources are the four OECD R&D expenditure tables and their short names.
var rdSources = []struct {
	Input Input
	Name  string
	Long  string
}{
	{GERD, "GERD", "Total R&D"},
	{BRED, "BRED", "Business R&D"},
	{GOVERD, "GOVERD", "Government R&D"},
	{HRED, "HRED", "Higher Education R&D"},
}
