// Package pipeline is the filter, group, sort step shared by every chart:
// a Query narrows a table, averages duplicate (entity, period) rows and hands
// back ordered per-entity series.
package pipeline

import (
	"regimpact/internal/dataset"
	"regimpact/internal/series"
)

// Eurostat column names.
const (
	GeoColumn    = "geo"
	TimeColumn   = "TIME_PERIOD"
	ObsColumn    = "OBS_VALUE"
	SizeColumn   = "size_emp"
	OfferColumn  = "offer"
	SpeedColumn  = "inet_spd"
	OECDEntities = "Time period"
)

// Query describes one filter, aggregate and sort pass over a long table.
type Query struct {
	EntityColumn string
	PeriodColumn string
	ValueColumn  string

	// Entities restricts and orders the output. Empty keeps every entity in
	// order of first appearance.
	Entities []string

	// Where is an extra row predicate, ANDed with the entity and period
	// filters. May be nil.
	Where dataset.Predicate

	// MinPeriod drops rows before this period when positive.
	MinPeriod int

	// Names maps entity codes to display names. Unmapped codes are kept.
	Names map[string]string
}

// Eurostat returns a query over the standard geo, TIME_PERIOD and OBS_VALUE
// columns.
func Eurostat(minPeriod int, entities ...string) Query {
	return Query{
		EntityColumn: GeoColumn,
		PeriodColumn: TimeColumn,
		ValueColumn:  ObsColumn,
		Entities:     entities,
		MinPeriod:    minPeriod,
	}
}

// Run applies the query to t. Entities with no rows are left out, never
// reported as an error.
func (q Query) Run(t *dataset.Table) ([]series.Series, error) {
	preds := []dataset.Predicate{q.Where}
	if len(q.Entities) > 0 {
		preds = append(preds, dataset.In(q.EntityColumn, q.Entities...))
	}
	if q.MinPeriod > 0 {
		preds = append(preds, dataset.AtLeast(q.PeriodColumn, q.MinPeriod))
	}

	obs, err := t.Filter(dataset.All(preds...)).Observations(q.EntityColumn, q.PeriodColumn, q.ValueColumn)
	if err != nil {
		return nil, err
	}
	return Select(series.Aggregate(obs), q.Entities, q.Names), nil
}

// Wide reshapes an OECD wide table, keeps periods from minYear on and
// aggregates it into series for the given entities.
func Wide(t *dataset.Table, minYear int, entities ...string) []series.Series {
	return Select(series.Aggregate(dataset.ReshapeWide(t, minYear)), entities, nil)
}

// Select orders all by entities, drops empty series and renames through
// names. An empty entities list keeps the input order.
func Select(all []series.Series, entities []string, names map[string]string) []series.Series {
	picked := all
	if len(entities) > 0 {
		picked = make([]series.Series, 0, len(entities))
		for _, e := range entities {
			if s, ok := series.Find(all, e); ok {
				picked = append(picked, s)
			}
		}
	}

	out := make([]series.Series, 0, len(picked))
	for _, s := range picked {
		if s.Empty() {
			continue
		}
		if name, ok := names[s.Entity]; ok {
			s.Entity = name
		}
		out = append(out, s)
	}
	return out
}

// Map applies fn to every series.
func Map(all []series.Series, fn func(series.Series) series.Series) []series.Series {
	out := make([]series.Series, len(all))
	for i, s := range all {
		out[i] = fn(s)
	}
	return out
}

// MinLen keeps series with at least n points.
func MinLen(all []series.Series, n int) []series.Series {
	var out []series.Series
	for _, s := range all {
		if s.Len() >= n {
			out = append(out, s)
		}
	}
	return out
}
