// Package series holds per-entity yearly series and the mean aggregation that
// collapses duplicated observations.
package series

import (
	"math"
	"sort"
)

// Observation is one raw (entity, period, value) row. Missing values are NaN.
type Observation struct {
	Entity string
	Period int
	Value  float64
}

// Point is a single period of a Series.
type Point struct {
	Period int
	Value  float64
}

// Series is an ordered-by-period sequence of values for one entity.
type Series struct {
	Entity string
	Points []Point
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Points)
}

// Empty reports whether the series has no points.
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Periods returns the periods in order.
func (s Series) Periods() []int {
	periods := make([]int, len(s.Points))
	for i, p := range s.Points {
		periods[i] = p.Period
	}
	return periods
}

// Values returns the values in period order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// Lookup returns the value at period, or false when the period is absent.
func (s Series) Lookup(period int) (float64, bool) {
	i := sort.Search(len(s.Points), func(i int) bool {
		return s.Points[i].Period >= period
	})
	if i < len(s.Points) && s.Points[i].Period == period {
		return s.Points[i].Value, true
	}
	return 0, false
}

// Present returns a copy without NaN points.
func (s Series) Present() Series {
	out := Series{Entity: s.Entity, Points: make([]Point, 0, len(s.Points))}
	for _, p := range s.Points {
		if !math.IsNaN(p.Value) {
			out.Points = append(out.Points, p)
		}
	}
	return out
}

// Sorted returns a copy ordered by period.
func (s Series) Sorted() Series {
	points := make([]Point, len(s.Points))
	copy(points, s.Points)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Period < points[j].Period
	})
	return Series{Entity: s.Entity, Points: points}
}

type groupKey struct {
	entity string
	period int
}

type accumulator struct {
	sum   float64
	count int
}

// Aggregate groups observations by (entity, period) and reduces each group to
// its arithmetic mean. NaN values are left out of the mean; a group with no
// usable value reports NaN. Entities are returned in order of first
// appearance, each with strictly increasing periods.
func Aggregate(obs []Observation) []Series {
	groups := make(map[groupKey]*accumulator)
	periodsByEntity := make(map[string][]int)
	var entities []string

	for _, o := range obs {
		key := groupKey{entity: o.Entity, period: o.Period}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
			if _, seen := periodsByEntity[o.Entity]; !seen {
				entities = append(entities, o.Entity)
			}
			periodsByEntity[o.Entity] = append(periodsByEntity[o.Entity], o.Period)
		}
		if math.IsNaN(o.Value) {
			continue
		}
		acc.sum += o.Value
		acc.count++
	}

	out := make([]Series, 0, len(entities))
	for _, entity := range entities {
		periods := periodsByEntity[entity]
		sort.Ints(periods)

		s := Series{Entity: entity, Points: make([]Point, 0, len(periods))}
		for _, period := range periods {
			acc := groups[groupKey{entity: entity, period: period}]
			value := math.NaN()
			if acc.count > 0 {
				value = acc.sum / float64(acc.count)
			}
			s.Points = append(s.Points, Point{Period: period, Value: value})
		}
		out = append(out, s)
	}
	return out
}

// Find returns the series for entity from a slice produced by Aggregate.
func Find(all []Series, entity string) (Series, bool) {
	for _, s := range all {
		if s.Entity == entity {
			return s, true
		}
	}
	return Series{Entity: entity}, false
}

// Flatten turns series back into observations, in series order.
func Flatten(all []Series) []Observation {
	var obs []Observation
	for _, s := range all {
		for _, p := range s.Points {
			obs = append(obs, Observation{Entity: s.Entity, Period: p.Period, Value: p.Value})
		}
	}
	return obs
}
