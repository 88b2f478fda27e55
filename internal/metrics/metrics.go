// Package metrics derives regulation-relative series from aggregated yearly
// series: year-over-year growth, pre/post cutoff means and a chained
// cumulative index.
package metrics

import (
	"math"

	"regimpact/internal/series"
)

// IndexBase is the cumulative index value at the first period.
const IndexBase = 100.0

// GrowthRates returns the year-over-year percent change of s. The first
// period has no growth and is NaN; a zero or missing prior value also
// yields NaN.
func GrowthRates(s series.Series) series.Series {
	out := series.Series{Entity: s.Entity, Points: make([]series.Point, len(s.Points))}
	for i, p := range s.Points {
		out.Points[i] = series.Point{Period: p.Period, Value: math.NaN()}
		if i == 0 {
			continue
		}
		out.Points[i].Value = percentChange(s.Points[i-1].Value, p.Value)
	}
	return out
}

func percentChange(prev, cur float64) float64 {
	if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
		return math.NaN()
	}
	return (cur - prev) / prev * 100
}

// SplitMeans partitions s around cutoff into periods before it and periods
// at or after it, and returns the NaN-ignoring mean of each side. An empty
// side reports 0, not NaN, so bar charts always get a drawable value.
func SplitMeans(s series.Series, cutoff int) (pre, post float64) {
	var before, after []float64
	for _, p := range s.Points {
		if p.Period < cutoff {
			before = append(before, p.Value)
		} else {
			after = append(after, p.Value)
		}
	}
	return zeroIfNaN(Mean(before)), zeroIfNaN(Mean(after))
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// CumulativeIndex chains growth rates (percent) into an index based at
// IndexBase on the first period. The first period's own growth is ignored
// and a missing growth value carries the previous index forward. Points must
// be ordered by period.
func CumulativeIndex(growth series.Series) series.Series {
	out := series.Series{Entity: growth.Entity, Points: make([]series.Point, len(growth.Points))}
	index := IndexBase
	for i, p := range growth.Points {
		if i > 0 && !math.IsNaN(p.Value) {
			index *= 1 + p.Value/100
		}
		out.Points[i] = series.Point{Period: p.Period, Value: index}
	}
	return out
}

// Mean is the arithmetic mean of the non-NaN values, or NaN if there are none.
func Mean(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// ValuesAt returns the value of s at each period, NaN where s has no point.
func ValuesAt(s series.Series, periods []int) []float64 {
	out := make([]float64, len(periods))
	for i, period := range periods {
		v, ok := s.Lookup(period)
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

// Change is the pre/post comparison of one entity around a cutoff.
type Change struct {
	Entity string
	Pre    float64
	Post   float64
}

// Delta returns Post minus Pre.
func (c Change) Delta() float64 {
	return c.Post - c.Pre
}

// Compare runs SplitMeans over every series.
func Compare(all []series.Series, cutoff int) []Change {
	out := make([]Change, 0, len(all))
	for _, s := range all {
		pre, post := SplitMeans(s, cutoff)
		out = append(out, Change{Entity: s.Entity, Pre: pre, Post: post})
	}
	return out
}
