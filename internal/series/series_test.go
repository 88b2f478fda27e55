package series

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateMeanPerGroup(t *testing.T) {
	obs := []Observation{
		{Entity: "DE", Period: 2019, Value: 10},
		{Entity: "DE", Period: 2018, Value: 4},
		{Entity: "DE", Period: 2019, Value: 20},
		{Entity: "IE", Period: 2018, Value: 7},
		{Entity: "DE", Period: 2018, Value: 6},
	}

	got := Aggregate(obs)
	require.Len(t, got, 2)

	assert.Equal(t, "DE", got[0].Entity)
	assert.Equal(t, []Point{{Period: 2018, Value: 5}, {Period: 2019, Value: 15}}, got[0].Points)

	assert.Equal(t, "IE", got[1].Entity)
	assert.Equal(t, []Point{{Period: 2018, Value: 7}}, got[1].Points)
}

func TestAggregateSingleObservationUnchanged(t *testing.T) {
	got := Aggregate([]Observation{{Entity: "CH", Period: 2015, Value: 3.25}})
	require.Len(t, got, 1)
	assert.Equal(t, 3.25, got[0].Points[0].Value)
}

func TestAggregateSkipsNaN(t *testing.T) {
	got := Aggregate([]Observation{
		{Entity: "DE", Period: 2020, Value: math.NaN()},
		{Entity: "DE", Period: 2020, Value: 8},
		{Entity: "DE", Period: 2021, Value: math.NaN()},
	})
	require.Len(t, got, 1)
	require.Len(t, got[0].Points, 2)
	assert.Equal(t, 8.0, got[0].Points[0].Value)
	assert.True(t, math.IsNaN(got[0].Points[1].Value))
}

func TestAggregatePermutationInvariant(t *testing.T) {
	var obs []Observation
	for _, entity := range []string{"DE", "IE", "CH"} {
		for period := 2010; period < 2020; period++ {
			for k := 0; k < 3; k++ {
				obs = append(obs, Observation{Entity: entity, Period: period, Value: float64(period%7 + k)})
			}
		}
	}
	want := byEntity(Aggregate(obs))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		shuffled := make([]Observation, len(obs))
		copy(shuffled, obs)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := byEntity(Aggregate(shuffled))
		require.Len(t, got, len(want))
		for entity, s := range want {
			require.Len(t, got[entity].Points, len(s.Points))
			for j, p := range s.Points {
				assert.Equal(t, p.Period, got[entity].Points[j].Period)
				assert.InDelta(t, p.Value, got[entity].Points[j].Value, 1e-12)
			}
		}
	}
}

func TestAggregateUniquePeriods(t *testing.T) {
	obs := []Observation{
		{Entity: "DE", Period: 2012, Value: 1},
		{Entity: "DE", Period: 2011, Value: 1},
		{Entity: "DE", Period: 2012, Value: 1},
		{Entity: "DE", Period: 2010, Value: 1},
	}
	got := Aggregate(obs)
	require.Len(t, got, 1)
	assert.Equal(t, []int{2010, 2011, 2012}, got[0].Periods())
}

func TestLookupAndPresent(t *testing.T) {
	s := Series{Entity: "DE", Points: []Point{{2010, 1}, {2012, math.NaN()}, {2013, 3}}}

	v, ok := s.Lookup(2013)
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, ok = s.Lookup(2011)
	assert.False(t, ok)

	assert.Equal(t, []int{2010, 2013}, s.Present().Periods())
}

func TestFindAndFlatten(t *testing.T) {
	all := Aggregate([]Observation{{"DE", 2010, 1}, {"IE", 2010, 2}})

	s, ok := Find(all, "IE")
	assert.True(t, ok)
	assert.Equal(t, 2.0, s.Points[0].Value)

	_, ok = Find(all, "CH")
	assert.False(t, ok)

	assert.Len(t, Flatten(all), 2)
}

func byEntity(all []Series) map[string]Series {
	m := make(map[string]Series, len(all))
	for _, s := range all {
		m[s.Entity] = s
	}
	return m
}
