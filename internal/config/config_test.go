package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *RawInput {
	return &RawInput{
		DataDir:    DefaultDataDir,
		GeoDir:     DefaultGeoDir,
		OutDir:     "out",
		DPI:        DefaultDPI,
		MinYear:    DefaultMinYear,
		CutoffYear: DefaultCutoffYear,
		Workers:    DefaultWorkers,
		Only:       " 01, 20 ,,29",
		Workbook:   true,
		Summary:    true,
		Color:      "no",
	}
}

func TestProcessValid(t *testing.T) {
	var cfg Config
	require.NoError(t, Process(&cfg, validInput()))

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "out", cfg.OutDir)
	assert.Equal(t, 300, cfg.DPI)
	assert.Equal(t, 2018, cfg.CutoffYear)
	assert.Equal(t, []string{"01", "20", "29"}, cfg.Only)
	assert.True(t, cfg.Workbook)
	assert.False(t, cfg.Parquet)
	assert.False(t, cfg.UseColors)
}

func TestProcessDefaultsDirs(t *testing.T) {
	input := validInput()
	input.GeoDir, input.OutDir = "", ""

	var cfg Config
	require.NoError(t, Process(&cfg, input))
	assert.Equal(t, DefaultGeoDir, cfg.GeoDir)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
}

func TestProcessRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawInput)
	}{
		{"empty data dir", func(in *RawInput) { in.DataDir = " " }},
		{"dpi too low", func(in *RawInput) { in.DPI = 10 }},
		{"dpi too high", func(in *RawInput) { in.DPI = 5000 }},
		{"min year", func(in *RawInput) { in.MinYear = 1500 }},
		{"cutoff before min year", func(in *RawInput) { in.CutoffYear = 2005 }},
		{"zero workers", func(in *RawInput) { in.Workers = 0 }},
		{"too many workers", func(in *RawInput) { in.Workers = MaxWorkers + 1 }},
		{"bad color", func(in *RawInput) { in.Color = "maybe" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			var cfg Config
			assert.ErrorIs(t, Process(&cfg, input), ErrInvalid)
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Equal(t, []string{"a", "b"}, SplitList("a, b,"))
}
