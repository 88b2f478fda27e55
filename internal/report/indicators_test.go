package report

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"regimpact/internal/metrics"
	"regimpact/internal/series"
	"regimpact/internal/timeline"
)

func findMetrics(t *testing.T, results []Metrics, key string) Metrics {
	t.Helper()
	for _, m := range results {
		if m.Indicator.Key == key {
			return m
		}
	}
	require.Failf(t, "indicator missing", "no metrics for %s", key)
	return Metrics{}
}

func findChange(t *testing.T, changes []metrics.Change, entity string) metrics.Change {
	t.Helper()
	for _, c := range changes {
		if c.Entity == entity {
			return c
		}
	}
	require.Failf(t, "entity missing", "no change for %s", entity)
	return metrics.Change{}
}

func TestIndicators(t *testing.T) {
	inds := Indicators()
	require.Len(t, inds, 9)

	keys := make(map[string]bool)
	for _, ind := range inds {
		assert.False(t, keys[ind.Key], ind.Key)
		keys[ind.Key] = true
		assert.NotNil(t, ind.load, ind.Key)
	}
	assert.True(t, keys["gerd"])
	assert.True(t, keys["hred"])

	inputs := IndicatorInputs(inds)
	assert.Len(t, inputs, 9)
	assert.Contains(t, inputs, EnterpriseCloud)
	assert.NotContains(t, inputs, VPN)
}

func TestCompute(t *testing.T) {
	results, err := Compute(testEnv(t), Indicators())
	require.NoError(t, err)

	// Only the loaded inputs produce metrics.
	require.Len(t, results, 3)
	assert.Equal(t, "internet_usage", results[0].Indicator.Key)
	assert.Equal(t, "broadband_prices", results[1].Indicator.Key)
	assert.Equal(t, "gerd", results[2].Indicator.Key)

	gerd := findMetrics(t, results, "gerd")
	de := findChange(t, gerd.Changes, "Germany")
	assert.InDelta(t, 4.0, de.Pre, 1e-9)
	assert.InDelta(t, 3.0, de.Post, 1e-9)
	assert.InDelta(t, -1.0, de.Delta(), 1e-9)

	ie := findChange(t, gerd.Changes, "Ireland")
	assert.InDelta(t, 11.0, ie.Delta(), 1e-9)

	index, ok := series.Find(gerd.Index, "Germany")
	require.True(t, ok)
	assert.Equal(t, 100.0, index.Points[0].Value)
	assert.InDelta(t, 104.0, index.Points[1].Value, 1e-9)

	usage := findMetrics(t, results, "internet_usage")
	require.Len(t, usage.Rates, 1, "single-year series have no growth")
	rates := usage.Rates[0]
	assert.Equal(t, "Germany", rates.Entity)
	assert.True(t, math.IsNaN(rates.Points[0].Value))
	assert.InDelta(t, 5.0, rates.Points[1].Value, 1e-9)

	c := findChange(t, usage.Changes, "Germany")
	assert.InDelta(t, 5.0, c.Pre, 1e-9)
	assert.InDelta(t, 5.0, c.Post, 1e-9)
}

func computed(t *testing.T) []Metrics {
	t.Helper()
	results, err := Compute(testEnv(t), Indicators())
	require.NoError(t, err)
	return results
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), WorkbookFile)
	require.NoError(t, WriteWorkbook(path, timeline.Default(), 2018, computed(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{MilestoneSheet, PrePostSheet, IndexSheet}, f.GetSheetList())

	name, err := f.GetCellValue(MilestoneSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "GDPR", name)
	date, err := f.GetCellValue(MilestoneSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2018-05-25", date)

	rows, err := f.GetRows(PrePostSheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Indicator", rows[0][0])
	assert.Equal(t, "Mean before 2018 (%)", rows[0][2])
	// Germany internet usage, two price countries, three GERD countries.
	assert.Len(t, rows, 1+1+2+3)

	header, err := f.GetRows(IndexSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Indicator", "Country", "2015", "2016", "2017", "2018", "2019", "2020"}, header[0])
}

func TestRecords(t *testing.T) {
	records := Records(computed(t), 2018)
	require.NotEmpty(t, records)

	counts := make(map[string]int)
	for _, r := range records {
		assert.False(t, math.IsNaN(r.Value))
		counts[r.Measure]++
	}
	// Growth series lose their NaN first year; GERD is kept as loaded.
	assert.Equal(t, 3+2+18, counts[MeasureRate])
	assert.Equal(t, 4+4+18, counts[MeasureIndex])
	assert.Equal(t, 1+2+3, counts[MeasurePre])
	assert.Equal(t, 1+2+3, counts[MeasurePost])
}

func TestRecordStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(Record))
	require.NotNil(t, schema)
	for _, col := range []string{"indicator", "country", "period", "measure", "value"} {
		_, ok := schema.Lookup(col)
		assert.True(t, ok, "column %s should exist in schema", col)
	}
}

func TestWriteParquet(t *testing.T) {
	records := Records(computed(t), 2018)
	path := filepath.Join(t.TempDir(), ParquetFile)
	require.NoError(t, WriteParquet(records, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[Record](file)
	defer reader.Close()

	readData := make([]Record, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(records), n)
	assert.Equal(t, records, readData)
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteParquet(nil, filepath.Join(t.TempDir(), "missing", ParquetFile))
	assert.Error(t, err)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, computed(t), 2018, false))

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "BEFORE 2018")
	assert.Contains(t, out, "Germany")
	assert.Contains(t, out, "Switzerland")
	assert.Contains(t, out, "-1.00 ▼")
	assert.Contains(t, out, "+11.00 ▲")
	assert.NotContains(t, out, "\x1b[")
}
