package report

import (
	"fmt"
	"math"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ParquetFile is the long-format metrics export file name.
const ParquetFile = "regulation_metrics.parquet"

// Measures written to the parquet export.
const (
	MeasureRate  = "rate"
	MeasureIndex = "index"
	MeasurePre   = "pre_mean"
	MeasurePost  = "post_mean"
)

// Record is one derived value in long format.
type Record struct {
	Indicator string `parquet:"indicator,snappy"`
	Country   string `parquet:"country,snappy"`
	// Period is the year, or the cutoff year for pre/post means.
	Period  int32   `parquet:"period,snappy"`
	Measure string  `parquet:"measure,snappy"`
	Value   float64 `parquet:"value,snappy"`
}

// Records flattens metrics into long rows. Missing values are left out.
func Records(results []Metrics, cutoff int) []Record {
	var out []Record
	add := func(ind, country string, period int, measure string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
		out = append(out, Record{Indicator: ind, Country: country, Period: int32(period), Measure: measure, Value: v})
	}
	for _, m := range results {
		key := m.Indicator.Key
		for _, s := range m.Rates {
			for _, p := range s.Points {
				add(key, s.Entity, p.Period, MeasureRate, p.Value)
			}
		}
		for _, s := range m.Index {
			for _, p := range s.Points {
				add(key, s.Entity, p.Period, MeasureIndex, p.Value)
			}
		}
		for _, c := range m.Changes {
			add(key, c.Entity, cutoff, MeasurePre, c.Pre)
			add(key, c.Entity, cutoff, MeasurePost, c.Post)
		}
	}
	return out
}

// WriteParquet writes records to a parquet file at path.
func WriteParquet(records []Record, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[Record](file)
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return file.Close()
}
