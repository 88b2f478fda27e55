// Package dataset loads delimited statistical tables and turns them into
// series observations.
//
// Two input shapes are supported. Long tables carry one observation per row
// with named entity, period and value columns (Eurostat and UN exports).
// Wide tables carry one entity per row and one column per year (OECD
// exports); ReshapeWide converts those to long observations.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"regimpact/internal/series"
)

// ErrColumnNotFound is returned when a referenced column is not in the header.
var ErrColumnNotFound = errors.New("column not found")

// Table is one loaded dataset: a header row and string cells.
// Tables are never mutated after loading; Filter returns a new Table.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a table from a header and rows.
func NewTable(name string, header []string, rows [][]string) *Table {
	t := &Table{Name: name, Header: header, Rows: rows}
	t.index = make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

// LoadCSV reads a CSV file with a header row.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	t, err := ReadCSV(file, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads CSV content with a header row from r.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", name)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return NewTable(name, header, records[1:]), nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return -1, fmt.Errorf("%s: %q: %w", t.Name, name, ErrColumnNotFound)
	}
	return i, nil
}

// Row returns a view over the i-th data row.
func (t *Table) Row(i int) Row {
	return Row{table: t, cells: t.Rows[i]}
}

// Filter returns a table holding only the rows for which keep is true.
func (t *Table) Filter(keep Predicate) *Table {
	if keep == nil {
		return t
	}
	var rows [][]string
	for i := range t.Rows {
		if keep(t.Row(i)) {
			rows = append(rows, t.Rows[i])
		}
	}
	return NewTable(t.Name, t.Header, rows)
}

// Unique returns the distinct values of a column in order of first appearance.
func (t *Table) Unique(column string) ([]string, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var values []string
	for _, row := range t.Rows {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values, nil
}

// Observations extracts long-format observations. Rows whose period does not
// coerce to an integer are dropped; values that do not coerce become NaN.
func (t *Table) Observations(entityCol, periodCol, valueCol string) ([]series.Observation, error) {
	for _, name := range []string{entityCol, periodCol, valueCol} {
		if _, err := t.Column(name); err != nil {
			return nil, err
		}
	}

	obs := make([]series.Observation, 0, len(t.Rows))
	for i := range t.Rows {
		row := t.Row(i)
		period, ok := row.Int(periodCol)
		if !ok {
			continue
		}
		value, ok := row.Float(valueCol)
		if !ok {
			value = math.NaN()
		}
		obs = append(obs, series.Observation{
			Entity: row.Get(entityCol),
			Period: period,
			Value:  value,
		})
	}
	return obs, nil
}

// Row is a read-only view of one table row.
type Row struct {
	table *Table
	cells []string
}

// Get returns the trimmed cell value, or "" when the column is absent.
func (r Row) Get(column string) string {
	i, ok := r.table.index[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// Float coerces the cell to a float. Missing markers and NaN report false.
func (r Row) Float(column string) (float64, bool) {
	return ParseFloat(r.Get(column))
}

// Int coerces the cell to an integer, accepting integral floats like "2018.0".
func (r Row) Int(column string) (int, bool) {
	return ParseInt(r.Get(column))
}

var missingMarkers = map[string]bool{
	"":    true,
	"NA":  true,
	"N/A": true,
	"NaN": true,
	"nan": true,
	":":   true,
	"..":  true,
	"-":   true,
}

// ParseFloat is the best-effort numeric coercion used for every value cell.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if missingMarkers[s] {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseInt coerces a period label to an integer year.
func ParseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	v, ok := ParseFloat(s)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}
