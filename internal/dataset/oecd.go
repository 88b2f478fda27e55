package dataset

import (
	"sort"
	"strconv"
	"strings"

	"regimpact/internal/series"
)

// ReshapeWide converts a wide table (entity in the first column, one column
// per year) into long observations. Headers that are not integer years are
// dropped, as are cells that fail numeric coercion and years before minYear.
// An empty result is not an error.
func ReshapeWide(t *Table, minYear int) []series.Observation {
	if len(t.Header) < 2 {
		return nil
	}

	var obs []series.Observation
	for col := 1; col < len(t.Header); col++ {
		year, ok := ParseInt(t.Header[col])
		if !ok || year < minYear {
			continue
		}
		for _, row := range t.Rows {
			if col >= len(row) || len(row) == 0 {
				continue
			}
			value, ok := ParseFloat(row[col])
			if !ok {
				continue
			}
			obs = append(obs, series.Observation{
				Entity: strings.TrimSpace(row[0]),
				Period: year,
				Value:  value,
			})
		}
	}
	return obs
}

// FromObservations lays long observations back out as a wide table, one row
// per entity and one column per year. Missing cells are left empty.
func FromObservations(name, entityHeader string, obs []series.Observation) *Table {
	yearSet := make(map[int]bool)
	cells := make(map[string]map[int]string)
	var entities []string

	for _, o := range obs {
		yearSet[o.Period] = true
		if _, ok := cells[o.Entity]; !ok {
			cells[o.Entity] = make(map[int]string)
			entities = append(entities, o.Entity)
		}
		cells[o.Entity][o.Period] = strconv.FormatFloat(o.Value, 'g', -1, 64)
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	header := make([]string, 0, len(years)+1)
	header = append(header, entityHeader)
	for _, y := range years {
		header = append(header, strconv.Itoa(y))
	}

	rows := make([][]string, 0, len(entities))
	for _, e := range entities {
		row := make([]string, 0, len(header))
		row = append(row, e)
		for _, y := range years {
			row = append(row, cells[e][y])
		}
		rows = append(rows, row)
	}
	return NewTable(name, header, rows)
}
