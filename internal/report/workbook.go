package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/xuri/excelize/v2"

	"regimpact/internal/timeline"
)

// Workbook sheet names.
const (
	MilestoneSheet = "Milestones"
	PrePostSheet   = "PrePost"
	IndexSheet     = "Cumulative_Index"
)

// WorkbookFile is the metrics workbook file name.
const WorkbookFile = "regulation_metrics.xlsx"

// WriteWorkbook saves the timeline, the pre/post comparison and the
// cumulative indices as a workbook at path.
func WriteWorkbook(path string, tl timeline.Timeline, cutoff int, results []Metrics) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", MilestoneSheet); err != nil {
		return err
	}
	if err := writeMilestones(f, tl); err != nil {
		return err
	}

	if _, err := f.NewSheet(PrePostSheet); err != nil {
		return err
	}
	if err := writePrePost(f, cutoff, results); err != nil {
		return err
	}

	if _, err := f.NewSheet(IndexSheet); err != nil {
		return err
	}
	if err := writeIndex(f, results); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// writeRow fills one row from column A.
func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader writes the header row and sizes its columns.
func writeHeader(f *excelize.File, sheet string, width float64, headers ...string) error {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values...); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, width)
}

// cellValue leaves missing values as empty cells.
func cellValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return math.Round(v*100) / 100
}

func writeMilestones(f *excelize.File, tl timeline.Timeline) error {
	if err := writeHeader(f, MilestoneSheet, 20, "Regulation", "Date", "Axis Position"); err != nil {
		return err
	}
	row := 2
	for _, m := range tl.Milestones() {
		if err := writeRow(f, MilestoneSheet, row, m.Name, m.Date.Format("2006-01-02"), cellValue(m.X())); err != nil {
			return err
		}
		row++
	}
	iv := tl.Interval()
	start, end := iv.Span()
	if err := writeRow(f, MilestoneSheet, row+1, iv.Name, iv.Start.Format("2006-01-02"), cellValue(start)); err != nil {
		return err
	}
	return writeRow(f, MilestoneSheet, row+2, "", iv.End.Format("2006-01-02"), cellValue(end))
}

func writePrePost(f *excelize.File, cutoff int, results []Metrics) error {
	err := writeHeader(f, PrePostSheet, 22, "Indicator", "Country",
		fmt.Sprintf("Mean before %d (%%)", cutoff), fmt.Sprintf("Mean from %d (%%)", cutoff), "Change (pp)")
	if err != nil {
		return err
	}
	row := 2
	for _, m := range results {
		for _, c := range m.Changes {
			if err := writeRow(f, PrePostSheet, row, m.Indicator.Name, c.Entity, cellValue(c.Pre), cellValue(c.Post), cellValue(c.Delta())); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

// writeIndex lays the cumulative indices out with one column per year.
func writeIndex(f *excelize.File, results []Metrics) error {
	yearSet := make(map[int]bool)
	for _, m := range results {
		for _, s := range m.Index {
			for _, p := range s.Points {
				yearSet[p.Period] = true
			}
		}
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	headers := []string{"Indicator", "Country"}
	for _, y := range years {
		headers = append(headers, fmt.Sprint(y))
	}
	if err := writeHeader(f, IndexSheet, 14, headers...); err != nil {
		return err
	}
	if err := f.SetColWidth(IndexSheet, "A", "A", 36); err != nil {
		return err
	}

	row := 2
	for _, m := range results {
		for _, s := range m.Index {
			values := []any{m.Indicator.Name, s.Entity}
			for _, y := range years {
				v, ok := s.Lookup(y)
				if !ok {
					values = append(values, "")
					continue
				}
				values = append(values, cellValue(v))
			}
			if err := writeRow(f, IndexSheet, row, values...); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}
