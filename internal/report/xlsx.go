package report

import (
	"fmt"
	"io"

	"github.com/alexshd/telescope"
	"github.com/xuri/excelize/v2"
)

const (
	ParametersSheet = "Parameters"
	SummarySheet    = "Summary"
	PointsSheet     = "Points"
)

// WriteXLSX writes a report as a single Parameters sheet with one row per
// quantity. Values are stored unformatted; unavailable ones are left blank.
func WriteXLSX(w io.Writer, r telescope.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ParametersSheet); err != nil {
		return err
	}

	rows := [][]any{{"Section", "Key", "Label", "Value"}}
	for i, section := range r.Sections {
		for _, row := range section {
			for _, q := range []telescope.Quantity{row.Left, row.Right} {
				var v any
				if q.OK {
					v = q.Value
				}
				rows = append(rows, []any{i + 1, q.Key, q.Label, v})
			}
		}
	}
	rows = append(rows, []any{nil, "matched", "matched", r.Matched})

	if err := writeRows(f, ParametersSheet, rows); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

// WriteScanXLSX writes scan results: a Summary sheet with solved/failed
// counts and ratios, and a Points sheet with one row per grid input.
func WriteScanXLSX(w io.Writer, param telescope.ScanParam, points []telescope.ScanPoint) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}

	ok, ng := telescope.Summarize(points)
	total := ok + ng
	ratio := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total)
	}
	summary := [][]any{
		{"Type", "Count", "Ratio"},
		{"OK", ok, ratio(ok)},
		{"NG", ng, ratio(ng)},
		{"ALL", total, 1.0},
	}
	if err := writeRows(f, SummarySheet, summary); err != nil {
		return err
	}

	if _, err := f.NewSheet(PointsSheet); err != nil {
		return err
	}
	cols := ScanColumns(points)
	header := []any{"No", string(param)}
	for _, c := range cols {
		header = append(header, c)
	}
	header = append(header, "error")

	rows := [][]any{header}
	for _, p := range points {
		row := []any{p.Index + 1, p.Input}
		for _, c := range cols {
			if v, ok := p.Values[c]; ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		row = append(row, p.Error)
		rows = append(rows, row)
	}
	if err := writeRows(f, PointsSheet, rows); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("%s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
