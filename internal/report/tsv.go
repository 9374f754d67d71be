package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/alexshd/telescope"
)

// ScanColumns returns the sorted union of value keys across points.
func ScanColumns(points []telescope.ScanPoint) []string {
	seen := make(map[string]bool)
	for _, p := range points {
		for k := range p.Values {
			seen[k] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// WriteScanTSV writes one row per scan point: index, swept input, every
// value column and the failure reason (empty when solved).
func WriteScanTSV(w io.Writer, param telescope.ScanParam, points []telescope.ScanPoint) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	cols := ScanColumns(points)
	header := append([]string{"No", string(param)}, cols...)
	header = append(header, "error")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range points {
		row := make([]string, 0, len(header))
		row = append(row, fmt.Sprintf("%d", p.Index+1), fmt.Sprintf("%.*g", precision, p.Input))
		for _, k := range cols {
			v, ok := p.Values[k]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%.*g", precision, v))
		}
		row = append(row, p.Error)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
