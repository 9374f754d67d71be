// Package report formats telescope reports and scan results for people and
// spreadsheets.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexshd/telescope"
)

const (
	columnWidth = 19
	precision   = 5
)

var rule = strings.Repeat("-", columnWidth*4)

// FormatValue renders a quantity with five significant digits, or "n/a"
// when it is unavailable.
func FormatValue(q telescope.Quantity) string {
	if !q.OK {
		return "n/a"
	}
	return fmt.Sprintf("%.*g", precision, q.Value)
}

// WriteText writes the two-column parameter table: physical quantities on
// the left, normalized counterparts on the right, sections separated by rules.
func WriteText(w io.Writer, r telescope.Report) error {
	var b strings.Builder

	b.WriteString(rule + "\n")
	for _, section := range r.Sections {
		for _, row := range section {
			fmt.Fprintf(&b, "%-*s%-*s| %-*s%-*s\n",
				columnWidth, row.Left.Label, columnWidth, FormatValue(row.Left),
				columnWidth, row.Right.Label, columnWidth, FormatValue(row.Right))
		}
		b.WriteString(rule + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
