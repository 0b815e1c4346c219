package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/sheet"
)

// errorMark is shown in place of the value of a faulted cell.
const errorMark = "#ERR"

// renderValues prints the value grid as an aligned table with column labels
// on top and zero-based row labels on the left. Empty cells are blank.
func renderValues(w io.Writer, s *sheet.Spreadsheet) error {
	grid := s.Snapshot()
	_, cols := s.Dimensions()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := make([]string, 0, cols+1)
	header = append(header, "")
	for col := 0; col < cols; col++ {
		header = append(header, celladdr.ColumnLabel(col))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for row, cells := range grid {
		line := make([]string, 0, cols+1)
		line = append(line, strconv.Itoa(row))
		for _, c := range cells {
			line = append(line, displayValue(c))
		}
		fmt.Fprintln(tw, strings.Join(line, "\t")+"\t")
	}
	return tw.Flush()
}

// displayValue is the text shown for one cell in the grid.
func displayValue(c sheet.CellView) string {
	switch {
	case c.IsEmpty():
		return ""
	case c.Err != nil:
		return errorMark
	default:
		return strconv.Itoa(c.Value)
	}
}

// describeCell prints one cell for the get command.
func describeCell(w io.Writer, c sheet.CellView) {
	switch {
	case c.IsEmpty():
		fmt.Fprintf(w, "%s is empty\n", c.Address)
	case c.Err != nil:
		fmt.Fprintf(w, "%s = %s -> %s (%v)\n", c.Address, c.Formula, errorMark, c.Err)
	default:
		fmt.Fprintf(w, "%s = %s -> %d\n", c.Address, c.Formula, c.Value)
	}
}
