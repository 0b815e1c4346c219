package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
)

// ErrMalformedGrid is returned by FromGrid for a table that does not follow
// the labelled layout.
var ErrMalformedGrid = errors.New("malformed sheet grid")

// ToGrid lays a document out as a labelled table: the first row holds an
// empty corner followed by the column labels, and each following row starts
// with its zero-based row label followed by one formula per column. Cells
// without an entry are empty strings.
func ToGrid(doc *Document) [][]string {
	grid := make([][]string, doc.Rows+1)

	header := make([]string, doc.Columns+1)
	for col := 0; col < doc.Columns; col++ {
		header[col+1] = celladdr.ColumnLabel(col)
	}
	grid[0] = header

	for row := 0; row < doc.Rows; row++ {
		line := make([]string, doc.Columns+1)
		line[0] = strconv.Itoa(row)
		grid[row+1] = line
	}

	for _, e := range doc.Entries {
		if e.Address.Row < doc.Rows && e.Address.Col < doc.Columns && e.Address.IsValid() {
			grid[e.Address.Row+1][e.Address.Col+1] = e.Formula
		}
	}
	return grid
}

// FromGrid reads a table in the ToGrid layout. The header fixes the column
// count; data rows may be shorter than the header (missing trailing cells
// are empty) but not longer. Formulas are kept verbatim except that blank
// cells produce no entry.
func FromGrid(grid [][]string) (*Document, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedGrid)
	}

	header := grid[0]
	columns := len(header) - 1
	for col := 0; col < columns; col++ {
		if got, want := strings.TrimSpace(header[col+1]), celladdr.ColumnLabel(col); got != want {
			return nil, fmt.Errorf("%w: header column %d is %q, expected %q", ErrMalformedGrid, col+1, got, want)
		}
	}

	doc := &Document{Rows: len(grid) - 1, Columns: columns}
	for row, line := range grid[1:] {
		if len(line) == 0 {
			return nil, fmt.Errorf("%w: row %d has no label", ErrMalformedGrid, row)
		}
		if got := strings.TrimSpace(line[0]); got != strconv.Itoa(row) {
			return nil, fmt.Errorf("%w: row %d is labelled %q", ErrMalformedGrid, row, got)
		}
		if len(line)-1 > columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d columns", ErrMalformedGrid, row, len(line)-1, columns)
		}
		for col, text := range line[1:] {
			if strings.TrimSpace(text) == "" {
				continue
			}
			doc.Entries = append(doc.Entries, Entry{
				Address: celladdr.New(row, col),
				Formula: text,
			})
		}
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}
