// Package xlsx stores sheets as Excel workbooks. The "Formulas" worksheet
// holds the same labelled grid as the TSV format, with every formula kept as
// plain text; the "Values" worksheet holds the evaluated values in the same
// layout, for reading the workbook in a spreadsheet program.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/config"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/xuri/excelize/v2"
)

const (
	// FormulaSheet is the worksheet holding formula text.
	FormulaSheet = "Formulas"
	// ValueSheet is the worksheet holding evaluated values.
	ValueSheet = "Values"
)

// Codec implements config.Codec for Excel workbooks.
type Codec struct{}

var _ config.Codec = Codec{}

// Load reads the formula grid of a workbook. When a value worksheet is
// present, its numbers become the entries' recorded values.
func (Codec) Load(ctx context.Context, r io.Reader) (*config.Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(FormulaSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s worksheet: %w", FormulaSheet, err)
	}
	doc, err := config.FromGrid(rows)
	if err != nil {
		return nil, fmt.Errorf("read %s worksheet: %w", FormulaSheet, err)
	}

	recorded := 0
	if idx, err := f.GetSheetIndex(ValueSheet); err == nil && idx >= 0 {
		values, err := f.GetRows(ValueSheet)
		if err != nil {
			return nil, fmt.Errorf("read %s worksheet: %w", ValueSheet, err)
		}
		recorded = attachValues(doc, values)
	}

	ctxlog.FromContext(ctx).Debug("Workbook decoded", "rows", doc.Rows, "columns", doc.Columns, "cells", len(doc.Entries), "recordedValues", recorded)
	return doc, nil
}

// attachValues copies integer cells of the value grid onto matching entries
// and returns how many were found.
func attachValues(doc *config.Document, values [][]string) int {
	found := 0
	for i := range doc.Entries {
		e := &doc.Entries[i]
		row, col := e.Address.Row+1, e.Address.Col+1
		if row >= len(values) || col >= len(values[row]) {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(values[row][col]))
		if err != nil {
			continue
		}
		e.Value = &v
		found++
	}
	return found
}

// Save writes doc as a workbook with a formula and a value worksheet.
func (Codec) Save(ctx context.Context, w io.Writer, doc *config.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", FormulaSheet); err != nil {
		return fmt.Errorf("create %s worksheet: %w", FormulaSheet, err)
	}
	if _, err := f.NewSheet(ValueSheet); err != nil {
		return fmt.Errorf("create %s worksheet: %w", ValueSheet, err)
	}

	grid := config.ToGrid(doc)
	if err := writeRows(f, FormulaSheet, grid, func(text string, _ int, _ int) any { return text }); err != nil {
		return err
	}

	values := make(map[[2]int]int, len(doc.Entries))
	for _, e := range doc.Entries {
		if e.Value != nil {
			values[[2]int{e.Address.Row + 1, e.Address.Col + 1}] = *e.Value
		}
	}
	err := writeRows(f, ValueSheet, grid, func(text string, row, col int) any {
		if row == 0 || col == 0 {
			return text
		}
		if v, ok := values[[2]int{row, col}]; ok {
			return v
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Workbook encoded", "rows", doc.Rows, "columns", doc.Columns)
	return nil
}

// writeRows writes the labelled grid to a worksheet, mapping each grid cell
// through cellValue. The grid's first row lands on worksheet row 1.
func writeRows(f *excelize.File, sheet string, grid [][]string, cellValue func(text string, row, col int) any) error {
	for row, record := range grid {
		line := make([]any, len(record))
		for col, text := range record {
			line[col] = cellValue(text, row, col)
		}

		start, err := excelize.CoordinatesToCellName(1, row+1)
		if err != nil {
			return fmt.Errorf("write %s worksheet: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, start, &line); err != nil {
			return fmt.Errorf("write %s worksheet row %d: %w", sheet, row+1, err)
		}
	}
	return nil
}
