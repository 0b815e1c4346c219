// Package tsv reads and writes sheets as tab-separated text: a header row
// of column labels followed by one row per sheet row, each starting with the
// row label and holding the raw formula text of every cell.
package tsv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/config"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
)

// Codec implements config.Codec for the tab-separated format.
type Codec struct{}

var _ config.Codec = Codec{}

// Load reads a tab-separated sheet.
func (Codec) Load(ctx context.Context, r io.Reader) (*config.Document, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var grid [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tsv: %w", err)
		}
		grid = append(grid, record)
	}

	doc, err := config.FromGrid(grid)
	if err != nil {
		return nil, fmt.Errorf("read tsv: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("TSV sheet decoded", "rows", doc.Rows, "columns", doc.Columns, "cells", len(doc.Entries))
	return doc, nil
}

// Save writes doc as tab-separated text. Tabs and line breaks inside a
// formula are replaced by spaces, which leaves its meaning unchanged.
func (Codec) Save(ctx context.Context, w io.Writer, doc *config.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	for _, record := range config.ToGrid(doc) {
		for i, field := range record {
			record[i] = flatten.Replace(field)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write tsv: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("write tsv: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("TSV sheet encoded", "rows", doc.Rows, "columns", doc.Columns)
	return nil
}

var flatten = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")
