package sheet

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/config"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
)

// Load builds a sheet from a document by replaying SetFormula for every
// entry in row-major order, so a document containing a cycle or a bad
// formula is rejected exactly as the same edit would be.
func Load(ctx context.Context, doc *config.Document) (*Spreadsheet, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	s, err := New(doc.Rows, doc.Columns)
	if err != nil {
		return nil, err
	}

	replay := config.Document{Rows: doc.Rows, Columns: doc.Columns, Entries: slices.Clone(doc.Entries)}
	replay.SortEntries()
	for _, e := range replay.Entries {
		if err := s.SetFormula(ctx, e.Address, e.Formula); err != nil {
			return nil, fmt.Errorf("load cell %s: %w", e.Address, err)
		}
	}

	ctxlog.FromContext(ctx).Debug("Sheet loaded", "rows", doc.Rows, "columns", doc.Columns, "cells", len(replay.Entries))
	return s, nil
}

// Document exports the sheet. Each entry carries the cell's current value,
// or no value when its evaluation failed.
func (s *Spreadsheet) Document() *config.Document {
	entries := s.Entries()
	doc := &config.Document{Rows: s.rows, Columns: s.cols, Entries: make([]config.Entry, 0, len(entries))}
	for _, v := range entries {
		e := config.Entry{Address: v.Address, Formula: v.Formula}
		if v.Err == nil {
			value := v.Value
			e.Value = &value
		}
		doc.Entries = append(doc.Entries, e)
	}
	return doc
}

// Mismatch is a recorded value that disagrees with the recomputed one.
type Mismatch struct {
	Address  celladdr.Address
	Recorded int
	Actual   int
	Err      error
}

// CheckValues compares the values recorded in doc against the sheet's
// current values. Entries without a recorded value are skipped.
func (s *Spreadsheet) CheckValues(doc *config.Document) []Mismatch {
	var out []Mismatch
	for _, e := range doc.Entries {
		if e.Value == nil {
			continue
		}
		view, err := s.Cell(e.Address)
		if err != nil {
			out = append(out, Mismatch{Address: e.Address, Recorded: *e.Value, Err: err})
			continue
		}
		if view.Err != nil || view.Value != *e.Value {
			out = append(out, Mismatch{Address: e.Address, Recorded: *e.Value, Actual: view.Value, Err: view.Err})
		}
	}
	return out
}
