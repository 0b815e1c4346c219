package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/dag"
	"github.com/specialistvlad/gridcalc/internal/formula"
)

// New creates a rows x cols sheet of empty cells. The size is fixed for the
// lifetime of the sheet.
func New(rows, cols int) (*Spreadsheet, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	cells := make([][]Cell, rows)
	for row := range cells {
		cells[row] = make([]Cell, cols)
	}
	return &Spreadsheet{rows: rows, cols: cols, cells: cells}, nil
}

// Dimensions returns the number of rows and columns.
func (s *Spreadsheet) Dimensions() (rows, cols int) {
	return s.rows, s.cols
}

// Contains reports whether addr lies inside the grid.
func (s *Spreadsheet) Contains(addr celladdr.Address) bool {
	return addr.IsValid() && addr.Row < s.rows && addr.Col < s.cols
}

// Cell returns the formula text and current value of one cell.
func (s *Spreadsheet) Cell(addr celladdr.Address) (CellView, error) {
	if !s.Contains(addr) {
		return CellView{}, fmt.Errorf("cell %s: %w", label(addr), ErrOutOfRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(addr), nil
}

// Tree returns the compiled expression tree of one cell.
func (s *Spreadsheet) Tree(addr celladdr.Address) (formula.Tree, error) {
	if !s.Contains(addr) {
		return formula.Tree{}, fmt.Errorf("cell %s: %w", label(addr), ErrOutOfRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells[addr.Row][addr.Col].tree, nil
}

// SetFormula compiles text and installs it into the cell at addr, then
// recalculates the whole sheet.
//
// A *formula.ParseError is returned for text that does not compile or that
// references a cell outside the grid. A *CycleError is returned when the new
// formula would close a dependency cycle; the cell is then restored to its
// previous formula. In both cases the sheet is left exactly as it was.
// Blank text clears the cell.
//
// Arithmetic faults do not reject the change: the faulting cell, and every
// cell that reads it, records the error and the value 0.
func (s *Spreadsheet) SetFormula(ctx context.Context, addr celladdr.Address, text string) error {
	logger := ctxlog.FromContext(ctx).With("cell", label(addr))

	if !s.Contains(addr) {
		return fmt.Errorf("set %s: %w", label(addr), ErrOutOfRange)
	}

	tree, err := formula.Compile(text)
	if err == nil {
		err = s.checkReferences(text, tree.Root())
	}
	if err != nil {
		logger.Warn("Formula rejected", "formula", text, "error", err)
		return err
	}
	logger.Debug("Formula compiled", "formula", text, "tree", tree.String())

	s.mu.Lock()
	defer s.mu.Unlock()

	cell := &s.cells[addr.Row][addr.Col]
	previous := *cell
	cell.formula = strings.TrimSpace(text)
	cell.tree = tree

	order, err := s.order(ctx)
	if err != nil {
		*cell = previous

		var graphErr *dag.CycleError[celladdr.Address]
		if errors.As(err, &graphErr) {
			err = &CycleError{Target: addr, Cells: graphErr.Path, Err: err}
		}
		logger.Warn("Formula rejected", "formula", text, "error", err)
		return err
	}

	s.evaluate(ctx, order)
	return nil
}

// Recalculate re-evaluates every cell in dependency order without changing
// any formula. Repeated calls produce identical values.
func (s *Spreadsheet) Recalculate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.order(ctx)
	if err != nil {
		return err
	}
	s.evaluate(ctx, order)
	return nil
}

// EvaluateCell computes the value of one cell from scratch by walking its
// tree and, recursively, the trees of every cell it reads. It does not use or
// update the stored values.
func (s *Spreadsheet) EvaluateCell(ctx context.Context, addr celladdr.Address) (int, error) {
	if !s.Contains(addr) {
		return 0, fmt.Errorf("cell %s: %w", label(addr), ErrOutOfRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := &evaluator{
		sheet:  s,
		memo:   make(map[celladdr.Address]result),
		active: make(map[celladdr.Address]bool),
	}
	return e.value(ctx, addr)
}

// Entries returns every non-empty cell in row-major order.
func (s *Spreadsheet) Entries() []CellView {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []CellView
	for row := range s.cells {
		for col := range s.cells[row] {
			if s.cells[row][col].formula != "" {
				out = append(out, s.view(celladdr.New(row, col)))
			}
		}
	}
	return out
}

// Snapshot returns a copy of the whole grid, indexed [row][col].
func (s *Spreadsheet) Snapshot() [][]CellView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([][]CellView, s.rows)
	for row := range out {
		out[row] = make([]CellView, s.cols)
		for col := range out[row] {
			out[row][col] = s.view(celladdr.New(row, col))
		}
	}
	return out
}

// view copies one cell. The caller must hold the mutex.
func (s *Spreadsheet) view(addr celladdr.Address) CellView {
	c := &s.cells[addr.Row][addr.Col]
	return CellView{Address: addr, Formula: c.formula, Value: c.value, Err: c.err}
}

// checkReferences rejects a tree that reads a cell outside the grid.
func (s *Spreadsheet) checkReferences(text string, n *formula.Node) error {
	if n == nil {
		return nil
	}
	if n.Token.Kind == formula.KindCellRef && !s.Contains(n.Token.Ref) {
		return &formula.ParseError{
			Formula: text,
			Pos:     n.Token.Pos,
			Msg:     fmt.Sprintf("reference %s is outside the %dx%d sheet", n.Token.Ref, s.rows, s.cols),
			Err:     ErrOutOfRange,
		}
	}
	if err := s.checkReferences(text, n.Left); err != nil {
		return err
	}
	return s.checkReferences(text, n.Right)
}
