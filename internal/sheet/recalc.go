package sheet

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/dag"
	"github.com/specialistvlad/gridcalc/internal/formula"
)

// order rebuilds the dependency graph of every cell from its current tree
// and sorts it. Nodes are added row-major so ties resolve in grid order. The
// caller must hold the mutex.
func (s *Spreadsheet) order(ctx context.Context) ([]celladdr.Address, error) {
	graph := dag.New[celladdr.Address]()
	for row := range s.cells {
		for col := range s.cells[row] {
			graph.AddNode(celladdr.New(row, col))
		}
	}

	edges := 0
	for row := range s.cells {
		for col := range s.cells[row] {
			addr := celladdr.New(row, col)
			for _, dep := range s.cells[row][col].tree.Dependencies() {
				if err := graph.AddEdge(dep, addr); err != nil {
					return nil, fmt.Errorf("link %s to %s: %w", dep, addr, err)
				}
				edges++
			}
		}
	}

	order, err := graph.Sort()
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Dependency order computed", "cells", len(order), "references", edges)
	return order, nil
}

// evaluate stores the value of every cell, visiting them in the given
// topological order so that each reference reads an already updated cell.
// The caller must hold the mutex.
func (s *Spreadsheet) evaluate(ctx context.Context, order []celladdr.Address) {
	logger := ctxlog.FromContext(ctx)

	stored := formula.ResolverFunc(func(_ context.Context, ref celladdr.Address) (int, error) {
		c := &s.cells[ref.Row][ref.Col]
		if c.err != nil {
			return 0, fmt.Errorf("%s: %w", ref, c.err)
		}
		return c.value, nil
	})

	faults := 0
	for _, addr := range order {
		cell := &s.cells[addr.Row][addr.Col]
		value, err := cell.tree.Eval(ctx, stored)
		if err != nil {
			faults++
			value = 0
			logger.Debug("Cell evaluation failed", "cell", addr.String(), "error", err)
		}
		cell.value, cell.err = value, err
	}
	logger.Debug("Sheet recalculated", "cells", len(order), "faults", faults)
}

type result struct {
	value int
	err   error
}

// evaluator resolves references by evaluating the referenced cell's tree on
// demand. Results are memoised for the duration of one call.
type evaluator struct {
	sheet  *Spreadsheet
	memo   map[celladdr.Address]result
	active map[celladdr.Address]bool
}

// Resolve implements formula.Resolver.
func (e *evaluator) Resolve(ctx context.Context, addr celladdr.Address) (int, error) {
	v, err := e.value(ctx, addr)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", label(addr), err)
	}
	return v, nil
}

func (e *evaluator) value(ctx context.Context, addr celladdr.Address) (int, error) {
	if r, ok := e.memo[addr]; ok {
		return r.value, r.err
	}
	if !e.sheet.Contains(addr) {
		return 0, ErrOutOfRange
	}
	if e.active[addr] {
		return 0, fmt.Errorf("%w: %s is still being evaluated", ErrCycleDetected, label(addr))
	}

	e.active[addr] = true
	v, err := e.sheet.cells[addr.Row][addr.Col].tree.Eval(ctx, e)
	delete(e.active, addr)

	if err != nil {
		v = 0
	}
	e.memo[addr] = result{value: v, err: err}
	return v, err
}
