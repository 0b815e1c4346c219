package sheet

import (
	"sync"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/formula"
)

// Cell is one slot of the grid. An unset cell has empty formula text, an
// empty tree and value 0.
type Cell struct {
	formula string
	tree    formula.Tree
	value   int
	// err is the evaluation fault of the last pass, if any. The value of a
	// faulted cell is 0.
	err error
}

// CellView is a read-only copy of a cell for display.
type CellView struct {
	Address celladdr.Address
	Formula string
	Value   int
	Err     error
}

// IsEmpty reports whether the cell has no formula.
func (v CellView) IsEmpty() bool {
	return v.Formula == ""
}

// Spreadsheet is a fixed-size grid of cells. All methods are safe for
// concurrent use; each mutation runs as one critical section over the whole
// grid.
type Spreadsheet struct {
	mu    sync.Mutex
	rows  int
	cols  int
	cells [][]Cell
}
