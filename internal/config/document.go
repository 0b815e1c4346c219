package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
)

// ErrInvalidDocument is matched by every validation failure of a Document.
var ErrInvalidDocument = errors.New("invalid sheet document")

// Document is the unified, format-agnostic representation of a saved sheet:
// its fixed dimensions and the raw formula text of every non-empty cell.
type Document struct {
	Rows    int
	Columns int
	Entries []Entry
}

// Entry is one non-empty cell.
type Entry struct {
	Address celladdr.Address
	Formula string
	// Value is the evaluated value recorded alongside the formula, when the
	// source format stores one. Loaders never trust it; it is only compared
	// against the recomputed value.
	Value *int
}

// Validate checks the dimensions and that every entry is inside the grid and
// appears only once.
func (d *Document) Validate() error {
	if d.Rows <= 0 || d.Columns <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidDocument, d.Rows, d.Columns)
	}

	seen := make(map[celladdr.Address]struct{}, len(d.Entries))
	for _, e := range d.Entries {
		if !e.Address.IsValid() || e.Address.Row >= d.Rows || e.Address.Col >= d.Columns {
			return fmt.Errorf("%w: cell (%d,%d) is outside the %dx%d sheet",
				ErrInvalidDocument, e.Address.Row, e.Address.Col, d.Rows, d.Columns)
		}
		if _, dup := seen[e.Address]; dup {
			return fmt.Errorf("%w: cell %s is defined more than once", ErrInvalidDocument, e.Address)
		}
		seen[e.Address] = struct{}{}
	}
	return nil
}

// SortEntries orders the entries row-major, the order in which they are
// replayed on load.
func (d *Document) SortEntries() {
	slices.SortStableFunc(d.Entries, func(a, b Entry) int {
		return celladdr.Compare(a.Address, b.Address)
	})
}

// Lookup returns the entry for addr, if any.
func (d *Document) Lookup(addr celladdr.Address) (Entry, bool) {
	for _, e := range d.Entries {
		if e.Address == addr {
			return e, true
		}
	}
	return Entry{}, false
}
