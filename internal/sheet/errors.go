package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/celladdr"
)

var (
	// ErrOutOfRange marks a target or referenced cell outside the grid.
	ErrOutOfRange = errors.New("cell out of range")
	// ErrCycleDetected is matched by every *CycleError.
	ErrCycleDetected = errors.New("circular reference")
	// ErrInvalidDimensions is returned by New for a non-positive size.
	ErrInvalidDimensions = errors.New("invalid sheet dimensions")
)

// CycleError reports a formula change that was rejected because it would
// make a cell depend on itself. Cells is the loop, starting and ending at the
// same cell, where each cell reads the next one.
type CycleError struct {
	Target celladdr.Address
	Cells  []celladdr.Address
	Err    error
}

// Error implements the error interface for CycleError.
func (e *CycleError) Error() string {
	labels := make([]string, len(e.Cells))
	for i, addr := range e.Cells {
		labels[i] = addr.String()
	}
	return fmt.Sprintf("circular reference: setting %s would create the cycle %s",
		e.Target, strings.Join(labels, " -> "))
}

// Unwrap exposes ErrCycleDetected and the graph error.
func (e *CycleError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCycleDetected}
	}
	return []error{ErrCycleDetected, e.Err}
}

// label renders addr for error messages, including addresses that have no
// canonical label.
func label(addr celladdr.Address) string {
	if addr.IsValid() {
		return addr.String()
	}
	return fmt.Sprintf("(%d,%d)", addr.Row, addr.Col)
}
