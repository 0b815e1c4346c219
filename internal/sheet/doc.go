// Package sheet implements the spreadsheet: a fixed-size grid of cells,
// each holding formula text and its compiled expression tree, and the
// recalculation engine that keeps every cell's value consistent.
//
// SetFormula is the only mutation. It compiles the text, installs the new
// tree, rebuilds the dependency graph of the whole sheet and orders it
// topologically. A change that would close a cycle is rolled back and
// reported as a *CycleError; otherwise every cell is re-evaluated in
// dependency order.
package sheet
