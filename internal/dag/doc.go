// Package dag holds a small dependency graph keyed by any comparable ID.
//
// An edge from A to B records that B depends on A. Sort produces an order
// in which every node comes after all of its dependencies (Kahn's algorithm)
// and reports a *CycleError, carrying one concrete cycle, when no such order
// exists. Ties between nodes that become ready together are broken by the
// order in which nodes and edges were added, so the same inputs always give
// the same order.
package dag
