package dag

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Graph is a collection of nodes and their dependencies. All operations on
// the graph are concurrency-safe.
type Graph[K comparable] struct {
	// mutex protects nodes and order during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[K]*node[K]
	// order lists nodes in insertion order; it drives every traversal.
	order []*node[K]
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using IDs), not by
// direct struct manipulation.
type node[K comparable] struct {
	id K
	// deps holds the nodes this node depends on (predecessors), in the order
	// the edges were added, and depSet indexes it.
	deps   []*node[K]
	depSet map[K]struct{}
	// dependents holds the nodes that depend on this node (successors).
	dependents []*node[K]
}

// ErrCycle is matched by every *CycleError.
var ErrCycle = errors.New("cycle detected")

// CycleError reports that the graph has no topological order. Path is one
// cycle, following dependency edges: Path[i] depends on Path[i+1], and the
// last element repeats the first. Unresolved lists every node that could not
// be ordered, in insertion order.
type CycleError[K comparable] struct {
	Path       []K
	Unresolved []K
}

// Error implements the error interface for CycleError.
func (e *CycleError[K]) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("cycle detected involving %s", strings.Join(parts, " -> "))
}

// Unwrap allows errors.Is(err, ErrCycle).
func (e *CycleError[K]) Unwrap() error {
	return ErrCycle
}
