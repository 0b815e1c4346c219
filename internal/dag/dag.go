package dag

import (
	"fmt"
)

// New creates and returns an initialized, empty Graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		nodes: make(map[K]*node[K]),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph[K]) AddNode(id K) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	n := &node[K]{
		id:     id,
		depSet: make(map[K]struct{}),
	}
	g.nodes[id] = n
	g.order = append(g.order, n)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. Adding the same
// edge twice has no effect. A self-edge is accepted and makes the graph
// cyclic. An error is returned if either node does not exist.
func (g *Graph[K]) AddEdge(fromID, toID K) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %v", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %v", toID)
	}

	if _, dup := toNode.depSet[fromID]; dup {
		return nil
	}
	toNode.depSet[fromID] = struct{}{}
	toNode.deps = append(toNode.deps, fromNode)
	fromNode.dependents = append(fromNode.dependents, toNode)

	return nil
}

// Len returns the number of nodes in the graph.
func (g *Graph[K]) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.order)
}

// Dependencies returns the IDs of the nodes the given node depends on, in the
// order the edges were added.
func (g *Graph[K]) Dependencies(id K) ([]K, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %v", id)
	}
	return ids(n.deps), nil
}

// Dependents returns the IDs of the nodes that depend on the given node, in
// the order the edges were added.
func (g *Graph[K]) Dependents(id K) ([]K, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %v", id)
	}
	return ids(n.dependents), nil
}

// Sort returns every node ID in an order where each node follows all of its
// dependencies. Nodes with no pending dependencies are emitted first-in
// first-out, seeded in insertion order. If the graph has a cycle, Sort
// returns a *CycleError and no order.
func (g *Graph[K]) Sort() ([]K, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	pending := make(map[*node[K]]int, len(g.order))
	queue := make([]*node[K], 0, len(g.order))
	for _, n := range g.order {
		pending[n] = len(n.deps)
		if len(n.deps) == 0 {
			queue = append(queue, n)
		}
	}

	sorted := make([]K, 0, len(g.order))
	for head := 0; head < len(queue); head++ {
		n := queue[head]
		sorted = append(sorted, n.id)
		for _, dependent := range n.dependents {
			pending[dependent]--
			if pending[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(sorted) == len(g.order) {
		return sorted, nil
	}

	var unresolved []K
	for _, n := range g.order {
		if pending[n] > 0 {
			unresolved = append(unresolved, n.id)
		}
	}
	return nil, &CycleError[K]{Path: g.findCycle(), Unresolved: unresolved}
}

// DetectCycles checks the graph for any cycles. It returns a *CycleError
// describing the first cycle found, or nil.
func (g *Graph[K]) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if path := g.findCycle(); path != nil {
		return &CycleError[K]{Path: path}
	}
	return nil
}

// findCycle runs a depth-first search along dependency edges and returns the
// first cycle it closes, or nil. The caller must hold the mutex.
func (g *Graph[K]) findCycle() []K {
	// visiting: on the current recursion stack. done: fully explored and
	// known not to lead into a cycle.
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*node[K]]int, len(g.order))
	var stack []*node[K]
	var cycle []K

	var visit func(n *node[K]) bool
	visit = func(n *node[K]) bool {
		state[n] = visiting
		stack = append(stack, n)

		for _, dep := range n.deps {
			switch state[dep] {
			case visiting:
				start := len(stack) - 1
				for stack[start] != dep {
					start--
				}
				cycle = append(ids(stack[start:]), dep.id)
				return true
			case unvisited:
				if visit(dep) {
					return true
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[n] = done
		return false
	}

	for _, n := range g.order {
		if state[n] == unvisited && visit(n) {
			return cycle
		}
	}
	return nil
}
