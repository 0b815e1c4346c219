package dag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGraph builds a string-keyed graph from node IDs and "from->to" edges.
func newGraph(t *testing.T, nodes []string, edges ...[2]string) *Graph[string] {
	t.Helper()
	g := New[string]()
	for _, id := range nodes {
		g.AddNode(id)
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func TestNew(t *testing.T) {
	g := New[string]()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Zero(t, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New[string]()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.depSet)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)
	assert.Equal(t, 1, g.Len())

	g.AddNode("b")
	assert.Equal(t, 2, g.Len())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b"}, [2]string{"a", "b"}) // b depends on a

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, dependents)
	})

	t.Run("duplicate edge is ignored", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b"}, [2]string{"a", "b"}, [2]string{"a", "b"})

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, dependents)
	})

	t.Run("self edge is accepted", func(t *testing.T) {
		g := newGraph(t, []string{"a"})
		require.NoError(t, g.AddEdge("a", "a"))
		assert.Error(t, g.DetectCycles())
	})

	t.Run("error cases", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b"})

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		_, err = g.Dependencies("dne")
		assert.ErrorContains(t, err, "node not found")

		_, err = g.Dependents("dne")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New[string]()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "c"})
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "c", "d"},
			[2]string{"a", "b"},
			[2]string{"b", "c"},
			[2]string{"a", "c"}, // Transitive edge
			[2]string{"c", "d"},
		)
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b"}, [2]string{"a", "b"}, [2]string{"b", "a"})

		err := g.DetectCycles()
		require.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
		assert.ErrorIs(t, err, ErrCycle)

		var cycleErr *CycleError[string]
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"a", "b", "a"}, cycleErr.Path)
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "c", "d"},
			[2]string{"a", "b"},
			[2]string{"b", "c"},
			[2]string{"c", "d"},
			[2]string{"d", "a"}, // Cycle back to the start
		)

		err := g.DetectCycles()
		require.Error(t, err)
		assert.EqualError(t, err, "cycle detected involving a -> d -> c -> b -> a")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "x", "y", "z"},
			// Component 1 (valid)
			[2]string{"a", "b"},
			// Component 2 (has a cycle)
			[2]string{"x", "y"},
			[2]string{"y", "z"},
			[2]string{"z", "y"},
		)

		var cycleErr *CycleError[string]
		require.ErrorAs(t, g.DetectCycles(), &cycleErr)
		assert.Equal(t, []string{"y", "z", "y"}, cycleErr.Path)
	})
}

func TestSort(t *testing.T) {
	t.Run("empty graph sorts to nothing", func(t *testing.T) {
		order, err := New[string]().Sort()
		require.NoError(t, err)
		assert.Empty(t, order)
	})

	t.Run("independent nodes keep insertion order", func(t *testing.T) {
		g := newGraph(t, []string{"z", "y", "x"})

		order, err := g.Sort()
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "y", "x"}, order)
	})

	t.Run("diamond sorts dependencies first", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "c", "d"},
			[2]string{"a", "b"},
			[2]string{"a", "c"},
			[2]string{"b", "d"},
			[2]string{"c", "d"},
		)

		order, err := g.Sort()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, order)
	})

	t.Run("nodes added before their dependencies are moved after them", func(t *testing.T) {
		g := newGraph(t, []string{"total", "price", "qty"},
			[2]string{"price", "total"},
			[2]string{"qty", "total"},
		)

		order, err := g.Sort()
		require.NoError(t, err)
		assert.Equal(t, []string{"price", "qty", "total"}, order)
	})

	t.Run("every edge is respected", func(t *testing.T) {
		edges := [][2]string{
			{"e", "a"}, {"a", "c"}, {"b", "c"}, {"c", "d"}, {"e", "d"}, {"f", "b"},
		}
		g := newGraph(t, []string{"a", "b", "c", "d", "e", "f"}, edges...)

		order, err := g.Sort()
		require.NoError(t, err)
		require.Len(t, order, 6)

		position := make(map[string]int, len(order))
		for i, id := range order {
			position[id] = i
		}
		for _, e := range edges {
			assert.Less(t, position[e[0]], position[e[1]], "%s must come before %s", e[0], e[1])
		}
	})

	t.Run("sort is repeatable", func(t *testing.T) {
		g := newGraph(t, []string{"a", "b", "c"}, [2]string{"c", "a"}, [2]string{"b", "a"})

		first, err := g.Sort()
		require.NoError(t, err)
		second, err := g.Sort()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("cycle reports path and unresolved nodes", func(t *testing.T) {
		g := newGraph(t, []string{"ok", "a", "b", "e"},
			[2]string{"a", "b"},
			[2]string{"b", "a"},
			[2]string{"b", "e"},
		)

		order, err := g.Sort()
		assert.Nil(t, order)
		require.True(t, errors.Is(err, ErrCycle))

		var cycleErr *CycleError[string]
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"a", "b", "a"}, cycleErr.Path)
		assert.Equal(t, []string{"a", "b", "e"}, cycleErr.Unresolved)
	})

	t.Run("self loop is a cycle", func(t *testing.T) {
		g := newGraph(t, []string{"a"}, [2]string{"a", "a"})

		_, err := g.Sort()
		var cycleErr *CycleError[string]
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"a", "a"}, cycleErr.Path)
	})

	t.Run("integer keys", func(t *testing.T) {
		g := New[int]()
		for i := 3; i >= 0; i-- {
			g.AddNode(i)
		}
		require.NoError(t, g.AddEdge(0, 3))

		order, err := g.Sort()
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1, 0, 3}, order)
	})
}
