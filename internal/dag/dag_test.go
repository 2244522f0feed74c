package dag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tables builds a graph over ids where each edge pair is {parent, child}.
func tables(t *testing.T, ids []string, edges ...[2]string) *Graph[int] {
	t.Helper()
	g := NewGraph[int]()
	for i, id := range ids {
		g.AddNode(id, i)
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func ids[T any](nodes []*Node[T]) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestGraph_AddNodeAndEdge(t *testing.T) {
	g := tables(t, []string{"status", "account", "membership"},
		[2]string{"status", "account"},
		[2]string{"account", "membership"},
	)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []string{"status"}, g.Parents("account"))
	assert.Equal(t, []string{"membership"}, g.Children("account"))

	g.AddNode("account", 42)
	n, ok := g.Node("account")
	require.True(t, ok)
	assert.Equal(t, 42, n.Data)
	assert.Equal(t, 3, g.NodeCount())
}

func TestGraph_AddEdge_Errors(t *testing.T) {
	tests := []struct {
		name    string
		parent  string
		child   string
		wantErr string
	}{
		{name: "missing child", parent: "a", child: "nonexistent", wantErr: `child node "nonexistent" does not exist`},
		{name: "missing parent", parent: "nonexistent", child: "a", wantErr: `parent node "nonexistent" does not exist`},
		{name: "self loop", parent: "a", child: "a", wantErr: "self-loop detected: a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph[int]()
			g.AddNode("a", 0)
			err := g.AddEdge(tt.parent, tt.child)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestGraph_DuplicateEdges(t *testing.T) {
	g := tables(t, []string{"a", "b"}, [2]string{"a", "b"}, [2]string{"a", "b"})
	assert.Equal(t, 1, g.EdgeCount())
	assert.Len(t, g.Parents("b"), 1)
}

func TestGraph_HasCycle(t *testing.T) {
	t.Run("acyclic", func(t *testing.T) {
		g := tables(t, []string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"b", "c"})
		hasCycle, path := g.HasCycle()
		assert.False(t, hasCycle)
		assert.Nil(t, path)
	})

	t.Run("cycle", func(t *testing.T) {
		g := tables(t, []string{"a", "b", "c"},
			[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"})
		hasCycle, path := g.HasCycle()
		assert.True(t, hasCycle)
		assert.Equal(t, []string{"a", "b", "c", "a"}, path)
	})
}

func TestGraph_TopologicalSort(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges [][2]string
		want  []string
	}{
		{
			name:  "insertion order without edges",
			nodes: []string{"status", "membership", "account"},
			want:  []string{"status", "membership", "account"},
		},
		{
			name:  "forward reference moves dependency first",
			nodes: []string{"status", "membership", "account"},
			edges: [][2]string{{"account", "membership"}, {"status", "account"}},
			want:  []string{"status", "account", "membership"},
		},
		{
			name:  "diamond",
			nodes: []string{"d", "b", "c", "a"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			want:  []string{"a", "b", "c", "d"},
		},
		{
			name:  "disconnected components",
			nodes: []string{"y", "x", "q", "p"},
			edges: [][2]string{{"x", "y"}, {"p", "q"}},
			want:  []string{"x", "y", "p", "q"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tables(t, tt.nodes, tt.edges...)
			sorted, err := g.TopologicalSort()
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(sorted))
		})
	}
}

func TestGraph_TopologicalSort_WithCycle(t *testing.T) {
	g := tables(t, []string{"invoice", "customer"},
		[2]string{"invoice", "customer"}, [2]string{"customer", "invoice"})

	_, err := g.TopologicalSort()
	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"invoice", "customer", "invoice"}, cycleErr.Path)
	assert.Equal(t, "cycle detected: invoice -> customer -> invoice", err.Error())
}

func TestGraph_ExecutionLevels(t *testing.T) {
	g := tables(t, []string{"membership", "account", "status", "plan"},
		[2]string{"status", "account"},
		[2]string{"account", "membership"},
		[2]string{"plan", "membership"},
	)

	levels, err := g.ExecutionLevels()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"status", "plan"}, {"account"}, {"membership"}}, levels)
}

func TestGraph_Upstream(t *testing.T) {
	g := tables(t, []string{"status", "plan", "account", "membership"},
		[2]string{"status", "account"},
		[2]string{"account", "membership"},
		[2]string{"plan", "membership"},
	)

	assert.Equal(t, []string{"status", "plan", "account"}, g.Upstream("membership"))
	assert.Empty(t, g.Upstream("status"))
}
