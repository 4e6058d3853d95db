// Package graph_test verifies vertex/edge lifecycle, policies and snapshots.
package graph_test

import (
	"testing"

	"github.com/katalvlaran/lvlagg/graph"
	"github.com/stretchr/testify/require"
)

func TestAddVertexIdempotent(t *testing.T) {
	g := graph.NewGraph()
	require.ErrorIs(t, g.AddVertex(""), graph.ErrEmptyVertexID)
	require.NoError(t, g.AddVertex("A"))
	require.NoError(t, g.AddVertex("A"))
	require.Equal(t, 1, g.VertexCount())
	require.True(t, g.HasVertex("A"))
	require.False(t, g.HasVertex(""))
	require.False(t, g.HasVertex("B"))
}

func TestAddEdgePolicies(t *testing.T) {
	g := graph.NewGraph()
	require.NoError(t, g.AddEdge("A", "B"))
	require.True(t, g.HasEdge("A", "B"))
	require.False(t, g.HasEdge("B", "A"), "edges are directed")

	require.ErrorIs(t, g.AddEdge("A", "B"), graph.ErrMultiEdgeNotAllowed)
	require.ErrorIs(t, g.AddEdge("A", "A"), graph.ErrLoopNotAllowed)
	require.ErrorIs(t, g.AddEdge("", "A"), graph.ErrEmptyVertexID)
	require.Equal(t, 1, g.EdgeCount())
	require.False(t, g.Looped())
	require.False(t, g.Multigraph())

	m := graph.NewGraph(graph.WithMultiEdges(), graph.WithLoops())
	require.NoError(t, m.AddEdge("A", "B"))
	require.NoError(t, m.AddEdge("A", "B"))
	require.NoError(t, m.AddEdge("B", "B"))
	require.Equal(t, 3, m.EdgeCount())
	require.True(t, m.Looped())
	require.True(t, m.Multigraph())
}

func TestDegreesAndNeighbors(t *testing.T) {
	g := graph.NewGraph(graph.WithMultiEdges())
	for _, e := range [][2]string{{"C", "A"}, {"B", "A"}, {"B", "A"}, {"A", "C"}} {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}

	require.Equal(t, []string{"A", "B", "C"}, g.Vertices())

	in, err := g.InNeighbors("A")
	require.NoError(t, err)
	require.Equal(t, []string{"B", "B", "C"}, in)

	out, err := g.OutDegree("B")
	require.NoError(t, err)
	require.Equal(t, 2, out)

	_, err = g.OutDegree("Z")
	require.ErrorIs(t, err, graph.ErrVertexNotFound)
	_, err = g.InNeighbors("")
	require.ErrorIs(t, err, graph.ErrEmptyVertexID)
}

func TestSnapshotAlignment(t *testing.T) {
	g := graph.NewGraph()
	for _, e := range [][2]string{{"b", "a"}, {"c", "a"}, {"a", "b"}, {"c", "b"}} {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	require.NoError(t, g.AddVertex("d")) // isolated

	s, err := g.Snapshot()
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())
	require.Equal(t, []string{"a", "b", "c", "d"}, s.IDs)
	require.Equal(t, [][]int32{{1, 2}, {0, 2}, {}, {}}, s.In)
	require.Equal(t, []int32{1, 1, 2, 0}, s.OutDegree)

	i, ok := s.Index("c")
	require.True(t, ok)
	require.Equal(t, int32(2), i)
	_, ok = s.Index("zz")
	require.False(t, ok)

	// Later mutations do not reach the snapshot.
	require.NoError(t, g.AddEdge("d", "a"))
	require.Equal(t, []int32{1, 2}, s.In[0])
}
