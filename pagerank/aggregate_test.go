package pagerank_test

import (
	"testing"

	"github.com/katalvlaran/lvlagg/graph"
	"github.com/katalvlaran/lvlagg/pagerank"
	"github.com/stretchr/testify/require"
)

func snapshot(t *testing.T, edges ...[2]string) *graph.Snapshot {
	t.Helper()
	g := graph.NewGraph()
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	s, err := g.Snapshot()
	require.NoError(t, err)

	return s
}

func TestRowsAlignOutDegrees(t *testing.T) {
	s := snapshot(t, [2]string{"a", "c"}, [2]string{"b", "c"}, [2]string{"b", "a"})
	rows := pagerank.Rows(s)
	require.Len(t, rows, 3)
	require.Equal(t, pagerank.Row{Vertex: 0, InEdges: []int32{1}, OutDegrees: []int32{2}}, rows[0])
	require.Equal(t, pagerank.Row{Vertex: 1, InEdges: []int32{}, OutDegrees: []int32{}}, rows[1])
	require.Equal(t, pagerank.Row{Vertex: 2, InEdges: []int32{0, 1}, OutDegrees: []int32{1, 2}}, rows[2])
}

// runRound folds rows split across two partitions and merges them.
func runRound(t *testing.T, agg pagerank.Aggregate, rows []pagerank.Row) []float64 {
	t.Helper()
	var parts [2][]float64
	for i, r := range rows {
		s, err := agg.Transition(parts[i%2], r)
		require.NoError(t, err)
		parts[i%2] = s
	}
	merged, err := agg.Merge(parts[0], parts[1])
	require.NoError(t, err)
	out, err := agg.Final(merged)
	require.NoError(t, err)

	return out
}

func TestAggregateCycleIsStationary(t *testing.T) {
	s := snapshot(t, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"})
	agg := pagerank.Aggregate{Damping: pagerank.DefaultDamping, N: s.Len()}

	empty, err := agg.Init()
	require.NoError(t, err)
	require.Empty(t, empty)

	ranks := runRound(t, agg, pagerank.Rows(s))
	require.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, ranks, 1e-12)

	agg.Previous = ranks
	next := runRound(t, agg, pagerank.Rows(s))
	ok, err := pagerank.Converged(ranks, next, 1e-12)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAggregateConvergesOnStar(t *testing.T) {
	// Every leaf links to the hub and the hub links back to every leaf.
	s := snapshot(t,
		[2]string{"l1", "hub"}, [2]string{"l2", "hub"}, [2]string{"l3", "hub"},
		[2]string{"hub", "l1"}, [2]string{"hub", "l2"}, [2]string{"hub", "l3"},
	)
	agg := pagerank.Aggregate{Damping: 0.85, N: s.Len()}
	rows := pagerank.Rows(s)

	var prev []float64
	converged := false
	for round := 0; round < 200 && !converged; round++ {
		agg.Previous = prev
		cur := runRound(t, agg, rows)
		var err error
		converged, err = pagerank.Converged(prev, cur, 1e-10)
		require.NoError(t, err)
		prev = cur
	}
	require.True(t, converged)

	hub, _ := s.Index("hub")
	sum := 0.0
	for i, r := range prev {
		sum += r
		if int32(i) != hub {
			require.Less(t, r, prev[hub])
		}
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}
