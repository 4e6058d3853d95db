package graph_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/katalvlaran/lvlagg/graph"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAddEdge ensures concurrent AddEdge calls with snapshots in
// flight are safe and every edge is counted.
func TestConcurrentAddEdge(t *testing.T) {
	g := graph.NewGraph(graph.WithMultiEdges())
	const num = 200
	var wg sync.WaitGroup
	errs := make(chan error, 2*num)
	wg.Add(2 * num)

	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			errs <- g.AddEdge(fmt.Sprintf("V%d", id), "X")
		}(i)
		go func() {
			defer wg.Done()
			_, err := g.Snapshot()
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	in, err := g.InNeighbors("X")
	require.NoError(t, err)
	require.Len(t, in, num)
	require.Equal(t, num, g.EdgeCount())
}
