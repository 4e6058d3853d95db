// SPDX-License-Identifier: MIT

package graph

import (
	"math"
	"sort"
)

// Snapshot is an immutable dense view of a Graph.
//
// IDs[i] is the vertex with dense id i (lexicographic order). In[i] lists the
// dense ids of the sources of edges entering i, ascending, once per parallel
// edge. OutDegree[i] is the number of edges leaving i.
type Snapshot struct {
	IDs       []string
	In        [][]int32
	OutDegree []int32
	index     map[string]int32
}

// Snapshot freezes g under a single read lock.
//
// Errors:
//   - ErrTooManyVertices if V exceeds math.MaxInt32.
//
// Complexity: O(V log V + E).
func (g *Graph) Snapshot() (*Snapshot, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if len(g.vertices) > math.MaxInt32 {
		return nil, ErrTooManyVertices
	}
	ids := g.sortedVerticesLocked()
	index := make(map[string]int32, len(ids))
	for i, id := range ids {
		index[id] = int32(i)
	}

	s := &Snapshot{
		IDs:       ids,
		In:        make([][]int32, len(ids)),
		OutDegree: make([]int32, len(ids)),
		index:     index,
	}
	for i, id := range ids {
		s.OutDegree[i] = int32(sumCounts(g.out[id]))
		srcs := make([]int32, 0, len(g.in[id]))
		for src, c := range g.in[id] {
			for k := 0; k < c; k++ {
				srcs = append(srcs, index[src])
			}
		}
		sort.Slice(srcs, func(a, b int) bool { return srcs[a] < srcs[b] })
		s.In[i] = srcs
	}

	return s, nil
}

// Len returns the number of vertices in the snapshot.
func (s *Snapshot) Len() int { return len(s.IDs) }

// Index returns the dense id of vertex id.
func (s *Snapshot) Index(id string) (int32, bool) {
	i, ok := s.index[id]
	return i, ok
}
