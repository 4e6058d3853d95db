// SPDX-License-Identifier: MIT

package pagerank

import "github.com/katalvlaran/lvlagg/graph"

// Row is the input of one Transition: a vertex with its in-edge sources and
// the out-degree of every source, index-aligned.
type Row struct {
	Vertex     int32
	InEdges    []int32
	OutDegrees []int32
}

// Rows converts a graph snapshot into one Row per vertex, in dense id order.
// OutDegrees[i] is the out-degree of InEdges[i], so the alignment Transition
// relies on holds by construction.
func Rows(s *graph.Snapshot) []Row {
	rows := make([]Row, s.Len())
	for v := range rows {
		in := s.In[v]
		deg := make([]int32, len(in))
		for i, src := range in {
			deg[i] = s.OutDegree[src]
		}
		rows[v] = Row{Vertex: int32(v), InEdges: in, OutDegrees: deg}
	}

	return rows
}

// Aggregate adapts Transition, Merge and Final to a round. Previous is the
// published vector of the last round (nil in the first round); N and Damping
// are fixed for the whole computation.
type Aggregate struct {
	Previous []float64
	Damping  float64
	N        int
}

// Init returns the empty accumulator; Transition materializes it lazily.
func (a Aggregate) Init() ([]float64, error) { return nil, nil }

// Transition folds one vertex row.
func (a Aggregate) Transition(s []float64, r Row) ([]float64, error) {
	return Transition(s, r.Vertex, r.InEdges, r.OutDegrees, a.Previous, a.Damping, a.N)
}

// Merge sums two partial vectors.
func (a Aggregate) Merge(left, right []float64) ([]float64, error) {
	return Merge(left, right)
}

// Final returns the merged vector.
func (a Aggregate) Final(s []float64) ([]float64, error) { return Final(s), nil }
