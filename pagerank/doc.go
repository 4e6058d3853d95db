// Package pagerank computes one power-iteration step of PageRank as a
// partition-tolerant aggregate.
//
// A round folds every vertex of the graph, one row per vertex, into a dense
// rank vector of length n. Each row carries the vertex id, the sources of its
// in-edges and the out-degree of every source (index-aligned with the
// in-edges). Partitions hold disjoint vertex sets, so their partial vectors
// are combined by a plain element-wise sum; Final is the identity. Rounds
// repeat until Converged reports that no rank moved by more than the
// tolerance.
//
// Update rule for vertex v with damping d:
//
//	random  = (1 − d) / n
//	rank[v] = random                                   if v has no in-edges
//	rank[v] = d · Σ previous[src] / outdegree(src) + random   otherwise
//
// A missing previous vector (first round) is taken as the uniform 1/n vector;
// a missing accumulator is taken as the zero vector.
//
// Errors (sentinel):
//
//	– ErrEdgeMismatch        if in-edges and out-degrees differ in length.
//	– ErrDimensionMismatch   if two vectors that must align differ in length.
//	– ErrInvalidVertexCount  if n ≤ 0.
//	– ErrVertexOutOfRange    if a vertex or source id is outside [0, n).
//	– ErrInvalidDamping      if d is outside [0, 1].
//	– ErrInvalidOutDegree    if an out-degree is ≤ 0.
//	– ErrInvalidThreshold    if a convergence threshold is negative or NaN.
//
// The four operations are also exported under the names of the aggregate
// surface they implement: ComputeTransition, ComputeMergeStates,
// ComputeFinal and TestConvergence.
package pagerank
