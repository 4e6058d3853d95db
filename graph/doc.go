// Package graph is a small thread-safe directed graph used to feed PageRank
// rounds.
//
// Vertices are identified by non-empty strings. Edges are directed and
// unweighted; self-loops and parallel edges are rejected unless enabled with
// WithLoops and WithMultiEdges. Every query returns vertices in lexicographic
// order so that results are reproducible.
//
// A Snapshot freezes the graph into dense int32 ids (the position of each
// vertex in lexicographic order) together with the in-edge sources and
// out-degree of every vertex. This is the shape PageRank rows need.
//
// Concurrency: all methods are safe for concurrent use; mutations take the
// write lock and queries the read lock.
//
// Errors:
//
//	ErrEmptyVertexID       - vertex ID is the empty string.
//	ErrVertexNotFound      - requested vertex does not exist.
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - parallel edge when multi-edges are disabled.
//	ErrTooManyVertices     - more vertices than an int32 id can address.
package graph
