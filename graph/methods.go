// SPDX-License-Identifier: MIT
// File: methods.go
// Role: vertex and edge lifecycle and queries.
// Determinism:
//   - Vertices() and InNeighbors() return IDs sorted ascending.

package graph

import "sort"

// AddVertex inserts a vertex if it is not present yet (idempotent).
//
// Errors:
//   - ErrEmptyVertexID if id == "".
//
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addVertexLocked(id)

	return nil
}

func (g *Graph) addVertexLocked(id string) {
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.vertices[id] = struct{}{}
	g.out[id] = make(map[string]int)
	g.in[id] = make(map[string]int)
}

// HasVertex reports whether the vertex ID exists (empty ID ⇒ false).
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// AddEdge adds a directed edge from → to, creating missing endpoints.
//
// Steps:
//  1. Validate IDs and the loop policy.
//  2. Under the write lock, ensure endpoints and check the multi-edge policy.
//  3. Bump both adjacency counters.
//
// Errors:
//   - ErrEmptyVertexID, ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyVertexID
	}
	if from == to && !g.allowLoops {
		return ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.addVertexLocked(from)
	g.addVertexLocked(to)
	if !g.allowMulti && g.out[from][to] > 0 {
		return ErrMultiEdgeNotAllowed
	}
	g.out[from][to]++
	g.in[to][from]++
	g.edges++

	return nil
}

// HasEdge reports whether at least one edge from → to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.out[from][to] > 0
}

// Vertices returns all vertex IDs in ascending order.
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.sortedVerticesLocked()
}

func (g *Graph) sortedVerticesLocked() []string {
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns the number of edges, counting parallel edges separately.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}

// OutDegree returns the number of edges leaving id.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity: O(out-neighbors).
func (g *Graph) OutDegree(id string) (int, error) {
	if id == "" {
		return 0, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	out, ok := g.out[id]
	if !ok {
		return 0, ErrVertexNotFound
	}

	return sumCounts(out), nil
}

// InNeighbors returns the sources of the edges entering id, ascending.
// A source appears once per parallel edge.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity: O(k log k) for k in-neighbors.
func (g *Graph) InNeighbors(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	in, ok := g.in[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	srcs := make([]string, 0, len(in))
	for src := range in {
		srcs = append(srcs, src)
	}
	sort.Strings(srcs)
	res := make([]string, 0, sumCounts(in))
	for _, src := range srcs {
		for k := 0; k < in[src]; k++ {
			res = append(res, src)
		}
	}

	return res, nil
}

func sumCounts(m map[string]int) int {
	n := 0
	for _, c := range m {
		n += c
	}

	return n
}
