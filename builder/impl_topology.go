// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_topology.go - directed topologies.
//
// Contract (every constructor):
//   - Validates parameters before touching g.
//   - Adds vertices via cfg.idFn in ascending index order.
//   - Emits edges in a fixed order, so equal inputs give equal graphs.
//   - Returns sentinel errors wrapped with the method name; never panics.

package builder

import "github.com/katalvlaran/lvlagg/graph"

const (
	methodCycle        = "Cycle"
	methodPath         = "Path"
	methodStar         = "Star"
	methodComplete     = "Complete"
	methodRandomSparse = "RandomSparse"

	minCycleNodes    = 2
	minPathNodes     = 2
	minStarNodes     = 2
	minCompleteNodes = 1
	minSparseNodes   = 1
)

func addVertices(g *graph.Graph, cfg builderConfig, method string, n int) error {
	for i := 0; i < n; i++ {
		if err := g.AddVertex(cfg.idFn(i)); err != nil {
			return builderErrorf(method, "AddVertex(%s): %w", cfg.idFn(i), err)
		}
	}

	return nil
}

func addEdge(g *graph.Graph, method, u, v string) error {
	if err := g.AddEdge(u, v); err != nil {
		return builderErrorf(method, "AddEdge(%s→%s): %w", u, v, err)
	}

	return nil
}

// Cycle builds the directed ring 0→1→…→n-1→0 (n ≥ 2).
// Complexity: O(n).
func Cycle(n int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minCycleNodes {
			return builderErrorf(methodCycle, "n=%d < min=%d: %w", n, minCycleNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, methodCycle, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := addEdge(g, methodCycle, cfg.idFn(i), cfg.idFn((i+1)%n)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Path builds the directed chain 0→1→…→n-1 (n ≥ 2). The last vertex is
// dangling.
// Complexity: O(n).
func Path(n int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minPathNodes {
			return builderErrorf(methodPath, "n=%d < min=%d: %w", n, minPathNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, methodPath, n); err != nil {
			return err
		}
		for i := 0; i+1 < n; i++ {
			if err := addEdge(g, methodPath, cfg.idFn(i), cfg.idFn(i+1)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Star builds hub vertex 0 with spokes in both directions to leaves 1..n-1
// (n ≥ 2).
// Complexity: O(n).
func Star(n int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minStarNodes {
			return builderErrorf(methodStar, "n=%d < min=%d: %w", n, minStarNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, methodStar, n); err != nil {
			return err
		}
		hub := cfg.idFn(0)
		for i := 1; i < n; i++ {
			leaf := cfg.idFn(i)
			if err := addEdge(g, methodStar, hub, leaf); err != nil {
				return err
			}
			if err := addEdge(g, methodStar, leaf, hub); err != nil {
				return err
			}
		}

		return nil
	}
}

// Complete builds every ordered pair (i,j), i≠j (n ≥ 1).
// Complexity: O(n²).
func Complete(n int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minCompleteNodes {
			return builderErrorf(methodComplete, "n=%d < min=%d: %w", n, minCompleteNodes, ErrTooFewVertices)
		}
		if err := addVertices(g, cfg, methodComplete, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if err := addEdge(g, methodComplete, cfg.idFn(i), cfg.idFn(j)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// RandomSparse includes every ordered pair (i,j) independently with
// probability p; self-loops are tried only when g.Looped().
//
// Contract:
//   - n ≥ 1, 0 ≤ p ≤ 1.
//   - An RNG is required unless p is 0 or 1.
//
// Complexity: O(n²) Bernoulli trials in fixed i→j order.
func RandomSparse(n int, p float64) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minSparseNodes {
			return builderErrorf(methodRandomSparse, "n=%d < min=%d: %w", n, minSparseNodes, ErrTooFewVertices)
		}
		if !(p >= 0 && p <= 1) {
			return builderErrorf(methodRandomSparse, "p=%g: %w", p, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return builderErrorf(methodRandomSparse, "%w", ErrNeedRandSource)
		}
		if err := addVertices(g, cfg, methodRandomSparse, n); err != nil {
			return err
		}

		loops := g.Looped()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j && !loops {
					continue
				}
				take := p == 1
				if cfg.rng != nil && p > 0 && p < 1 {
					take = cfg.rng.Float64() < p
				}
				if !take {
					continue
				}
				if err := addEdge(g, methodRandomSparse, cfg.idFn(i), cfg.idFn(j)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
