// SPDX-License-Identifier: MIT

package pagerank

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the PageRank aggregate.
var (
	// ErrEdgeMismatch indicates that the number of incoming edges and the
	// number of out-degrees do not match.
	ErrEdgeMismatch = errors.New("pagerank: in-edges and out-degrees differ in length")

	// ErrDimensionMismatch indicates two rank vectors of different length.
	ErrDimensionMismatch = errors.New("pagerank: state dimensions don't match")

	// ErrInvalidVertexCount indicates a vertex count of zero or less.
	ErrInvalidVertexCount = errors.New("pagerank: vertex count must be positive")

	// ErrVertexOutOfRange indicates a vertex id outside [0, n).
	ErrVertexOutOfRange = errors.New("pagerank: vertex id out of range")

	// ErrInvalidDamping indicates a damping factor outside [0, 1].
	ErrInvalidDamping = errors.New("pagerank: damping factor must be in [0, 1]")

	// ErrInvalidOutDegree indicates a non-positive out-degree for an in-edge source.
	ErrInvalidOutDegree = errors.New("pagerank: out-degree must be positive")

	// ErrInvalidThreshold indicates a negative or NaN convergence threshold.
	ErrInvalidThreshold = errors.New("pagerank: threshold must be a non-negative number")
)

func pagerankErrorf(tag string, err error) error {
	return fmt.Errorf("pagerank.%s: %w", tag, err)
}
