// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewVertices indicates a vertex count below the constructor minimum.
	ErrTooFewVertices = errors.New("builder: parameter too small")

	// ErrInvalidProbability indicates a probability outside [0,1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrNeedRandSource indicates a stochastic constructor without WithSeed or WithRand.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrConstructFailed indicates a nil constructor or a failed graph mutation.
	ErrConstructFailed = errors.New("builder: construction failed")

	// ErrUnknownTopology indicates a Parse input naming no known topology.
	ErrUnknownTopology = errors.New("builder: unknown topology")
)

// builderErrorf prefixes err with the constructor name.
func builderErrorf(method string, format string, args ...any) error {
	return fmt.Errorf("%s: "+format, append([]any{method}, args...)...)
}
