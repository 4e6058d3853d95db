// SPDX-License-Identifier: MIT

package round

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoPartitions indicates a round without partitions.
	ErrNoPartitions = errors.New("round: no partitions")

	// ErrInvalidPartitions indicates a partition count of zero or less.
	ErrInvalidPartitions = errors.New("round: partition count must be positive")

	// ErrUnknownTopology indicates a topology name that is not recognized.
	ErrUnknownTopology = errors.New("round: unknown merge topology")
)

// Aggregate is the three-phase accumulation protocol over states S and rows R.
//
// Init creates an empty partition state. Transition folds one row into a
// state. Merge combines right into left; right must not be used afterwards.
// Final turns the single surviving state into the round's result.
type Aggregate[S, R any] interface {
	Init() (S, error)
	Transition(s S, r R) (S, error)
	Merge(left, right S) (S, error)
	Final(s S) (S, error)
}

// Topology is the shape of the merge phase.
type Topology int

const (
	// Sequential merges partition states left to right in one chain.
	Sequential Topology = iota

	// Tree merges neighbouring states pairwise, level by level; merges of
	// one level run concurrently.
	Tree
)

// String returns the config spelling of t.
func (t Topology) String() string {
	if t == Tree {
		return "tree"
	}

	return "sequential"
}

// ParseTopology maps a config string to a Topology.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return Sequential, nil
	case "tree":
		return Tree, nil
	default:
		return Sequential, fmt.Errorf("%q: %w", s, ErrUnknownTopology)
	}
}

// Split deals rows round-robin into k partitions. Partitions may be empty
// when k exceeds len(rows).
func Split[R any](rows []R, k int) ([][]R, error) {
	if k <= 0 {
		return nil, ErrInvalidPartitions
	}
	parts := make([][]R, k)
	for i := range parts {
		parts[i] = make([]R, 0, (len(rows)+k-1)/k)
	}
	for i, r := range rows {
		parts[i%k] = append(parts[i%k], r)
	}

	return parts, nil
}
