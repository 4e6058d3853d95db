// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlagg/graph"
)

// Constructor applies a deterministic mutation to g.
type Constructor func(g *graph.Graph, cfg builderConfig) error

// BuildGraph creates a graph with gopts, resolves bopts and applies cons in
// order. The first constructor error is returned wrapped; the partial graph
// is discarded.
//
// Complexity: O(len(bopts)) plus the cost of every constructor.
func BuildGraph(gopts []graph.GraphOption, bopts []BuilderOption, cons ...Constructor) (*graph.Graph, error) {
	g := graph.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// Parse turns "name:arg[:arg]" into a Constructor.
//
//	cycle:N       Cycle(N)
//	path:N        Path(N)
//	star:N        Star(N)
//	complete:N    Complete(N)
//	random:N:P    RandomSparse(N, P)
func Parse(topology string) (Constructor, error) {
	parts := strings.Split(strings.TrimSpace(topology), ":")
	name := strings.ToLower(parts[0])
	want := 2
	if name == "random" {
		want = 3
	}
	if len(parts) != want {
		return nil, fmt.Errorf("Parse(%q): want %d fields: %w", topology, want, ErrUnknownTopology)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("Parse(%q): %w", topology, err)
	}

	switch name {
	case "cycle":
		return Cycle(n), nil
	case "path":
		return Path(n), nil
	case "star":
		return Star(n), nil
	case "complete":
		return Complete(n), nil
	case "random":
		p, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("Parse(%q): %w", topology, err)
		}
		return RandomSparse(n, p), nil
	default:
		return nil, fmt.Errorf("Parse(%q): %w", topology, ErrUnknownTopology)
	}
}
