// SPDX-License-Identifier: MIT
// Package: builder
//
// options.go - functional options for constructors.
//
// Contract:
//   - Option constructors panic on meaningless input (nil functions).
//     Constructors themselves never panic.
//   - Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math/rand"
	"strconv"
)

// IDFn maps a zero-based vertex index to its ID. It must be pure.
type IDFn func(idx int) string

// DefaultIDFn returns the decimal form of idx.
func DefaultIDFn(idx int) string { return strconv.Itoa(idx) }

// BuilderOption customizes the resolved builderConfig.
type BuilderOption func(*builderConfig)

type builderConfig struct {
	idFn IDFn
	rng  *rand.Rand
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{idFn: DefaultIDFn}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithIDScheme sets the vertex ID generator. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed attaches a new RNG seeded with seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}
