// SPDX-License-Identifier: MIT

package igd

// BatchOrder selects how sub-batches are visited within one epoch.
type BatchOrder int

const (
	// Sequential visits sub-batches in row order every epoch.
	Sequential BatchOrder = iota

	// Shuffled visits sub-batches in a pseudo-random order that changes per
	// epoch. The permutation is derived from Options.Seed, so repeated calls
	// with the same input produce the same model.
	Shuffled
)

// String returns the config spelling of o.
func (o BatchOrder) String() string {
	if o == Shuffled {
		return "shuffled"
	}

	return "sequential"
}

// Options configures the engine.
//
// BatchOrder – sub-batch visitation policy for TransitionInMiniBatch.
// Seed       – source of the Shuffled permutation; ignored for Sequential.
type Options struct {
	BatchOrder BatchOrder
	Seed       int64
}

// DefaultOptions returns the fixed-order configuration.
func DefaultOptions() Options {
	return Options{BatchOrder: Sequential, Seed: 1}
}

// Option customizes Options.
type Option func(*Options)

// WithBatchOrder sets the sub-batch visitation policy.
func WithBatchOrder(o BatchOrder) Option {
	return func(opts *Options) { opts.BatchOrder = o }
}

// WithSeed sets the seed of the Shuffled permutation.
func WithSeed(seed int64) Option {
	return func(opts *Options) { opts.Seed = seed }
}
