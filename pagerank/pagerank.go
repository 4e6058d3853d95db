// SPDX-License-Identifier: MIT

package pagerank

import (
	"fmt"
	"math"
)

// DefaultDamping is the customary damping factor.
const DefaultDamping = 0.85

// Transition folds the in-edge contributions of one vertex into state.
// MAIN DESCRIPTION:
//   - state and previous have length n; a nil or empty state is created as
//     zeros and a nil or empty previous reads as the uniform 1/n vector
//     without being materialized.
//   - inedges[i] is a source of vertex and outdegrees[i] is that source's
//     out-degree. The caller maintains this alignment; only the lengths and
//     ranges can be checked here.
//
// Implementation:
//   - Stage 1: validate n, damping, vertex, lengths, every source and degree.
//   - Stage 2: lazily materialize state.
//   - Stage 3: no in-edges → state[vertex] = (1−d)/n; otherwise add every
//     previous[src]/outdeg (1/n when previous is empty), then scale by d
//     and add (1−d)/n.
//
// Behavior highlights:
//   - previous is never written.
//   - On error state is returned unchanged (nothing is written before validation ends).
//
// Errors:
//   - ErrInvalidVertexCount, ErrInvalidDamping, ErrVertexOutOfRange,
//     ErrEdgeMismatch, ErrInvalidOutDegree, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(len(inedges)), plus O(n) once when state is created.
//   - No allocation once state exists, whether or not previous is set.
func Transition(state []float64, vertex int32, inedges, outdegrees []int32, previous []float64, damping float64, n int) ([]float64, error) {
	if err := validateTransition(state, vertex, inedges, outdegrees, previous, damping, n); err != nil {
		return state, pagerankErrorf("Transition", err)
	}
	if len(state) == 0 {
		state = make([]float64, n)
	}

	random := (1 - damping) / float64(n)
	if len(inedges) == 0 {
		state[vertex] = random
		return state, nil
	}
	if len(previous) == 0 {
		u := 1 / float64(n)
		for i := range inedges {
			state[vertex] += u / float64(outdegrees[i])
		}
	} else {
		for i, src := range inedges {
			state[vertex] += previous[src] / float64(outdegrees[i])
		}
	}
	state[vertex] = state[vertex]*damping + random

	return state, nil
}

// validateTransition performs every check of Transition before any write.
func validateTransition(state []float64, vertex int32, inedges, outdegrees []int32, previous []float64, damping float64, n int) error {
	if n <= 0 {
		return ErrInvalidVertexCount
	}
	if math.IsNaN(damping) || damping < 0 || damping > 1 {
		return fmt.Errorf("d=%g: %w", damping, ErrInvalidDamping)
	}
	if vertex < 0 || int(vertex) >= n {
		return fmt.Errorf("vertex %d, n=%d: %w", vertex, n, ErrVertexOutOfRange)
	}
	if len(inedges) != len(outdegrees) {
		return fmt.Errorf("%d in-edges, %d out-degrees: %w", len(inedges), len(outdegrees), ErrEdgeMismatch)
	}
	if len(state) != 0 && len(state) != n {
		return fmt.Errorf("state %d, n=%d: %w", len(state), n, ErrDimensionMismatch)
	}
	if len(previous) != 0 && len(previous) != n {
		return fmt.Errorf("previous %d, n=%d: %w", len(previous), n, ErrDimensionMismatch)
	}
	for i, src := range inedges {
		if src < 0 || int(src) >= n {
			return fmt.Errorf("in-edge %d from %d, n=%d: %w", i, src, n, ErrVertexOutOfRange)
		}
		if outdegrees[i] <= 0 {
			return fmt.Errorf("in-edge %d from %d, out-degree %d: %w", i, src, outdegrees[i], ErrInvalidOutDegree)
		}
	}

	return nil
}

// Merge sums b into a element-wise and returns a.
// An empty side returns the other operand unchanged, which covers the first
// merge of a round. Partitions own disjoint vertices, so the sum is exact.
//
// Errors:
//   - ErrDimensionMismatch when both sides are non-empty and differ in length.
func Merge(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return b, nil
	}
	if len(b) == 0 {
		return a, nil
	}
	if len(a) != len(b) {
		return nil, pagerankErrorf("Merge", fmt.Errorf("%d vs %d: %w", len(a), len(b), ErrDimensionMismatch))
	}
	for i := range a {
		a[i] += b[i]
	}

	return a, nil
}

// Final returns s unchanged.
func Final(s []float64) []float64 { return s }

// Converged reports whether no element of cur differs from prev by more than
// threshold. An empty prev (first round, no baseline yet) is never converged.
// The scan stops at the first element over the threshold.
//
// Errors:
//   - ErrInvalidThreshold for a negative or NaN threshold.
//   - ErrDimensionMismatch when prev and cur differ in length.
func Converged(prev, cur []float64, threshold float64) (bool, error) {
	if math.IsNaN(threshold) || threshold < 0 {
		return false, pagerankErrorf("Converged", ErrInvalidThreshold)
	}
	if len(prev) == 0 {
		return false, nil
	}
	if len(prev) != len(cur) {
		return false, pagerankErrorf("Converged", fmt.Errorf("%d vs %d: %w", len(prev), len(cur), ErrDimensionMismatch))
	}
	for i := range prev {
		if math.Abs(prev[i]-cur[i]) > threshold {
			return false, nil
		}
	}

	return true, nil
}

// Uniform returns a vector of n values 1/n.
func Uniform(n int) []float64 {
	v := make([]float64, n)
	u := 1 / float64(n)
	for i := range v {
		v[i] = u
	}

	return v
}

// ComputeTransition is Transition under its aggregate-surface name.
func ComputeTransition(state []float64, vertex int32, inedges, outdegrees []int32, previous []float64, damping float64, n int) ([]float64, error) {
	return Transition(state, vertex, inedges, outdegrees, previous, damping, n)
}

// ComputeMergeStates is Merge under its aggregate-surface name.
func ComputeMergeStates(state1, state2 []float64) ([]float64, error) {
	return Merge(state1, state2)
}

// ComputeFinal is Final under its aggregate-surface name.
func ComputeFinal(state []float64) []float64 { return Final(state) }

// TestConvergence is Converged under its aggregate-surface name.
func TestConvergence(state1, state2 []float64, threshold float64) (bool, error) {
	return Converged(state1, state2, threshold)
}
