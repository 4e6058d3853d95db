// SPDX-License-Identifier: MIT

// Package matrix is the shared numeric glue of lvlagg: a row-major Dense
// buffer with safe accessors, in-place kernels for accumulator arithmetic,
// and allocating linear-algebra kernels used by task policies.
//
// What lives here:
//
//   - Dense: contiguous float64 storage (offset = i*cols + j), bounds-checked
//     At/Set, deep Clone, zero-copy RowSlice windows for mini-batches.
//   - In-place kernels (ScaleInPlace, AddInPlace, CopyFrom): the only
//     operations an accumulator needs to average two models with a single
//     mutable buffer.
//   - Allocating kernels (Sub, Mul, Transpose, MatVec): used by the
//     gradient and residual computations of task policies.
//
// Conventions:
//
//   - No panics on user input; sentinel errors (errors.go) wrapped with an
//     operation tag, matched with errors.Is.
//   - Deterministic loop orders; *Dense fast paths with an interface fallback.
//   - Numeric policy: Set/Apply reject NaN/±Inf unless disabled per instance.
//
// Complexity quicksheet:
//
//	NewDense O(r*c); At/Set O(1); Clone O(r*c); RowSlice O(1);
//	ScaleInPlace/AddInPlace/CopyFrom O(r*c) with no allocation;
//	MatVec O(r*c); Mul O(r*n*c).
package matrix
