// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - In-place kernels that mutate the receiver and allocate nothing.
//   - These are the only operations an accumulator needs for model averaging
//     with a single mutable buffer: scale, add, copy (and axpy for gradient steps).
//
// Determinism & Performance:
//   - Fixed flat loop 0..n-1 on the *Dense fast path; i→j At-loop fallback.
//   - Receiver is always *Dense; the operand may be any Matrix.
//
// AI-Hints:
//   - Keep both operands *Dense to stay on the flat path.
//   - Scalars are validated once (finite), not per element.

package matrix

import (
	"fmt"
	"math"
)

// Operation tags for the in-place family.
const (
	opScaleInPlace = "ScaleInPlace"
	opAddInPlace   = "AddInPlace"
	opAxpyInPlace  = "AxpyInPlace"
	opCopyFrom     = "CopyFrom"
)

// ScaleInPlace multiplies every element of m by alpha.
// MAIN DESCRIPTION:
//   - m ← alpha·m without allocating.
//
// Errors:
//   - ErrNilMatrix when m is nil; ErrNaNInf when alpha is not finite.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) ScaleInPlace(alpha float64) error {
	if m == nil {
		return matrixErrorf(opScaleInPlace, ErrNilMatrix)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return matrixErrorf(opScaleInPlace, ErrNaNInf)
	}
	for idx := range m.data {
		m.data[idx] *= alpha
	}

	return nil
}

// AddInPlace adds b element-wise into m (m ← m + b).
// Shapes must match exactly.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) AddInPlace(b Matrix) error {
	return m.axpy(1, b, opAddInPlace)
}

// AxpyInPlace computes m ← m + alpha·b (BLAS "axpy").
// Gradient steps use it as w ← w − η·g with alpha = −η.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (alpha not finite).
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) AxpyInPlace(alpha float64, b Matrix) error {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return matrixErrorf(opAxpyInPlace, ErrNaNInf)
	}

	return m.axpy(alpha, b, opAxpyInPlace)
}

// axpy is the shared body of AddInPlace and AxpyInPlace.
func (m *Dense) axpy(alpha float64, b Matrix, opTag string) error {
	if m == nil {
		return matrixErrorf(opTag, ErrNilMatrix)
	}
	if err := ValidateBinarySameShape(m, b); err != nil {
		return matrixErrorf(opTag, err)
	}

	// Dense fast-path: single flat walk.
	if db, ok := b.(*Dense); ok {
		for idx := range m.data {
			m.data[idx] += alpha * db.data[idx]
		}
		return nil
	}

	// Fallback via At (shape already validated).
	var i, j int
	var v float64
	var err error
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			if v, err = b.At(i, j); err != nil {
				return matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			m.data[i*m.c+j] += alpha * v
		}
	}

	return nil
}

// CopyFrom overwrites m with the contents of src (same shape required).
// The buffers stay distinct: after CopyFrom, mutating src never reaches m.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) CopyFrom(src Matrix) error {
	if m == nil {
		return matrixErrorf(opCopyFrom, ErrNilMatrix)
	}
	if err := ValidateBinarySameShape(m, src); err != nil {
		return matrixErrorf(opCopyFrom, err)
	}
	if ds, ok := src.(*Dense); ok {
		copy(m.data, ds.data)
		return nil
	}

	var i, j int
	var v float64
	var err error
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			if v, err = src.At(i, j); err != nil {
				return matrixErrorf(opCopyFrom, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			m.data[i*m.c+j] = v
		}
	}

	return nil
}
