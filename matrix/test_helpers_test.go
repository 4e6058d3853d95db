// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvlagg/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their generic At/Set fallback path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense filled row-major from vals, or fails the test.
func MustDense(t testing.TB, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	if len(vals) == 0 {
		m, err := matrix.NewDense(r, c)
		require.NoError(t, err)
		return m
	}
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// requireClose compares shapes and every element under a tight absolute tolerance.
func requireClose(t *testing.T, want, got *matrix.Dense) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	require.InDeltaSlice(t, want.Data(), got.Data(), 1e-12)
}
