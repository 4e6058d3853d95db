package pagerank_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvlagg/pagerank"
	"github.com/stretchr/testify/require"
)

func TestTransitionNoInEdges(t *testing.T) {
	for _, d := range []float64{0, 0.5, 0.85, 1} {
		s, err := pagerank.Transition(nil, 2, nil, nil, nil, d, 4)
		require.NoError(t, err)
		require.Len(t, s, 4)
		require.Equal(t, (1-d)/4, s[2])
		require.Equal(t, []float64{0, 0, 0}, []float64{s[0], s[1], s[3]})
	}
}

func TestTransitionUniformFirstRound(t *testing.T) {
	// previous absent → 1/3 each; v0 ← 0.85·(1/3/1 + 1/3/2) + 0.15/3
	s, err := pagerank.Transition(nil, 0, []int32{1, 2}, []int32{1, 2}, nil, 0.85, 3)
	require.NoError(t, err)
	require.InDelta(t, 0.85*(1.0/3+1.0/6)+0.05, s[0], 1e-12)
}

func TestTransitionNilPreviousMatchesUniform(t *testing.T) {
	const n = 5
	inedges, outdegrees := []int32{0, 2, 3, 4}, []int32{1, 3, 2, 4}
	for v := int32(0); v < n; v++ {
		lazy, err := pagerank.Transition(nil, v, inedges, outdegrees, nil, 0.85, n)
		require.NoError(t, err)
		eager, err := pagerank.Transition(nil, v, inedges, outdegrees, pagerank.Uniform(n), 0.85, n)
		require.NoError(t, err)
		require.Equal(t, eager, lazy, "vertex %d", v)
	}
}

func TestTransitionNilPreviousDoesNotAllocate(t *testing.T) {
	const n = 20000
	state := make([]float64, n)
	inedges, outdegrees := []int32{1, 7, 19999}, []int32{2, 1, 3}
	var err error
	allocs := testing.AllocsPerRun(100, func() {
		state[3] = 0
		state, err = pagerank.Transition(state, 3, inedges, outdegrees, nil, 0.85, n)
	})
	require.NoError(t, err)
	require.Zero(t, allocs, "a first-round row must not build a length-n vector")
}

func TestTransitionUsesPrevious(t *testing.T) {
	prev := []float64{0.2, 0.3, 0.5}
	state := []float64{0, 0, 0}
	s, err := pagerank.Transition(state, 1, []int32{0, 2}, []int32{2, 1}, prev, 0.5, 3)
	require.NoError(t, err)
	require.InDelta(t, 0.5*(0.1+0.5)+0.5/3, s[1], 1e-12)
	require.Equal(t, []float64{0.2, 0.3, 0.5}, prev, "previous is read-only")
	require.Equal(t, &state[0], &s[0], "an existing state is updated in place")
}

func TestTransitionEdgeMismatch(t *testing.T) {
	state := []float64{1, 2, 3}
	s, err := pagerank.Transition(state, 0, []int32{0, 1, 2}, []int32{1, 1}, nil, 0.85, 3)
	require.ErrorIs(t, err, pagerank.ErrEdgeMismatch)
	require.Equal(t, []float64{1, 2, 3}, s)
}

func TestTransitionInvalidArguments(t *testing.T) {
	cases := []struct {
		name    string
		state   []float64
		vertex  int32
		in, deg []int32
		prev    []float64
		d       float64
		n       int
		want    error
	}{
		{"zero n", nil, 0, nil, nil, nil, 0.85, 0, pagerank.ErrInvalidVertexCount},
		{"damping high", nil, 0, nil, nil, nil, 1.5, 2, pagerank.ErrInvalidDamping},
		{"damping NaN", nil, 0, nil, nil, nil, math.NaN(), 2, pagerank.ErrInvalidDamping},
		{"vertex high", nil, 2, nil, nil, nil, 0.85, 2, pagerank.ErrVertexOutOfRange},
		{"vertex negative", nil, -1, nil, nil, nil, 0.85, 2, pagerank.ErrVertexOutOfRange},
		{"source out of range", nil, 0, []int32{5}, []int32{1}, nil, 0.85, 2, pagerank.ErrVertexOutOfRange},
		{"zero out-degree", nil, 0, []int32{1}, []int32{0}, nil, 0.85, 2, pagerank.ErrInvalidOutDegree},
		{"state length", []float64{0}, 0, nil, nil, nil, 0.85, 2, pagerank.ErrDimensionMismatch},
		{"previous length", nil, 0, nil, nil, []float64{1, 2, 3}, 0.85, 2, pagerank.ErrDimensionMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pagerank.ComputeTransition(tc.state, tc.vertex, tc.in, tc.deg, tc.prev, tc.d, tc.n)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMergeIsSum(t *testing.T) {
	a := []float64{0.1, 0, 0.3}
	b := []float64{0, 0.2, 0.05}
	m, err := pagerank.Merge(a, b)
	require.NoError(t, err)
	require.Equal(t, []float64{0.1 + 0, 0 + 0.2, 0.3 + 0.05}, m)

	m, err = pagerank.ComputeMergeStates(nil, b)
	require.NoError(t, err)
	require.Equal(t, b, m)
	m, err = pagerank.Merge(a, []float64{})
	require.NoError(t, err)
	require.Equal(t, a, m)

	_, err = pagerank.Merge([]float64{1}, []float64{1, 2})
	require.ErrorIs(t, err, pagerank.ErrDimensionMismatch)
}

func TestFinalIdentity(t *testing.T) {
	s := []float64{0.25, 0.75}
	require.Equal(t, s, pagerank.Final(s))
	require.Equal(t, &s[0], &pagerank.ComputeFinal(s)[0])
}

func TestConvergedScenario(t *testing.T) {
	prev := []float64{0.5, 0.5}
	cur := []float64{0.50001, 0.49999}

	ok, err := pagerank.Converged(prev, cur, 0.001)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = pagerank.TestConvergence(prev, cur, 0.000001)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestConvergedEdgeCases(t *testing.T) {
	ok, err := pagerank.Converged(nil, []float64{1}, 1)
	require.NoError(t, err)
	require.False(t, ok, "no baseline in the first round")

	_, err = pagerank.Converged([]float64{1}, []float64{1, 2}, 1)
	require.ErrorIs(t, err, pagerank.ErrDimensionMismatch)

	_, err = pagerank.Converged([]float64{1}, []float64{1}, -1)
	require.ErrorIs(t, err, pagerank.ErrInvalidThreshold)

	ok, err = pagerank.Converged([]float64{1, 2}, []float64{1, 2}, 0)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUniform(t *testing.T) {
	require.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, pagerank.Uniform(4))
}
