package igd_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvlagg/igd"
	"github.com/katalvlaran/lvlagg/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNilTask(t *testing.T) {
	_, err := igd.New[*matrix.Dense, []float64, float64](nil)
	require.ErrorIs(t, err, igd.ErrNilTask)
}

func TestNewStateCopiesModel(t *testing.T) {
	m := vec(t, 1, 2)
	s, err := igd.NewState(m, igd.Hyper{Stepsize: 0.5, BatchSize: 4, NEpochs: 2})
	require.NoError(t, err)
	require.Equal(t, igd.Hyper{Stepsize: 0.5, BatchSize: 4, NEpochs: 2}, s.Hyper())

	require.NoError(t, m.Set(0, 0, 9))
	requireVec(t, []float64{1, 2}, s.Task.Model)
	requireVec(t, []float64{1, 2}, s.Algo.IncrModel)
	require.NotSame(t, s.Task.Model, s.Algo.IncrModel)
	require.Zero(t, s.Algo.NumRows)
}

func TestTransitionUpdatesIncrModelOnly(t *testing.T) {
	e := newEngine(t)
	s := stateWith(t, 0, 0, 0)

	// r = w·x − y = −1; w ← w − (0.1·2)·(−1)·x
	require.NoError(t, e.Transition(s, igd.Tuple[[]float64, float64]{IndVar: []float64{1, 2}, DepVar: 1, Weight: 2}))
	requireVec(t, []float64{0.2, 0.4}, s.Algo.IncrModel)
	requireVec(t, []float64{0, 0}, s.Task.Model)
	require.Zero(t, s.Algo.NumRows)

	require.ErrorIs(t, e.Transition(nil, igd.Tuple[[]float64, float64]{}), igd.ErrNilState)
	err := e.Transition(s, igd.Tuple[[]float64, float64]{IndVar: []float64{1}, DepVar: 1, Weight: 1})
	require.Error(t, err)
}

func TestAccumulateLossReadsPublishedModel(t *testing.T) {
	e := newEngine(t)
	s := stateWith(t, 0, 5, 5) // IncrModel far from Task.Model
	row := igd.Tuple[[]float64, float64]{IndVar: []float64{1, 1}, DepVar: 2, Weight: 3}

	require.NoError(t, e.AccumulateLoss(s, row))
	// Task.Model = 0: ½·(0−2)²·3 = 6
	require.InDelta(t, 6.0, s.Task.Loss, 1e-12)
}

func TestMergeWeightedAverage(t *testing.T) {
	e := newEngine(t)
	want := []float64{4, 8} // (2·[1,2] + 6·[5,10]) / 8

	a, b := stateWith(t, 2, 1, 2), stateWith(t, 6, 5, 10)
	require.NoError(t, e.Merge(a, b.Const()))
	requireVec(t, want, a.Algo.IncrModel)
	require.Equal(t, uint64(2), a.Algo.NumRows, "Merge leaves counts to the caller")
	requireVec(t, []float64{5, 10}, b.Algo.IncrModel)

	a, b = stateWith(t, 2, 1, 2), stateWith(t, 6, 5, 10)
	require.NoError(t, e.Merge(b, a.Const()))
	requireVec(t, want, b.Algo.IncrModel)
}

func TestMergeZeroRows(t *testing.T) {
	e := newEngine(t)

	empty, full := stateWith(t, 0, 7, 7), stateWith(t, 3, 1, 2)
	require.NoError(t, e.Merge(empty, full.Const()))
	require.Equal(t, []float64{1, 2}, empty.Algo.IncrModel.Data())
	require.NoError(t, full.Algo.IncrModel.Set(0, 0, 100))
	require.Equal(t, 1.0, empty.Algo.IncrModel.Data()[0], "copy must not alias")

	full, empty = stateWith(t, 3, 1, 2), stateWith(t, 0, 7, 7)
	require.NoError(t, e.Merge(full, empty.Const()))
	require.Equal(t, []float64{1, 2}, full.Algo.IncrModel.Data())
}

func TestMergeShapeMismatchLeavesStateUntouched(t *testing.T) {
	e := newEngine(t)
	a, b := stateWith(t, 1, 1, 2), stateWith(t, 1, 1, 2, 3)
	require.ErrorIs(t, e.Merge(a, b.Const()), matrix.ErrDimensionMismatch)
	require.Equal(t, []float64{1, 2}, a.Algo.IncrModel.Data())
	require.ErrorIs(t, e.Merge(a, igd.ConstState[*matrix.Dense]{}), igd.ErrNilState)
}

func TestMergeInPlaceMatchesMergeAndCounts(t *testing.T) {
	e := newEngine(t)
	a, b := stateWith(t, 2, 1, 2), stateWith(t, 6, 5, 10)
	a.Task.Loss, b.Task.Loss = 1.5, 2.5

	require.NoError(t, e.MergeInPlace(a, b.Const()))
	requireVec(t, []float64{4, 8}, a.Algo.IncrModel)
	require.Equal(t, uint64(8), a.Algo.NumRows)
	require.InDelta(t, 4.0, a.Task.Loss, 1e-12)

	empty := stateWith(t, 0, 0, 0)
	require.NoError(t, e.MergeInPlace(empty, a.Const()))
	requireVec(t, []float64{4, 8}, empty.Algo.IncrModel)
	require.Equal(t, uint64(8), empty.Algo.NumRows)

	require.NoError(t, e.MergeInPlace(a, stateWith(t, 0, 9, 9).Const()))
	require.Equal(t, uint64(8), a.Algo.NumRows)
}

func TestMergeInPlaceHugeRowCounts(t *testing.T) {
	e := newEngine(t)
	// 2·NumRows overflows uint64 but not float64.
	a, b := stateWith(t, math.MaxUint64/2+1, 0, 4), stateWith(t, math.MaxUint64/2+1, 2, 0)
	require.NoError(t, e.MergeInPlace(a, b.Const()))
	requireVec(t, []float64{1, 2}, a.Algo.IncrModel)
}

func TestMergeTopologyIndependent(t *testing.T) {
	e := newEngine(t)
	parts := func() []*state {
		return []*state{
			stateWith(t, 1, 1, 0),
			stateWith(t, 2, 0, 1),
			stateWith(t, 3, 2, 2),
			stateWith(t, 4, -1, 3),
		}
	}
	// Σ rows·model / Σ rows = ([1,0] + [0,2] + [6,6] + [−4,12]) / 10
	want := []float64{0.3, 2.0}

	merge := func(l, r *state) *state {
		require.NoError(t, e.Merge(l, r.Const()))
		l.Algo.NumRows += r.Algo.NumRows
		return l
	}

	seq := parts()
	acc := seq[0]
	for _, s := range seq[1:] {
		acc = merge(acc, s)
	}
	requireVec(t, want, acc.Algo.IncrModel)

	tree := parts()
	root := merge(merge(tree[3], tree[2]), merge(tree[1], tree[0]))
	requireVec(t, want, root.Algo.IncrModel)

	inPlace := parts()
	require.NoError(t, e.MergeInPlace(inPlace[0], inPlace[1].Const()))
	require.NoError(t, e.MergeInPlace(inPlace[2], inPlace[3].Const()))
	require.NoError(t, e.MergeInPlace(inPlace[2], inPlace[0].Const()))
	requireVec(t, want, inPlace[2].Algo.IncrModel)
	require.Equal(t, uint64(10), inPlace[2].Algo.NumRows)
}

func TestFinalPublishesWithoutAliasing(t *testing.T) {
	e := newEngine(t)
	s := stateWith(t, 1, 3, 4)
	require.NoError(t, e.Final(s))
	require.Equal(t, []float64{3, 4}, s.Task.Model.Data())

	require.NoError(t, s.Algo.IncrModel.Set(0, 0, -1))
	require.Equal(t, 3.0, s.Task.Model.Data()[0])
	require.ErrorIs(t, e.Final(nil), igd.ErrNilState)
}
