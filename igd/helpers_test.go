package igd_test

import (
	"testing"

	"github.com/katalvlaran/lvlagg/igd"
	"github.com/katalvlaran/lvlagg/igd/task"
	"github.com/katalvlaran/lvlagg/matrix"
	"github.com/stretchr/testify/require"
)

type (
	engine = igd.IGD[*matrix.Dense, []float64, float64]
	state  = igd.State[*matrix.Dense]
)

// vec allocates a column vector or fails the test.
func vec(t testing.TB, vals ...float64) *matrix.Dense {
	t.Helper()
	v, err := matrix.NewVector(vals)
	require.NoError(t, err)

	return v
}

// newEngine builds a least-squares engine.
func newEngine(t testing.TB, opts ...igd.Option) *engine {
	t.Helper()
	e, err := igd.New[*matrix.Dense, []float64, float64](task.LeastSquares{}, opts...)
	require.NoError(t, err)

	return e
}

// stateWith returns a state whose accumulated model is incr over rows rows.
func stateWith(t testing.TB, rows uint64, incr ...float64) *state {
	t.Helper()
	s, err := igd.NewState(vec(t, make([]float64, len(incr))...), igd.Hyper{Stepsize: 0.1, BatchSize: 2, NEpochs: 1})
	require.NoError(t, err)
	require.NoError(t, s.Algo.IncrModel.CopyFrom(vec(t, incr...)))
	s.Algo.NumRows = rows

	return s
}

// requireVec asserts that m holds want element-wise within 1e-12.
func requireVec(t *testing.T, want []float64, m *matrix.Dense) {
	t.Helper()
	require.InDeltaSlice(t, want, m.Data(), 1e-12)
}

// recorder is a batch-capable task that records visited sub-batches.
// Row i of IndVar carries i in column 0, so the first element names the span.
// Its loss is the sub-batch row count and it adds 1 to the model per call.
type recorder struct {
	visits []int
}

func (r *recorder) GradientInPlace(model *matrix.Dense, _ []float64, _ float64, stepsize float64) error {
	model.Data()[0] += stepsize
	return nil
}

func (r *recorder) Loss(_ *matrix.Dense, _ []float64, _ float64) (float64, error) { return 1, nil }

func (r *recorder) LossAndUpdateModel(model *matrix.Dense, x, _ *matrix.Dense, _ float64) (float64, error) {
	first, err := x.At(0, 0)
	if err != nil {
		return 0, err
	}
	r.visits = append(r.visits, int(first))
	model.Data()[0]++

	return float64(x.Rows()), nil
}

// indexedBatch returns a rows×1 batch whose row i holds i, and zero labels.
func indexedBatch(t testing.TB, rows int) igd.BatchTuple {
	t.Helper()
	xs := make([]float64, rows)
	for i := range xs {
		xs[i] = float64(i)
	}
	x, err := matrix.NewDenseFrom(rows, 1, xs)
	require.NoError(t, err)
	y, err := matrix.NewDense(rows, 1)
	require.NoError(t, err)

	return igd.BatchTuple{IndVar: x, DepVar: y}
}
