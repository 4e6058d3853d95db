// SPDX-License-Identifier: MIT

package task

import (
	"fmt"

	"github.com/katalvlaran/lvlagg/igd"
	"github.com/katalvlaran/lvlagg/matrix"
)

// Compile-time assertions for both engine contracts.
var (
	_ igd.Task[*matrix.Dense, []float64, float64] = LeastSquares{}
	_ igd.BatchTask[*matrix.Dense]                = LeastSquares{}
)

// LeastSquares is the linear regression policy.
type LeastSquares struct{}

// GradientInPlace applies w ← w − η·(w·x − y)·x.
func (LeastSquares) GradientInPlace(model *matrix.Dense, x []float64, y float64, stepsize float64) error {
	r, err := residual(model, x, y, identity)
	if err != nil {
		return taskErrorf("LeastSquares.GradientInPlace", err)
	}
	axpyRow(model, -stepsize*r, x)

	return nil
}

// Loss returns ½(w·x − y)².
func (LeastSquares) Loss(model *matrix.Dense, x []float64, y float64) (float64, error) {
	r, err := residual(model, x, y, identity)
	if err != nil {
		return 0, taskErrorf("LeastSquares.Loss", err)
	}

	return 0.5 * r * r, nil
}

// LossAndUpdateModel takes one mean-gradient step over the sub-batch and
// returns its summed loss, evaluated before the step.
func (LeastSquares) LossAndUpdateModel(model *matrix.Dense, x, y *matrix.Dense, stepsize float64) (float64, error) {
	loss, err := batchStep(model, x, y, stepsize, identity, func(pred, label float64) (float64, error) {
		d := pred - label
		return 0.5 * d * d, nil
	})
	if err != nil {
		return 0, taskErrorf("LeastSquares.LossAndUpdateModel", err)
	}

	return loss, nil
}

// identity is the link function of linear regression.
func identity(v float64) float64 { return v }

// checkModel validates that model is a column vector of n features.
func checkModel(model *matrix.Dense, n int) error {
	if err := matrix.ValidateNotNil(model); err != nil {
		return err
	}
	if model.Cols() != 1 {
		return ErrModelShape
	}
	if model.Rows() != n {
		return fmt.Errorf("%d features for %d weights: %w", n, model.Rows(), ErrFeatureMismatch)
	}

	return nil
}

// residual returns link(w·x) − y. The row is lifted into a 1×n Dense so the
// dot product goes through MatVec and non-finite features are rejected.
func residual(model *matrix.Dense, x []float64, y float64, link func(float64) float64) (float64, error) {
	if err := checkModel(model, len(x)); err != nil {
		return 0, err
	}
	row, err := matrix.NewDenseFrom(1, len(x), x)
	if err != nil {
		return 0, err
	}
	dot, err := matrix.MatVec(row, model.Data())
	if err != nil {
		return 0, err
	}

	return link(dot[0]) - y, nil
}

// axpyRow applies w ← w + alpha·x on the model's backing storage.
func axpyRow(model *matrix.Dense, alpha float64, x []float64) {
	w := model.Data()
	for i, xi := range x {
		w[i] += alpha * xi
	}
}

// batchStep is the shared mini-batch routine:
//   - pred = link(X·w), resid = pred − Y;
//   - loss = Σ rowLoss(pred_i, y_i);
//   - w ← w − (η/rows)·Xᵀ·resid.
func batchStep(
	model, x, y *matrix.Dense,
	stepsize float64,
	link func(float64) float64,
	rowLoss func(pred, label float64) (float64, error),
) (float64, error) {
	if err := matrix.ValidateMulCompatible(x, model); err != nil {
		return 0, err
	}
	if err := checkModel(model, x.Cols()); err != nil {
		return 0, err
	}
	if y.Cols() != 1 || y.Rows() != x.Rows() {
		return 0, matrix.ErrDimensionMismatch
	}

	pred, err := matrix.Mul(x, model)
	if err != nil {
		return 0, err
	}
	if err = pred.Apply(func(_, _ int, v float64) float64 { return link(v) }); err != nil {
		return 0, err
	}

	var loss, l float64
	labels := y.Data()
	for i, p := range pred.Data() {
		if l, err = rowLoss(p, labels[i]); err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		loss += l
	}

	resid, err := matrix.Sub(pred, y)
	if err != nil {
		return 0, err
	}
	xt, err := matrix.Transpose(x)
	if err != nil {
		return 0, err
	}
	grad, err := matrix.Mul(xt, resid)
	if err != nil {
		return 0, err
	}
	if err = model.AxpyInPlace(-stepsize/float64(x.Rows()), grad); err != nil {
		return 0, err
	}

	return loss, nil
}
