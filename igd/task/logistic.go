// SPDX-License-Identifier: MIT

package task

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlagg/igd"
	"github.com/katalvlaran/lvlagg/matrix"
)

var (
	_ igd.Task[*matrix.Dense, []float64, float64] = Logistic{}
	_ igd.BatchTask[*matrix.Dense]                = Logistic{}
)

// probClamp keeps log loss finite for saturated predictions.
const probClamp = 1e-12

// Logistic is the binary logistic regression policy. Labels must be 0 or 1.
type Logistic struct{}

// GradientInPlace applies w ← w − η·(σ(w·x) − y)·x.
func (Logistic) GradientInPlace(model *matrix.Dense, x []float64, y float64, stepsize float64) error {
	if err := checkLabel(y); err != nil {
		return taskErrorf("Logistic.GradientInPlace", err)
	}
	r, err := residual(model, x, y, sigmoid)
	if err != nil {
		return taskErrorf("Logistic.GradientInPlace", err)
	}
	axpyRow(model, -stepsize*r, x)

	return nil
}

// Loss returns −[y·log σ(w·x) + (1−y)·log(1−σ(w·x))].
func (Logistic) Loss(model *matrix.Dense, x []float64, y float64) (float64, error) {
	if err := checkLabel(y); err != nil {
		return 0, taskErrorf("Logistic.Loss", err)
	}
	r, err := residual(model, x, y, sigmoid)
	if err != nil {
		return 0, taskErrorf("Logistic.Loss", err)
	}

	return logLoss(r+y, y), nil
}

// LossAndUpdateModel takes one mean-gradient step over the sub-batch and
// returns its summed log loss, evaluated before the step.
func (Logistic) LossAndUpdateModel(model *matrix.Dense, x, y *matrix.Dense, stepsize float64) (float64, error) {
	loss, err := batchStep(model, x, y, stepsize, sigmoid, func(p, label float64) (float64, error) {
		if err := checkLabel(label); err != nil {
			return 0, err
		}
		return logLoss(p, label), nil
	})
	if err != nil {
		return 0, taskErrorf("Logistic.LossAndUpdateModel", err)
	}

	return loss, nil
}

func sigmoid(v float64) float64 { return 1 / (1 + math.Exp(-v)) }

func logLoss(p, y float64) float64 {
	p = math.Min(math.Max(p, probClamp), 1-probClamp)
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

func checkLabel(y float64) error {
	if y != 0 && y != 1 {
		return fmt.Errorf("label %g: %w", y, ErrInvalidLabel)
	}

	return nil
}
