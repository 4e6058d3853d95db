// SPDX-License-Identifier: MIT

package igd

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlagg/matrix"
)

// Sentinel errors returned by the engine.
var (
	// ErrNilTask indicates that New was called with a nil task policy.
	ErrNilTask = errors.New("igd: task is nil")

	// ErrNilState indicates that a nil *State was passed to an engine operation.
	ErrNilState = errors.New("igd: state is nil")

	// ErrRowMismatch indicates that the independent and dependent batches
	// don't have the same number of rows.
	ErrRowMismatch = errors.New("igd: independent and dependent batches have different row counts")

	// ErrInvalidBatchSize indicates a batch size of zero or less.
	ErrInvalidBatchSize = errors.New("igd: batch size must be positive")

	// ErrInvalidEpochs indicates an epoch count of zero or less.
	ErrInvalidEpochs = errors.New("igd: number of epochs must be positive")

	// ErrEmptyBatch indicates a batch without rows.
	ErrEmptyBatch = errors.New("igd: batch has no rows")

	// ErrBatchUnsupported indicates that the task policy has no mini-batch routine.
	ErrBatchUnsupported = errors.New("igd: task does not support mini-batch updates")

	// ErrModelType indicates that Clone returned a value of another concrete type.
	ErrModelType = errors.New("igd: cloned model has unexpected type")
)

// igdErrorf wraps err with an operation tag, preserving the sentinel via %w.
func igdErrorf(tag string, err error) error {
	return fmt.Errorf("igd.%s: %w", tag, err)
}

// Model is the capability set the engine needs from a model value: matrix
// access plus the three in-place kernels used by merge and final.
// *matrix.Dense satisfies it.
type Model interface {
	matrix.Matrix
	ScaleInPlace(alpha float64) error
	AddInPlace(b matrix.Matrix) error
	CopyFrom(src matrix.Matrix) error
}

// Task is the policy of one model family for single-row updates.
//
// GradientInPlace applies one gradient step to model using the effective
// stepsize (the state's stepsize times the row weight). Loss evaluates the
// loss of one row against model without mutating it.
type Task[M Model, X, Y any] interface {
	GradientInPlace(model M, x X, y Y, stepsize float64) error
	Loss(model M, x X, y Y) (float64, error)
}

// BatchTask is the optional mini-batch extension of a Task. It computes the
// loss of a sub-batch and updates model in place, returning that loss.
type BatchTask[M Model] interface {
	LossAndUpdateModel(model M, x, y *matrix.Dense, stepsize float64) (float64, error)
}

// Tuple is one input row: independent variable, dependent variable and the
// row weight that scales the stepsize.
type Tuple[X, Y any] struct {
	IndVar X
	DepVar Y
	Weight float64
}

// BatchTuple is one input row carrying a whole batch of samples:
// IndVar is rows×features and DepVar is rows×outputs.
type BatchTuple struct {
	IndVar *matrix.Dense
	DepVar *matrix.Dense
}

// AlgoState is the region of a State owned by the accumulation algorithm.
type AlgoState[M Model] struct {
	IncrModel M      // model being accumulated this round
	NumRows   uint64 // rows folded into IncrModel since creation; merge weight
}

// TaskState is the region of a State read by the task policy.
// Model is the published, round-stable model: only Final writes it.
type TaskState[M Model] struct {
	Model     M
	Stepsize  float64
	BatchSize int
	NEpochs   int
	Loss      float64
}

// State is the per-partition, per-round accumulator.
type State[M Model] struct {
	Algo AlgoState[M]
	Task TaskState[M]
}

// Hyper groups the hyperparameters copied into every new State.
type Hyper struct {
	Stepsize  float64
	BatchSize int
	NEpochs   int
}

// NewState creates an accumulator for a round that starts from model.
// Task.Model and Algo.IncrModel receive two independent deep copies of model,
// so the caller keeps ownership of the argument.
func NewState[M Model](model M, hp Hyper) (*State[M], error) {
	published, err := cloneModel(model)
	if err != nil {
		return nil, igdErrorf("NewState", err)
	}
	incr, err := cloneModel(model)
	if err != nil {
		return nil, igdErrorf("NewState", err)
	}

	return &State[M]{
		Algo: AlgoState[M]{IncrModel: incr},
		Task: TaskState[M]{
			Model:     published,
			Stepsize:  hp.Stepsize,
			BatchSize: hp.BatchSize,
			NEpochs:   hp.NEpochs,
		},
	}, nil
}

// Hyper returns the hyperparameters held by s.
func (s *State[M]) Hyper() Hyper {
	return Hyper{Stepsize: s.Task.Stepsize, BatchSize: s.Task.BatchSize, NEpochs: s.Task.NEpochs}
}

// Const returns a read-only view of s.
func (s *State[M]) Const() ConstState[M] { return ConstState[M]{s: s} }

// ConstState is a read-only view over a State, used as the "other" side of a
// merge. The view shares storage with the State; callers must not mutate the
// returned models.
type ConstState[M Model] struct {
	s *State[M]
}

// IncrModel returns the accumulated model of the viewed state.
func (c ConstState[M]) IncrModel() M { return c.s.Algo.IncrModel }

// NumRows returns the row count of the viewed state.
func (c ConstState[M]) NumRows() uint64 { return c.s.Algo.NumRows }

// Model returns the published model of the viewed state.
func (c ConstState[M]) Model() M { return c.s.Task.Model }

// Loss returns the accumulated loss of the viewed state.
func (c ConstState[M]) Loss() float64 { return c.s.Task.Loss }

// valid reports whether the view points at a state.
func (c ConstState[M]) valid() bool { return c.s != nil }

// cloneModel deep-copies m and recovers the concrete model type.
func cloneModel[M Model](m M) (M, error) {
	var zero M
	if err := matrix.ValidateNotNil(m); err != nil {
		return zero, err
	}
	cp, ok := m.Clone().(M)
	if !ok {
		return zero, ErrModelType
	}

	return cp, nil
}
