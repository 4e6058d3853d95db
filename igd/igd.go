// SPDX-License-Identifier: MIT

package igd

import "github.com/katalvlaran/lvlagg/matrix"

// Operation tags used in error wrapping.
const (
	opTransition     = "Transition"
	opMerge          = "Merge"
	opMergeInPlace   = "MergeInPlace"
	opFinal          = "Final"
	opAccumulateLoss = "AccumulateLoss"
)

// IGD is the incremental gradient descent engine for one task policy.
// It holds no per-round data; every operation works on the State passed in,
// so one engine may serve any number of partitions concurrently.
type IGD[M Model, X, Y any] struct {
	task  Task[M, X, Y]
	batch BatchTask[M] // nil when the task has no mini-batch routine
	opts  Options
}

// New creates an engine for task. Mini-batch support is detected once here:
// if task also implements BatchTask[M], TransitionInMiniBatch uses it.
func New[M Model, X, Y any](task Task[M, X, Y], opts ...Option) (*IGD[M, X, Y], error) {
	if task == nil {
		return nil, ErrNilTask
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &IGD[M, X, Y]{task: task, opts: cfg}
	if bt, ok := task.(BatchTask[M]); ok {
		e.batch = bt
	}

	return e, nil
}

// Options returns the engine configuration.
func (e *IGD[M, X, Y]) Options() Options { return e.opts }

// SupportsMiniBatch reports whether TransitionInMiniBatch is available.
func (e *IGD[M, X, Y]) SupportsMiniBatch() bool { return e.batch != nil }

// Transition folds one row into state.
// MAIN DESCRIPTION:
//   - Applies the task's gradient rule in place to state.Algo.IncrModel with
//     effective stepsize state.Task.Stepsize * t.Weight.
//
// Behavior highlights:
//   - Does not touch NumRows; counting rows is the caller's bookkeeping.
//   - Never writes state.Task.Model.
//
// Errors:
//   - ErrNilState; any task error, wrapped.
func (e *IGD[M, X, Y]) Transition(state *State[M], t Tuple[X, Y]) error {
	if state == nil {
		return igdErrorf(opTransition, ErrNilState)
	}
	if err := e.task.GradientInPlace(state.Algo.IncrModel, t.IndVar, t.DepVar, state.Task.Stepsize*t.Weight); err != nil {
		return igdErrorf(opTransition, err)
	}

	return nil
}

// AccumulateLoss adds the weighted loss of one row, evaluated against the
// published model state.Task.Model, to state.Task.Loss.
// It reads nothing that Transition writes, so rows may be scored before or
// after they are folded within the same round.
func (e *IGD[M, X, Y]) AccumulateLoss(state *State[M], t Tuple[X, Y]) error {
	if state == nil {
		return igdErrorf(opAccumulateLoss, ErrNilState)
	}
	l, err := e.task.Loss(state.Task.Model, t.IndVar, t.DepVar)
	if err != nil {
		return igdErrorf(opAccumulateLoss, err)
	}
	state.Task.Loss += l * t.Weight

	return nil
}

// Merge folds other into state by row-weighted model averaging.
// MAIN DESCRIPTION:
//   - state.Algo.IncrModel ← (a·M_state + b·M_other)/(a+b) with a, b the row counts.
//
// Implementation:
//   - Stage 1: state has zero rows → copy other's model (seeds an empty side).
//   - Stage 2: other has zero rows → leave state untouched.
//   - Stage 3: scale by a/b, add other, scale by b/(a+b) on state's buffer only.
//
// Behavior highlights:
//   - NumRows and Loss are NOT combined; the caller adds them.
//   - other's buffers are only read; after the copy in Stage 1 the two
//     states still own distinct buffers.
//
// Errors:
//   - ErrNilState; matrix.ErrDimensionMismatch when the models differ in shape.
func (e *IGD[M, X, Y]) Merge(state *State[M], other ConstState[M]) error {
	if state == nil || !other.valid() {
		return igdErrorf(opMerge, ErrNilState)
	}
	if state.Algo.NumRows == 0 {
		if err := state.Algo.IncrModel.CopyFrom(other.IncrModel()); err != nil {
			return igdErrorf(opMerge, err)
		}
		return nil
	}
	if other.NumRows() == 0 {
		return nil
	}

	a, b := float64(state.Algo.NumRows), float64(other.NumRows())
	if err := average(state.Algo.IncrModel, other.IncrModel(), a, b); err != nil {
		return igdErrorf(opMerge, err)
	}

	return nil
}

// MergeInPlace is the self-counting merge variant.
// MAIN DESCRIPTION:
//   - Same zero guards and the same weighted average as Merge, with each
//     side's weight taken as 2·NumRows. The doubling is done after conversion
//     to float64, so it cannot overflow and cancels exactly in both ratios.
//
// Behavior highlights:
//   - Also adds other's NumRows and Loss into state, so state reflects both
//     partitions afterwards.
//
// Errors:
//   - ErrNilState; matrix.ErrDimensionMismatch when the models differ in shape.
func (e *IGD[M, X, Y]) MergeInPlace(state *State[M], other ConstState[M]) error {
	if state == nil || !other.valid() {
		return igdErrorf(opMergeInPlace, ErrNilState)
	}
	switch {
	case state.Algo.NumRows == 0:
		if err := state.Algo.IncrModel.CopyFrom(other.IncrModel()); err != nil {
			return igdErrorf(opMergeInPlace, err)
		}
	case other.NumRows() == 0:
		return nil
	default:
		left := float64(state.Algo.NumRows) + float64(state.Algo.NumRows)
		right := float64(other.NumRows()) + float64(other.NumRows())
		if err := average(state.Algo.IncrModel, other.IncrModel(), left, right); err != nil {
			return igdErrorf(opMergeInPlace, err)
		}
	}
	state.Algo.NumRows += other.NumRows()
	state.Task.Loss += other.Loss()

	return nil
}

// Final publishes the round's model: state.Task.Model ← state.Algo.IncrModel.
// Must run exactly once per round, on the single surviving state.
// The two models keep distinct buffers.
func (e *IGD[M, X, Y]) Final(state *State[M]) error {
	if state == nil {
		return igdErrorf(opFinal, ErrNilState)
	}
	if err := state.Task.Model.CopyFrom(state.Algo.IncrModel); err != nil {
		return igdErrorf(opFinal, err)
	}

	return nil
}

// average computes dst ← (a·dst + b·src)/(a+b) with dst as the only mutable
// buffer. Requires a, b > 0. Shapes are checked before the first write so a
// failed merge leaves dst untouched.
func average[M Model](dst M, src M, a, b float64) error {
	if err := matrix.ValidateBinarySameShape(dst, src); err != nil {
		return err
	}
	if err := dst.ScaleInPlace(a / b); err != nil {
		return err
	}
	if err := dst.AddInPlace(src); err != nil {
		return err
	}

	return dst.ScaleInPlace(b / (a + b))
}
