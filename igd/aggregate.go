// SPDX-License-Identifier: MIT

package igd

// Aggregate adapts the engine to a row-at-a-time round: every row is scored
// against the published model, folded with Transition and counted; partial
// states are combined with Merge plus caller-side count bookkeeping.
//
// Base carries the published model and hyperparameters of the previous
// round; Init seeds each partition from it.
type Aggregate[M Model, X, Y any] struct {
	Engine *IGD[M, X, Y]
	Base   *State[M]
}

// Init returns a fresh accumulator starting from Base's published model.
func (a Aggregate[M, X, Y]) Init() (*State[M], error) {
	if a.Base == nil {
		return nil, igdErrorf("Init", ErrNilState)
	}

	return NewState(a.Base.Task.Model, a.Base.Hyper())
}

// Transition scores and folds one row, then counts it.
func (a Aggregate[M, X, Y]) Transition(s *State[M], t Tuple[X, Y]) (*State[M], error) {
	if err := a.Engine.AccumulateLoss(s, t); err != nil {
		return nil, err
	}
	if err := a.Engine.Transition(s, t); err != nil {
		return nil, err
	}
	s.Algo.NumRows++

	return s, nil
}

// Merge folds right into left and combines the counts Merge leaves alone.
func (a Aggregate[M, X, Y]) Merge(left, right *State[M]) (*State[M], error) {
	if right == nil {
		return nil, igdErrorf(opMerge, ErrNilState)
	}
	if err := a.Engine.Merge(left, right.Const()); err != nil {
		return nil, err
	}
	left.Algo.NumRows += right.Algo.NumRows
	left.Task.Loss += right.Task.Loss

	return left, nil
}

// Final publishes the merged model.
func (a Aggregate[M, X, Y]) Final(s *State[M]) (*State[M], error) {
	if err := a.Engine.Final(s); err != nil {
		return nil, err
	}

	return s, nil
}

// BatchAggregate is the mini-batch counterpart of Aggregate: every row is a
// BatchTuple and partial states are combined with the self-counting
// MergeInPlace.
type BatchAggregate[M Model, X, Y any] struct {
	Engine *IGD[M, X, Y]
	Base   *State[M]
}

// Init returns a fresh accumulator starting from Base's published model.
func (a BatchAggregate[M, X, Y]) Init() (*State[M], error) {
	return Aggregate[M, X, Y](a).Init()
}

// Transition folds one batch and counts its rows.
func (a BatchAggregate[M, X, Y]) Transition(s *State[M], t BatchTuple) (*State[M], error) {
	if err := a.Engine.TransitionInMiniBatch(s, t); err != nil {
		return nil, err
	}
	s.Algo.NumRows += uint64(t.IndVar.Rows())

	return s, nil
}

// Merge folds right into left; MergeInPlace maintains the counts.
func (a BatchAggregate[M, X, Y]) Merge(left, right *State[M]) (*State[M], error) {
	if right == nil {
		return nil, igdErrorf(opMergeInPlace, ErrNilState)
	}
	if err := a.Engine.MergeInPlace(left, right.Const()); err != nil {
		return nil, err
	}

	return left, nil
}

// Final publishes the merged model.
func (a BatchAggregate[M, X, Y]) Final(s *State[M]) (*State[M], error) {
	return Aggregate[M, X, Y](a).Final(s)
}
