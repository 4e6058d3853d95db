// SPDX-License-Identifier: MIT

package igd

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvlagg/matrix"
)

const opMiniBatch = "TransitionInMiniBatch"

// Span is a half-open row range [Start, End) of a batch.
type Span struct {
	Start int
	End   int
}

// Len returns the number of rows in the span.
func (s Span) Len() int { return s.End - s.Start }

// SubBatches partitions rows into ceil(rows/batchSize) contiguous spans.
// All spans hold batchSize rows except the last, which takes the remainder.
// If rows < batchSize a single span covers every row.
//
// Errors:
//   - ErrEmptyBatch when rows ≤ 0; ErrInvalidBatchSize when batchSize ≤ 0.
//
// Complexity: O(rows/batchSize).
func SubBatches(rows, batchSize int) ([]Span, error) {
	if rows <= 0 {
		return nil, ErrEmptyBatch
	}
	if batchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}
	n := rows / batchSize
	if rows%batchSize > 0 {
		n++
	}
	spans := make([]Span, n)
	for i := range spans {
		spans[i].Start = i * batchSize
		spans[i].End = spans[i].Start + batchSize
	}
	spans[n-1].End = rows

	return spans, nil
}

// TransitionInMiniBatch folds a whole batch of samples into state.
// MAIN DESCRIPTION:
//   - Splits the batch into SubBatches(rows, state.Task.BatchSize) and runs
//     state.Task.NEpochs passes over them. Every sub-batch calls the task's
//     LossAndUpdateModel on state.Algo.IncrModel with state.Task.Stepsize.
//
// Implementation:
//   - Stage 1: validate state, task capability, shapes and hyperparameters.
//   - Stage 2: build zero-copy row windows for every span once.
//   - Stage 3: for each epoch, visit windows in Options.BatchOrder; only the
//     total loss of epoch 0 is added to state.Task.Loss.
//
// Behavior highlights:
//   - The first epoch is taken as the round's loss diagnostic, so raising
//     NEpochs never changes state.Task.Loss for the same input.
//   - Shuffled order reshuffles per epoch from a generator seeded with
//     Options.Seed at every call; identical input gives an identical model.
//   - NumRows is not touched.
//   - A batch with zero rows is an error (ErrEmptyBatch), not a no-op; the
//     state is left untouched. A partition with nothing to fold passes no
//     tuple at all, which is the no-op path.
//
// Errors:
//   - ErrNilState, ErrBatchUnsupported, matrix.ErrNilMatrix, ErrRowMismatch,
//     ErrEmptyBatch, ErrInvalidBatchSize, ErrInvalidEpochs; task errors wrapped.
func (e *IGD[M, X, Y]) TransitionInMiniBatch(state *State[M], t BatchTuple) error {
	if state == nil {
		return igdErrorf(opMiniBatch, ErrNilState)
	}
	if e.batch == nil {
		return igdErrorf(opMiniBatch, ErrBatchUnsupported)
	}
	if t.IndVar == nil || t.DepVar == nil {
		return igdErrorf(opMiniBatch, matrix.ErrNilMatrix)
	}
	rows := t.IndVar.Rows()
	if rows != t.DepVar.Rows() {
		return igdErrorf(opMiniBatch, fmt.Errorf("%d vs %d: %w", rows, t.DepVar.Rows(), ErrRowMismatch))
	}
	if state.Task.NEpochs <= 0 {
		return igdErrorf(opMiniBatch, ErrInvalidEpochs)
	}
	spans, err := SubBatches(rows, state.Task.BatchSize)
	if err != nil {
		return igdErrorf(opMiniBatch, err)
	}

	xs := make([]*matrix.Dense, len(spans))
	ys := make([]*matrix.Dense, len(spans))
	for i, sp := range spans {
		if xs[i], err = t.IndVar.RowSlice(sp.Start, sp.End); err != nil {
			return igdErrorf(opMiniBatch, err)
		}
		if ys[i], err = t.DepVar.RowSlice(sp.Start, sp.End); err != nil {
			return igdErrorf(opMiniBatch, err)
		}
	}

	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	var rng *rand.Rand
	if e.opts.BatchOrder == Shuffled {
		rng = rand.New(rand.NewSource(e.opts.Seed))
	}

	var l float64
	for epoch := 0; epoch < state.Task.NEpochs; epoch++ {
		loss := 0.0
		if rng != nil {
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		for _, k := range order {
			l, err = e.batch.LossAndUpdateModel(state.Algo.IncrModel, xs[k], ys[k], state.Task.Stepsize)
			if err != nil {
				return igdErrorf(opMiniBatch, fmt.Errorf("epoch %d, rows [%d,%d): %w", epoch, spans[k].Start, spans[k].End, err))
			}
			loss += l
		}
		if epoch == 0 {
			state.Task.Loss += loss
		}
	}

	return nil
}
