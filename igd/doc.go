// Package igd implements incremental gradient descent as a partition-tolerant
// accumulator: every partition folds rows into its own State, partial states
// are merged by row-weighted model averaging, and Final publishes the
// accumulated model once per round.
//
// The engine is generic over the task policy that supplies the gradient and
// loss formulas of one model family (see igd/task). It never decides how many
// rounds run and never counts rows on behalf of the caller, with the single
// exception of MergeInPlace which maintains counts itself.
//
// Protocol (one round):
//
//  1. Each partition creates a State whose Algo.IncrModel starts from the
//     published model and whose NumRows is zero.
//  2. Transition (one row) or TransitionInMiniBatch (a whole batch) updates
//     Algo.IncrModel in place. Task.Model is never written here, so loss
//     computations of the same round all see the same base model.
//  3. Merge or MergeInPlace combines two partial states into one. The result
//     is (a·M_A + b·M_B)/(a+b) for any merge order or tree shape.
//  4. Final copies Algo.IncrModel into Task.Model.
//
// Merge arithmetic uses a single mutable buffer, rearranged as
//
//	(a·M_A + b·M_B)/(a+b) = (M_A·a/b + M_B)·b/(a+b)
//
// and executed as ScaleInPlace, AddInPlace, ScaleInPlace.
//
// Errors (sentinel):
//
//	– ErrNilTask          if New is called without a task.
//	– ErrNilState         if a nil *State is passed.
//	– ErrRowMismatch      if a batch's independent and dependent rows differ.
//	– ErrInvalidBatchSize if the batch size is not positive.
//	– ErrInvalidEpochs    if the epoch count is not positive.
//	– ErrEmptyBatch       if a batch holds no rows.
//	– ErrBatchUnsupported if the task does not implement BatchTask.
//	– ErrModelType        if Clone of a model does not return the model type.
//
// Complexity:
//
//	– Transition:            one task gradient call.
//	– Merge / MergeInPlace:  O(model size), no allocation.
//	– TransitionInMiniBatch: nEpochs · ceil(rows/batchSize) task calls; sub-batches are zero-copy windows.
//	– Final:                 O(model size), no allocation.
package igd
