// Package task provides concrete task policies for the igd engine.
//
// A policy supplies the gradient and loss formulas of one model family. The
// model is a features×1 column vector (*matrix.Dense); a single row is a
// feature slice and a scalar label; a mini-batch is a rows×features matrix
// and a rows×1 label matrix.
//
//	– LeastSquares: loss ½(w·x − y)², gradient (w·x − y)·x.
//	– Logistic:     labels in {0, 1}, log loss, gradient (σ(w·x) − y)·x.
//
// Both implement igd.Task and igd.BatchTask. Batch updates use the mean
// gradient of the sub-batch and return the summed loss.
package task
