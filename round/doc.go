// Package round is the reference orchestration of one accumulation round:
// every partition is folded by its own goroutine, the partial states are
// merged in a sequential chain or a binary tree, and Final runs once on the
// surviving state.
//
// Aggregates from igd and pagerank plug in through the Aggregate interface.
// Logging and Metrics wrap an Aggregate the same way service middlewares
// wrap a service; the Runner itself logs one line per round and traces
// folds, merges and the final step.
//
// The package never decides how many rounds run. Callers inspect the Result
// of each round and start the next one.
package round
