// Package lvlagg is an accumulation engine for iterative numerical
// algorithms over partitioned data: every partition is folded row by row
// into its own partial state, partial states are merged pairwise in any
// order or topology, and a final step publishes the round's result.
//
// 🚀 What is inside?
//
//	• matrix/     row-major Dense buffer and in-place kernels (scale, add, copy)
//	• igd/        incremental gradient descent engine, generic over the task policy
//	• igd/task/   least-squares and logistic-regression task policies
//	• pagerank/   one power-iteration step of PageRank as an aggregate
//	• graph/      thread-safe directed graph that feeds PageRank rows
//	• builder/    deterministic directed topologies (cycle, star, random, ...)
//	• round/      reference orchestration: parallel folds, merge topology, final
//	• config/     TOML file plus environment overrides
//	• cmd/lvlagg  CLI driving rounds until convergence or a round cap
//
// ✨ Guarantees
//
//   - Merging is order- and topology-independent: the merged model is the
//     row-weighted average of the partial models.
//   - The published model changes only in Final, so every row of a round
//     observes the same model when computing loss.
//   - Engine operations are synchronous, lock-free and perform no I/O; the
//     round package is the only place goroutines appear.
//
// The engine never decides how many rounds run. Orchestration (see round/
// and cmd/lvlagg) inspects the result of each round and starts the next.
package lvlagg
