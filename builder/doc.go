// Package builder generates deterministic directed graphs for PageRank runs,
// tests and benchmarks.
//
// Every topology is a Constructor; BuildGraph creates a graph.Graph and
// applies constructors in order. Vertex IDs come from the configured IDFn
// (decimal by default) and stochastic constructors draw from a seeded
// *rand.Rand, so equal inputs and options always produce equal graphs.
//
// Parse maps a short textual form such as "cycle:10" or "random:100:0.05"
// to a Constructor; the lvlagg CLI uses it for --generate.
package builder
