// Package dist implements an algebra of discrete probability distributions
// with exact (rational) probabilities and lazy evaluation.
//
// What:
//
//   - Canonical: the resolved (value → positive integer weight) form. Every
//     distribution can be resolved to one; a Canonical is also a leaf node.
//   - Distribution: the lazy contract. A node pushes (value, weight) pairs
//     from Generate without materializing its mass function. Nodes are
//     immutable and Generate is restartable.
//   - Mixture: the equal-weight (or integer-weighted) average of several
//     distributions, kept on integers through an LCM rescaling.
//   - DrawSequence: ordered k-tuples of distinct values drawn without
//     replacement, computed by recursive exclusion.
//   - Predicate / Conditional: relational comparisons as {true,false}
//     distributions, and Given to restrict a distribution to the outcomes
//     where a predicate holds.
//   - CloneTable / CloneGraph / Walk: graph utilities. Composite nodes
//     reference other node instances; a node referenced twice is one random
//     quantity (a dependence), and cloning keeps it shared.
//
// Why:
//
//   - Probabilities never drift: weights are big.Int, probabilities are
//     ratio.Rat.
//   - Construction is cheap; cost is paid only when someone drains a node.
//
// Query:
//
//	Resolve(d, opts...)     (*Canonical, error)   eager, aggregates duplicates
//	ProbabilityOf(d, v)     (ratio.Rat, error)
//	Support(d)              iter.Seq2[Value, error]  distinct values, lazy
//	Pairs(d)                iter.Seq2[Pair, error]   raw pairs, lazy
//	Total(d), Mean(d)
//
// Errors:
//
//   - ErrInvalidArgument  malformed combinator arguments
//   - ErrDegenerate       zero total weight (impossible conditioning,
//     exhausted draw source)
//   - ErrTypeConsistency  unhashable outcome, or unordered operands
//   - ErrOutcomeLimit     Resolve pair bound exceeded
//
// Degeneracy is usually detected only when a node is drained, not when it
// is built. Call Resolve to validate eagerly.
//
// Concurrency: nodes are immutable, so concurrent reads are safe; the
// package itself starts no goroutines and performs no I/O.
package dist
