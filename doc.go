// Package lvprob is an in-memory algebra of discrete probability
// distributions with exact, rational probabilities.
//
// 🎲 What is lvprob?
//
//	A small, pure-Go library that brings together:
//		• Exact arithmetic: arbitrary-precision rationals and integer weights
//		• Canonical distributions: explicit value → weight mass functions
//		• Lazy nodes: mixtures, draws without replacement, predicates, conditioning
//		• Graph utilities: identity-preserving clone, walk, shared-node detection
//
// ✨ Why choose lvprob?
//
//   - Exact – no floating point anywhere on the probability path
//   - Lazy – build large combinatorial distributions cheaply, pay on Resolve
//   - Honest about dependence – a node referenced twice stays one random
//     quantity, also after cloning
//   - Pure Go – no cgo, no I/O
//
// Packages:
//
//	ratio/    — Rat (exact rational), GCD, LCM, LCMAll
//	dist/     — Distribution contract, Canonical, Mixture, DrawSequence,
//	            Predicate, Given, CloneTable, Resolve & queries
//	examples/ — runnable scenarios (coins, urns, dice)
//
// Quick example:
//
//	urn, _ := dist.Uniform(1, 2, 3)
//	draws, _ := dist.NewDrawSequence(urn, 2)
//	c, _ := dist.Resolve(draws)
//	fmt.Println(c) // {(1, 2): 1/6, (1, 3): 1/6, ...}
//
//	go get github.com/katalvlaran/lvprob
package lvprob
