// SPDX-License-Identifier: MIT

package dist

import (
	"errors"
	"math/big"
)

// Sentinel errors for distribution construction and evaluation.
// Wrap with fmt.Errorf("...: %w", ErrX) for context; match with errors.Is.
var (
	// ErrInvalidArgument indicates malformed combinator arguments, e.g. a
	// non-positive draw count, an empty Mixture operand list or a nil node.
	ErrInvalidArgument = errors.New("dist: invalid argument")

	// ErrDegenerate indicates an operation would divide by a zero total
	// weight: conditioning on an impossible event, or drawing more distinct
	// values than the source support holds.
	ErrDegenerate = errors.New("dist: degenerate distribution")

	// ErrTypeConsistency indicates an outcome without well-defined equality
	// and hashing, or a relational operator applied to operands that do not
	// support it.
	ErrTypeConsistency = errors.New("dist: type consistency")

	// ErrOutcomeLimit indicates Resolve drained more pairs than allowed by
	// WithMaxPairs.
	ErrOutcomeLimit = errors.New("dist: outcome limit exceeded")
)

// Value is a distribution outcome. It must be hashable and comparable with
// ==: numbers, strings, bools, Tuples, and comparable structs of those.
// Distributions never mutate values.
type Value = any

// Pair is one (value, weight) element of a distribution.
// Weight is meaningful only relative to the total of its distribution.
type Pair struct {
	Value  Value
	Weight *big.Int
}

// Distribution is the lazy contract every node implements.
//
// Generate pushes (value, weight) pairs to yield until the sequence ends or
// yield returns false. It is restartable: each call walks the immutable node
// graph afresh and reproduces the same sequence. Values may repeat; weights
// are strictly positive and must be treated as read-only by the consumer.
// Errors detected while generating (degeneracy, type errors) are returned.
//
// Children returns the directly referenced child nodes (nil for leaves).
//
// Clone returns a structurally independent copy of the subgraph rooted at
// the node. Implementations consult table first, then register the new node
// in table before cloning children, so a node shared by several parents is
// cloned exactly once.
type Distribution interface {
	Generate(yield func(v Value, w *big.Int) bool) error
	Children() []Distribution
	Clone(table CloneTable) Distribution
}
