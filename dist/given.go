// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"math/big"
)

// Conditional restricts a base distribution to the outcomes where a
// predicate holds. Weights are carried over (scaled only when the predicate
// involves another operand); no renormalization happens, since dividing by
// the smaller total already yields P(v | pred).
//
// When a predicate operand other than the base itself reaches a node of the
// base graph, base and predicate are enumerated jointly, so
// Given(Given(d, d != 1), d == 1) is a zero-probability event. A nested
// Conditional reached that way acts as an observation: its outcomes are
// renormalized under the outcomes already fixed around it.
type Conditional struct {
	base Distribution
	pred *Predicate
}

// Given returns base conditioned on pred.
//
// Resolving a Conditional whose predicate never holds reports ErrDegenerate
// (conditioning on a zero-probability event). Construction never fails for
// that reason; only nil arguments are rejected with ErrInvalidArgument.
func Given(base Distribution, pred *Predicate) (*Conditional, error) {
	if base == nil || pred == nil {
		return nil, fmt.Errorf("%w: given needs a base and a predicate", ErrInvalidArgument)
	}

	return &Conditional{base: base, pred: pred}, nil
}

// Generate yields every base pair whose predicate weight is non-zero.
func (c *Conditional) Generate(yield func(Value, *big.Int) bool) error {
	if c.joint() {
		return jointGenerate(c, yield)
	}
	truth, err := c.pred.bind(c.base)
	if err != nil {
		return err
	}
	var inner error
	err = c.base.Generate(func(v Value, w *big.Int) bool {
		var t *big.Int
		if t, inner = truth(v); inner != nil {
			return false
		}
		switch {
		case t.Sign() == 0:
			return true
		case t.Cmp(bigOne) == 0:
			return yield(v, w)
		}
		return yield(v, new(big.Int).Mul(w, t))
	})
	if err != nil {
		return err
	}

	return inner
}

// joint reports whether some predicate operand depends on the base through
// a node other than the base instance itself.
func (c *Conditional) joint() bool {
	for _, op := range c.pred.Children() {
		if !sameNode(op, c.base) && shares(op, c.base) {
			return true
		}
	}

	return false
}

// Children returns the base and the predicate.
func (c *Conditional) Children() []Distribution {
	return []Distribution{c.base, c.pred}
}

// Clone copies the conditional. Base and predicate go through one table, so
// a predicate over the base still refers to the cloned base.
func (c *Conditional) Clone(table CloneTable) Distribution {
	if out, ok := table.Lookup(c); ok {
		return out
	}
	out := &Conditional{}
	table[c] = out
	out.base = c.base.Clone(table)
	out.pred = c.pred.Clone(table).(*Predicate)

	return out
}

// Base returns the conditioned distribution.
func (c *Conditional) Base() Distribution { return c.base }

// Predicate returns the conditioning event.
func (c *Conditional) Predicate() *Predicate { return c.pred }
