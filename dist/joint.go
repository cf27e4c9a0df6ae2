// SPDX-License-Identifier: MIT

package dist

import (
	"errors"
	"math/big"

	"github.com/katalvlaran/lvprob/ratio"
)

// Joint evaluation.
//
// When two operands reach a common node, that node is one random quantity
// and must take the same outcome on both sides. The evaluator enumerates
// joint outcomes depth-first, fixing every node's outcome in env for as
// long as the enumeration below it runs, so that any later reference to
// the same instance reads the fixed outcome instead of enumerating again.
//
// Probabilities are exact rationals local to the enumeration:
//   - a leaf contributes w/T;
//   - a Mixture contributes rᵢ/Σr for the operand it selects;
//   - a Conditional keeps the outcomes where its predicate holds and, when
//     nested, renormalizes them by their mass under the current outcomes
//     (an impossible nested condition drops the whole joint outcome);
//   - any other node (DrawSequence, foreign implementations) is resolved
//     and treated as a leaf. DrawSequence clones its source, so its draws
//     never alias the source's outcome.

// errStopWalk ends a Walk early without reporting an error.
var errStopWalk = errors.New("dist: stop walk")

// shares reports whether the graphs rooted at a and b have a node in common.
func shares(a, b Distribution) bool {
	if a == nil || b == nil {
		return false
	}
	seen := make(map[Distribution]struct{})
	for _, n := range Nodes(a) {
		seen[n] = struct{}{}
	}
	found := false
	_ = Walk(b, func(n Distribution) error {
		if _, ok := seen[n]; ok {
			found = true
			return errStopWalk
		}
		return nil
	})

	return found
}

type probYield func(v Value, p *big.Rat) bool

type evaluator struct {
	env   map[Distribution]Value     // outcomes fixed on the current path
	atoms map[Distribution]*Canonical // resolved opaque nodes
	err   error
}

func newEvaluator() *evaluator {
	return &evaluator{
		env:   make(map[Distribution]Value),
		atoms: make(map[Distribution]*Canonical),
	}
}

var ratOne = big.NewRat(1, 1)

func (e *evaluator) fail(err error) bool {
	if e.err == nil {
		e.err = err
	}

	return false
}

// bind fixes d = v while yield runs.
func (e *evaluator) bind(d Distribution, v Value, p *big.Rat, yield probYield) bool {
	e.env[d] = v
	ok := yield(v, p)
	delete(e.env, d)

	return ok
}

// eval enumerates the outcomes of d consistent with env. It returns false
// when the consumer stopped or an error was recorded in e.err.
func (e *evaluator) eval(d Distribution, yield probYield) bool {
	if v, ok := e.env[d]; ok {
		return yield(v, ratOne)
	}
	switch n := d.(type) {
	case *Canonical:
		return e.evalLeaf(n, n, yield)
	case *Mixture:
		return e.evalMixture(n, yield)
	case *Predicate:
		return e.evalPredicate(n, yield)
	case *Conditional:
		return e.evalConditional(n, true, yield)
	}
	c, ok := e.atoms[d]
	if !ok {
		var err error
		if c, err = Resolve(d); err != nil {
			return e.fail(err)
		}
		e.atoms[d] = c
	}

	return e.evalLeaf(d, c, yield)
}

func (e *evaluator) evalLeaf(d Distribution, c *Canonical, yield probYield) bool {
	for i, v := range c.values {
		if !e.bind(d, v, new(big.Rat).SetFrac(c.weights[i], c.total), yield) {
			return false
		}
	}

	return true
}

func (e *evaluator) evalMixture(m *Mixture, yield probYield) bool {
	for i, src := range m.sources {
		share := new(big.Rat).SetFrac(m.ratios[i], m.ratioSum)
		ok := e.eval(src, func(v Value, p *big.Rat) bool {
			return e.bind(m, v, new(big.Rat).Mul(p, share), yield)
		})
		if !ok {
			return false
		}
	}

	return true
}

func (e *evaluator) evalPredicate(p *Predicate, yield probYield) bool {
	emit := func(a, b Value, w *big.Rat) bool {
		ok, err := p.holds(a, b)
		if err != nil {
			return e.fail(err)
		}
		return e.bind(p, ok, w, yield)
	}

	return e.eval(p.lhs, func(a Value, pa *big.Rat) bool {
		if p.rhs == nil {
			return emit(a, p.constant, pa)
		}
		// A rhs already fixed by lhs (same instance or a shared node) is
		// read back from env here.
		return e.eval(p.rhs, func(b Value, pb *big.Rat) bool {
			return emit(a, b, new(big.Rat).Mul(pa, pb))
		})
	})
}

func (e *evaluator) evalConditional(c *Conditional, normalize bool, yield probYield) bool {
	kept := func(emit probYield) bool {
		return e.eval(c.base, func(v Value, pv *big.Rat) bool {
			return e.eval(c.pred, func(t Value, pt *big.Rat) bool {
				if t != true {
					return true
				}
				return e.bind(c, v, new(big.Rat).Mul(pv, pt), emit)
			})
		})
	}
	if !normalize {
		return kept(yield)
	}

	z := new(big.Rat)
	if !kept(func(_ Value, p *big.Rat) bool {
		z.Add(z, p)
		return true
	}) {
		return false
	}
	if z.Sign() == 0 {
		return true
	}

	return kept(func(v Value, p *big.Rat) bool {
		return yield(v, new(big.Rat).Quo(p, z))
	})
}

// jointGenerate enumerates d jointly and yields integer weights: every
// joint probability is scaled by the LCM of all their denominators, which
// a first pass collects.
func jointGenerate(d Distribution, yield func(Value, *big.Int) bool) error {
	e := newEvaluator()
	top := func(emit probYield) bool {
		if c, ok := d.(*Conditional); ok {
			// The outermost condition needs no renormalization: consumers
			// divide by the restricted total.
			return e.evalConditional(c, false, emit)
		}
		return e.eval(d, emit)
	}

	scale := big.NewInt(1)
	top(func(_ Value, p *big.Rat) bool {
		scale = ratio.LCM(scale, p.Denom())
		return true
	})
	if e.err != nil {
		return e.err
	}
	top(func(v Value, p *big.Rat) bool {
		w := new(big.Int).Quo(scale, p.Denom())
		return yield(v, w.Mul(w, p.Num()))
	})

	return e.err
}
