// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"math/big"
)

// Op is a relational operator.
type Op int

// Relational operators accepted by Compare and CompareDist.
const (
	OpEq Op = iota // ==
	OpNe           // !=
	OpLt           // <
	OpLe           // <=
	OpGt           // >
	OpGe           // >=
)

// String returns the operator symbol.
func (o Op) String() string {
	switch o {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	}

	return fmt.Sprintf("Op(%d)", int(o))
}

func (o Op) valid() bool { return o >= OpEq && o <= OpGe }

// Apply evaluates a o b. Equality works on any hashable values; ordering
// goes through CompareValues.
func (o Op) Apply(a, b Value) (bool, error) {
	switch o {
	case OpEq, OpNe:
		eq, err := EqualValues(a, b)
		if err != nil {
			return false, err
		}
		return eq == (o == OpEq), nil
	}
	c, err := CompareValues(a, b)
	if err != nil {
		return false, err
	}
	switch o {
	case OpLt:
		return c < 0, nil
	case OpLe:
		return c <= 0, nil
	case OpGt:
		return c > 0, nil
	case OpGe:
		return c >= 0, nil
	}

	return false, fmt.Errorf("%w: unknown operator %s", ErrInvalidArgument, o)
}

// Predicate is a two-valued distribution over {true, false} describing, for
// every outcome of its operand(s), whether a comparison holds.
//
// Operands are either a distribution and a constant, or two distributions.
// A node instance is one random quantity wherever it is referenced:
// CompareDist(d, op, d) is evaluated on the diagonal op(v, v), and operands
// that reach a common node (CompareDist(NewMixture(d, d), OpEq, d), or a
// Conditional over d compared with d) are enumerated jointly with that node
// fixed to one outcome. Operands with disjoint graphs are independent and
// range over their product.
type Predicate struct {
	lhs      Distribution
	op       Op
	rhs      Distribution // nil when comparing against constant
	constant Value
	negate   bool
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// Compare returns the predicate d op c.
//
// Errors:
//   - ErrInvalidArgument  d is nil or op is unknown
//   - ErrTypeConsistency  c is not hashable
func Compare(d Distribution, op Op, c Value) (*Predicate, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil operand for %s", ErrInvalidArgument, op)
	}
	if !op.valid() {
		return nil, fmt.Errorf("%w: unknown operator %s", ErrInvalidArgument, op)
	}
	if err := CheckValue(c); err != nil {
		return nil, err
	}

	return &Predicate{lhs: d, op: op, constant: c}, nil
}

// CompareDist returns the predicate a op b over two distributions.
func CompareDist(a Distribution, op Op, b Distribution) (*Predicate, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil operand for %s", ErrInvalidArgument, op)
	}
	if !op.valid() {
		return nil, fmt.Errorf("%w: unknown operator %s", ErrInvalidArgument, op)
	}

	return &Predicate{lhs: a, op: op, rhs: b}, nil
}

// Eq returns the predicate d == c.
func Eq(d Distribution, c Value) (*Predicate, error) { return Compare(d, OpEq, c) }

// Ne returns the predicate d != c.
func Ne(d Distribution, c Value) (*Predicate, error) { return Compare(d, OpNe, c) }

// Lt returns the predicate d < c.
func Lt(d Distribution, c Value) (*Predicate, error) { return Compare(d, OpLt, c) }

// Le returns the predicate d <= c.
func Le(d Distribution, c Value) (*Predicate, error) { return Compare(d, OpLe, c) }

// Gt returns the predicate d > c.
func Gt(d Distribution, c Value) (*Predicate, error) { return Compare(d, OpGt, c) }

// Ge returns the predicate d >= c.
func Ge(d Distribution, c Value) (*Predicate, error) { return Compare(d, OpGe, c) }

// Not returns the logical complement of p as a new node over the same
// operands.
func Not(p *Predicate) (*Predicate, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil predicate", ErrInvalidArgument)
	}
	out := *p
	out.negate = !p.negate

	return &out, nil
}

func (p *Predicate) holds(a, b Value) (bool, error) {
	ok, err := p.op.Apply(a, b)
	if err != nil {
		return false, err
	}

	return ok != p.negate, nil
}

func (p *Predicate) diagonal() bool { return p.rhs != nil && sameNode(p.lhs, p.rhs) }

// Generate yields (bool, weight) for every outcome (or outcome pair) of the
// operands.
func (p *Predicate) Generate(yield func(Value, *big.Int) bool) error {
	if p.rhs == nil || p.diagonal() {
		var inner error
		err := p.lhs.Generate(func(v Value, w *big.Int) bool {
			other := p.constant
			if p.rhs != nil {
				other = v
			}
			var ok bool
			if ok, inner = p.holds(v, other); inner != nil {
				return false
			}
			return yield(ok, w)
		})
		if err != nil {
			return err
		}
		return inner
	}

	if shares(p.lhs, p.rhs) {
		return jointGenerate(p, yield)
	}

	right, err := Resolve(p.rhs)
	if err != nil {
		return err
	}
	var inner error
	err = p.lhs.Generate(func(a Value, wa *big.Int) bool {
		for i, b := range right.values {
			var ok bool
			if ok, inner = p.holds(a, b); inner != nil {
				return false
			}
			if !yield(ok, new(big.Int).Mul(wa, right.weights[i])) {
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}

	return inner
}

// Children returns the operand distributions.
func (p *Predicate) Children() []Distribution {
	if p.rhs == nil {
		return []Distribution{p.lhs}
	}

	return []Distribution{p.lhs, p.rhs}
}

// Clone copies the predicate and its operand graph through table.
func (p *Predicate) Clone(table CloneTable) Distribution {
	if out, ok := table.Lookup(p); ok {
		return out
	}
	out := &Predicate{op: p.op, constant: p.constant, negate: p.negate}
	table[p] = out
	out.lhs = p.lhs.Clone(table)
	if p.rhs != nil {
		out.rhs = p.rhs.Clone(table)
	}

	return out
}

// Op returns the comparison operator.
func (p *Predicate) Op() Op { return p.op }

// Negated reports whether p is the complement of its comparison.
func (p *Predicate) Negated() bool { return p.negate }

// truthFunc returns, for an outcome v of base, the weight with which p holds
// once base is fixed to v.
type truthFunc func(v Value) (*big.Int, error)

// bind prepares p for conditioning base. Operands that are the base
// instance are bound to the base outcome; any other operand must be
// independent of base (see Conditional.joint) and is enumerated on its own. For a fixed binding the returned weights share one scale
// across all v, so w·truth(v) is proportional to P(v ∧ p).
func (p *Predicate) bind(base Distribution) (truthFunc, error) {
	lhsBound := sameNode(p.lhs, base)
	rhsBound := p.rhs != nil && sameNode(p.rhs, base)

	switch {
	case lhsBound && (p.rhs == nil || rhsBound):
		return func(v Value) (*big.Int, error) {
			other := p.constant
			if p.rhs != nil {
				other = v
			}
			ok, err := p.holds(v, other)
			if err != nil || !ok {
				return bigZero, err
			}
			return bigOne, nil
		}, nil

	case lhsBound || rhsBound:
		free := p.rhs
		if rhsBound {
			free = p.lhs
		}
		fc, err := Resolve(free)
		if err != nil {
			return nil, err
		}
		return func(v Value) (*big.Int, error) {
			sum := new(big.Int)
			for i, x := range fc.values {
				a, b := v, x
				if rhsBound {
					a, b = x, v
				}
				ok, err := p.holds(a, b)
				if err != nil {
					return nil, err
				}
				if ok {
					sum.Add(sum, fc.weights[i])
				}
			}
			return sum, nil
		}, nil
	}

	// p does not mention base: its truth weight is the same for every v.
	truth := new(big.Int)
	err := p.Generate(func(v Value, w *big.Int) bool {
		if v == true {
			truth.Add(truth, w)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	return func(Value) (*big.Int, error) { return truth, nil }, nil
}
