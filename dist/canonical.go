// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/katalvlaran/lvprob/ratio"
)

// Canonical is the resolved form of a distribution: unique values, each with
// a strictly positive integer weight, and total = sum(weights).
//
// Canonical is itself a leaf Distribution. Pairs are kept in first-occurrence
// order so that generation is deterministic. A Canonical is immutable after
// construction.
type Canonical struct {
	values  []Value
	weights []*big.Int
	index   map[Value]int
	total   *big.Int
}

// accumulator aggregates (value, weight) pairs into canonical form.
type accumulator struct {
	values  []Value
	weights []*big.Int
	index   map[Value]int
	total   *big.Int
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[Value]int), total: new(big.Int)}
}

// add folds (v, w) into the accumulator. w is copied, never retained.
func (a *accumulator) add(v Value, w *big.Int) error {
	if w == nil || w.Sign() < 0 {
		return fmt.Errorf("%w: negative or missing weight %v for outcome %v", ErrInvalidArgument, w, v)
	}
	if err := CheckValue(v); err != nil {
		return err
	}
	if w.Sign() == 0 {
		return nil
	}
	a.total.Add(a.total, w)
	if i, ok := a.index[v]; ok {
		a.weights[i].Add(a.weights[i], w)
		return nil
	}
	a.index[v] = len(a.values)
	a.values = append(a.values, v)
	a.weights = append(a.weights, new(big.Int).Set(w))

	return nil
}

func (a *accumulator) canonical() (*Canonical, error) {
	if a.total.Sign() == 0 {
		return nil, fmt.Errorf("%w: total weight is zero", ErrDegenerate)
	}

	return &Canonical{values: a.values, weights: a.weights, index: a.index, total: a.total}, nil
}

// New builds a Canonical from explicit pairs. Duplicate values are summed and
// zero weights dropped.
//
// Errors:
//   - ErrInvalidArgument  a weight is negative or nil
//   - ErrTypeConsistency  a value is not hashable
//   - ErrDegenerate       every weight is zero (or no pairs given)
func New(pairs ...Pair) (*Canonical, error) {
	acc := newAccumulator()
	for _, p := range pairs {
		if err := acc.add(p.Value, p.Weight); err != nil {
			return nil, err
		}
	}

	return acc.canonical()
}

// FromWeights builds a Canonical from parallel value and weight slices.
func FromWeights(values []Value, weights []int64) (*Canonical, error) {
	if len(values) != len(weights) {
		return nil, fmt.Errorf("%w: %d values but %d weights", ErrInvalidArgument, len(values), len(weights))
	}
	acc := newAccumulator()
	for i, v := range values {
		if err := acc.add(v, big.NewInt(weights[i])); err != nil {
			return nil, err
		}
	}

	return acc.canonical()
}

// FromProbabilities builds a Canonical from exact probabilities. The inputs
// are brought onto the LCM of their denominators; they need not sum to 1,
// in which case they are read as relative masses.
func FromProbabilities(values []Value, probs []ratio.Rat) (*Canonical, error) {
	if len(values) != len(probs) {
		return nil, fmt.Errorf("%w: %d values but %d probabilities", ErrInvalidArgument, len(values), len(probs))
	}
	if len(probs) == 0 {
		return nil, fmt.Errorf("%w: no outcomes", ErrDegenerate)
	}
	dens := make([]*big.Int, len(probs))
	for i, p := range probs {
		if p.Sign() < 0 {
			return nil, fmt.Errorf("%w: negative probability %s for outcome %v", ErrInvalidArgument, p, values[i])
		}
		dens[i] = p.Denom()
	}
	l, err := ratio.LCMAll(dens...)
	if err != nil {
		return nil, err
	}
	acc := newAccumulator()
	for i, p := range probs {
		// p = a/b, so p·L = a·(L/b) is an integer.
		w := new(big.Int).Quo(l, dens[i])
		w.Mul(w, p.Num())
		if err = acc.add(values[i], w); err != nil {
			return nil, err
		}
	}

	return acc.canonical()
}

// Uniform returns the distribution giving each listed value weight 1.
// Repeated values accumulate weight.
func Uniform(values ...Value) (*Canonical, error) {
	acc := newAccumulator()
	one := big.NewInt(1)
	for _, v := range values {
		if err := acc.add(v, one); err != nil {
			return nil, err
		}
	}

	return acc.canonical()
}

// Constant returns the point mass at v.
func Constant(v Value) (*Canonical, error) {
	return Uniform(v)
}

// Generate yields the stored pairs in insertion order.
func (c *Canonical) Generate(yield func(Value, *big.Int) bool) error {
	for i, v := range c.values {
		if !yield(v, c.weights[i]) {
			return nil
		}
	}

	return nil
}

// Children returns nil: a Canonical is a leaf.
func (c *Canonical) Children() []Distribution { return nil }

// Clone returns a new leaf instance. The backing pairs are immutable and
// therefore shared.
func (c *Canonical) Clone(table CloneTable) Distribution {
	if out, ok := table.Lookup(c); ok {
		return out
	}
	out := &Canonical{values: c.values, weights: c.weights, index: c.index, total: c.total}
	table[c] = out

	return out
}

func (c *Canonical) exactTotal() (*big.Int, error) { return c.total, nil }

// Len returns the number of distinct outcomes.
func (c *Canonical) Len() int { return len(c.values) }

// Total returns a copy of the total weight.
func (c *Canonical) Total() *big.Int { return new(big.Int).Set(c.total) }

// Weight returns a copy of the weight of v (0 when v is not an outcome).
func (c *Canonical) Weight(v Value) *big.Int {
	if CheckValue(v) != nil {
		return new(big.Int)
	}
	if i, ok := c.index[v]; ok {
		return new(big.Int).Set(c.weights[i])
	}

	return new(big.Int)
}

// Probability returns weight(v)/total exactly.
func (c *Canonical) Probability(v Value) ratio.Rat {
	return ratio.MustFromBig(c.Weight(v), c.total)
}

// Values returns the distinct outcomes in insertion order.
func (c *Canonical) Values() []Value {
	out := make([]Value, len(c.values))
	copy(out, c.values)

	return out
}

// Pairs returns the (value, weight) pairs with copied weights.
func (c *Canonical) Pairs() []Pair {
	out := make([]Pair, len(c.values))
	for i, v := range c.values {
		out[i] = Pair{Value: v, Weight: new(big.Int).Set(c.weights[i])}
	}

	return out
}

// Equal reports whether c and o assign identical exact probabilities to
// identical value sets. Weight scale and pair order are irrelevant.
func (c *Canonical) Equal(o *Canonical) bool {
	if c == nil || o == nil {
		return c == o
	}
	if len(c.values) != len(o.values) {
		return false
	}
	var lhs, rhs big.Int
	for i, v := range c.values {
		j, ok := o.index[v]
		if !ok {
			return false
		}
		// w1/T1 == w2/T2  <=>  w1·T2 == w2·T1
		lhs.Mul(c.weights[i], o.total)
		rhs.Mul(o.weights[j], c.total)
		if lhs.Cmp(&rhs) != 0 {
			return false
		}
	}

	return true
}

// Reduced returns an equivalent Canonical whose weights share no common
// factor. Probabilities are unchanged.
func (c *Canonical) Reduced() *Canonical {
	g := new(big.Int)
	for _, w := range c.weights {
		g = ratio.GCD(g, w)
	}
	if g.Cmp(big.NewInt(1)) == 0 {
		return c
	}
	out := &Canonical{
		values:  c.values,
		weights: make([]*big.Int, len(c.weights)),
		index:   c.index,
		total:   new(big.Int).Quo(c.total, g),
	}
	for i, w := range c.weights {
		out.weights[i] = new(big.Int).Quo(w, g)
	}

	return out
}

// String formats the mass function as {v1: p1, v2: p2}.
func (c *Canonical) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range c.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v: %s", v, ratio.MustFromBig(c.weights[i], c.total))
	}
	sb.WriteByte('}')

	return sb.String()
}
