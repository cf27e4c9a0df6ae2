// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvprob/ratio"
)

// Mixture is the weighted average of several distributions' mass functions.
//
// With operand totals count₁…countₙ and L = LCM(count₁…countₙ), operand i's
// weights are multiplied by factorᵢ = rᵢ·L/countᵢ (rᵢ = 1 for NewMixture), so
// every operand contributes the same integer mass per unit of rᵢ and no
// fraction is ever formed. The total is L·Σrᵢ (n·L for NewMixture).
type Mixture struct {
	sources  []Distribution
	factors  []*big.Int
	ratios   []*big.Int
	ratioSum *big.Int
	total    *big.Int
}

// NewMixture returns M with P_M(v) = (1/n)·Σ P_Dᵢ(v).
//
// Operand totals are computed here, so a degenerate operand is reported at
// construction.
//
// Errors:
//   - ErrInvalidArgument  no operands, or a nil operand
//   - ErrDegenerate       an operand has zero total weight
func NewMixture(ds ...Distribution) (*Mixture, error) {
	ratios := make([]int64, len(ds))
	for i := range ratios {
		ratios[i] = 1
	}

	return NewWeightedMixture(ds, ratios)
}

// NewWeightedMixture returns M with P_M(v) = Σ rᵢ·P_Dᵢ(v) / Σ rᵢ.
// Every ratio must be positive.
func NewWeightedMixture(ds []Distribution, ratios []int64) (*Mixture, error) {
	if len(ds) == 0 {
		return nil, fmt.Errorf("%w: mixture needs at least one operand", ErrInvalidArgument)
	}
	if len(ratios) != len(ds) {
		return nil, fmt.Errorf("%w: %d operands but %d ratios", ErrInvalidArgument, len(ds), len(ratios))
	}
	counts := make([]*big.Int, len(ds))
	for i, d := range ds {
		if d == nil {
			return nil, fmt.Errorf("%w: mixture operand %d is nil", ErrInvalidArgument, i)
		}
		if ratios[i] <= 0 {
			return nil, fmt.Errorf("%w: mixture ratio %d must be positive (got %d)", ErrInvalidArgument, i, ratios[i])
		}
		c, err := Total(d)
		if err != nil {
			return nil, fmt.Errorf("mixture operand %d: %w", i, err)
		}
		counts[i] = c
	}
	l, err := ratio.LCMAll(counts...)
	if err != nil {
		return nil, err
	}

	m := &Mixture{
		sources: append([]Distribution(nil), ds...),
		factors:  make([]*big.Int, len(ds)),
		ratios:   make([]*big.Int, len(ds)),
		ratioSum: new(big.Int),
	}
	for i, c := range counts {
		r := big.NewInt(ratios[i])
		f := new(big.Int).Quo(l, c)
		m.factors[i] = f.Mul(f, r)
		m.ratios[i] = r
		m.ratioSum.Add(m.ratioSum, r)
	}
	m.total = new(big.Int).Mul(m.ratioSum, l)

	return m, nil
}

// Generate yields (v, w·factorᵢ) for every pair of every operand in order.
func (m *Mixture) Generate(yield func(Value, *big.Int) bool) error {
	for i, src := range m.sources {
		f := m.factors[i]
		stopped := false
		err := src.Generate(func(v Value, w *big.Int) bool {
			if !yield(v, new(big.Int).Mul(w, f)) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil {
			return fmt.Errorf("mixture operand %d: %w", i, err)
		}
		if stopped {
			return nil
		}
	}

	return nil
}

// Children returns the operands in order; a repeated operand appears once
// per reference.
func (m *Mixture) Children() []Distribution {
	return append([]Distribution(nil), m.sources...)
}

// Clone copies the mixture and its operand graph. Factors and ratios are
// immutable and shared.
func (m *Mixture) Clone(table CloneTable) Distribution {
	if out, ok := table.Lookup(m); ok {
		return out
	}
	out := &Mixture{factors: m.factors, ratios: m.ratios, ratioSum: m.ratioSum, total: m.total}
	table[m] = out
	out.sources = make([]Distribution, len(m.sources))
	for i, src := range m.sources {
		out.sources[i] = src.Clone(table)
	}

	return out
}

func (m *Mixture) exactTotal() (*big.Int, error) { return m.total, nil }

// Factors returns copies of the per-operand scale factors.
func (m *Mixture) Factors() []*big.Int {
	out := make([]*big.Int, len(m.factors))
	for i, f := range m.factors {
		out[i] = new(big.Int).Set(f)
	}

	return out
}
