// SPDX-License-Identifier: MIT

package dist

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/katalvlaran/lvprob/ratio"
)

// DrawSequence is the distribution of ordered k-tuples of distinct values
// obtained by drawing k times from a source without replacement:
//
//	P(v₁,…,v_k) = P(v₁) · P(v₂ | v₁) · … · P(v_k | v₁,…,v_{k-1})
//
// Each conditional factor is computed exactly by conditioning a clone of the
// source on "not the value just drawn". Outcomes are Tuples.
//
// The branch plan (one sub-sequence per first value) is built on first use
// and cached once it succeeds; the node is otherwise immutable. Resolve
// builds it under the caller's ResolveOptions, so a cancelled context or an
// exhausted WithMaxPairs budget stops plan construction too and leaves
// nothing cached.
type DrawSequence struct {
	source Distribution
	k      int

	mu   sync.Mutex
	plan *drawPlan
}

// drawBranch is the subtree for one first draw.
type drawBranch struct {
	value  Value
	weight *big.Int
	rest   *DrawSequence
	scale  *big.Int // L / total(rest)
}

type drawPlan struct {
	branches []drawBranch
	total    *big.Int
}

// NewDrawSequence returns the draw-without-replacement distribution of
// length k over src. k is validated here, before src is touched.
//
// Errors:
//   - ErrInvalidArgument  k < 1, or src is nil
//
// Drawing more distinct values than src supports is not detected here: it
// surfaces as ErrDegenerate when the sequence is evaluated.
// Complexity: O(|support(src)|^k) pairs when drained.
func NewDrawSequence(src Distribution, k int) (*DrawSequence, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: draw count must be a positive integer (got %d)", ErrInvalidArgument, k)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil draw source", ErrInvalidArgument)
	}

	return &DrawSequence{source: src, k: k}, nil
}

// planBudget carries the caller's ResolveOptions into plan construction.
// MaxPairs bounds the number of tuples the plans being built will generate,
// counted apart from the pairs Resolve drains, so a draw that fits the
// drain limit also fits this one.
type planBudget struct {
	o      ResolveOptions
	tuples int64
}

func unlimitedBudget() *planBudget {
	return &planBudget{o: DefaultResolveOptions()}
}

// spend checks for cancellation and charges n tuples.
func (b *planBudget) spend(n int64) error {
	if err := b.o.Ctx.Err(); err != nil {
		return err
	}
	b.tuples += n
	if b.o.MaxPairs > 0 && b.tuples > b.o.MaxPairs {
		return fmt.Errorf("%w: more than %d drawn tuples", ErrOutcomeLimit, b.o.MaxPairs)
	}

	return nil
}

// prepare builds the plan under b unless one is cached.
func (d *DrawSequence) prepare(b *planBudget) error {
	_, err := d.getPlan(b)

	return err
}

// getPlan returns the cached plan, building it under b on first use. A
// failed build is not cached.
func (d *DrawSequence) getPlan(b *planBudget) (*drawPlan, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.plan != nil {
		return d.plan, nil
	}
	p, err := d.buildPlan(b)
	if err != nil {
		return nil, err
	}
	d.plan = p

	return p, nil
}

func (d *DrawSequence) buildPlan(b *planBudget) (*drawPlan, error) {
	if err := b.spend(0); err != nil {
		return nil, err
	}
	if d.k == 1 {
		t, err := Total(d.source)
		if err != nil {
			return nil, err
		}
		return &drawPlan{total: t}, nil
	}

	src, err := Resolve(d.source, WithContext(b.o.Ctx))
	if err != nil {
		return nil, err
	}
	branches := make([]drawBranch, 0, src.Len())
	restTotals := make([]*big.Int, 0, src.Len())
	for i, v := range src.values {
		if err = b.spend(0); err != nil {
			return nil, err
		}
		// Condition an independent copy so sibling branches never share
		// exclusion state.
		s := src.Clone(NewCloneTable())
		ne, err := Ne(s, v)
		if err != nil {
			return nil, err
		}
		excl, err := Given(s, ne)
		if err != nil {
			return nil, err
		}
		remaining, err := Resolve(excl, WithContext(b.o.Ctx))
		if err != nil {
			return nil, fmt.Errorf("drawing %d more after %v: %w", d.k-1, v, err)
		}
		if d.k == 2 {
			// The last draw generates one tuple per remaining value.
			if err = b.spend(int64(remaining.Len())); err != nil {
				return nil, err
			}
		}
		rest, err := NewDrawSequence(remaining, d.k-1)
		if err != nil {
			return nil, err
		}
		rp, err := rest.getPlan(b)
		if err != nil {
			return nil, err
		}
		rt := rp.total
		branches = append(branches, drawBranch{value: v, weight: src.weights[i], rest: rest})
		restTotals = append(restTotals, rt)
	}

	// Tail totals differ between branches whenever the source is not
	// uniform; bring them onto their LCM so that w·tail·scale stays
	// proportional to P(v)·P(tail | v).
	l, err := ratio.LCMAll(restTotals...)
	if err != nil {
		return nil, err
	}
	for i := range branches {
		branches[i].scale = new(big.Int).Quo(l, restTotals[i])
	}

	return &drawPlan{branches: branches, total: new(big.Int).Mul(src.total, l)}, nil
}

// Generate yields (tuple, weight) pairs. Called outside Resolve, the first
// call builds and caches the branch plan without limits.
func (d *DrawSequence) Generate(yield func(Value, *big.Int) bool) error {
	if d.k == 1 {
		return d.source.Generate(func(v Value, w *big.Int) bool {
			return yield(NewTuple(v), w)
		})
	}
	p, err := d.getPlan(unlimitedBudget())
	if err != nil {
		return err
	}
	for _, b := range p.branches {
		stopped := false
		err = b.rest.Generate(func(tail Value, wt *big.Int) bool {
			w := new(big.Int).Mul(b.weight, wt)
			if b.scale.Cmp(bigOne) != 0 {
				w.Mul(w, b.scale)
			}
			if !yield(Prepend(b.value, tail.(Tuple)), w) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
		if stopped {
			return nil
		}
	}

	return nil
}

func (d *DrawSequence) exactTotal() (*big.Int, error) {
	p, err := d.getPlan(unlimitedBudget())
	if err != nil {
		return nil, err
	}

	return p.total, nil
}

// Children returns the source.
func (d *DrawSequence) Children() []Distribution {
	return []Distribution{d.source}
}

// Clone copies the node and its source graph. The cached plan is not
// carried over.
func (d *DrawSequence) Clone(table CloneTable) Distribution {
	if out, ok := table.Lookup(d); ok {
		return out
	}
	out := &DrawSequence{k: d.k}
	table[d] = out
	out.source = d.source.Clone(table)

	return out
}

// Count returns the number of draws k.
func (d *DrawSequence) Count() int { return d.k }

// Source returns the distribution drawn from.
func (d *DrawSequence) Source() Distribution { return d.source }
