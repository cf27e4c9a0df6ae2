// SPDX-License-Identifier: MIT

package dist

import (
	"context"
	"fmt"
	"iter"
	"math/big"

	"github.com/katalvlaran/lvprob/ratio"
)

// ResolveOptions holds the knobs for draining a distribution.
type ResolveOptions struct {
	// Ctx allows cancellation; it is checked before each pair is folded in.
	// Defaults to context.Background().
	Ctx context.Context

	// MaxPairs, if positive, aborts with ErrOutcomeLimit once more raw pairs
	// than this have been drained. Default is 0 (no limit).
	MaxPairs int64
}

// ResolveOption configures Resolve.
type ResolveOption func(*ResolveOptions)

// DefaultResolveOptions returns a background context and no pair limit.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{Ctx: context.Background()}
}

// WithContext sets the cancellation context. A nil ctx has no effect.
func WithContext(ctx context.Context) ResolveOption {
	return func(o *ResolveOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxPairs bounds the number of raw pairs Resolve will drain.
// Non-positive n means unlimited.
func WithMaxPairs(n int64) ResolveOption {
	return func(o *ResolveOptions) { o.MaxPairs = n }
}

// preparer is implemented by nodes that do work ahead of their first
// Generate call and can do it under the caller's options.
type preparer interface {
	prepare(b *planBudget) error
}

// sized is implemented by nodes that know their total weight without
// draining their pairs.
type sized interface {
	exactTotal() (*big.Int, error)
}

// Resolve drains d, sums weights per distinct value and returns the
// canonical form. It is the only eager operation of the package.
//
// Errors:
//   - ErrInvalidArgument  d is nil
//   - ErrDegenerate       the drained total weight is zero
//   - ErrOutcomeLimit     WithMaxPairs bound exceeded, while draining or
//     while planning a DrawSequence in the graph
//   - ctx.Err()           the context was cancelled
//   - any error returned by d.Generate
func Resolve(d Distribution, opts ...ResolveOption) (*Canonical, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil distribution", ErrInvalidArgument)
	}
	if c, ok := d.(*Canonical); ok && len(opts) == 0 {
		return c, nil
	}
	o := DefaultResolveOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &planBudget{o: o}
	err := Walk(d, func(n Distribution) error {
		if p, ok := n.(preparer); ok {
			return p.prepare(b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	acc := newAccumulator()
	var (
		drained int64
		inner   error
	)
	err = d.Generate(func(v Value, w *big.Int) bool {
		if inner = o.Ctx.Err(); inner != nil {
			return false
		}
		drained++
		if o.MaxPairs > 0 && drained > o.MaxPairs {
			inner = fmt.Errorf("%w: more than %d pairs", ErrOutcomeLimit, o.MaxPairs)
			return false
		}
		inner = acc.add(v, w)

		return inner == nil
	})
	if err != nil {
		return nil, err
	}
	if inner != nil {
		return nil, inner
	}

	return acc.canonical()
}

// Total returns the sum of the raw weights d generates.
// Returns ErrDegenerate when that sum is zero.
func Total(d Distribution) (*big.Int, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil distribution", ErrInvalidArgument)
	}
	var total *big.Int
	if s, ok := d.(sized); ok {
		t, err := s.exactTotal()
		if err != nil {
			return nil, err
		}
		total = new(big.Int).Set(t)
	} else {
		total = new(big.Int)
		err := d.Generate(func(_ Value, w *big.Int) bool {
			total.Add(total, w)
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	if total.Sign() == 0 {
		return nil, fmt.Errorf("%w: total weight is zero", ErrDegenerate)
	}

	return total, nil
}

// Pairs adapts d.Generate to a range-able sequence. A generation error is
// delivered as the final element with a zero Pair.
//
//	for p, err := range dist.Pairs(d) { ... }
func Pairs(d Distribution) iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		stopped := false
		err := d.Generate(func(v Value, w *big.Int) bool {
			if !yield(Pair{Value: v, Weight: w}, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(Pair{}, err)
		}
	}
}

// Support lazily yields the distinct values of d in first-occurrence order.
func Support(d Distribution) iter.Seq2[Value, error] {
	return func(yield func(Value, error) bool) {
		seen := make(map[Value]struct{})
		for p, err := range Pairs(d) {
			if err != nil {
				yield(nil, err)
				return
			}
			if err = CheckValue(p.Value); err != nil {
				yield(nil, err)
				return
			}
			if _, ok := seen[p.Value]; ok {
				continue
			}
			seen[p.Value] = struct{}{}
			if !yield(p.Value, nil) {
				return
			}
		}
	}
}

// ProbabilityOf returns P(d = v) exactly, streaming d once.
func ProbabilityOf(d Distribution, v Value) (ratio.Rat, error) {
	if d == nil {
		return ratio.Rat{}, fmt.Errorf("%w: nil distribution", ErrInvalidArgument)
	}
	if err := CheckValue(v); err != nil {
		return ratio.Rat{}, err
	}
	if c, ok := d.(*Canonical); ok {
		return c.Probability(v), nil
	}
	hit, total := new(big.Int), new(big.Int)
	var inner error
	err := d.Generate(func(x Value, w *big.Int) bool {
		if inner = CheckValue(x); inner != nil {
			return false
		}
		total.Add(total, w)
		if x == v {
			hit.Add(hit, w)
		}
		return true
	})
	if err == nil {
		err = inner
	}
	if err != nil {
		return ratio.Rat{}, err
	}
	if total.Sign() == 0 {
		return ratio.Rat{}, fmt.Errorf("%w: total weight is zero", ErrDegenerate)
	}

	return ratio.MustFromBig(hit, total), nil
}

// Mean returns the exact expectation of a distribution over numbers.
// Non-numeric outcomes are ErrTypeConsistency.
func Mean(d Distribution) (ratio.Rat, error) {
	if d == nil {
		return ratio.Rat{}, fmt.Errorf("%w: nil distribution", ErrInvalidArgument)
	}
	sum, total := new(big.Rat), new(big.Int)
	var inner error
	err := d.Generate(func(v Value, w *big.Int) bool {
		x, ok := numeric(v)
		if !ok {
			inner = fmt.Errorf("%w: outcome %v of type %T is not numeric", ErrTypeConsistency, v, v)
			return false
		}
		sum.Add(sum, x.Mul(x, new(big.Rat).SetInt(w)))
		total.Add(total, w)
		return true
	})
	if err == nil {
		err = inner
	}
	if err != nil {
		return ratio.Rat{}, err
	}
	if total.Sign() == 0 {
		return ratio.Rat{}, fmt.Errorf("%w: total weight is zero", ErrDegenerate)
	}
	sum.Quo(sum, new(big.Rat).SetInt(total))

	return ratio.MustFromBig(sum.Num(), sum.Denom()), nil
}
