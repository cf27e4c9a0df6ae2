// SPDX-License-Identifier: MIT

package ratio

import "math/big"

// GCD returns the greatest common divisor of |a| and |b| as a fresh value.
// GCD(0, 0) is 0.
// Complexity: O(n²) in the bit length n.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)

	return x.GCD(nil, nil, x, y)
}

// LCM returns the least common multiple of |a| and |b| as a fresh value.
// LCM(0, x) is 0.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := GCD(a, b)
	// |a| / g * |b| keeps the intermediate product small.
	out := new(big.Int).Abs(a)
	out.Quo(out, g)

	return out.Mul(out, new(big.Int).Abs(b))
}

// LCMAll folds LCM over xs. Returns ErrEmptyInput for no operands.
func LCMAll(xs ...*big.Int) (*big.Int, error) {
	if len(xs) == 0 {
		return nil, ErrEmptyInput
	}
	acc := new(big.Int).Abs(xs[0])
	for _, x := range xs[1:] {
		acc = LCM(acc, x)
	}

	return acc, nil
}
