// SPDX-License-Identifier: MIT

package ratio

import (
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors for rational construction and helpers.
var (
	// ErrZeroDenominator indicates a fraction with a zero denominator.
	ErrZeroDenominator = errors.New("ratio: zero denominator")

	// ErrEmptyInput indicates a variadic helper was called with no operands.
	ErrEmptyInput = errors.New("ratio: empty input")

	// ErrParse indicates Parse could not interpret its input.
	ErrParse = errors.New("ratio: cannot parse rational")
)

// Rat is an immutable exact rational number.
// The zero value is 0 and is ready to use.
type Rat struct {
	r *big.Rat // nil means 0; never mutated after construction
}

// New returns num/den in lowest terms.
// Returns ErrZeroDenominator when den == 0.
func New(num, den int64) (Rat, error) {
	if den == 0 {
		return Rat{}, ErrZeroDenominator
	}

	return Rat{r: big.NewRat(num, den)}, nil
}

// FromInt returns the integer n as a rational.
func FromInt(n int64) Rat {
	return Rat{r: new(big.Rat).SetInt64(n)}
}

// FromBig returns num/den in lowest terms. The arguments are not retained.
// Returns ErrZeroDenominator when den == 0.
func FromBig(num, den *big.Int) (Rat, error) {
	if den == nil || den.Sign() == 0 {
		return Rat{}, ErrZeroDenominator
	}
	if num == nil {
		return Rat{}, nil
	}

	return Rat{r: new(big.Rat).SetFrac(num, den)}, nil
}

// MustFromBig is FromBig for callers that have already checked den != 0.
// It panics on a zero denominator.
func MustFromBig(num, den *big.Int) Rat {
	r, err := FromBig(num, den)
	if err != nil {
		panic(err)
	}

	return r
}

// Parse reads "a/b", "a" or a decimal such as "0.25".
func Parse(s string) (Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rat{}, fmt.Errorf("%w: %q", ErrParse, s)
	}

	return Rat{r: r}, nil
}

func (x Rat) big() *big.Rat {
	if x.r == nil {
		return new(big.Rat)
	}

	return x.r
}

// Add returns x + y.
func (x Rat) Add(y Rat) Rat { return Rat{r: new(big.Rat).Add(x.big(), y.big())} }

// Sub returns x - y.
func (x Rat) Sub(y Rat) Rat { return Rat{r: new(big.Rat).Sub(x.big(), y.big())} }

// Mul returns x * y.
func (x Rat) Mul(y Rat) Rat { return Rat{r: new(big.Rat).Mul(x.big(), y.big())} }

// Neg returns -x.
func (x Rat) Neg() Rat { return Rat{r: new(big.Rat).Neg(x.big())} }

// Quo returns x / y, or ErrZeroDenominator when y is 0.
func (x Rat) Quo(y Rat) (Rat, error) {
	if y.IsZero() {
		return Rat{}, ErrZeroDenominator
	}

	return Rat{r: new(big.Rat).Quo(x.big(), y.big())}, nil
}

// Inv returns 1/x, or ErrZeroDenominator when x is 0.
func (x Rat) Inv() (Rat, error) {
	if x.IsZero() {
		return Rat{}, ErrZeroDenominator
	}

	return Rat{r: new(big.Rat).Inv(x.big())}, nil
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Rat) Cmp(y Rat) int { return x.big().Cmp(y.big()) }

// Equal reports whether x and y denote the same rational.
func (x Rat) Equal(y Rat) bool { return x.Cmp(y) == 0 }

// Sign returns -1, 0 or +1.
func (x Rat) Sign() int { return x.big().Sign() }

// IsZero reports whether x == 0.
func (x Rat) IsZero() bool { return x.Sign() == 0 }

// IsOne reports whether x == 1.
func (x Rat) IsOne() bool {
	b := x.big()

	return b.IsInt() && b.Num().IsInt64() && b.Num().Int64() == 1
}

// Num returns a copy of the numerator in lowest terms (sign carried here).
func (x Rat) Num() *big.Int { return new(big.Int).Set(x.big().Num()) }

// Denom returns a copy of the positive denominator in lowest terms.
func (x Rat) Denom() *big.Int { return new(big.Int).Set(x.big().Denom()) }

// Big returns a copy of x as a *big.Rat owned by the caller.
func (x Rat) Big() *big.Rat { return new(big.Rat).Set(x.big()) }

// Float64 returns the nearest float64 and whether it is exact.
func (x Rat) Float64() (float64, bool) { return x.big().Float64() }

// String formats x as "a/b", or "a" when the denominator is 1.
func (x Rat) String() string { return x.big().RatString() }

// Sum returns the exact sum of rs (0 for no operands).
func Sum(rs ...Rat) Rat {
	acc := new(big.Rat)
	for _, r := range rs {
		acc.Add(acc, r.big())
	}

	return Rat{r: acc}
}
