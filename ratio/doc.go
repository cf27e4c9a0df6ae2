// Package ratio provides an immutable, arbitrary-precision rational number
// and the integer helpers (GCD, LCM) the probability algebra is built on.
//
// What:
//
//   - Rat: an exact fraction a/b backed by math/big. Every operation returns
//     a fresh value; receivers and arguments are never mutated, so a Rat can
//     be shared freely between distributions.
//   - GCD, LCM, LCMAll: helpers over *big.Int used to bring weights with
//     unrelated denominators onto a common integer scale.
//
// Why:
//
//   - Probabilities combined through mixtures, conditioning and sequential
//     draws must not drift. Floating point accumulates rounding error after a
//     handful of compositions; rationals never do.
//
// Errors:
//
//   - ErrZeroDenominator  a fraction with denominator 0 was requested
//   - ErrEmptyInput       LCMAll called with no operands
//   - ErrParse            Parse could not read the input string
package ratio
