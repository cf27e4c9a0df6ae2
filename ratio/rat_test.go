package ratio_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvprob/ratio"
)

func mustNew(t *testing.T, num, den int64) ratio.Rat {
	t.Helper()
	r, err := ratio.New(num, den)
	require.NoError(t, err)

	return r
}

func TestNew_LowestTerms(t *testing.T) {
	r := mustNew(t, 6, 8)
	assert.Equal(t, "3/4", r.String())
	assert.Equal(t, int64(3), r.Num().Int64())
	assert.Equal(t, int64(4), r.Denom().Int64())

	neg := mustNew(t, 2, -4)
	assert.Equal(t, "-1/2", neg.String())
	assert.Equal(t, -1, neg.Sign())
}

func TestNew_ZeroDenominator(t *testing.T) {
	_, err := ratio.New(1, 0)
	assert.ErrorIs(t, err, ratio.ErrZeroDenominator)

	_, err = ratio.FromBig(big.NewInt(1), big.NewInt(0))
	assert.ErrorIs(t, err, ratio.ErrZeroDenominator)

	assert.Panics(t, func() { ratio.MustFromBig(big.NewInt(1), new(big.Int)) })
}

func TestZeroValue(t *testing.T) {
	var z ratio.Rat
	assert.True(t, z.IsZero())
	assert.Equal(t, "0", z.String())
	assert.True(t, z.Add(ratio.FromInt(2)).Equal(ratio.FromInt(2)))
}

func TestArithmetic(t *testing.T) {
	half := mustNew(t, 1, 2)
	third := mustNew(t, 1, 3)

	assert.Equal(t, "5/6", half.Add(third).String())
	assert.Equal(t, "1/6", half.Sub(third).String())
	assert.Equal(t, "1/6", half.Mul(third).String())
	assert.Equal(t, "-1/2", half.Neg().String())

	q, err := half.Quo(third)
	require.NoError(t, err)
	assert.Equal(t, "3/2", q.String())

	_, err = half.Quo(ratio.Rat{})
	assert.ErrorIs(t, err, ratio.ErrZeroDenominator)

	inv, err := third.Inv()
	require.NoError(t, err)
	assert.Equal(t, "3", inv.String())

	_, err = ratio.Rat{}.Inv()
	assert.ErrorIs(t, err, ratio.ErrZeroDenominator)
}

func TestImmutability(t *testing.T) {
	a := mustNew(t, 1, 2)
	b := mustNew(t, 1, 4)
	_ = a.Add(b)
	_ = a.Mul(b)

	// Returned copies must not alias internal state.
	n := a.Num()
	n.SetInt64(99)
	br := a.Big()
	br.SetInt64(7)

	assert.Equal(t, "1/2", a.String())
	assert.Equal(t, "1/4", b.String())
}

func TestCompare(t *testing.T) {
	a := mustNew(t, 2, 3)
	b := mustNew(t, 4, 6)
	c := mustNew(t, 3, 4)

	assert.True(t, a.Equal(b))
	assert.Equal(t, -1, a.Cmp(c))
	assert.Equal(t, 1, c.Cmp(a))
	assert.True(t, ratio.FromInt(1).IsOne())
	assert.True(t, mustNew(t, 5, 5).IsOne())
	assert.False(t, a.IsOne())
}

func TestSum(t *testing.T) {
	parts := []ratio.Rat{mustNew(t, 1, 6), mustNew(t, 1, 3), mustNew(t, 1, 2)}
	assert.True(t, ratio.Sum(parts...).IsOne())
	assert.True(t, ratio.Sum().IsZero())
}

func TestParse(t *testing.T) {
	r, err := ratio.Parse("3/9")
	require.NoError(t, err)
	assert.Equal(t, "1/3", r.String())

	r, err = ratio.Parse("0.25")
	require.NoError(t, err)
	assert.Equal(t, "1/4", r.String())

	_, err = ratio.Parse("one half")
	assert.ErrorIs(t, err, ratio.ErrParse)
}

func TestFloat64(t *testing.T) {
	f, exact := mustNew(t, 1, 4).Float64()
	assert.Equal(t, 0.25, f)
	assert.True(t, exact)

	_, exact = mustNew(t, 1, 3).Float64()
	assert.False(t, exact)
}
