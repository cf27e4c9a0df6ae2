package dist_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvprob/dist"
	"github.com/katalvlaran/lvprob/ratio"
)

// mustUniform builds a uniform leaf or fails the test.
func mustUniform(t testing.TB, values ...dist.Value) *dist.Canonical {
	t.Helper()
	c, err := dist.Uniform(values...)
	require.NoError(t, err)

	return c
}

// mustWeights builds a weighted leaf or fails the test.
func mustWeights(t testing.TB, values []dist.Value, weights []int64) *dist.Canonical {
	t.Helper()
	c, err := dist.FromWeights(values, weights)
	require.NoError(t, err)

	return c
}

// mustResolve resolves d or fails the test.
func mustResolve(t testing.TB, d dist.Distribution) *dist.Canonical {
	t.Helper()
	c, err := dist.Resolve(d)
	require.NoError(t, err)

	return c
}

// rat parses "a/b" or fails the test.
func rat(t testing.TB, s string) ratio.Rat {
	t.Helper()
	r, err := ratio.Parse(s)
	require.NoError(t, err)

	return r
}

// requireProb asserts P(v) under c equals want exactly.
func requireProb(t testing.TB, c *dist.Canonical, v dist.Value, want string) {
	t.Helper()
	got := c.Probability(v)
	require.Truef(t, got.Equal(rat(t, want)), "P(%v) = %s, want %s", v, got, want)
}

// requireNormalized asserts the mass of c sums to exactly 1 and that the
// weights sum to the total.
func requireNormalized(t testing.TB, d dist.Distribution) {
	t.Helper()
	c := mustResolve(t, d)
	sum := new(big.Int)
	for _, p := range c.Pairs() {
		sum.Add(sum, p.Weight)
	}
	require.Zero(t, sum.Cmp(c.Total()), "weights must sum to total")

	probs := make([]ratio.Rat, 0, c.Len())
	for v, err := range dist.Support(d) {
		require.NoError(t, err)
		p, err := dist.ProbabilityOf(d, v)
		require.NoError(t, err)
		probs = append(probs, p)
	}
	require.True(t, ratio.Sum(probs...).IsOne(), "probabilities must sum to 1")
}

// countingDist wraps a leaf and counts Generate calls per instance.
type countingDist struct {
	inner *dist.Canonical
	calls *int
}

func newCounting(inner *dist.Canonical) *countingDist {
	return &countingDist{inner: inner, calls: new(int)}
}

func (c *countingDist) Generate(yield func(dist.Value, *big.Int) bool) error {
	*c.calls++
	return c.inner.Generate(yield)
}

func (c *countingDist) Children() []dist.Distribution { return nil }

func (c *countingDist) Clone(table dist.CloneTable) dist.Distribution {
	if out, ok := table.Lookup(c); ok {
		return out
	}
	out := newCounting(c.inner)
	table[c] = out

	return out
}

// mustPred unwraps a predicate constructor result:
//
//	p := mustPred(t)(dist.Ne(d, 2))
func mustPred(t testing.TB) func(*dist.Predicate, error) *dist.Predicate {
	return func(p *dist.Predicate, err error) *dist.Predicate {
		t.Helper()
		require.NoError(t, err)

		return p
	}
}
