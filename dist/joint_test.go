package dist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvprob/dist"
)

func TestGiven_NestedOnSameSource(t *testing.T) {
	d := mustUniform(t, 1, 2, 3)
	g1, err := dist.Given(d, mustPred(t)(dist.Ne(d, 1)))
	require.NoError(t, err)

	t.Run("contradiction", func(t *testing.T) {
		g2, err := dist.Given(g1, mustPred(t)(dist.Eq(d, 1)))
		require.NoError(t, err)
		_, err = dist.Resolve(g2)
		assert.ErrorIs(t, err, dist.ErrDegenerate)
	})

	t.Run("narrowing", func(t *testing.T) {
		g2, err := dist.Given(g1, mustPred(t)(dist.Ne(d, 2)))
		require.NoError(t, err)
		c := mustResolve(t, g2)
		assert.Equal(t, 1, c.Len())
		requireProb(t, c, 3, "1")
	})

	t.Run("against independent operand", func(t *testing.T) {
		e := mustUniform(t, 1, 2, 3)
		// d ∈ {2,3} and d < e leaves d=2 with e=3 only.
		g2, err := dist.Given(g1, mustPred(t)(dist.CompareDist(d, dist.OpLt, e)))
		require.NoError(t, err)
		c := mustResolve(t, g2)
		requireProb(t, c, 2, "1")
		requireNormalized(t, g2)
	})
}

func TestCompareDist_SharedNode(t *testing.T) {
	d := mustUniform(t, 1, 2, 3)

	t.Run("mixture of one instance", func(t *testing.T) {
		m, err := dist.NewMixture(d, d)
		require.NoError(t, err)
		c := mustResolve(t, mustPred(t)(dist.CompareDist(m, dist.OpEq, d)))
		requireProb(t, c, true, "1")
	})

	t.Run("conditional over the operand", func(t *testing.T) {
		g, err := dist.Given(d, mustPred(t)(dist.Ne(d, 1)))
		require.NoError(t, err)
		c := mustResolve(t, mustPred(t)(dist.CompareDist(d, dist.OpEq, g)))
		requireProb(t, c, true, "1")
		c = mustResolve(t, mustPred(t)(dist.CompareDist(g, dist.OpGt, d)))
		requireProb(t, c, false, "1")
	})

	t.Run("half shared", func(t *testing.T) {
		e := mustUniform(t, 1, 2, 3)
		m, err := dist.NewMixture(d, e)
		require.NoError(t, err)
		// Picking d always matches; picking e matches 1/3 of the time.
		p := mustPred(t)(dist.CompareDist(m, dist.OpEq, d))
		c := mustResolve(t, p)
		requireProb(t, c, true, "2/3")
		requireNormalized(t, p)
	})

	t.Run("weighted mixture", func(t *testing.T) {
		e := mustUniform(t, 4)
		m, err := dist.NewWeightedMixture([]dist.Distribution{d, e}, []int64{3, 1})
		require.NoError(t, err)
		c := mustResolve(t, mustPred(t)(dist.CompareDist(d, dist.OpEq, m)))
		requireProb(t, c, true, "3/4")
	})
}

func TestGiven_PredicateOverSharedNode(t *testing.T) {
	d := mustUniform(t, 1, 2, 3)
	m, err := dist.NewMixture(d, d)
	require.NoError(t, err)

	g, err := dist.Given(d, mustPred(t)(dist.Eq(m, 2)))
	require.NoError(t, err)
	c := mustResolve(t, g)
	assert.Equal(t, 1, c.Len())
	requireProb(t, c, 2, "1")

	// The base reaches the predicate operand instead.
	g, err = dist.Given(m, mustPred(t)(dist.Le(d, 2)))
	require.NoError(t, err)
	c = mustResolve(t, g)
	requireProb(t, c, 1, "1/2")
	requireProb(t, c, 2, "1/2")
	requireProb(t, c, 3, "0")
}

func TestJoint_CloneKeepsSharing(t *testing.T) {
	d := mustUniform(t, 1, 2, 3)
	g1, err := dist.Given(d, mustPred(t)(dist.Ne(d, 1)))
	require.NoError(t, err)
	g2, err := dist.Given(g1, mustPred(t)(dist.Eq(d, 1)))
	require.NoError(t, err)

	_, err = dist.Resolve(dist.CloneGraph(g2))
	assert.ErrorIs(t, err, dist.ErrDegenerate)
}
