package dist_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvprob/dist"
)

func TestClone_Fidelity(t *testing.T) {
	d := mustUniform(t, 1, 2, 3)
	g, err := dist.Given(d, mustPred(t)(dist.Gt(d, 1)))
	require.NoError(t, err)
	m, err := dist.NewMixture(g, d)
	require.NoError(t, err)

	clone := dist.CloneGraph(m)
	assert.NotSame(t, m, clone)
	assert.True(t, mustResolve(t, clone).Equal(mustResolve(t, m)))
}

func TestClone_PreservesSharing(t *testing.T) {
	shared := newCounting(mustUniform(t, "H", "T"))
	m, err := dist.NewMixture(shared, shared)
	require.NoError(t, err)
	callsAfterBuild := *shared.calls

	clone := m.Clone(dist.NewCloneTable())
	kids := clone.Children()
	require.Len(t, kids, 2)
	assert.Same(t, kids[0], kids[1], "both references must point at one cloned node")
	assert.NotSame(t, shared, kids[0])

	cloned := kids[0].(*countingDist)
	_ = mustResolve(t, clone)
	assert.Equal(t, 2, *cloned.calls, "one cloned instance, evaluated once per reference")
	assert.Equal(t, callsAfterBuild, *shared.calls, "original must not be evaluated through the clone")
}

func TestClone_ConditionalKeepsBaseLink(t *testing.T) {
	d := mustUniform(t, 1, 2, 3)
	g, err := dist.Given(d, mustPred(t)(dist.Ne(d, 2)))
	require.NoError(t, err)

	table := dist.NewCloneTable()
	cg := g.Clone(table).(*dist.Conditional)

	predLHS := cg.Predicate().Children()[0]
	assert.Same(t, cg.Base(), predLHS)
	assert.NotSame(t, d, cg.Base())

	// Every original node is registered exactly once.
	assert.Len(t, table, 3)
	got, ok := table.Lookup(d)
	require.True(t, ok)
	assert.Same(t, cg.Base(), got)

	// The cloned predicate is still evaluated pointwise against the cloned base.
	c := mustResolve(t, cg)
	requireProb(t, c, 1, "1/2")
}

func TestClone_TableReuse(t *testing.T) {
	d := mustUniform(t, 1, 2)
	table := dist.NewCloneTable()
	a := d.Clone(table)
	b := d.Clone(table)
	assert.Same(t, a, b)
}

func TestClone_DrawSequence(t *testing.T) {
	d := mustDraw(t, mustUniform(t, "a", "b", "c"), 2)
	_ = mustResolve(t, d)

	clone := dist.CloneGraph(d).(*dist.DrawSequence)
	assert.Equal(t, 2, clone.Count())
	assert.NotSame(t, d.Source(), clone.Source())
	assert.True(t, mustResolve(t, clone).Equal(mustResolve(t, d)))
	assert.Nil(t, dist.CloneGraph(nil))
}

func TestWalk(t *testing.T) {
	d := mustUniform(t, 1, 2, 3)
	p := mustPred(t)(dist.Ne(d, 2))
	g, err := dist.Given(d, p)
	require.NoError(t, err)

	nodes := dist.Nodes(g)
	require.Len(t, nodes, 3)
	assert.Same(t, g, nodes[0])
	assert.Same(t, d, nodes[1])
	assert.Same(t, p, nodes[2])

	shared := dist.SharedNodes(g)
	require.Len(t, shared, 1)
	assert.Same(t, d, shared[0])

	stop := errors.New("stop")
	visited := 0
	err = dist.Walk(g, func(dist.Distribution) error {
		visited++
		if visited == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)

	assert.ErrorIs(t, dist.Walk(nil, nil), dist.ErrInvalidArgument)
}

func TestSharedNodes_Tree(t *testing.T) {
	m, err := dist.NewMixture(mustUniform(t, 1), mustUniform(t, 2))
	require.NoError(t, err)
	assert.Empty(t, dist.SharedNodes(m))
}
