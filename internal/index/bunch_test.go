package index

import (
	"fmt"
	"testing"

	"github.com/arne-bdt/graphmem/internal/collection"
	"github.com/arne-bdt/graphmem/pkg/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTriple(i int) *rdf.Triple {
	return rdf.NewTriple(
		rdf.NewNamedNode(fmt.Sprintf("http://example.org/s%d", i)),
		rdf.NewNamedNode("http://example.org/p"),
		rdf.NewIntegerLiteral(int64(i)),
	)
}

func TestListBunchBasics(t *testing.T) {
	t0 := testTriple(0)
	b := newListBunch(t0)
	require.Equal(t, 1, b.Len())
	assert.False(t, b.HashOptimized())
	assert.True(t, b.Contains(t0.Hash(), t0))

	t1 := testTriple(1)
	require.True(t, b.TryAdd(t1.Hash(), t1))
	assert.False(t, b.TryAdd(t1.Hash(), testTriple(1)), "structurally equal triple is a duplicate")
	assert.Equal(t, 2, b.Len())

	got, ok := b.Get(t1.Hash(), testTriple(1))
	require.True(t, ok)
	assert.Same(t, t1, got, "Get must return the stored instance")

	assert.True(t, b.TryRemove(t0.Hash(), testTriple(0)))
	assert.False(t, b.TryRemove(t0.Hash(), t0))
	assert.Equal(t, 1, b.Len())
}

func TestListBunchFailsFastOnMutation(t *testing.T) {
	b := newListBunch(testTriple(0))
	for i := 1; i < 5; i++ {
		b.AddUnchecked(0, testTriple(i))
	}
	assert.PanicsWithValue(t, collection.ErrConcurrentModification, func() {
		for range b.All() {
			b.AddUnchecked(0, testTriple(99))
		}
	})
}

func TestHashBunchBasics(t *testing.T) {
	hb := &hashBunch{set: collection.NewSet(0, tripleEquals)}
	assert.True(t, hb.HashOptimized())

	for i := 0; i < 30; i++ {
		tr := testTriple(i)
		require.True(t, hb.TryAdd(tr.Hash(), tr))
	}
	assert.Equal(t, 30, hb.Len())

	probe := testTriple(12)
	assert.True(t, hb.Contains(probe.Hash(), probe))
	assert.True(t, hb.TryRemove(probe.Hash(), probe))
	assert.False(t, hb.Contains(probe.Hash(), probe))

	assert.True(t, hb.AnyMatch(func(tr *rdf.Triple) bool {
		return tr.Object.Equals(rdf.NewIntegerLiteral(5))
	}))
}

func TestTransitionPreservesContents(t *testing.T) {
	lb := newListBunch(testTriple(0))
	for i := 1; i < 12; i++ {
		lb.AddUnchecked(0, testTriple(i))
	}

	hb := transition(lb)
	assert.True(t, hb.HashOptimized())
	require.Equal(t, lb.Len(), hb.Len())
	for i := 0; i < 12; i++ {
		probe := testTriple(i)
		assert.True(t, hb.Contains(probe.Hash(), probe), "triple %d lost in transition", i)
	}
}
