package graph

import (
	"fmt"
	"testing"

	"github.com/arne-bdt/graphmem/pkg/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad(s, p string, o rdf.Term, g rdf.Term) *rdf.Quad {
	return rdf.NewQuad(ex(s), ex(p), o, g)
}

func collectQuads(seq func(func(*rdf.Quad) bool)) []*rdf.Quad {
	var out []*rdf.Quad
	for q := range seq {
		out = append(out, q)
	}
	return out
}

func TestDatasetDefaultGraph(t *testing.T) {
	d := NewDataset()
	q := quad("a", "p", rdf.NewLiteral("x"), nil)

	require.True(t, d.AddQuad(q))
	assert.False(t, d.AddQuad(quad("a", "p", rdf.NewLiteral("x"), nil)))
	assert.Equal(t, 1, d.LenQuads())
	assert.Equal(t, 0, d.LenGraphs())
	assert.Equal(t, 1, d.DefaultGraph().Len())

	assert.True(t, d.RemoveQuad(q))
	assert.True(t, d.IsEmpty())
}

func TestDatasetNamedGraphs(t *testing.T) {
	d := NewDataset()
	g1 := ex("g1")
	g2 := ex("g2")
	require.True(t, d.AddQuad(quad("a", "p", rdf.NewLiteral("x"), g1)))
	require.True(t, d.AddQuad(quad("a", "p", rdf.NewLiteral("x"), g2)))
	require.True(t, d.AddQuad(quad("b", "p", rdf.NewLiteral("y"), g1)))

	assert.Equal(t, 2, d.LenGraphs())
	assert.Equal(t, 3, d.LenQuads())

	store, ok := d.Graph(g1)
	require.True(t, ok)
	assert.Equal(t, 2, store.Len())

	_, ok = d.Graph(ex("missing"))
	assert.False(t, ok)

	graphs := map[string]bool{}
	for g := range d.Graphs() {
		graphs[g.String()] = true
	}
	assert.Equal(t, map[string]bool{g1.String(): true, g2.String(): true}, graphs)
}

func TestDatasetEmptyGraphIsDropped(t *testing.T) {
	d := NewDataset()
	g1 := ex("g1")
	q := quad("a", "p", rdf.NewLiteral("x"), g1)
	require.True(t, d.AddQuad(q))
	require.True(t, d.RemoveQuad(q))

	assert.Equal(t, 0, d.LenGraphs())
	_, ok := d.Graph(g1)
	assert.False(t, ok)
	assert.True(t, d.IsEmpty())
}

func TestDatasetFindQuads(t *testing.T) {
	d := NewDataset()
	g1 := ex("g1")
	require.True(t, d.AddQuad(quad("a", "p", rdf.NewLiteral("x"), nil)))
	require.True(t, d.AddQuad(quad("a", "p", rdf.NewLiteral("y"), g1)))
	require.True(t, d.AddQuad(quad("b", "q", rdf.NewLiteral("z"), g1)))

	// Wildcard graph spans the default graph and every named graph.
	all := collectQuads(d.FindQuads(rdf.NewQuadPattern(nil, nil, nil, nil)))
	assert.Len(t, all, 3)

	inG1 := collectQuads(d.FindQuads(rdf.NewQuadPattern(nil, nil, nil, g1)))
	assert.Len(t, inG1, 2)
	for _, q := range inG1 {
		assert.True(t, q.Graph.Equals(g1))
	}

	defOnly := collectQuads(d.FindQuads(rdf.NewQuadPattern(nil, nil, nil, rdf.NewDefaultGraph())))
	require.Len(t, defOnly, 1)
	assert.Equal(t, rdf.TermTypeDefaultGraph, defOnly[0].Graph.Type())

	aOnly := collectQuads(d.FindQuads(rdf.NewQuadPattern(ex("a"), nil, nil, nil)))
	assert.Len(t, aOnly, 2)

	assert.True(t, d.ContainsQuad(rdf.NewQuadPattern(ex("b"), nil, nil, nil)))
	assert.False(t, d.ContainsQuad(rdf.NewQuadPattern(ex("c"), nil, nil, nil)))
}

func TestDatasetWildcardGraphMutationPanics(t *testing.T) {
	d := NewDataset()
	assert.Panics(t, func() {
		d.AddQuad(rdf.NewQuadPattern(ex("a"), ex("p"), rdf.NewLiteral("x"), nil))
	})
}

func TestDatasetManyGraphs(t *testing.T) {
	d := NewDataset()
	const n = 50
	for i := 0; i < n; i++ {
		require.True(t, d.AddQuad(quad("s", "p", rdf.NewIntegerLiteral(int64(i)), ex(fmt.Sprintf("g%d", i)))))
	}
	assert.Equal(t, n, d.LenGraphs())
	assert.Equal(t, n, d.LenQuads())

	d.Clear()
	assert.True(t, d.IsEmpty())
	assert.Equal(t, 0, d.LenGraphs())
}
