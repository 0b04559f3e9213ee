package graph

import (
	"fmt"
	"testing"

	"github.com/arne-bdt/graphmem/pkg/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ex(name string) *rdf.NamedNode {
	return rdf.NewNamedNode("http://example.org/" + name)
}

func spo(s, p string, o rdf.Term) *rdf.Triple {
	return rdf.NewTriple(ex(s), ex(p), o)
}

func collect(seq func(func(*rdf.Triple) bool)) []*rdf.Triple {
	var out []*rdf.Triple
	for t := range seq {
		out = append(out, t)
	}
	return out
}

func asSet(triples []*rdf.Triple) map[string]bool {
	set := map[string]bool{}
	for _, t := range triples {
		set[t.String()] = true
	}
	return set
}

func TestGraphMemAddRemoveCount(t *testing.T) {
	g := NewGraphMem()
	t1 := spo("a", "p", rdf.NewIntegerLiteral(1))

	require.True(t, g.Add(t1))
	assert.False(t, g.Add(spo("a", "p", rdf.NewIntegerLiteral(1))), "idempotent add")
	assert.Equal(t, 1, g.Len())

	assert.False(t, g.Remove(spo("a", "p", rdf.NewIntegerLiteral(2))), "absent remove")
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Remove(t1))
	assert.True(t, g.IsEmpty())
}

func TestGraphMemRejectsWildcardAdd(t *testing.T) {
	g := NewGraphMem()
	assert.Panics(t, func() {
		g.Add(rdf.NewPattern(ex("a"), nil, nil))
	})
	assert.Panics(t, func() { g.Add(nil) })
}

// The first concrete scenario from the store contract.
func TestGraphMemScenario(t *testing.T) {
	g := NewGraphMem()
	ap1 := spo("a", "p", rdf.NewIntegerLiteral(1))
	ap2 := spo("a", "p", rdf.NewIntegerLiteral(2))
	bp1 := spo("b", "p", rdf.NewIntegerLiteral(1))
	require.True(t, g.Add(ap1))
	require.True(t, g.Add(ap2))
	require.True(t, g.Add(bp1))

	got := asSet(collect(g.Find(rdf.NewPattern(ex("a"), ex("p"), nil))))
	assert.Equal(t, asSet([]*rdf.Triple{ap1, ap2}), got)

	got = asSet(collect(g.Find(rdf.NewPattern(nil, ex("p"), rdf.NewIntegerLiteral(1)))))
	assert.Equal(t, asSet([]*rdf.Triple{ap1, bp1}), got)

	assert.Equal(t, 3, g.Len())

	require.True(t, g.Remove(spo("a", "p", rdf.NewIntegerLiteral(1))))
	assert.Equal(t, 2, g.Len())
	assert.False(t, g.Contains(spo("a", "p", rdf.NewIntegerLiteral(1))))
}

func TestGraphMemFindAllPatternClasses(t *testing.T) {
	g := NewGraphMem()
	var stored []*rdf.Triple
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			tr := spo(fmt.Sprintf("s%d", i), fmt.Sprintf("p%d", j), rdf.NewIntegerLiteral(int64(i*j)))
			require.True(t, g.Add(tr))
			stored = append(stored, tr)
		}
	}

	patterns := []*rdf.Triple{
		rdf.NewPattern(ex("s1"), ex("p2"), rdf.NewIntegerLiteral(2)), // SPO
		rdf.NewPattern(ex("s1"), ex("p2"), nil),                     // SPA
		rdf.NewPattern(ex("s1"), nil, rdf.NewIntegerLiteral(2)),     // SAO
		rdf.NewPattern(ex("s1"), nil, nil),                          // SAA
		rdf.NewPattern(nil, ex("p2"), rdf.NewIntegerLiteral(2)),     // APO
		rdf.NewPattern(nil, ex("p2"), nil),                          // APA
		rdf.NewPattern(nil, nil, rdf.NewIntegerLiteral(0)),          // AAO
		rdf.NewPattern(nil, nil, nil),                               // AAA
	}
	for _, pattern := range patterns {
		want := map[string]bool{}
		for _, tr := range stored {
			if tr.Matches(pattern) {
				want[tr.String()] = true
			}
		}
		got := asSet(collect(g.Find(pattern)))
		assert.Equal(t, want, got, "pattern %s", pattern)
		assert.Equal(t, len(want) > 0, g.Contains(pattern), "contains %s", pattern)
	}
}

func TestGraphMemFindReturnsStoredInstance(t *testing.T) {
	g := NewGraphMem()
	stored := spo("a", "p", rdf.NewLiteral("x"))
	g.Add(stored)

	matches := collect(g.Find(spo("a", "p", rdf.NewLiteral("x"))))
	require.Len(t, matches, 1)
	assert.Same(t, stored, matches[0])
}

// The transition scenario: 20 triples sharing a predicate must survive
// the bunch's list-to-hash upgrade unnoticed.
func TestGraphMemBunchTransitionTransparent(t *testing.T) {
	for _, threshold := range []int{1, 4, DefaultBunchThreshold} {
		t.Run(fmt.Sprintf("threshold=%d", threshold), func(t *testing.T) {
			g := NewGraphMem(WithBunchThreshold(threshold))
			for i := 0; i < 20; i++ {
				require.True(t, g.Add(spo(fmt.Sprintf("s%d", i), "p", rdf.NewIntegerLiteral(int64(i)))))
			}
			found := collect(g.Find(rdf.NewPattern(nil, ex("p"), nil)))
			assert.Len(t, found, 20)
			assert.Equal(t, 20, g.Len())
		})
	}
}

func TestGraphMemClear(t *testing.T) {
	g := NewGraphMem()
	for i := 0; i < 50; i++ {
		g.Add(spo(fmt.Sprintf("s%d", i), "p", rdf.NewIntegerLiteral(int64(i))))
	}
	g.Clear()
	assert.True(t, g.IsEmpty())
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, collect(g.Find(nil)))
	assert.False(t, g.Contains(rdf.NewPattern(nil, nil, nil)))
}

func TestGraphMemFindFailsFastOnMutation(t *testing.T) {
	g := NewGraphMem()
	for i := 0; i < 10; i++ {
		g.Add(spo(fmt.Sprintf("s%d", i), "p", rdf.NewIntegerLiteral(int64(i))))
	}
	assert.PanicsWithValue(t, ErrConcurrentModification, func() {
		for range g.Find(rdf.NewPattern(nil, ex("p"), nil)) {
			g.Add(spo("fresh", "p", rdf.NewLiteral("x")))
		}
	})
}

func TestGraphMemLiteralLexicalForms(t *testing.T) {
	// "1" and "01" as xsd:integer share an index bucket but stay
	// distinct triples.
	g := NewGraphMem()
	canonical := spo("a", "p", rdf.NewIntegerLiteral(1))
	padded := spo("a", "p", rdf.NewLiteralWithDatatype("01", rdf.XSDInteger))
	require.True(t, g.Add(canonical))
	require.True(t, g.Add(padded))
	assert.Equal(t, 2, g.Len())

	assert.True(t, g.Contains(spo("a", "p", rdf.NewIntegerLiteral(1))))
	assert.True(t, g.Contains(spo("a", "p", rdf.NewLiteralWithDatatype("01", rdf.XSDInteger))))
	matches := collect(g.Find(spo("a", "p", rdf.NewIntegerLiteral(1))))
	require.Len(t, matches, 1)
	assert.Same(t, canonical, matches[0])
}
