package graph

import (
	"iter"

	"github.com/arne-bdt/graphmem/pkg/rdf"
)

// Compile-time check
var _ TripleStore = (*GraphList)(nil)

// GraphList is the flat store variant: a plain slice scanned linearly by
// every operation. For a few dozen triples it beats the indexed stores on
// both memory and time; it also serves as the behavioral reference in
// cross-variant tests. Removal swaps with the last element, so iteration
// order is not insertion order.
type GraphList struct {
	triples []*rdf.Triple
	rev     uint64
}

// NewGraphList creates an empty flat store.
func NewGraphList() *GraphList {
	return &GraphList{}
}

func (g *GraphList) Add(t *rdf.Triple) bool {
	requireConcrete(t)
	for _, cur := range g.triples {
		if cur.Equals(t) {
			return false
		}
	}
	g.triples = append(g.triples, t)
	g.rev++
	return true
}

func (g *GraphList) Remove(t *rdf.Triple) bool {
	requireConcrete(t)
	for i, cur := range g.triples {
		if cur.Equals(t) {
			last := len(g.triples) - 1
			g.triples[i] = g.triples[last]
			g.triples[last] = nil
			g.triples = g.triples[:last]
			g.rev++
			return true
		}
	}
	return false
}

func (g *GraphList) Clear() {
	g.triples = nil
	g.rev++
}

func (g *GraphList) Len() int      { return len(g.triples) }
func (g *GraphList) IsEmpty() bool { return len(g.triples) == 0 }

func (g *GraphList) Contains(pattern *rdf.Triple) bool {
	for _, cur := range g.triples {
		if cur.Matches(pattern) {
			return true
		}
	}
	return false
}

func (g *GraphList) Find(pattern *rdf.Triple) iter.Seq[*rdf.Triple] {
	return func(yield func(*rdf.Triple) bool) {
		stamp := g.rev
		for _, cur := range g.triples {
			if stamp != g.rev {
				panic(ErrConcurrentModification)
			}
			if cur.Matches(pattern) && !yield(cur) {
				return
			}
		}
	}
}
