package graph

import (
	"iter"

	"github.com/arne-bdt/graphmem/internal/collection"
	"github.com/arne-bdt/graphmem/pkg/rdf"
)

// Dataset stores quads: a default graph plus any number of named graphs,
// each backed by its own TripleStore. Named graphs are indexed by the
// graph term's hash; terms whose hashes collide share a bucket and are
// disambiguated by term equality. A named graph emptied by a removal is
// dropped, so graph enumeration never yields empty graphs.
type Dataset struct {
	def      TripleStore
	named    *collection.Map[[]*namedGraph]
	newStore func() TripleStore
}

type namedGraph struct {
	term  rdf.Term
	store TripleStore
}

// NewDataset creates an empty dataset whose graphs are hash-indexed
// stores built with the given options.
func NewDataset(opts ...Option) *Dataset {
	factory := func() TripleStore { return NewGraphMem(opts...) }
	return &Dataset{
		def:      factory(),
		named:    collection.NewMap[[]*namedGraph](0),
		newStore: factory,
	}
}

// AddQuad stores a quad, creating its named graph on first use. A nil or
// DefaultGraph graph term targets the default graph.
func (d *Dataset) AddQuad(q *rdf.Quad) bool {
	if isDefaultGraph(q.Graph) {
		return d.def.Add(q.Triple())
	}
	if !q.Graph.IsConcrete() {
		panic("graph: stored quad must not have a wildcard graph")
	}
	var added bool
	d.named.Upsert(q.Graph.Hash(), func(chain []*namedGraph, ok bool) ([]*namedGraph, bool) {
		for _, ng := range chain {
			if ng.term.Equals(q.Graph) {
				added = ng.store.Add(q.Triple())
				return chain, true
			}
		}
		st := d.newStore()
		added = st.Add(q.Triple())
		return append(chain, &namedGraph{term: q.Graph, store: st}), true
	})
	return added
}

// RemoveQuad deletes a quad; removing the last triple of a named graph
// drops the graph itself.
func (d *Dataset) RemoveQuad(q *rdf.Quad) bool {
	if isDefaultGraph(q.Graph) {
		return d.def.Remove(q.Triple())
	}
	if !q.Graph.IsConcrete() {
		panic("graph: removed quad must not have a wildcard graph")
	}
	var removed bool
	d.named.Upsert(q.Graph.Hash(), func(chain []*namedGraph, ok bool) ([]*namedGraph, bool) {
		if !ok {
			return nil, false
		}
		for i, ng := range chain {
			if !ng.term.Equals(q.Graph) {
				continue
			}
			removed = ng.store.Remove(q.Triple())
			if ng.store.IsEmpty() {
				chain[i] = chain[len(chain)-1]
				chain = chain[:len(chain)-1]
			}
			break
		}
		return chain, len(chain) > 0
	})
	return removed
}

// Graph returns the store for a graph term: the default graph for nil or
// DefaultGraph, otherwise the named graph if it exists.
func (d *Dataset) Graph(term rdf.Term) (TripleStore, bool) {
	if isDefaultGraph(term) {
		return d.def, true
	}
	chain, _ := d.named.Get(term.Hash())
	for _, ng := range chain {
		if ng.term.Equals(term) {
			return ng.store, true
		}
	}
	return nil, false
}

// DefaultGraph returns the default graph's store.
func (d *Dataset) DefaultGraph() TripleStore { return d.def }

// ContainsQuad reports whether any stored quad matches the pattern; the
// graph position may be a wildcard.
func (d *Dataset) ContainsQuad(pattern *rdf.Quad) bool {
	for range d.FindQuads(pattern) {
		return true
	}
	return false
}

// FindQuads returns the stored quads matching the pattern. A wildcard
// graph position scans the default graph and every named graph.
func (d *Dataset) FindQuads(pattern *rdf.Quad) iter.Seq[*rdf.Quad] {
	var tp *rdf.Triple
	var gp rdf.Term = rdf.Any
	if pattern != nil {
		tp = rdf.NewPattern(pattern.Subject, pattern.Predicate, pattern.Object)
		gp = pattern.Graph
	}
	return func(yield func(*rdf.Quad) bool) {
		for graphTerm, store := range d.selectGraphs(gp) {
			for t := range store.Find(tp) {
				q := &rdf.Quad{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object, Graph: graphTerm}
				if !yield(q) {
					return
				}
			}
		}
	}
}

// selectGraphs yields the graphs a graph-position pattern term selects.
func (d *Dataset) selectGraphs(g rdf.Term) iter.Seq2[rdf.Term, TripleStore] {
	return func(yield func(rdf.Term, TripleStore) bool) {
		if g == nil || !g.IsConcrete() {
			if !yield(rdf.NewDefaultGraph(), d.def) {
				return
			}
			for chain := range d.named.Values() {
				for _, ng := range chain {
					if !yield(ng.term, ng.store) {
						return
					}
				}
			}
			return
		}
		if store, ok := d.Graph(g); ok {
			yield(g, store)
		}
	}
}

// Graphs returns the named graph terms, in no particular order.
func (d *Dataset) Graphs() iter.Seq[rdf.Term] {
	return func(yield func(rdf.Term) bool) {
		for chain := range d.named.Values() {
			for _, ng := range chain {
				if !yield(ng.term) {
					return
				}
			}
		}
	}
}

// LenGraphs returns the number of non-empty named graphs.
func (d *Dataset) LenGraphs() int {
	n := 0
	for chain := range d.named.Values() {
		n += len(chain)
	}
	return n
}

// LenQuads counts quads across all graphs: O(number of graphs).
func (d *Dataset) LenQuads() int {
	n := d.def.Len()
	for chain := range d.named.Values() {
		for _, ng := range chain {
			n += ng.store.Len()
		}
	}
	return n
}

func (d *Dataset) IsEmpty() bool {
	return d.def.IsEmpty() && d.named.Len() == 0
}

// Clear removes every quad and every named graph.
func (d *Dataset) Clear() {
	d.def.Clear()
	d.named.Clear()
}

func isDefaultGraph(term rdf.Term) bool {
	return term == nil || term.Type() == rdf.TermTypeDefaultGraph
}
