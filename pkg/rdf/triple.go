package rdf

import "fmt"

// Triple represents an RDF triple (subject, predicate, object).
// Triples are immutable once constructed; none of the positions may be
// nil, and stored triples must not contain the Any wildcard (wildcard
// status belongs to query patterns, not data).
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewTriple constructs a triple. It panics if any position is nil; a
// nil position is a caller bug, never malformed data.
func NewTriple(subject, predicate, object Term) *Triple {
	if subject == nil || predicate == nil || object == nil {
		panic("rdf: triple position must not be nil")
	}
	return &Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// NewPattern constructs a query pattern; nil positions become Any.
func NewPattern(subject, predicate, object Term) *Triple {
	if subject == nil {
		subject = Any
	}
	if predicate == nil {
		predicate = Any
	}
	if object == nil {
		object = Any
	}
	return &Triple{Subject: subject, Predicate: predicate, Object: object}
}

func (t *Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// IsConcrete reports whether all three positions are concrete terms.
func (t *Triple) IsConcrete() bool {
	return t.Subject.IsConcrete() && t.Predicate.IsConcrete() && t.Object.IsConcrete()
}

func (t *Triple) Equals(other *Triple) bool {
	if other == nil {
		return false
	}
	return t.Subject.Equals(other.Subject) &&
		t.Predicate.Equals(other.Predicate) &&
		t.Object.Equals(other.Object)
}

// Hash returns a position-dependent combination of the term hashes.
func (t *Triple) Hash() uint64 {
	return mixHashes(t.Subject.Hash(), t.Predicate.Hash(), t.Object.Hash())
}

// Matches reports whether this triple is accepted by a pattern triple.
// A nil pattern matches everything.
func (t *Triple) Matches(pattern *Triple) bool {
	if pattern == nil {
		return true
	}
	return Matches(pattern.Subject, t.Subject) &&
		Matches(pattern.Predicate, t.Predicate) &&
		Matches(pattern.Object, t.Object)
}

// Quad represents an RDF quad (subject, predicate, object, graph)
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term
}

// NewQuad constructs a quad. A nil graph means the default graph; the
// other positions must not be nil.
func NewQuad(subject, predicate, object, graph Term) *Quad {
	if subject == nil || predicate == nil || object == nil {
		panic("rdf: quad position must not be nil")
	}
	if graph == nil {
		graph = NewDefaultGraph()
	}
	return &Quad{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Graph:     graph,
	}
}

// NewQuadPattern constructs a quad query pattern; nil positions become
// Any, including the graph (match quads in every graph).
func NewQuadPattern(subject, predicate, object, graph Term) *Quad {
	if graph == nil {
		graph = Any
	}
	p := NewPattern(subject, predicate, object)
	return &Quad{Subject: p.Subject, Predicate: p.Predicate, Object: p.Object, Graph: graph}
}

func (q *Quad) String() string {
	return fmt.Sprintf("%s %s %s %s .", q.Subject, q.Predicate, q.Object, q.Graph)
}

// Triple returns the triple part of the quad.
func (q *Quad) Triple() *Triple {
	return &Triple{Subject: q.Subject, Predicate: q.Predicate, Object: q.Object}
}

func (q *Quad) Equals(other *Quad) bool {
	if other == nil {
		return false
	}
	return q.Subject.Equals(other.Subject) &&
		q.Predicate.Equals(other.Predicate) &&
		q.Object.Equals(other.Object) &&
		q.Graph.Equals(other.Graph)
}
