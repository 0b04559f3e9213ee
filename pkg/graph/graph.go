// Package graph provides in-memory RDF triple stores answering
// pattern-match queries: a hash-indexed store for general use, a flat
// list store for tiny graphs, a bitmap store with uniform cost across
// all pattern classes, and a quad dataset layered over named graphs.
//
// Stores are passive data structures with no internal locking. A single
// writer may mutate; any number of readers may query a structure that is
// not being concurrently mutated. Iterators are optimistic and fail fast:
// a mutation during traversal panics with ErrConcurrentModification.
package graph

import (
	"iter"

	"github.com/arne-bdt/graphmem/internal/collection"
	"github.com/arne-bdt/graphmem/pkg/rdf"
)

// ErrConcurrentModification is the panic value raised when an iterator
// detects that its backing store was mutated between steps. The fault is
// fatal to the traversal; a fresh Find call is required to re-scan.
var ErrConcurrentModification = collection.ErrConcurrentModification

// TripleStore is the storage capability shared by all store variants.
//
// Add, Remove and Clear mutate; duplicate adds and absent removes are
// expected outcomes signaled by the boolean result, never errors.
// Contains and Find accept pattern triples: any position may be rdf.Any
// (or nil via rdf.NewPattern), and concrete positions require structural
// equality. Find returns a lazy, finite, single-use sequence.
type TripleStore interface {
	// Add stores a concrete triple. It reports false if an equal triple
	// is already present. Panics if any position is a wildcard.
	Add(t *rdf.Triple) bool

	// Remove deletes a concrete triple, reporting whether it was present.
	Remove(t *rdf.Triple) bool

	// Clear removes every triple.
	Clear()

	// Contains reports whether any stored triple matches the pattern.
	Contains(pattern *rdf.Triple) bool

	// Find returns the stored triples matching the pattern. The sequence
	// is lazy and not restartable.
	Find(pattern *rdf.Triple) iter.Seq[*rdf.Triple]

	// Len returns the number of stored triples.
	Len() int

	IsEmpty() bool
}

// requireConcrete guards the mutation entry points: storing a wildcard
// is a caller bug, not malformed data.
func requireConcrete(t *rdf.Triple) {
	if t == nil {
		panic("graph: triple must not be nil")
	}
	if !t.IsConcrete() {
		panic("graph: stored triple must not contain wildcards")
	}
}
