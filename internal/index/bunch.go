package index

import (
	"iter"

	"github.com/arne-bdt/graphmem/internal/collection"
	"github.com/arne-bdt/graphmem/pkg/rdf"
)

// Bunch holds the triples sharing one indexing value. Two variants exist:
// a list-backed bunch (cheap while small, O(n) membership) and a
// hash-backed bunch (O(1) amortized membership, more overhead per entry).
// The owning TermIndex upgrades list to hash once the bunch outgrows the
// configured threshold; the upgrade is one-way.
//
// The hash arguments are the full triple hashes, precomputed by the
// caller; list bunches ignore them.
type Bunch interface {
	Len() int
	Contains(hash uint64, t *rdf.Triple) bool

	// Get returns the stored triple equal to the probe, if present.
	Get(hash uint64, t *rdf.Triple) (*rdf.Triple, bool)

	TryAdd(hash uint64, t *rdf.Triple) bool
	AddUnchecked(hash uint64, t *rdf.Triple)
	TryRemove(hash uint64, t *rdf.Triple) bool
	AnyMatch(pred func(*rdf.Triple) bool) bool
	All() iter.Seq[*rdf.Triple]

	// HashOptimized reports whether membership checks use the supplied
	// hash codes. False for the list variant.
	HashOptimized() bool
}

// listBunch is the small-cardinality variant: a plain slice, scanned
// linearly. Removal swaps with the last element, so order is not stable.
type listBunch struct {
	triples []*rdf.Triple
	rev     uint32
}

// newListBunch seeds a fresh bunch with its first triple. The caller has
// just failed to find a bunch for this indexing value, so no containment
// check is needed.
func newListBunch(first *rdf.Triple) *listBunch {
	return &listBunch{triples: []*rdf.Triple{first}}
}

func (b *listBunch) Len() int            { return len(b.triples) }
func (b *listBunch) HashOptimized() bool { return false }

func (b *listBunch) Contains(_ uint64, t *rdf.Triple) bool {
	for _, cur := range b.triples {
		if cur.Equals(t) {
			return true
		}
	}
	return false
}

func (b *listBunch) Get(_ uint64, t *rdf.Triple) (*rdf.Triple, bool) {
	for _, cur := range b.triples {
		if cur.Equals(t) {
			return cur, true
		}
	}
	return nil, false
}

func (b *listBunch) TryAdd(hash uint64, t *rdf.Triple) bool {
	if b.Contains(hash, t) {
		return false
	}
	b.AddUnchecked(hash, t)
	return true
}

func (b *listBunch) AddUnchecked(_ uint64, t *rdf.Triple) {
	b.triples = append(b.triples, t)
	b.rev++
}

func (b *listBunch) TryRemove(_ uint64, t *rdf.Triple) bool {
	for i, cur := range b.triples {
		if cur.Equals(t) {
			last := len(b.triples) - 1
			b.triples[i] = b.triples[last]
			b.triples[last] = nil
			b.triples = b.triples[:last]
			b.rev++
			return true
		}
	}
	return false
}

func (b *listBunch) AnyMatch(pred func(*rdf.Triple) bool) bool {
	for _, cur := range b.triples {
		if pred(cur) {
			return true
		}
	}
	return false
}

func (b *listBunch) All() iter.Seq[*rdf.Triple] {
	return func(yield func(*rdf.Triple) bool) {
		stamp := b.rev
		for _, cur := range b.triples {
			if stamp != b.rev {
				panic(collection.ErrConcurrentModification)
			}
			if !yield(cur) {
				return
			}
		}
	}
}

// hashBunch is the large-cardinality variant, backed by the
// open-addressing set.
type hashBunch struct {
	set *collection.Set[*rdf.Triple]
}

func tripleEquals(a, b *rdf.Triple) bool { return a.Equals(b) }

func (b *hashBunch) Len() int            { return b.set.Len() }
func (b *hashBunch) HashOptimized() bool { return true }

func (b *hashBunch) Contains(hash uint64, t *rdf.Triple) bool {
	return b.set.Contains(hash, t)
}

func (b *hashBunch) Get(hash uint64, t *rdf.Triple) (*rdf.Triple, bool) {
	return b.set.Get(hash, t)
}

func (b *hashBunch) TryAdd(hash uint64, t *rdf.Triple) bool {
	return b.set.TryAdd(hash, t)
}

func (b *hashBunch) AddUnchecked(hash uint64, t *rdf.Triple) {
	b.set.AddUnchecked(hash, t)
}

func (b *hashBunch) TryRemove(hash uint64, t *rdf.Triple) bool {
	return b.set.TryRemove(hash, t)
}

func (b *hashBunch) AnyMatch(pred func(*rdf.Triple) bool) bool {
	return b.set.AnyMatch(pred)
}

func (b *hashBunch) All() iter.Seq[*rdf.Triple] {
	return b.set.All()
}

// transition builds the hash-backed replacement for a list bunch. Every
// element is copied across unchecked; the list is discarded by the caller
// publishing the returned bunch in its place. There is no downgrade path.
func transition(b Bunch) *hashBunch {
	hb := &hashBunch{set: collection.NewSet(2*b.Len(), tripleEquals)}
	for t := range b.All() {
		hb.set.AddUnchecked(t.Hash(), t)
	}
	return hb
}
