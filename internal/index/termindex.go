package index

import (
	"iter"

	"github.com/arne-bdt/graphmem/internal/collection"
	"github.com/arne-bdt/graphmem/pkg/rdf"
)

// TermIndex is a two-level index implementing one indexing strategy: an
// outer open-addressing map from the hash of one term position to the
// bunch of triples sharing that value. Distinct terms whose hashes
// collide share a bunch; membership is always verified against the full
// triple, so collisions cost time, never correctness.
//
// Invariant: an outer entry exists iff its bunch is non-empty.
type TermIndex struct {
	buckets   *collection.Map[Bunch]
	threshold int

	// onTransition, if set, observes list-to-hash bunch upgrades.
	onTransition func(keyHash uint64, size int)
}

// NewTermIndex creates an index. threshold is the bunch size above which
// a list bunch is upgraded to a hash bunch.
func NewTermIndex(capacity, threshold int) *TermIndex {
	return &TermIndex{
		buckets:   collection.NewMap[Bunch](capacity),
		threshold: threshold,
	}
}

// OnTransition registers an observer for bunch upgrades. Used for debug
// logging; must be set before the index is populated.
func (ix *TermIndex) OnTransition(f func(keyHash uint64, size int)) {
	ix.onTransition = f
}

// Add inserts a triple under the given indexing-value hash. It reports
// false if the bunch already holds an equal triple.
func (ix *TermIndex) Add(keyHash, tripleHash uint64, t *rdf.Triple) bool {
	bunch, ok := ix.buckets.Get(keyHash)
	if !ok {
		ix.buckets.Put(keyHash, newListBunch(t))
		return true
	}
	if !bunch.TryAdd(tripleHash, t) {
		return false
	}
	ix.maybeTransition(keyHash, bunch)
	return true
}

// AddUnchecked inserts without a duplicate check. Callers must have just
// established absence (typically via a checked Add on a sibling index).
func (ix *TermIndex) AddUnchecked(keyHash, tripleHash uint64, t *rdf.Triple) {
	bunch, ok := ix.buckets.Get(keyHash)
	if !ok {
		ix.buckets.Put(keyHash, newListBunch(t))
		return
	}
	bunch.AddUnchecked(tripleHash, t)
	ix.maybeTransition(keyHash, bunch)
}

func (ix *TermIndex) maybeTransition(keyHash uint64, bunch Bunch) {
	if bunch.HashOptimized() || bunch.Len() <= ix.threshold {
		return
	}
	ix.buckets.Put(keyHash, transition(bunch))
	if ix.onTransition != nil {
		ix.onTransition(keyHash, bunch.Len())
	}
}

// Remove deletes a triple. A bunch emptied by the removal is dropped from
// the outer map, so outer iteration never sees empty buckets.
func (ix *TermIndex) Remove(keyHash, tripleHash uint64, t *rdf.Triple) bool {
	bunch, ok := ix.buckets.Get(keyHash)
	if !ok {
		return false
	}
	if !bunch.TryRemove(tripleHash, t) {
		return false
	}
	if bunch.Len() == 0 {
		ix.buckets.Delete(keyHash)
	}
	return true
}

// Contains reports whether the exact triple is present.
func (ix *TermIndex) Contains(keyHash, tripleHash uint64, t *rdf.Triple) bool {
	bunch, ok := ix.buckets.Get(keyHash)
	return ok && bunch.Contains(tripleHash, t)
}

// Get returns the stored triple equal to the probe, if present.
func (ix *TermIndex) Get(keyHash, tripleHash uint64, t *rdf.Triple) (*rdf.Triple, bool) {
	bunch, ok := ix.buckets.Get(keyHash)
	if !ok {
		return nil, false
	}
	return bunch.Get(tripleHash, t)
}

// Bunch returns the bunch for an indexing-value hash, if any.
func (ix *TermIndex) Bunch(keyHash uint64) (Bunch, bool) {
	return ix.buckets.Get(keyHash)
}

// All returns a fail-fast iterator over every triple in the index.
func (ix *TermIndex) All() iter.Seq[*rdf.Triple] {
	return func(yield func(*rdf.Triple) bool) {
		for bunch := range ix.buckets.Values() {
			for t := range bunch.All() {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Size sums the bunch sizes: O(distinct keys), not O(1). Callers needing
// frequent counts keep a running counter of their own.
func (ix *TermIndex) Size() int {
	total := 0
	for bunch := range ix.buckets.Values() {
		total += bunch.Len()
	}
	return total
}

// NumKeys returns the number of distinct indexing-value hashes.
func (ix *TermIndex) NumKeys() int { return ix.buckets.Len() }

func (ix *TermIndex) IsEmpty() bool { return ix.buckets.Len() == 0 }

func (ix *TermIndex) Clear() { ix.buckets.Clear() }

// SlotCap exposes the outer slot array bound for chunked parallel scans:
// positions [0, SlotCap) are valid for BunchAt between mutations.
func (ix *TermIndex) SlotCap() int { return ix.buckets.Cap() }

// BunchAt returns the bunch at outer slot position i, if occupied.
func (ix *TermIndex) BunchAt(i int) (Bunch, bool) {
	_, bunch, ok := ix.buckets.At(i)
	return bunch, ok
}
