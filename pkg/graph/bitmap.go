package graph

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/arne-bdt/graphmem/pkg/rdf"
)

// Compile-time check
var _ TripleStore = (*GraphBitmap)(nil)

// GraphBitmap is the uniform-performance store variant: terms are
// dictionary-encoded to uint32 ids and each (position, term) pair keeps a
// roaring bitmap of the triple rows containing that term. A pattern query
// intersects the posting bitmaps of its concrete positions with the
// liveness bitmap, so every pattern class costs about the same, where the
// hierarchical indexes of GraphMem specialize for skew.
type GraphBitmap struct {
	termIDs map[string]uint32 // term rendering -> dictionary id
	terms   []rdf.Term

	rows   []*rdf.Triple      // row id -> stored triple (nil = freed)
	rowKey [][3]uint32        // row id -> term ids per position
	rowIDs map[[3]uint32]uint32
	free   []uint32 // row ids available for reuse

	postings [3]map[uint32]*roaring.Bitmap // per position: term id -> rows
	live     *roaring.Bitmap

	rev uint64
}

// NewGraphBitmap creates an empty bitmap store.
func NewGraphBitmap() *GraphBitmap {
	g := &GraphBitmap{}
	g.reset()
	return g
}

func (g *GraphBitmap) reset() {
	g.termIDs = make(map[string]uint32)
	g.terms = nil
	g.rows = nil
	g.rowKey = nil
	g.rowIDs = make(map[[3]uint32]uint32)
	g.free = nil
	for pos := range g.postings {
		g.postings[pos] = make(map[uint32]*roaring.Bitmap)
	}
	g.live = roaring.New()
}

// internTerm returns the dictionary id for a term, creating one on first
// sight. The dictionary keys on the full rendering, so distinct lexical
// forms of one value stay distinct triples.
func (g *GraphBitmap) internTerm(t rdf.Term) uint32 {
	key := t.String()
	if id, ok := g.termIDs[key]; ok {
		return id
	}
	id := uint32(len(g.terms))
	g.terms = append(g.terms, t)
	g.termIDs[key] = id
	return id
}

// lookupTerm resolves a term already in the dictionary.
func (g *GraphBitmap) lookupTerm(t rdf.Term) (uint32, bool) {
	id, ok := g.termIDs[t.String()]
	return id, ok
}

func (g *GraphBitmap) Add(t *rdf.Triple) bool {
	requireConcrete(t)
	key := [3]uint32{
		g.internTerm(t.Subject),
		g.internTerm(t.Predicate),
		g.internTerm(t.Object),
	}
	if _, dup := g.rowIDs[key]; dup {
		return false
	}

	var row uint32
	if n := len(g.free); n > 0 {
		row = g.free[n-1]
		g.free = g.free[:n-1]
		g.rows[row] = t
		g.rowKey[row] = key
	} else {
		row = uint32(len(g.rows))
		g.rows = append(g.rows, t)
		g.rowKey = append(g.rowKey, key)
	}
	g.rowIDs[key] = row

	for pos, termID := range key {
		bm := g.postings[pos][termID]
		if bm == nil {
			bm = roaring.New()
			g.postings[pos][termID] = bm
		}
		bm.Add(row)
	}
	g.live.Add(row)
	g.rev++
	return true
}

func (g *GraphBitmap) Remove(t *rdf.Triple) bool {
	requireConcrete(t)
	key, ok := g.tripleKey(t)
	if !ok {
		return false
	}
	row, ok := g.rowIDs[key]
	if !ok {
		return false
	}

	for pos, termID := range key {
		if bm := g.postings[pos][termID]; bm != nil {
			bm.Remove(row)
			if bm.IsEmpty() {
				delete(g.postings[pos], termID)
			}
		}
	}
	g.live.Remove(row)
	delete(g.rowIDs, key)
	g.rows[row] = nil
	g.free = append(g.free, row)
	g.rev++
	return true
}

// tripleKey resolves a concrete triple to its dictionary key without
// interning; a position never seen means the triple cannot be present.
func (g *GraphBitmap) tripleKey(t *rdf.Triple) ([3]uint32, bool) {
	var key [3]uint32
	terms := [3]rdf.Term{t.Subject, t.Predicate, t.Object}
	for pos, term := range terms {
		id, ok := g.lookupTerm(term)
		if !ok {
			return key, false
		}
		key[pos] = id
	}
	return key, true
}

func (g *GraphBitmap) Clear() {
	g.reset()
	g.rev++
}

func (g *GraphBitmap) Len() int      { return int(g.live.GetCardinality()) }
func (g *GraphBitmap) IsEmpty() bool { return g.live.IsEmpty() }

func (g *GraphBitmap) Contains(pattern *rdf.Triple) bool {
	if pattern != nil && pattern.IsConcrete() {
		key, ok := g.tripleKey(pattern)
		if !ok {
			return false
		}
		_, present := g.rowIDs[key]
		return present
	}
	bm := g.match(pattern)
	return bm != nil && !bm.IsEmpty()
}

// match intersects the posting bitmaps of the pattern's concrete
// positions with the liveness bitmap. A nil result means no candidates.
func (g *GraphBitmap) match(pattern *rdf.Triple) *roaring.Bitmap {
	result := g.live.Clone()
	if pattern == nil {
		return result
	}
	terms := [3]rdf.Term{pattern.Subject, pattern.Predicate, pattern.Object}
	for pos, term := range terms {
		if term == nil || !term.IsConcrete() {
			continue
		}
		id, ok := g.lookupTerm(term)
		if !ok {
			return nil
		}
		bm := g.postings[pos][id]
		if bm == nil {
			return nil
		}
		result.And(bm)
	}
	return result
}

func (g *GraphBitmap) Find(pattern *rdf.Triple) iter.Seq[*rdf.Triple] {
	return func(yield func(*rdf.Triple) bool) {
		bm := g.match(pattern)
		if bm == nil {
			return
		}
		stamp := g.rev
		it := bm.Iterator()
		for it.HasNext() {
			if stamp != g.rev {
				panic(ErrConcurrentModification)
			}
			if !yield(g.rows[it.Next()]) {
				return
			}
		}
	}
}
