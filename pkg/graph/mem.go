package graph

import (
	"context"
	"iter"
	"log/slog"

	"github.com/arne-bdt/graphmem/internal/index"
	"github.com/arne-bdt/graphmem/pkg/rdf"
)

// Compile-time check
var _ TripleStore = (*GraphMem)(nil)

// GraphMem is the hash-indexed store: three two-level term indexes, one
// per position, so every pattern class has a cheap lookup path. Lookups
// classify the pattern and dispatch to whichever index covers a concrete
// position, post-filtering candidates against the rest of the pattern.
//
// The triple count is maintained as a running counter; summing bunch
// sizes per query would cost O(distinct terms).
type GraphMem struct {
	subjects   *index.TermIndex
	predicates *index.TermIndex
	objects    *index.TermIndex

	size     int
	modCount uint64
	logger   *slog.Logger
}

// NewGraphMem creates an empty hash-indexed store.
func NewGraphMem(opts ...Option) *GraphMem {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	g := &GraphMem{
		subjects:   index.NewTermIndex(o.initialCapacity, o.bunchThreshold),
		predicates: index.NewTermIndex(o.initialCapacity, o.bunchThreshold),
		objects:    index.NewTermIndex(o.initialCapacity, o.bunchThreshold),
		logger:     o.logger,
	}
	if o.logger.Enabled(context.Background(), slog.LevelDebug) {
		for name, ix := range map[string]*index.TermIndex{
			"subject": g.subjects, "predicate": g.predicates, "object": g.objects,
		} {
			ix.OnTransition(func(keyHash uint64, size int) {
				g.logger.Debug("bunch upgraded to hash form",
					"index", name, "keyHash", keyHash, "size", size)
			})
		}
	}
	return g
}

// Add stores a triple in all three indexes. The subject index does the
// duplicate check; the other two take the result on trust.
func (g *GraphMem) Add(t *rdf.Triple) bool {
	requireConcrete(t)
	th := t.Hash()
	if !g.subjects.Add(t.Subject.Hash(), th, t) {
		return false
	}
	g.predicates.AddUnchecked(t.Predicate.Hash(), th, t)
	g.objects.AddUnchecked(t.Object.Hash(), th, t)
	g.size++
	g.modCount++
	return true
}

// Remove deletes a triple from all three indexes.
func (g *GraphMem) Remove(t *rdf.Triple) bool {
	requireConcrete(t)
	th := t.Hash()
	if !g.subjects.Remove(t.Subject.Hash(), th, t) {
		return false
	}
	g.predicates.Remove(t.Predicate.Hash(), th, t)
	g.objects.Remove(t.Object.Hash(), th, t)
	g.size--
	g.modCount++
	return true
}

func (g *GraphMem) Clear() {
	g.subjects.Clear()
	g.predicates.Clear()
	g.objects.Clear()
	g.size = 0
	g.modCount++
}

func (g *GraphMem) Len() int      { return g.size }
func (g *GraphMem) IsEmpty() bool { return g.size == 0 }

// Contains reports whether any stored triple matches the pattern. The
// fully-concrete case probes the subject index directly; everything else
// is an any-match over the same candidates Find would scan.
func (g *GraphMem) Contains(pattern *rdf.Triple) bool {
	switch index.ClassifyTriple(pattern) {
	case index.PatternSPO:
		return g.subjects.Contains(pattern.Subject.Hash(), pattern.Hash(), pattern)
	case index.PatternAAA:
		return g.size > 0
	}
	for range g.Find(pattern) {
		return true
	}
	return false
}

// Find returns the stored triples matching the pattern. Dispatch: SPO
// probes the subject index exactly; any pattern with a concrete subject
// scans that subject's bunch; APO and AAO scan the object's bunch; APA
// the predicate's; AAA everything. Candidates are post-filtered against
// the remaining concrete positions, which keeps lookups correct even
// though each index covers only one position.
func (g *GraphMem) Find(pattern *rdf.Triple) iter.Seq[*rdf.Triple] {
	pt := index.ClassifyTriple(pattern)
	if pt == index.PatternSPO {
		return func(yield func(*rdf.Triple) bool) {
			if t, ok := g.subjects.Get(pattern.Subject.Hash(), pattern.Hash(), pattern); ok {
				yield(t)
			}
		}
	}
	return g.filtered(g.candidates(pattern, pt), pattern)
}

// candidates selects the cheapest index path for a non-SPO pattern.
func (g *GraphMem) candidates(pattern *rdf.Triple, pt index.Pattern) iter.Seq[*rdf.Triple] {
	switch {
	case pt.SubjectConcrete():
		return g.bunchSeq(g.subjects, pattern.Subject)
	case pt.ObjectConcrete():
		return g.bunchSeq(g.objects, pattern.Object)
	case pt.PredicateConcrete():
		return g.bunchSeq(g.predicates, pattern.Predicate)
	default:
		return g.subjects.All()
	}
}

func (g *GraphMem) bunchSeq(ix *index.TermIndex, key rdf.Term) iter.Seq[*rdf.Triple] {
	return func(yield func(*rdf.Triple) bool) {
		bunch, ok := ix.Bunch(key.Hash())
		if !ok {
			return
		}
		for t := range bunch.All() {
			if !yield(t) {
				return
			}
		}
	}
}

// filtered applies the pattern filter and the store-level fail-fast
// guard: the modification stamp is checked before every step, so a
// mutation through any index faults the traversal.
func (g *GraphMem) filtered(src iter.Seq[*rdf.Triple], pattern *rdf.Triple) iter.Seq[*rdf.Triple] {
	return func(yield func(*rdf.Triple) bool) {
		stamp := g.modCount
		for t := range src {
			if stamp != g.modCount {
				panic(ErrConcurrentModification)
			}
			if t.Matches(pattern) && !yield(t) {
				return
			}
		}
	}
}
