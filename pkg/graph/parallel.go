package graph

import (
	"context"
	"runtime"

	"github.com/arne-bdt/graphmem/pkg/rdf"
	"golang.org/x/sync/errgroup"
)

// ForEachParallel applies fn to every stored triple matching the pattern,
// splitting the subject index's slot range across workers. Ordering is
// unspecified and fn must be safe for concurrent calls.
//
// The store must not be mutated during the scan; every worker checks the
// shared modification stamp before each bunch, and a detected mutation
// aborts the whole group with ErrConcurrentModification (returned, not
// panicked, so errgroup can tear the workers down). The context cancels
// the scan; the first fn error wins.
//
// This is the bulk-scan path. Patterns with a concrete position are
// usually better served by Find, which touches a single bunch.
func (g *GraphMem) ForEachParallel(ctx context.Context, pattern *rdf.Triple, workers int, fn func(*rdf.Triple) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	stamp := g.modCount
	slots := g.subjects.SlotCap()
	chunk := (slots + workers - 1) / workers

	eg, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < slots; lo += chunk {
		hi := min(lo+chunk, slots)
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if stamp != g.modCount {
					return ErrConcurrentModification
				}
				bunch, ok := g.subjects.BunchAt(i)
				if !ok {
					continue
				}
				for t := range bunch.All() {
					if !t.Matches(pattern) {
						continue
					}
					if err := fn(t); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	return eg.Wait()
}
