package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/arne-bdt/graphmem/pkg/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachParallelMatchesFind(t *testing.T) {
	g := NewGraphMem()
	for i := 0; i < 200; i++ {
		g.Add(spo(fmt.Sprintf("s%d", i), fmt.Sprintf("p%d", i%5), rdf.NewIntegerLiteral(int64(i))))
	}
	pattern := rdf.NewPattern(nil, ex("p2"), nil)

	var mu sync.Mutex
	got := map[string]bool{}
	err := g.ForEachParallel(context.Background(), pattern, 4, func(tr *rdf.Triple) error {
		mu.Lock()
		got[tr.String()] = true
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, asSet(collect(g.Find(pattern))), got)
}

func TestForEachParallelPropagatesError(t *testing.T) {
	g := NewGraphMem()
	for i := 0; i < 50; i++ {
		g.Add(spo(fmt.Sprintf("s%d", i), "p", rdf.NewIntegerLiteral(int64(i))))
	}
	boom := errors.New("boom")
	err := g.ForEachParallel(context.Background(), nil, 4, func(tr *rdf.Triple) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestForEachParallelHonorsCancellation(t *testing.T) {
	g := NewGraphMem()
	for i := 0; i < 50; i++ {
		g.Add(spo(fmt.Sprintf("s%d", i), "p", rdf.NewIntegerLiteral(int64(i))))
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.ForEachParallel(ctx, nil, 2, func(tr *rdf.Triple) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForEachParallelEmptyStore(t *testing.T) {
	g := NewGraphMem()
	err := g.ForEachParallel(context.Background(), nil, 0, func(tr *rdf.Triple) error {
		t.Fatal("no triples expected")
		return nil
	})
	assert.NoError(t, err)
}
