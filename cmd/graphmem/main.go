package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/arne-bdt/graphmem/pkg/graph"
	"github.com/arne-bdt/graphmem/pkg/rdf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: graphmem <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  demo        - Load sample data and run pattern queries")
		fmt.Println("  bench [n]   - Index n generated triples and time lookups (default: 100000)")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "demo":
		runDemo()
	case "bench":
		n := 100000
		if len(os.Args) >= 3 {
			parsed, err := strconv.Atoi(os.Args[2])
			if err != nil {
				fmt.Printf("Invalid triple count: %s\n", os.Args[2])
				os.Exit(1)
			}
			n = parsed
		}
		runBench(n)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func runDemo() {
	fmt.Println("=== GraphMem Demo ===")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := graph.NewGraphMem(graph.WithLogger(logger))

	alice := rdf.NewNamedNode("http://example.org/alice")
	bob := rdf.NewNamedNode("http://example.org/bob")
	knows := rdf.NewNamedNode("http://xmlns.com/foaf/0.1/knows")
	name := rdf.NewNamedNode("http://xmlns.com/foaf/0.1/name")
	age := rdf.NewNamedNode("http://xmlns.com/foaf/0.1/age")

	g.Add(rdf.NewTriple(alice, name, rdf.NewLiteral("Alice")))
	g.Add(rdf.NewTriple(alice, age, rdf.NewIntegerLiteral(30)))
	g.Add(rdf.NewTriple(alice, knows, bob))
	g.Add(rdf.NewTriple(bob, name, rdf.NewLiteral("Bob")))
	g.Add(rdf.NewTriple(bob, knows, alice))

	fmt.Printf("Loaded %d triples\n\n", g.Len())

	fmt.Println("Everything about alice:")
	for t := range g.Find(rdf.NewPattern(alice, nil, nil)) {
		fmt.Printf("  %s\n", t)
	}

	fmt.Println("\nWho knows whom:")
	for t := range g.Find(rdf.NewPattern(nil, knows, nil)) {
		fmt.Printf("  %s\n", t)
	}

	fmt.Println("\nWho is named Bob:")
	for t := range g.Find(rdf.NewPattern(nil, name, rdf.NewLiteral("Bob"))) {
		fmt.Printf("  %s\n", t)
	}
}

func runBench(n int) {
	fmt.Printf("=== GraphMem Bench (%d triples) ===\n\n", n)

	g := graph.NewGraphMem(graph.WithInitialCapacity(n))
	subjects := n / 100
	if subjects == 0 {
		subjects = 1
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		g.Add(rdf.NewTriple(
			rdf.NewNamedNode(fmt.Sprintf("http://example.org/s%d", i%subjects)),
			rdf.NewNamedNode(fmt.Sprintf("http://example.org/p%d", i%7)),
			rdf.NewIntegerLiteral(int64(i)),
		))
	}
	fmt.Printf("Add:      %d triples in %v\n", g.Len(), time.Since(start))

	probe := rdf.NewPattern(rdf.NewNamedNode("http://example.org/s0"), nil, nil)
	start = time.Now()
	matched := 0
	for range g.Find(probe) {
		matched++
	}
	fmt.Printf("Find S**: %d matches in %v\n", matched, time.Since(start))

	start = time.Now()
	total := 0
	for range g.Find(nil) {
		total++
	}
	fmt.Printf("Scan:     %d triples in %v\n", total, time.Since(start))

	workers := runtime.GOMAXPROCS(0)
	start = time.Now()
	err := g.ForEachParallel(context.Background(), nil, workers, func(t *rdf.Triple) error {
		return nil
	})
	if err != nil {
		fmt.Printf("Parallel scan failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Parallel: %d workers in %v\n", workers, time.Since(start))
}
