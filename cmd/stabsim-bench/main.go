// Command stabsim-bench is thin benchmarking glue over the stabsim
// library: parse a circuit, sample it through the frame simulator,
// derive its detector error model, and search that model for its
// distance, logging how long each stage took. It is deliberately not a
// general-purpose CLI (no sub-commands, no config file) — spec.md's
// scope stops at the library surface; this just exercises it end to
// end the way a developer iterating on a circuit file would.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/quantumsim/stabsim/analyzer"
	"github.com/quantumsim/stabsim/circuit"
	"github.com/quantumsim/stabsim/frame"
	"github.com/quantumsim/stabsim/search"
)

func main() {
	circuitPath := flag.String("circuit", "", "path to a circuit text file (required)")
	shots := flag.Int("shots", 10000, "number of shots to sample")
	seed := flag.Uint64("seed", 0, "RNG seed (0 draws a fresh seed)")
	decompose := flag.Bool("decompose", true, "decompose analyzer errors with >2 symptoms when possible")
	hyper := flag.Bool("hyper", false, "use the general hypergraph search instead of the graphlike BFS")
	maxEdgeDegree := flag.Int("max-edge-degree", 0, "hyper search only: reject error mechanisms touching more than this many detectors (0 = unbounded)")
	flag.Parse()

	if *circuitPath == "" {
		fmt.Fprintln(os.Stderr, "stabsim-bench: -circuit is required")
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*circuitPath)
	if err != nil {
		log.Fatalf("read circuit: %v", err)
	}
	c, err := circuit.ParseCircuit(string(raw))
	if err != nil {
		log.Fatalf("parse circuit: %v", err)
	}
	log.Printf("parsed %s: %d instructions", *circuitPath, c.NumInstructions())

	t0 := time.Now()
	fs, err := frame.New(c, *shots, frame.Options{Seed: *seed})
	if err != nil {
		log.Fatalf("frame.New: %v", err)
	}
	log.Printf("allocated frame simulator for %d qubits", fs.NumQubits())
	res, err := fs.Run(c)
	if err != nil {
		log.Fatalf("frame.Run: %v", err)
	}
	log.Printf("sampled %d shots (%d detectors, %d observables) in %s", res.Shots, res.NumDetectors, res.NumObservables, time.Since(t0))

	t1 := time.Now()
	model, err := analyzer.Run(c, analyzer.Options{DecomposeErrors: *decompose, IgnoreDecompositionFailures: true})
	if err != nil {
		log.Fatalf("analyzer.Run: %v", err)
	}
	log.Printf("built detector error model (%d instructions) in %s", model.NumInstructions(), time.Since(t1))

	edges, err := search.BuildEdges(model)
	if err != nil {
		log.Fatalf("search.BuildEdges: %v", err)
	}
	log.Printf("extracted %d candidate error edges", len(edges))

	t2 := time.Now()
	opts := search.Options{IgnoreUngraphlikeErrors: true, MaxEdgeDegree: *maxEdgeDegree}
	var fault *distanceResult
	if *hyper {
		fault, err = runHyper(edges, opts)
	} else {
		fault, err = runGraphlike(edges, opts)
	}
	if err != nil {
		log.Fatalf("search: %v", err)
	}
	log.Printf("distance %d found in %s (nodes visited %d, edges relaxed %d)",
		fault.distance, time.Since(t2), fault.stats.NodesVisited, fault.stats.EdgesRelaxed)
}

type distanceResult struct {
	distance int
	stats    search.Stats
}

func runGraphlike(edges []search.Edge, opts search.Options) (*distanceResult, error) {
	m, stats, err := search.GraphlikeShortestError(edges, opts)
	if err != nil {
		return nil, err
	}
	return &distanceResult{distance: m.NumInstructions(), stats: stats}, nil
}

func runHyper(edges []search.Edge, opts search.Options) (*distanceResult, error) {
	m, stats, err := search.HyperShortestError(edges, opts)
	if err != nil {
		return nil, err
	}
	return &distanceResult{distance: m.NumInstructions(), stats: stats}, nil
}
