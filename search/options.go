// Package search implements DistanceSearch (C10): turning a
// dem.Model's error mechanisms into a graph (or hypergraph) and
// finding the fewest errors that together flip no detector but still
// cross a logical observable — the circuit's distance. See graph.go
// for the shared edge-extraction step, graphlike.go for the D_max=2
// breadth-first search, and hyper.go for the general D_max>=3 search.
package search

// Options configures one DistanceSearch run. Both GraphlikeShortestError
// and HyperShortestError accept the same Options; fields only the
// hyper search uses are no-ops for the graphlike search.
type Options struct {
	// IgnoreUngraphlikeErrors, for the graphlike search, skips any
	// error mechanism with more than two detector symptoms instead of
	// failing the search outright.
	IgnoreUngraphlikeErrors bool

	// MaxStateSize refuses a hyper-search transition that would leave
	// more than this many detectors un-cancelled. Zero means
	// unbounded.
	MaxStateSize int
	// MaxEdgeDegree excludes any error mechanism touching more than
	// this many detectors from consideration entirely. Zero means
	// unbounded.
	MaxEdgeDegree int
	// MonotonicDegree restricts hyper-search transitions to ones that
	// don't increase the current detector count — turning the search
	// into the "parallel cancellation" spec.md §4.6 describes, at the
	// cost of only finding a minimum when every detector's fault
	// truly can be peeled off monotonically.
	MonotonicDegree bool
}

// Stats reports how much work a search did, grounded on
// original_source/src/stim/search/graphlike/algo.perf.cc existing
// specifically to measure search cost — exposed here as a return
// value so a caller tuning MaxStateSize/MaxEdgeDegree gets direct
// feedback instead of needing a separate profiling pass.
type Stats struct {
	NodesVisited int
	EdgesRelaxed int
}
