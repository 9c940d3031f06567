package search

import (
	"sort"

	"github.com/quantumsim/stabsim/dem"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// boundaryNode is the id search uses internally for the supernode
// every degree-1 edge (a single detector with no partner) connects to.
// Real detector ids are always >= 0, so -1 can't collide.
const boundaryNode = -1

type adjEntry struct {
	other   int
	edgeIdx int
}

// GraphlikeShortestError runs the breadth-first search spec.md §4.6
// describes for D_max=2 DEMs: every error with exactly one or two
// detector symptoms is an edge between those detectors (or between a
// lone detector and the boundary supernode); the answer is the fewest
// edges whose detectors entirely cancel (every real node touched an
// even number of times) while their combined observable mask stays
// nonzero — a minimal, physically realizable, undetected logical
// fault.
//
// For each candidate closing edge (u,v), the search runs a fresh BFS
// from every node in the graph (not just one root) to find the
// tree-path lengths/masks to u and v, then reduces the two tree paths
// by symmetric difference before measuring length. XOR-cancelling the
// paths this way means the reported length is always the true length
// of the resulting simple cycle, not an upper bound inflated by a
// shared prefix — so trying every root is enough to guarantee the
// global minimum without a more delicate single-root argument.
func GraphlikeShortestError(edges []Edge, opts Options) (*dem.Model, Stats, error) {
	var stats Stats

	used := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if len(e.Detectors) > 2 {
			if !opts.IgnoreUngraphlikeErrors {
				return nil, stats, xerr.New(xerr.KindAnalysis,
					"search: graphlike search requires every error to have <=2 detector symptoms, found one with %d", len(e.Detectors))
			}
			continue
		}
		used = append(used, e)
	}

	nodeSet := map[int]bool{}
	adjacency := map[int][]adjEntry{}
	endpoint := func(e Edge, i int) int {
		if i == 0 {
			return e.Detectors[0]
		}
		if len(e.Detectors) == 2 {
			return e.Detectors[1]
		}
		return boundaryNode
	}
	for idx, e := range used {
		u, v := endpoint(e, 0), endpoint(e, 1)
		nodeSet[u] = true
		if v != boundaryNode {
			nodeSet[v] = true
		}
		adjacency[u] = append(adjacency[u], adjEntry{other: v, edgeIdx: idx})
		if u != v {
			adjacency[v] = append(adjacency[v], adjEntry{other: u, edgeIdx: idx})
		}
	}

	var starts []int
	starts = append(starts, boundaryNode)
	for n := range nodeSet {
		starts = append(starts, n)
	}
	sort.Ints(starts)

	bestLen := -1
	var bestEdges []int

	for _, s := range starts {
		dist, parentNode, parentEdge := bfsTree(s, adjacency)
		stats.NodesVisited += len(dist)

		pathEdges := func(x int) []int {
			var out []int
			cur := x
			for {
				e, ok := parentEdge[cur]
				if !ok {
					break
				}
				out = append(out, e)
				cur = parentNode[cur]
			}
			return out
		}
		maskAlong := func(path []int) uint64 {
			var m uint64
			for _, idx := range path {
				m ^= used[idx].ObsMask
			}
			return m
		}

		for idx, e := range used {
			u, v := endpoint(e, 0), endpoint(e, 1)
			_, okU := dist[u]
			_, okV := dist[v]
			if !okU || !okV {
				continue
			}
			stats.EdgesRelaxed++

			pu, pv := pathEdges(u), pathEdges(v)
			combined := symDiffInts(pu, pv)
			mask := maskAlong(pu) ^ maskAlong(pv) ^ e.ObsMask
			if mask == 0 {
				continue
			}
			length := len(combined) + 1
			if bestLen == -1 || length < bestLen {
				bestLen = length
				bestEdges = append(append([]int{}, combined...), idx)
			}
		}
	}

	if bestLen == -1 {
		return nil, stats, xerr.New(xerr.KindAnalysis, "search: no graphlike logical error found")
	}

	model := dem.New()
	seen := map[int]bool{}
	for _, idx := range bestEdges {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		if err := model.AddErrorRaw(1, detectorTargets(used[idx].Detectors)); err != nil {
			return nil, stats, err
		}
	}
	return model, stats, nil
}

func bfsTree(s int, adjacency map[int][]adjEntry) (dist map[int]int, parentNode map[int]int, parentEdge map[int]int) {
	dist = map[int]int{s: 0}
	parentNode = map[int]int{}
	parentEdge = map[int]int{}
	queue := []int{s}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, adj := range adjacency[n] {
			if _, ok := dist[adj.other]; ok {
				continue
			}
			dist[adj.other] = dist[n] + 1
			parentNode[adj.other] = n
			parentEdge[adj.other] = adj.edgeIdx
			queue = append(queue, adj.other)
		}
	}
	return dist, parentNode, parentEdge
}
