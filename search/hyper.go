package search

import (
	"container/heap"
	"fmt"

	"github.com/quantumsim/stabsim/dem"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// hyperState is a partially-cancelled set of detectors plus the
// observable mask accumulated by the edges used to reach it, and the
// edge indices themselves (kept directly rather than via a predecessor
// map — the state spaces this search explores in practice are small
// enough that the simplicity is worth the extra copying).
type hyperState struct {
	detectors []int
	obsMask   uint64
	chain     []int
}

func stateKey(dets []int, mask uint64) string {
	return fmt.Sprintf("%v|%d", dets, mask)
}

// hyperQueue is a min-heap over detector-set size, breaking ties by
// chain length (fewer edges first) for deterministic output — the
// "min-heap over detector-set size" spec.md §4.6 describes driving
// the general D_max>=3 search.
type hyperQueue []hyperState

func (q hyperQueue) Len() int { return len(q) }
func (q hyperQueue) Less(i, j int) bool {
	if len(q[i].detectors) != len(q[j].detectors) {
		return len(q[i].detectors) < len(q[j].detectors)
	}
	return len(q[i].chain) < len(q[j].chain)
}
func (q hyperQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *hyperQueue) Push(x interface{}) { *q = append(*q, x.(hyperState)) }
func (q *hyperQueue) Pop() interface{} {
	old := *q
	n := len(old)
	v := old[n-1]
	*q = old[:n-1]
	return v
}

// HyperShortestError runs the general hypergraph search spec.md §4.6
// describes: states are (sorted detector set, observable mask) pairs,
// transitions XOR in one admissible edge, and the goal is an empty
// detector set with a nonzero mask. MaxStateSize and MaxEdgeDegree
// bound how large an intermediate state or a single edge may be;
// MonotonicDegree additionally forbids a transition from growing the
// detector count, turning the search into the "parallel cancellation"
// heuristic spec.md §4.6 names — fast, but only guaranteed minimal
// when the true shortest fault really can be assembled by always
// shrinking the open detector set. Without MonotonicDegree the search
// explores the full (and potentially exponential) state space, same
// as the graphlike search's exhaustive BFS but over detector SETS
// instead of single nodes.
func HyperShortestError(edges []Edge, opts Options) (*dem.Model, Stats, error) {
	var stats Stats

	admissible := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if opts.MaxEdgeDegree > 0 && len(e.Detectors) > opts.MaxEdgeDegree {
			continue
		}
		admissible = append(admissible, e)
	}
	if len(admissible) == 0 {
		return nil, stats, xerr.New(xerr.KindAnalysis, "search: no admissible error mechanisms (check MaxEdgeDegree)")
	}

	pq := &hyperQueue{}
	visited := map[string]bool{}

	push := func(s hyperState) {
		k := stateKey(s.detectors, s.obsMask)
		if visited[k] {
			return
		}
		visited[k] = true
		heap.Push(pq, s)
	}

	for idx, e := range admissible {
		push(hyperState{detectors: append([]int{}, e.Detectors...), obsMask: e.ObsMask, chain: []int{idx}})
	}

	for pq.Len() > 0 {
		s := heap.Pop(pq).(hyperState)
		stats.NodesVisited++

		if len(s.detectors) == 0 && s.obsMask != 0 {
			model := dem.New()
			for _, idx := range s.chain {
				if err := model.AddErrorRaw(1, detectorTargets(admissible[idx].Detectors)); err != nil {
					return nil, stats, err
				}
			}
			return model, stats, nil
		}

		for idx, e := range admissible {
			stats.EdgesRelaxed++
			newDets := symDiffInts(s.detectors, e.Detectors)
			if opts.MonotonicDegree && len(newDets) > len(s.detectors) {
				continue
			}
			if opts.MaxStateSize > 0 && len(newDets) > opts.MaxStateSize {
				continue
			}
			newMask := s.obsMask ^ e.ObsMask
			k := stateKey(newDets, newMask)
			if visited[k] {
				continue
			}
			chain := make([]int, len(s.chain)+1)
			copy(chain, s.chain)
			chain[len(s.chain)] = idx
			push(hyperState{detectors: newDets, obsMask: newMask, chain: chain})
		}
	}

	return nil, stats, xerr.New(xerr.KindAnalysis, "search: no hyper logical error found within the configured bounds")
}
