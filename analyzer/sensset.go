package analyzer

import (
	"sort"

	"github.com/quantumsim/stabsim/dem"
)

// sensSet is the backward pass's "symbolic set of DemTargets" (spec.md
// §4.5): an XOR-deduplicated set (listed in canonical order by sorted())
// of detector/observable ids
// that a Pauli error on some qubit, right now, would flip. It plays
// the same role frame's BitVector rows play for concrete per-shot
// tracking, but over a set of ids rather than a packed bit.
type sensSet struct {
	m map[dem.Target]struct{}
}

func newSensSet() *sensSet { return &sensSet{m: make(map[dem.Target]struct{})} }

func (s *sensSet) IsEmpty() bool { return len(s.m) == 0 }

// xorAssign merges other into s by symmetric difference: a target
// present in both cancels out, matching spec.md §4.5's "XOR-
// deduplicated" bookkeeping.
func (s *sensSet) xorAssign(other *sensSet) {
	if other == nil {
		return
	}
	for t := range other.m {
		if _, ok := s.m[t]; ok {
			delete(s.m, t)
		} else {
			s.m[t] = struct{}{}
		}
	}
}

func (s *sensSet) addAll(targets []dem.Target) {
	for _, t := range targets {
		if _, ok := s.m[t]; ok {
			delete(s.m, t)
		} else {
			s.m[t] = struct{}{}
		}
	}
}

func (s *sensSet) clear() { s.m = make(map[dem.Target]struct{}) }

func (s *sensSet) clone() *sensSet {
	out := newSensSet()
	for t := range s.m {
		out.m[t] = struct{}{}
	}
	return out
}

func (s *sensSet) equalTo(targets []dem.Target) bool {
	if len(s.m) != len(targets) {
		return false
	}
	for _, t := range targets {
		if _, ok := s.m[t]; !ok {
			return false
		}
	}
	return true
}

// sorted returns s's contents as a canonically ordered slice, the
// form dem.Model.AddError's target list expects.
func (s *sensSet) sorted() []dem.Target {
	out := make([]dem.Target, 0, len(s.m))
	for t := range s.m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// xorSets returns a fresh set holding the symmetric difference of
// several sets without mutating any of them — used to combine the
// contributions of several qubits into one error's target list.
func xorSets(sets ...*sensSet) *sensSet {
	out := newSensSet()
	for _, s := range sets {
		out.xorAssign(s)
	}
	return out
}
