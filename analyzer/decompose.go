package analyzer

import (
	"github.com/quantumsim/stabsim/dem"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// addErrorTargets appends one error(p) instruction, first attempting
// decomposition if the target list exceeds two detector symptoms and
// DecomposeErrors is set (spec.md §4.5's "Decomposition" paragraph).
func (a *analysis) addErrorTargets(p float64, targets []dem.Target) error {
	if a.opts.DecomposeErrors && countSymptoms(targets) > 2 {
		if pieces, ok := a.tryDecompose(targets); ok {
			if err := a.model.AddError(p, pieces); err != nil {
				return err
			}
			return nil
		}
		if !a.opts.IgnoreDecompositionFailures {
			return xerr.New(xerr.KindAnalysis, "analyzer: could not decompose a %d-symptom error into graphlike pieces", countSymptoms(targets))
		}
	}
	if err := a.model.AddError(p, targets); err != nil {
		return err
	}
	if countSymptoms(targets) <= 2 {
		a.registerGraphlike(targets)
	}
	return nil
}

// tryDecompose searches the graphlike pool (every previously emitted
// error with <=2 detector symptoms) for a pair whose XOR reproduces
// targets exactly, returning a Separator-joined T1^T2 target list.
// This is a brute-force O(pool^2) search over already-seen pieces, not
// the original implementation's more elaborate matching — an
// intentional scope cut recorded in DESIGN.md.
func (a *analysis) tryDecompose(targets []dem.Target) ([]dem.Target, bool) {
	full := newSensSet()
	full.addAll(targets)
	for i := range a.graphlikePool {
		for j := i; j < len(a.graphlikePool); j++ {
			t1, t2 := a.graphlikePool[i], a.graphlikePool[j]
			candidate := newSensSet()
			candidate.addAll(t1)
			candidate.addAll(t2)
			if setsEqual(candidate, full) {
				out := append([]dem.Target{}, dem.CanonicalizeTargets(t1)...)
				out = append(out, dem.Separator)
				out = append(out, dem.CanonicalizeTargets(t2)...)
				return out, true
			}
		}
	}
	return nil, false
}

func setsEqual(s *sensSet, full *sensSet) bool {
	return s.equalTo(full.sorted())
}

// registerGraphlike adds a non-composite (no Separator), <=2-symptom
// target list to the pool decomposition search draws from.
func (a *analysis) registerGraphlike(targets []dem.Target) {
	for _, t := range targets {
		if t.IsSeparator() {
			return
		}
	}
	cp := make([]dem.Target, len(targets))
	copy(cp, targets)
	a.graphlikePool = append(a.graphlikePool, cp)
}
