package analyzer

import (
	"github.com/quantumsim/stabsim/circuit"
	"github.com/quantumsim/stabsim/dem"
	"github.com/quantumsim/stabsim/gate"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// errGauge is the error reportGauge returns under GaugeReject.
func errGauge() error {
	return xerr.New(xerr.KindAnalysis, "analyzer: gauge detector found (a reset qubit still carries dependent sensitivity)")
}

// axisSens returns the sensitivity set a Pauli letter applied to
// qubit q would contribute: X reads x-sensitivity, Z reads
// z-sensitivity, Y (x^=z both toggle the readout) reads their XOR, I
// contributes nothing.
func (a *analysis) axisSens(q int, letter byte) *sensSet {
	switch letter {
	case 'X':
		return a.xSens[q]
	case 'Z':
		return a.zSens[q]
	case 'Y':
		return xorSets(a.xSens[q], a.zSens[q])
	default:
		return newSensSet()
	}
}

// emitNoise handles every CatNoise gate except the heralded ones
// (emitHeraldedNoise), turning each disjoint/independent component
// into an error(p) instruction whose target list is the XOR of the
// involved qubits' basis-appropriate sensitivity sets (spec.md §4.5's
// "Noise channels" paragraph).
func (a *analysis) emitNoise(in circuit.Instruction) error {
	switch in.Gate {
	case gate.X_ERROR:
		p := in.Args[0]
		for _, t := range in.Targets {
			if err := a.addErrorSet(p, a.xSens[t.Value()]); err != nil {
				return err
			}
		}
	case gate.Y_ERROR:
		p := in.Args[0]
		for _, t := range in.Targets {
			q := t.Value()
			if err := a.addErrorSet(p, xorSets(a.xSens[q], a.zSens[q])); err != nil {
				return err
			}
		}
	case gate.Z_ERROR:
		p := in.Args[0]
		for _, t := range in.Targets {
			if err := a.addErrorSet(p, a.zSens[t.Value()]); err != nil {
				return err
			}
		}
	case gate.DEPOLARIZE1:
		p := in.Args[0] / 3
		for _, t := range in.Targets {
			if err := a.emitSingleQubitChannel(t.Value(), p, p, p); err != nil {
				return err
			}
		}
	case gate.PAULI_CHANNEL_1:
		pX, pY, pZ := in.Args[0], in.Args[1], in.Args[2]
		for _, t := range in.Targets {
			if err := a.emitSingleQubitChannel(t.Value(), pX, pY, pZ); err != nil {
				return err
			}
		}
	case gate.DEPOLARIZE2:
		p := in.Args[0] / 15
		var probs [15]float64
		for i := range probs {
			probs[i] = p
		}
		for k := 0; k < len(in.Targets); k += 2 {
			if err := a.emitPairChannel(in.Targets[k].Value(), in.Targets[k+1].Value(), probs); err != nil {
				return err
			}
		}
	case gate.PAULI_CHANNEL_2:
		var probs [15]float64
		copy(probs[:], in.Args)
		for k := 0; k < len(in.Targets); k += 2 {
			if err := a.emitPairChannel(in.Targets[k].Value(), in.Targets[k+1].Value(), probs); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *analysis) emitSingleQubitChannel(q int, pX, pY, pZ float64) error {
	if err := a.addErrorSet(pX, a.xSens[q]); err != nil {
		return err
	}
	if err := a.addErrorSet(pY, xorSets(a.xSens[q], a.zSens[q])); err != nil {
		return err
	}
	return a.addErrorSet(pZ, a.zSens[q])
}

// emitPairChannel emits one error(p_k) per nonzero component of a
// two-qubit Pauli channel, using this package's own PAULI_CHANNEL_2
// ordering convention (frame/rng.go's pauliChannel2Components, mirrored
// here since neither package imports the other's unexported helpers).
func (a *analysis) emitPairChannel(qa, qb int, probs [15]float64) error {
	for k, p := range probs {
		if p <= 0 {
			continue
		}
		la, lb := pauliChannel2Components(k)
		T := xorSets(a.axisSens(qa, la), a.axisSens(qb, lb))
		if err := a.addErrorSet(p, T); err != nil {
			return err
		}
	}
	return nil
}

func pauliChannel2Components(k int) (x, y byte) {
	letters := [4]byte{'I', 'X', 'Y', 'Z'}
	k++ // skip (I,I)
	return letters[k/4], letters[k%4]
}

// heraldFireProbability returns the total probability that a
// HERALDED_ERASE/HERALDED_PAULI_CHANNEL_1 instruction's herald bit
// records a 1 (any of the I/X/Y/Z branches firing).
func heraldFireProbability(in circuit.Instruction) float64 {
	if in.Gate == gate.HERALDED_ERASE {
		return in.Args[0]
	}
	var total float64
	for _, p := range in.Args {
		total += p
	}
	return total
}

// targetsToSet builds a sensSet from an already-collected DemTarget
// slice, for call sites (like the herald-fire error above) that have
// a plain slice rather than a live sensSet.
func targetsToSet(targets []dem.Target) *sensSet {
	s := newSensSet()
	s.addAll(targets)
	return s
}

// emitHeraldedNoise handles HERALDED_ERASE/HERALDED_PAULI_CHANNEL_1's
// Pauli-error side effect (the herald bit itself is consumed as a
// measurement event in backwardPass, not here — see the heraldQubit
// sentinel in measEvents).
func (a *analysis) emitHeraldedNoise(in circuit.Instruction) error {
	var pX, pY, pZ float64
	if in.Gate == gate.HERALDED_ERASE {
		p := in.Args[0] / 4
		pX, pY, pZ = p, p, p
	} else {
		pX, pY, pZ = in.Args[1], in.Args[2], in.Args[3]
	}
	for _, t := range in.Targets {
		if err := a.emitSingleQubitChannel(t.Value(), pX, pY, pZ); err != nil {
			return err
		}
	}
	return nil
}

// addErrorSet converts a sensitivity set into a canonical target list
// and routes it through decomposition (if requested) before appending
// to the model.
func (a *analysis) addErrorSet(p float64, T *sensSet) error {
	if p <= 0 || T.IsEmpty() {
		return nil
	}
	return a.addErrorTargets(p, T.sorted())
}

func countSymptoms(targets []dem.Target) int {
	n := 0
	for _, t := range targets {
		if t.IsDetector() {
			n++
		}
	}
	return n
}
