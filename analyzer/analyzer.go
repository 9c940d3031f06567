// Package analyzer implements the ErrorAnalyzer (C8): a backward
// symbolic propagator that slides per-qubit X/Z error sensitivities
// against the flow of a Circuit (spec.md §4.5) to emit a
// dem.Model — the DetectorErrorModel the frame simulator's sampled
// outcomes are checked against. See gates_rev.go for the reverse
// Clifford rules (mirroring frame/gates.go) and sensset.go for the
// symbolic-set type those rules operate on.
package analyzer

import (
	"github.com/quantumsim/stabsim/circuit"
	"github.com/quantumsim/stabsim/dem"
	"github.com/quantumsim/stabsim/frame"
	"github.com/quantumsim/stabsim/gate"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// qubitBasis names one qubit's contribution to a multi-qubit
// measurement event (MPP's '*'-joined product). qubit == heraldQubit
// marks HERALDED_ERASE/HERALDED_PAULI_CHANNEL_1's herald bit, which —
// unlike a real measurement — isn't derived from any qubit's frame at
// all (frame/dispatch.go's heraldedErase samples it independently), so
// it carries no sensitivity to propagate (see Run's measurement
// handling).
type qubitBasis struct {
	qubit int
	basis byte
}

const heraldQubit = -1

// Run performs one backward pass over c and returns the resulting
// DetectorErrorModel.
func Run(c *circuit.Circuit, opts Options) (*dem.Model, error) {
	stats, err := frame.Analyze(c)
	if err != nil {
		return nil, err
	}

	flat := c.Flatten()
	var instrs []circuit.Instruction
	if err := flat.Each(false, func(in circuit.Instruction) error {
		instrs = append(instrs, in)
		return nil
	}); err != nil {
		return nil, err
	}

	a := &analysis{
		opts:      opts,
		numQubits: stats.NumQubits,
		model:     dem.New(),
		xSens:     make([]*sensSet, stats.NumQubits),
		zSens:     make([]*sensSet, stats.NumQubits),
		seenObs:   make(map[int]bool),
		pending:   make(map[int][]dem.Target),
	}
	for q := 0; q < stats.NumQubits; q++ {
		a.xSens[q] = newSensSet()
		a.zSens[q] = newSensSet()
	}

	if err := a.forwardPrepass(instrs); err != nil {
		return nil, err
	}
	if err := a.backwardPass(instrs); err != nil {
		return nil, err
	}
	return a.model, nil
}

type analysis struct {
	opts      Options
	numQubits int
	model     *dem.Model

	xSens, zSens []*sensSet

	// forwardPrepass output, indexed by absolute measurement id.
	measEvents [][]qubitBasis
	// prefixMeasCount[i] is the number of measurements recorded
	// strictly before instruction i executes.
	prefixMeasCount []int
	// detIDs[i] is the detector id assigned to instruction i, for
	// instructions whose gate is DETECTOR. Ids are assigned in
	// forward program order so they line up with the frame simulator's detCount
	// (needed for the analyzer/simulator consistency property).
	detIDs []int
	// shiftAt[i] is the cumulative SHIFT_COORDS vector in effect at
	// instruction i, for DETECTOR instructions only.
	shiftAt map[int][]float64

	seenObs map[int]bool
	// pending[m] accumulates the DemTargets that depend on
	// measurement m, discovered while walking backward through the
	// DETECTOR/OBSERVABLE_INCLUDE annotations that reference it —
	// always seen before m itself, since rec[-k] only ever points
	// into the past.
	pending map[int][]dem.Target

	// graphlike pool for decompose_errors: every emitted error with
	// <=2 targets (ignoring Separator), kept for later XOR search.
	graphlikePool [][]dem.Target
}

func (a *analysis) forwardPrepass(instrs []circuit.Instruction) error {
	a.measEvents = nil
	a.prefixMeasCount = make([]int, len(instrs)+1)
	a.detIDs = make([]int, len(instrs))
	a.shiftAt = make(map[int][]float64)

	measCount := 0
	detCount := 0
	var shift []float64
	for i, in := range instrs {
		a.prefixMeasCount[i] = measCount
		rec := gate.ByID(in.Gate)
		switch {
		case in.Gate == gate.SHIFT_COORDS:
			for j, v := range in.Args {
				for len(shift) <= j {
					shift = append(shift, 0)
				}
				shift[j] += v
			}
		case in.Gate == gate.DETECTOR:
			a.detIDs[i] = detCount
			detCount++
			snap := make([]float64, len(shift))
			copy(snap, shift)
			a.shiftAt[i] = snap
		case in.Gate == gate.MPP:
			for _, events := range productMeasurements(in) {
				a.measEvents = append(a.measEvents, events)
				measCount++
			}
		case in.Gate == gate.HERALDED_ERASE || in.Gate == gate.HERALDED_PAULI_CHANNEL_1:
			for range in.Targets {
				a.measEvents = append(a.measEvents, []qubitBasis{{qubit: heraldQubit}})
				measCount++
			}
		case rec.Category.Has(gate.CatMeasurement):
			basis := measurementBasis(in.Gate)
			for _, t := range in.Targets {
				a.measEvents = append(a.measEvents, []qubitBasis{{qubit: t.Value(), basis: basis}})
				measCount++
			}
		}
	}
	a.prefixMeasCount[len(instrs)] = measCount
	return nil
}

// productMeasurements splits an MPP instruction into its '*'-joined
// products (one measurement each), and each product into its per-qubit
// contributions.
func productMeasurements(in circuit.Instruction) [][]qubitBasis {
	var out [][]qubitBasis
	joined := false
	for _, t := range in.Targets {
		if t == circuit.Combiner {
			joined = true
			continue
		}
		if !joined || len(out) == 0 {
			out = append(out, nil)
		}
		joined = false
		out[len(out)-1] = append(out[len(out)-1], qubitBasis{qubit: t.Value(), basis: t.Basis()})
	}
	return out
}

// measurementBasis maps a collapsing gate.ID to the basis letter its
// bare-measurement handler in frame/dispatch.go uses.
func measurementBasis(id gate.ID) byte {
	switch id {
	case gate.M, gate.MR:
		return 'Z'
	case gate.MX, gate.MRX:
		return 'X'
	case gate.MY, gate.MRY:
		return 'Y'
	default:
		return 'Z'
	}
}

func (a *analysis) backwardPass(instrs []circuit.Instruction) error {
	measIdx := len(a.measEvents) // next measurement id to consume, walking backward
	for i := len(instrs) - 1; i >= 0; i-- {
		in := instrs[i]
		rec := gate.ByID(in.Gate)
		switch {
		case in.Gate == gate.DETECTOR:
			if err := a.handleDetector(i, in); err != nil {
				return err
			}
		case in.Gate == gate.OBSERVABLE_INCLUDE:
			if err := a.handleObservableInclude(i, in); err != nil {
				return err
			}
		case in.Gate == gate.MPP:
			for range productMeasurements(in) {
				measIdx--
				if err := a.consumeProductMeasurement(measIdx); err != nil {
					return err
				}
			}
		case in.Gate == gate.HERALDED_ERASE || in.Gate == gate.HERALDED_PAULI_CHANNEL_1:
			pHerald := heraldFireProbability(in)
			for range in.Targets {
				measIdx--
				// The herald bit isn't derived from any qubit's frame
				// (frame/dispatch.go samples it independently), so any
				// detector watching it gets its own error(p) row
				// directly from the herald-fire probability rather
				// than through xSens/zSens.
				if err := a.addErrorSet(pHerald, targetsToSet(a.pending[measIdx])); err != nil {
					return err
				}
			}
			if err := a.emitHeraldedNoise(in); err != nil {
				return err
			}
		case rec.Category.Has(gate.CatMeasurement):
			basis := measurementBasis(in.Gate)
			resets := in.Gate == gate.MR || in.Gate == gate.MRX || in.Gate == gate.MRY
			for k := len(in.Targets) - 1; k >= 0; k-- {
				measIdx--
				q := in.Targets[k].Value()
				if err := a.consumeMeasurement(measIdx, q, basis, resets); err != nil {
					return err
				}
			}
		case rec.Category.Has(gate.CatResets):
			for _, t := range in.Targets {
				q := t.Value()
				// Only the axis the prepared eigenstate does not fix is
				// checked: Z sensitivity for R, X for RX, none for RY
				// (as for MRY in consumeMeasurement).
				gauge := false
				switch in.Gate {
				case gate.R:
					gauge = !a.zSens[q].IsEmpty()
				case gate.RX:
					gauge = !a.xSens[q].IsEmpty()
				}
				if gauge {
					if err := a.reportGauge(); err != nil {
						return err
					}
				}
				a.xSens[q].clear()
				a.zSens[q].clear()
			}
		case rec.Category.Has(gate.CatNoise):
			if err := a.emitNoise(in); err != nil {
				return err
			}
		case in.Gate == gate.H, in.Gate == gate.SQRT_Y, in.Gate == gate.SQRT_Y_DAG:
			a.eachSingleQubit(in, swapRowsSens)
		case in.Gate == gate.H_XY, in.Gate == gate.S, in.Gate == gate.S_DAG:
			a.eachSingleQubit(in, zXorXSens)
		case in.Gate == gate.H_YZ, in.Gate == gate.SQRT_X, in.Gate == gate.SQRT_X_DAG:
			a.eachSingleQubit(in, xXorZSens)
		case in.Gate == gate.CX:
			a.eachPair(in, cxSens)
		case in.Gate == gate.CY:
			a.eachPair(in, cySens)
		case in.Gate == gate.CZ:
			a.eachPair(in, czSens)
		case in.Gate == gate.SWAP:
			a.eachPair(in, swapQubitsSens)
		case in.Gate == gate.ISWAP, in.Gate == gate.ISWAP_DAG:
			a.eachPair(in, iswapSens)
		case in.Gate == gate.XCX:
			a.eachPair(in, xcxSens)
		case in.Gate == gate.XCZ:
			a.eachPair(in, xczSens)
		case in.Gate == gate.YCX:
			a.eachPair(in, ycxSens)
		case in.Gate == gate.YCZ:
			a.eachPair(in, yczSens)
		}
	}
	return nil
}

func (a *analysis) eachSingleQubit(in circuit.Instruction, f func(x, z *sensSet)) {
	for _, t := range in.Targets {
		q := t.Value()
		f(a.xSens[q], a.zSens[q])
	}
}

func (a *analysis) eachPair(in circuit.Instruction, f func(xa, za, xb, zb *sensSet)) {
	for k := 0; k < len(in.Targets); k += 2 {
		qa, qb := in.Targets[k].Value(), in.Targets[k+1].Value()
		f(a.xSens[qa], a.zSens[qa], a.xSens[qb], a.zSens[qb])
	}
}

func (a *analysis) resolveRec(t circuit.Target, before int) (int, error) {
	k := t.Value()
	idx := before - k
	if idx < 0 || idx >= before {
		return 0, xerr.New(xerr.KindValidation, "analyzer: rec[-%d] out of range at measurement %d", k, before)
	}
	return idx, nil
}

func (a *analysis) handleDetector(i int, in circuit.Instruction) error {
	id := a.detIDs[i]
	d := dem.DetectorTarget(id)
	before := a.prefixMeasCount[i]
	for _, t := range in.Targets {
		idx, err := a.resolveRec(t, before)
		if err != nil {
			return err
		}
		a.pending[idx] = append(a.pending[idx], d)
	}
	shift := a.shiftAt[i]
	coords := make([]float64, len(in.Args))
	copy(coords, in.Args)
	for j, s := range shift {
		if j < len(coords) {
			coords[j] += s
		} else {
			coords = append(coords, s)
		}
	}
	return a.model.AddDetector(coords, []dem.Target{d})
}

func (a *analysis) handleObservableInclude(i int, in circuit.Instruction) error {
	if len(in.Args) == 0 {
		return xerr.New(xerr.KindValidation, "analyzer: OBSERVABLE_INCLUDE requires an observable index argument")
	}
	id := int(in.Args[0])
	o := dem.ObservableTarget(id)
	if !a.seenObs[id] {
		a.seenObs[id] = true
		if err := a.model.AddLogicalObservable(o); err != nil {
			return err
		}
	}
	before := a.prefixMeasCount[i]
	for _, t := range in.Targets {
		idx, err := a.resolveRec(t, before)
		if err != nil {
			return err
		}
		a.pending[idx] = append(a.pending[idx], o)
	}
	return nil
}
