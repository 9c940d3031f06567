package frame

import (
	"github.com/quantumsim/stabsim/bitword"
	"github.com/quantumsim/stabsim/circuit"
	"github.com/quantumsim/stabsim/gate"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// handlerFunc applies one instruction's effect to the frame tables.
// This package builds its own private dispatch array keyed by
// gate.ID, the same dense space the gate registry defines, rather
// than having gate own function pointers — see DESIGN.md's gate
// section for why (breaking the frame<->gate<->analyzer import
// cycle Go would otherwise require).
type handlerFunc func(fs *FrameSimulator, in circuit.Instruction) error

var dispatchTable [gate.NumIDs]handlerFunc

func init() {
	noop := func(fs *FrameSimulator, in circuit.Instruction) error { return nil }
	for _, id := range []gate.ID{gate.I, gate.X, gate.Y, gate.Z, gate.TICK, gate.QUBIT_COORDS, gate.SHIFT_COORDS} {
		dispatchTable[id] = noop
	}

	dispatchTable[gate.H] = singleQubit(swapRows)
	dispatchTable[gate.H_XY] = singleQubit(zXorX)
	dispatchTable[gate.H_YZ] = singleQubit(xXorZ)
	dispatchTable[gate.S] = singleQubit(zXorX)
	dispatchTable[gate.S_DAG] = singleQubit(zXorX)
	dispatchTable[gate.SQRT_X] = singleQubit(xXorZ)
	dispatchTable[gate.SQRT_X_DAG] = singleQubit(xXorZ)
	dispatchTable[gate.SQRT_Y] = singleQubit(swapRows)
	dispatchTable[gate.SQRT_Y_DAG] = singleQubit(swapRows)

	dispatchTable[gate.CX] = twoQubit(cx)
	dispatchTable[gate.CY] = twoQubit(cy)
	dispatchTable[gate.CZ] = twoQubit(cz)
	dispatchTable[gate.SWAP] = twoQubit(swapQubits)
	dispatchTable[gate.ISWAP] = twoQubit(iswap)
	dispatchTable[gate.ISWAP_DAG] = twoQubit(iswap)
	dispatchTable[gate.XCX] = twoQubit(xcx)
	dispatchTable[gate.XCZ] = twoQubit(xcz)
	dispatchTable[gate.YCX] = twoQubit(ycx)
	dispatchTable[gate.YCZ] = twoQubit(ycz)

	dispatchTable[gate.R] = reset
	dispatchTable[gate.RX] = reset
	dispatchTable[gate.RY] = reset

	dispatchTable[gate.M] = measure('Z', false)
	dispatchTable[gate.MX] = measure('X', false)
	dispatchTable[gate.MY] = measure('Y', false)
	dispatchTable[gate.MR] = measure('Z', true)
	dispatchTable[gate.MRX] = measure('X', true)
	dispatchTable[gate.MRY] = measure('Y', true)
	dispatchTable[gate.MPP] = measureProduct

	dispatchTable[gate.X_ERROR] = pauliError('X')
	dispatchTable[gate.Y_ERROR] = pauliError('Y')
	dispatchTable[gate.Z_ERROR] = pauliError('Z')
	dispatchTable[gate.DEPOLARIZE1] = depolarize1
	dispatchTable[gate.DEPOLARIZE2] = depolarize2
	dispatchTable[gate.PAULI_CHANNEL_1] = pauliChannel1Handler
	dispatchTable[gate.PAULI_CHANNEL_2] = pauliChannel2Handler
	dispatchTable[gate.HERALDED_ERASE] = heraldedErase
	dispatchTable[gate.HERALDED_PAULI_CHANNEL_1] = heraldedPauliChannel1Handler

	dispatchTable[gate.DETECTOR] = detector
	dispatchTable[gate.OBSERVABLE_INCLUDE] = observableInclude
}

// singleQubit lifts a per-qubit (x,z) transform into a handler that
// applies it to every target.
func singleQubit(f func(x, z *bitword.BitVector)) handlerFunc {
	return func(fs *FrameSimulator, in circuit.Instruction) error {
		for _, t := range in.Targets {
			q := t.Value()
			f(fs.xRow(q), fs.zRow(q))
		}
		return nil
	}
}

// twoQubit lifts a per-pair (xa,za,xb,zb) transform into a handler
// consuming targets two at a time.
func twoQubit(f func(xa, za, xb, zb *bitword.BitVector)) handlerFunc {
	return func(fs *FrameSimulator, in circuit.Instruction) error {
		if len(in.Targets)%2 != 0 {
			xerr.Internal("frame: two-qubit gate with odd target count")
		}
		for i := 0; i < len(in.Targets); i += 2 {
			a, b := in.Targets[i].Value(), in.Targets[i+1].Value()
			f(fs.xRow(a), fs.zRow(a), fs.xRow(b), fs.zRow(b))
		}
		return nil
	}
}

// reset zeroes both frame rows for every target, regardless of basis:
// a sign-less Pauli frame cannot distinguish which eigenstate a reset
// prepares, only that the qubit's tracked error is wiped (spec.md
// §4.4's "RZ clears x and z", generalized to RX/RY the same way the
// original simulator's reset handling does).
func reset(fs *FrameSimulator, in circuit.Instruction) error {
	for _, t := range in.Targets {
		q := t.Value()
		fs.xRow(q).Clear()
		fs.zRow(q).Clear()
	}
	return nil
}

// measure samples one result bit per target qubit in the given basis,
// optionally XORing in a before_measure_flip_probability noise term
// (in.Args[0] when present), then (if reset is true) clears the
// qubit's frame the same way a bare reset would.
func measure(basis byte, thenReset bool) handlerFunc {
	return func(fs *FrameSimulator, in circuit.Instruction) error {
		var flipP float64
		if len(in.Args) > 0 {
			flipP = in.Args[0]
		}
		for _, t := range in.Targets {
			q := t.Value()
			outcome := measurementOutcome(basis, fs.xRow(q), fs.zRow(q))
			if flipP > 0 {
				fs.rng.BernoulliXor(outcome, flipP)
			}
			fs.recordMeasurement(outcome)
			if thenReset {
				fs.xRow(q).Clear()
				fs.zRow(q).Clear()
			}
		}
		return nil
	}
}

// measurementOutcome returns a freshly allocated BitVector holding the
// basis-appropriate deviation bit for one qubit (spec.md §4.4: a Z
// measurement reveals X-type errors, an X measurement reveals Z-type
// errors, a Y measurement reveals whichever of the two disagree).
func measurementOutcome(basis byte, x, z *bitword.BitVector) *bitword.BitVector {
	out := newRow(x.Len())
	switch basis {
	case 'Z':
		out.XorAssign(x)
	case 'X':
		out.XorAssign(z)
	case 'Y':
		out.XorAssign(x)
		out.XorAssign(z)
	}
	return out
}

// measureProduct handles MPP: each '*'-joined run of Pauli targets
// produces exactly one measurement result, the XOR of every target
// qubit's contribution in its own basis.
func measureProduct(fs *FrameSimulator, in circuit.Instruction) error {
	var flipP float64
	if len(in.Args) > 0 {
		flipP = in.Args[0]
	}
	batch := fs.batch
	var acc *bitword.BitVector
	flush := func() {
		if acc == nil {
			return
		}
		if flipP > 0 {
			fs.rng.BernoulliXor(acc, flipP)
		}
		fs.recordMeasurement(acc)
		acc = nil
	}
	joined := false
	for _, t := range in.Targets {
		if t == circuit.Combiner {
			joined = true
			continue
		}
		if !joined {
			flush()
		}
		joined = false
		if acc == nil {
			acc = newRow(batch)
		}
		q := t.Value()
		contrib := measurementOutcome(t.Basis(), fs.xRow(q), fs.zRow(q))
		acc.XorAssign(contrib)
	}
	flush()
	return nil
}

// pauliError lifts X_ERROR/Y_ERROR/Z_ERROR into a handler applying a
// single-qubit Bernoulli(p) Pauli flip per target.
func pauliError(basis byte) handlerFunc {
	return func(fs *FrameSimulator, in circuit.Instruction) error {
		p := in.Args[0]
		for _, t := range in.Targets {
			q := t.Value()
			x, z := fs.xRow(q), fs.zRow(q)
			switch basis {
			case 'X':
				fs.rng.BernoulliXor(x, p)
			case 'Z':
				fs.rng.BernoulliXor(z, p)
			case 'Y':
				mask := newRow(x.Len())
				fs.rng.BernoulliFill(mask, p)
				x.XorAssign(mask)
				z.XorAssign(mask)
			}
		}
		return nil
	}
}

func depolarize1(fs *FrameSimulator, in circuit.Instruction) error {
	p := in.Args[0] / 3
	for _, t := range in.Targets {
		q := t.Value()
		fs.rng.PauliChannel1(fs.xRow(q), fs.zRow(q), p, p, p)
	}
	return nil
}

func depolarize2(fs *FrameSimulator, in circuit.Instruction) error {
	p := in.Args[0] / 15
	var probs [15]float64
	for i := range probs {
		probs[i] = p
	}
	for i := 0; i < len(in.Targets); i += 2 {
		a, b := in.Targets[i].Value(), in.Targets[i+1].Value()
		fs.rng.PauliChannel2(fs.xRow(a), fs.zRow(a), fs.xRow(b), fs.zRow(b), probs)
	}
	return nil
}

func pauliChannel1Handler(fs *FrameSimulator, in circuit.Instruction) error {
	pX, pY, pZ := in.Args[0], in.Args[1], in.Args[2]
	for _, t := range in.Targets {
		q := t.Value()
		fs.rng.PauliChannel1(fs.xRow(q), fs.zRow(q), pX, pY, pZ)
	}
	return nil
}

func pauliChannel2Handler(fs *FrameSimulator, in circuit.Instruction) error {
	var probs [15]float64
	copy(probs[:], in.Args)
	for i := 0; i < len(in.Targets); i += 2 {
		a, b := in.Targets[i].Value(), in.Targets[i+1].Value()
		fs.rng.PauliChannel2(fs.xRow(a), fs.zRow(a), fs.xRow(b), fs.zRow(b), probs)
	}
	return nil
}

// heraldedErase implements HERALDED_ERASE(p): each of the I/X/Y/Z
// branches fires with probability p/4 (all four, including I, record
// a herald bit), matching gate_data_heralded.cc's documented Pauli
// mixture exactly.
func heraldedErase(fs *FrameSimulator, in circuit.Instruction) error {
	p := in.Args[0] / 4
	for _, t := range in.Targets {
		q := t.Value()
		herald := newRow(fs.batch)
		fs.rng.HeraldedPauliChannel1(herald, fs.xRow(q), fs.zRow(q), p, p, p, p)
		fs.recordMeasurement(herald)
	}
	return nil
}

func heraldedPauliChannel1Handler(fs *FrameSimulator, in circuit.Instruction) error {
	pI, pX, pY, pZ := in.Args[0], in.Args[1], in.Args[2], in.Args[3]
	for _, t := range in.Targets {
		q := t.Value()
		herald := newRow(fs.batch)
		fs.rng.HeraldedPauliChannel1(herald, fs.xRow(q), fs.zRow(q), pI, pX, pY, pZ)
		fs.recordMeasurement(herald)
	}
	return nil
}

func detector(fs *FrameSimulator, in circuit.Instruction) error {
	idx := fs.detCount
	fs.detCount++
	row := fs.detTable.Row(idx)
	for _, t := range in.Targets {
		absIdx, err := fs.resolveRecordTarget(t)
		if err != nil {
			return err
		}
		row.XorAssign(fs.measTable.Row(absIdx))
	}
	return nil
}

func observableInclude(fs *FrameSimulator, in circuit.Instruction) error {
	if len(in.Args) == 0 {
		return xerr.New(xerr.KindValidation, "frame: OBSERVABLE_INCLUDE requires an observable index argument")
	}
	id := int(in.Args[0])
	row, ok := fs.obsRows[id]
	if !ok {
		row = newRow(fs.batch)
		fs.obsRows[id] = row
	}
	for _, t := range in.Targets {
		absIdx, err := fs.resolveRecordTarget(t)
		if err != nil {
			return err
		}
		row.XorAssign(fs.measTable.Row(absIdx))
	}
	return nil
}
