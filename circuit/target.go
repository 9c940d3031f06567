package circuit

import "fmt"

// Target is the 32-bit packed gate target from spec.md §3: a
// non-negative qubit index or record/sweep offset, plus flag bits
// identifying the target kind. Exactly one flag combination identifies
// the kind, so Target is safe to compare by value.
type Target uint32

const (
	flagInverted = uint32(1) << 31
	flagRecord   = uint32(1) << 30
	flagSweep    = uint32(1) << 29
	flagPauliX   = uint32(1) << 28
	flagPauliZ   = uint32(1) << 27
	flagsMask    = flagInverted | flagRecord | flagSweep | flagPauliX | flagPauliZ
	valueMask    = flagPauliZ - 1 // low 27 bits
)

// Combiner is the '*' product separator MPP uses between Pauli targets
// in one measured product. It is not a qubit target at all (the all-
// ones bit pattern can never be produced by the constructors below,
// since flagPauliX|flagPauliZ|flagRecord|flagSweep|flagInverted never
// coexist with every value bit set), so it is distinguishable by value.
const Combiner Target = Target(^uint32(0))

// QubitTarget returns a plain single-qubit target (e.g. the "0" in "H 0").
func QubitTarget(q int) Target { return newTarget(q, 0) }

// InvertedQubitTarget returns a measurement-flip target (e.g. "!3").
func InvertedQubitTarget(q int) Target { return newTarget(q, flagInverted) }

// RecordTarget returns a rec[-k] target, k >= 1.
func RecordTarget(k int) Target {
	if k < 1 {
		panic("circuit: record target offset must be >= 1")
	}
	return newTarget(k, flagRecord)
}

// SweepTarget returns a sweep[k] target, k >= 0.
func SweepTarget(k int) Target { return newTarget(k, flagSweep) }

// PauliTarget returns an X/Y/Z basis target for MPP-style product
// measurements. basis must be 'X', 'Y', or 'Z'.
func PauliTarget(q int, basis byte, inverted bool) Target {
	var f uint32
	switch basis {
	case 'X':
		f = flagPauliX
	case 'Y':
		f = flagPauliX | flagPauliZ
	case 'Z':
		f = flagPauliZ
	default:
		panic(fmt.Sprintf("circuit: invalid Pauli basis %q", basis))
	}
	if inverted {
		f |= flagInverted
	}
	return newTarget(q, f)
}

func newTarget(value int, flags uint32) Target {
	if value < 0 || uint32(value) > valueMask {
		panic(fmt.Sprintf("circuit: target value %d out of range", value))
	}
	return Target(uint32(value) | flags)
}

// Value returns the qubit index, record offset k, or sweep index
// carried by the target.
func (t Target) Value() int { return int(uint32(t) & valueMask) }

// IsQubit reports whether t is a plain (non-Pauli, non-record,
// non-sweep) qubit target.
func (t Target) IsQubit() bool {
	return uint32(t)&(flagRecord|flagSweep|flagPauliX|flagPauliZ) == 0
}

// IsRecord reports whether t references a prior measurement.
func (t Target) IsRecord() bool { return uint32(t)&flagRecord != 0 }

// IsSweep reports whether t references an external classical sweep bit.
func (t Target) IsSweep() bool { return uint32(t)&flagSweep != 0 }

// IsPauli reports whether t carries an X/Y/Z basis (used by MPP).
func (t Target) IsPauli() bool { return uint32(t)&(flagPauliX|flagPauliZ) != 0 }

// Inverted reports whether the measurement-flip flag is set.
func (t Target) Inverted() bool { return uint32(t)&flagInverted != 0 }

// Basis returns 'X', 'Y', 'Z', or 0 if t is not a Pauli target.
func (t Target) Basis() byte {
	switch uint32(t) & (flagPauliX | flagPauliZ) {
	case flagPauliX:
		return 'X'
	case flagPauliZ:
		return 'Z'
	case flagPauliX | flagPauliZ:
		return 'Y'
	default:
		return 0
	}
}

// String renders t in the circuit text format (spec.md §6).
func (t Target) String() string {
	if t == Combiner {
		return "*"
	}
	prefix := ""
	if t.Inverted() {
		prefix = "!"
	}
	switch {
	case t.IsRecord():
		return fmt.Sprintf("rec[-%d]", t.Value())
	case t.IsSweep():
		return fmt.Sprintf("sweep[%d]", t.Value())
	case t.IsPauli():
		return fmt.Sprintf("%s%c%d", prefix, t.Basis(), t.Value())
	default:
		return fmt.Sprintf("%s%d", prefix, t.Value())
	}
}
