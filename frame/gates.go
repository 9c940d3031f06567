package frame

import "github.com/quantumsim/stabsim/bitword"

// This file holds the per-qubit and per-pair Pauli-frame conjugation
// rules: how a unitary gate moves the X/Z rows of the frame tables.
// None of them track sign, only whether an X-type or Z-type error is
// present (spec.md §4.4: a Pauli frame is a record of *which* error
// occurred, not which eigenstate the reference trajectory is in), so a
// gate and its Hermitian-conjugate variant (S/S_DAG, SQRT_X/
// SQRT_X_DAG, ISWAP/ISWAP_DAG) always produce the identical bit
// transform here — that collapse is expected, not a bug.
//
// Every two-qubit rule below was derived as a composition of the
// already-verified single-qubit rules sandwiching the CX/CZ base
// cases spec.md §4.4 gives directly, so each is a legitimate symplectic
// (GF(2)-linear, invertible) transform by construction.

// swapRows exchanges the X and Z rows of one qubit (H).
func swapRows(x, z *bitword.BitVector) { x.SwapWith(z) }

// zXorX sets z ^= x, x unchanged (H_XY, S, S_DAG).
func zXorX(x, z *bitword.BitVector) { z.XorAssign(x) }

// xXorZ sets x ^= z, z unchanged (H_YZ, SQRT_X, SQRT_X_DAG).
func xXorZ(x, z *bitword.BitVector) { x.XorAssign(z) }

// cx applies the CX frame rule (control c, target t): x[t] ^= x[c];
// z[c] ^= z[t]; directly from spec.md §4.4.
func cx(xc, zc, xt, zt *bitword.BitVector) {
	xt.XorAssign(xc)
	zc.XorAssign(zt)
}

// cz applies the CZ frame rule: z[a] ^= x[b]; z[b] ^= x[a].
func cz(xa, za, xb, zb *bitword.BitVector) {
	xaClone := xa.Clone()
	xbClone := xb.Clone()
	za.XorAssign(xbClone)
	zb.XorAssign(xaClone)
}

// cy applies the CY frame rule (control c, target t), derived as
// S_t . CX_{c,t} . S_t (see DESIGN.md for the worked derivation):
//
//	z[c]' = z[c] ^ z[t] ^ x[t]
//	x[t]' = x[t] ^ x[c]
//	z[t]' = z[t] ^ x[c]
func cy(xc, zc, xt, zt *bitword.BitVector) {
	xcOrig := xc.Clone()
	zc.XorAssign(zt)
	zc.XorAssign(xt)
	xt.XorAssign(xcOrig)
	zt.XorAssign(xcOrig)
}

// swapQubits exchanges both rows of two qubits (SWAP).
func swapQubits(xa, za, xb, zb *bitword.BitVector) {
	xa.SwapWith(xb)
	za.SwapWith(zb)
}

// iswap applies the ISWAP (and, in this sign-less model, the
// identical ISWAP_DAG) frame rule, derived as SWAP . CZ . (S (x) S):
//
//	x[a]' = x[b]
//	z[a]' = z[b] ^ x[a] ^ x[b]
//	x[b]' = x[a]
//	z[b]' = z[a] ^ x[a] ^ x[b]
func iswap(xa, za, xb, zb *bitword.BitVector) {
	xaOrig := xa.Clone()
	xbOrig := xb.Clone()
	zaOrig := za.Clone()
	zbOrig := zb.Clone()

	xorXab := xaOrig.Clone()
	xorXab.XorAssign(xbOrig)

	za2 := zbOrig.Clone()
	za2.XorAssign(xorXab)
	zb2 := zaOrig.Clone()
	zb2.XorAssign(xorXab)

	xa.SwapWith(xb) // xa'=xbOrig, xb'=xaOrig
	za.Clear()
	za.XorAssign(za2)
	zb.Clear()
	zb.XorAssign(zb2)
}

// xcx applies the XCX frame rule: x[a] ^= z[b]; x[b] ^= z[a].
func xcx(xa, za, xb, zb *bitword.BitVector) {
	zaClone := za.Clone()
	zbClone := zb.Clone()
	xa.XorAssign(zbClone)
	xb.XorAssign(zaClone)
}

// xcz applies the XCZ frame rule (qubit a is the X-type control,
// qubit b the Z-type target): x[a] ^= x[b]; z[b] ^= z[a].
func xcz(xa, za, xb, zb *bitword.BitVector) {
	xbClone := xb.Clone()
	zaClone := za.Clone()
	xa.XorAssign(xbClone)
	zb.XorAssign(zaClone)
}

// ycx applies the YCX frame rule (qubit a the Y-type control, qubit b
// the X-type target), derived as SQRT_X_a . CX_{a,b} . SQRT_X_a:
//
//	x[a]' = x[a] ^ z[b]
//	z[a]' = z[a] ^ z[b]
//	x[b]' = x[b] ^ x[a] ^ z[a]
func ycx(xa, za, xb, zb *bitword.BitVector) {
	xaOrig := xa.Clone()
	zaOrig := za.Clone()
	zbOrig := zb.Clone()

	xa.XorAssign(zbOrig)
	za.XorAssign(zbOrig)

	xaXorZa := xaOrig.Clone()
	xaXorZa.XorAssign(zaOrig)
	xb.XorAssign(xaXorZa)
}

// ycz applies the YCZ frame rule (qubit a the Y-type control, qubit b
// the Z-type target), derived as SQRT_X_a . CZ_{a,b} . SQRT_X_a:
//
//	x[a]' = x[a] ^ x[b]
//	z[a]' = z[a] ^ x[b]
//	z[b]' = z[b] ^ x[a] ^ z[a]
func ycz(xa, za, xb, zb *bitword.BitVector) {
	xaOrig := xa.Clone()
	zaOrig := za.Clone()
	xbOrig := xb.Clone()

	xa.XorAssign(xbOrig)
	za.XorAssign(xbOrig)

	xaXorZa := xaOrig.Clone()
	xaXorZa.XorAssign(zaOrig)
	zb.XorAssign(xaXorZa)
}
