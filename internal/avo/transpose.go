//go:build avogen
// +build avogen

package main

import (
	. "github.com/mmcloughlin/avo/build"
	op "github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

// This file generates the SSE2 64x64 block-transpose kernel described in
// spec.md §4.1: six butterfly passes, each ANDing a lane-repeated mask
// against `a[k] ^ (a[k+s] >> s)`, then folding that term back into both
// a[k] and a[k+s]. bittable.transpose64Block (the pure-Go reference this
// mirrors) is the source of truth for correctness; this kernel runs the
// same six passes over one 64x64 block per call, two rows at a time in
// packed XMM registers.
//
// masks holds the six pass constants as 64-bit immediates; each is
// loaded into a general-purpose register with MOVQ and copied into both
// lanes of an XMM register with two PINSRQ before the AND.

var transposeMasks = [6]uint64{
	0x5555555555555555,
	0x3333333333333333,
	0x0f0f0f0f0f0f0f0f,
	0x00ff00ff00ff00ff,
	0x0000ffff0000ffff,
	0x00000000ffffffff,
}
var transposeShifts = [6]uint64{1, 2, 4, 8, 16, 32}

func genTranspose64BlockKernel() {
	TEXT("transpose64BlockSIMDAsm", NOSPLIT, "func(rows *uint64)")
	Doc("transpose64BlockSIMDAsm transposes a 64x64 bit matrix (rows[0:64])")
	Doc("in place, two rows at a time via packed 64-bit shifts/ANDs/XORs.")
	Doc("It is the SSE2 mirror of bittable.transpose64Block.")

	base := Load(Param("rows"), GP64())
	rowsBase := base.(reg.GPVirtual)

	maskReg := XMM()
	tmp := XMM()

	for pass := 0; pass < 6; pass++ {
		s := transposeShifts[pass]
		m := transposeMasks[pass]

		maskLowImm := GP64()
		MOVQ(op.Imm(m), maskLowImm)
		PINSRQ(op.Imm(0), maskLowImm, maskReg)
		PINSRQ(op.Imm(1), maskLowImm, maskReg)

		// Iterate k over the row pairs (k, k+s) whose bit-`log2(s)` row
		// index is 0, the same enumeration bittable.transpose64Block uses:
		// k := 0; for k < 64 { process(k, k+s); k = (k + s + 1) &^ s }.
		k := GP64()
		MOVQ(op.Imm(0), k)

		loop := "transpose_pass_loop"
		done := "transpose_pass_done"
		Label(loop)
		CMPQ(k, op.Imm(64))
		JGE(op.LabelRef(done))

		ak := GP64()
		aks := GP64()
		MOVQ(k, ak)
		SHLQ(op.Imm(3), ak) // byte offset = k*8
		MOVQ(rowsBase, aks)
		ADDQ(ak, aks)

		vA := XMM()
		vB := XMM()
		MOVQ(op.Mem{Base: aks}, vA)

		kPlusS := GP64()
		MOVQ(k, kPlusS)
		ADDQ(op.Imm(int32(s)), kPlusS)
		bOff := GP64()
		MOVQ(kPlusS, bOff)
		SHLQ(op.Imm(3), bOff)
		bAddr := GP64()
		MOVQ(rowsBase, bAddr)
		ADDQ(bOff, bAddr)
		MOVQ(op.Mem{Base: bAddr}, vB)

		// t = (a ^ (b >> s)) & m
		PSRLQ(op.Imm(int8(s)), vB)
		PXOR(vA, vB)
		PAND(maskReg, vB)
		MOVO(vB, tmp)

		// a ^= t
		PXOR(tmp, vA)
		MOVQ(vA, op.Mem{Base: aks})

		// b_orig was overwritten; reload and apply b ^= (t << s)
		MOVQ(op.Mem{Base: bAddr}, vB)
		PSLLQ(op.Imm(int8(s)), tmp)
		PXOR(tmp, vB)
		MOVQ(vB, op.Mem{Base: bAddr})

		// k = (k + s + 1) &^ s
		ADDQ(op.Imm(int32(s+1)), k)
		notS := GP64()
		MOVQ(op.Imm(^int64(s)), notS)
		ANDQ(notS, k)
		JMP(op.LabelRef(loop))

		Label(done)
	}

	RET()
}
