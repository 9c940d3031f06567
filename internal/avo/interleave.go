//go:build avogen
// +build avogen

package main

import (
	. "github.com/mmcloughlin/avo/build"
	op "github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

// This file generates the interleave8_tile128 primitive from spec.md
// §4.1: for each aligned 128-bit tile of a and b, interleave the low
// bytes into the low 128 bits of the result and the high bytes into the
// high 128. PUNPCKLBW/PUNPCKHBW do exactly this in one instruction each;
// bitword.Interleave8Tile128 is the portable byte-shuffling fallback
// this kernel accelerates when SSE2 is available.

func genInterleave8Tile128Kernel() {
	TEXT("interleave8Tile128SIMDAsm", NOSPLIT, "func(a, b *byte, lo, hi *byte, tiles int)")
	Doc("interleave8Tile128SIMDAsm interleaves the bytes of `tiles` aligned")
	Doc("128-bit blocks of a and b: lo receives the low-byte interleave,")
	Doc("hi the high-byte interleave, per tile.")

	aPtr := Load(Param("a"), GP64())
	aBase := aPtr.(reg.GPVirtual)
	bPtr := Load(Param("b"), GP64())
	bBase := bPtr.(reg.GPVirtual)
	loPtr := Load(Param("lo"), GP64())
	loBase := loPtr.(reg.GPVirtual)
	hiPtr := Load(Param("hi"), GP64())
	hiBase := hiPtr.(reg.GPVirtual)
	tiles := Load(Param("tiles"), GP64())

	idx := GP64()
	MOVQ(op.Imm(0), idx)

	loop := "interleave_tile_loop"
	done := "interleave_tile_done"
	Label(loop)
	CMPQ(idx, tiles)
	JGE(op.LabelRef(done))

	off := GP64()
	MOVQ(idx, off)
	SHLQ(op.Imm(4), off) // 16 bytes per tile

	va := XMM()
	vb := XMM()
	vaAddr := GP64()
	MOVQ(aBase, vaAddr)
	ADDQ(off, vaAddr)
	MOVOU(op.Mem{Base: vaAddr}, va)

	vbAddr := GP64()
	MOVQ(bBase, vbAddr)
	ADDQ(off, vbAddr)
	MOVOU(op.Mem{Base: vbAddr}, vb)

	loVec := XMM()
	hiVec := XMM()
	MOVO(va, loVec)
	MOVO(va, hiVec)

	PUNPCKLBW(vb, loVec)
	PUNPCKHBW(vb, hiVec)

	loAddr := GP64()
	MOVQ(loBase, loAddr)
	ADDQ(off, loAddr)
	MOVOU(loVec, op.Mem{Base: loAddr})

	hiAddr := GP64()
	MOVQ(hiBase, hiAddr)
	ADDQ(off, hiAddr)
	MOVOU(hiVec, op.Mem{Base: hiAddr})

	ADDQ(op.Imm(1), idx)
	JMP(op.LabelRef(loop))

	Label(done)
	RET()
}
