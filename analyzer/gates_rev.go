package analyzer

// This file mirrors frame/gates.go exactly, one function per gate
// shape, but acting on (X_sensitivity, Z_sensitivity) symbolic sets
// instead of BitVector rows (spec.md §4.5: "identical in structure to
// the frame simulator but acting on symbolic sets rather than bits").
//
// Every rule here is self-inverse under XOR composition — the same
// property frame/gates.go's rules have (each gate equals its own
// undo when no sign is tracked) — so applying a gate's *forward* rule
// while walking the instruction list *backward* correctly slides
// sensitivity sets across it: conjugating an observable by a
// Clifford's own generators commutes with the reverse direction the
// same way conjugating a frame error does. This is the one place this
// package leans on that symmetry instead of deriving a separate
// "transpose" rule per gate; see DESIGN.md for the reasoning.

func swapRowsSens(x, z *sensSet) { x.m, z.m = z.m, x.m }

func zXorXSens(x, z *sensSet) { z.xorAssign(x) }

func xXorZSens(x, z *sensSet) { x.xorAssign(z) }

func cxSens(xc, zc, xt, zt *sensSet) {
	xt.xorAssign(xc)
	zc.xorAssign(zt)
}

func czSens(xa, za, xb, zb *sensSet) {
	xaClone := xa.clone()
	xbClone := xb.clone()
	za.xorAssign(xbClone)
	zb.xorAssign(xaClone)
}

func cySens(xc, zc, xt, zt *sensSet) {
	xcOrig := xc.clone()
	zc.xorAssign(zt)
	zc.xorAssign(xt)
	xt.xorAssign(xcOrig)
	zt.xorAssign(xcOrig)
}

func swapQubitsSens(xa, za, xb, zb *sensSet) {
	xa.m, xb.m = xb.m, xa.m
	za.m, zb.m = zb.m, za.m
}

func iswapSens(xa, za, xb, zb *sensSet) {
	xaOrig := xa.clone()
	xbOrig := xb.clone()
	zaOrig := za.clone()
	zbOrig := zb.clone()

	xorXab := xaOrig.clone()
	xorXab.xorAssign(xbOrig)

	za2 := xorSets(zbOrig, xorXab)
	zb2 := xorSets(zaOrig, xorXab)

	xa.m, xb.m = xbOrig.m, xaOrig.m
	za.m = za2.m
	zb.m = zb2.m
}

func xcxSens(xa, za, xb, zb *sensSet) {
	zaClone := za.clone()
	zbClone := zb.clone()
	xa.xorAssign(zbClone)
	xb.xorAssign(zaClone)
}

func xczSens(xa, za, xb, zb *sensSet) {
	xbClone := xb.clone()
	zaClone := za.clone()
	xa.xorAssign(xbClone)
	zb.xorAssign(zaClone)
}

func ycxSens(xa, za, xb, zb *sensSet) {
	xaOrig := xa.clone()
	zaOrig := za.clone()
	zbOrig := zb.clone()

	xa.xorAssign(zbOrig)
	za.xorAssign(zbOrig)

	xaXorZa := xorSets(xaOrig, zaOrig)
	xb.xorAssign(xaXorZa)
}

func yczSens(xa, za, xb, zb *sensSet) {
	xaOrig := xa.clone()
	zaOrig := za.clone()
	xbOrig := xb.clone()

	xa.xorAssign(xbOrig)
	za.xorAssign(xbOrig)

	xaXorZa := xorSets(xaOrig, zaOrig)
	zb.xorAssign(xaXorZa)
}
