package frame

import "github.com/quantumsim/stabsim/bitword"

// newRow allocates a scratch BitVector with one 64-bit lane per Word,
// matching the layout bittable.BitTable.Row returns. Every frame
// table (x, z, measurements, detectors, observables) is bittable-
// backed, so any scratch vector combined with a table row via
// XorAssign/AndAssign must share that single-lane layout rather than
// the process-wide bitword.Lanes SIMD width bitword.NewBitVector
// defaults to — those are two independent axes (see DESIGN.md's
// bitword section): per-shot batching here is a BitTable column
// count, not a bitword.Word lane count.
func newRow(n int) *bitword.BitVector {
	wc := (n + 63) / 64
	words := make([]bitword.Word, wc)
	for i := range words {
		words[i] = make(bitword.Word, 1)
	}
	return bitword.ViewBitVector(words, n)
}
