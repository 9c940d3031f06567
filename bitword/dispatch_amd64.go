//go:build amd64 && !noasm

package bitword

import "golang.org/x/sys/cpu"

// init selects the widest lane count the running CPU supports, mirroring
// simdpack.go's initSIMDSelection: probe features once, store the
// decision in package state, never re-probe. Unlike the teacher (which
// only ever checked HasSSE2 before falling back), stabsim also checks
// AVX2 since spec.md names all three widths explicitly.
func init() {
	switch {
	case cpu.X86.HasAVX2:
		Lanes = LanesAVX2
		Variant = "avx2"
	case cpu.X86.HasSSE2:
		Lanes = LanesSSE2
		Variant = "sse2"
	default:
		Lanes = LanesPolyfill
		Variant = "polyfill"
	}
}
