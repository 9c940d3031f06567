//go:build !amd64 || noasm

package bitword

// On non-amd64 platforms, or when the noasm build tag forces it (the
// same escape hatch simdpack_noasm_test.go exercises in the teacher),
// init sets Lanes/Variant to the polyfill width.
func init() {
	Lanes = LanesPolyfill
	Variant = "polyfill"
}
