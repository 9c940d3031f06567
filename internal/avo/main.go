//go:build avogen
// +build avogen

package main

import (
	"flag"
	"strings"

	. "github.com/mmcloughlin/avo/build"
)

var (
	component = flag.String("component", "all", "component to generate")
)

// main emits the transpose and interleave kernels so go:generate stays
// a single invocation, same split as the teacher's delta/zigzag build.
func main() {
	flag.Parse()

	comp := strings.ToLower(*component)

	Package("github.com/quantumsim/stabsim/bitword")
	ConstraintExpr("amd64")
	ConstraintExpr("!noasm")

	if comp == "transpose" || comp == "all" {
		genTranspose64BlockKernel()
	}

	if comp == "interleave" || comp == "all" {
		genInterleave8Tile128Kernel()
	}

	Generate()
}
