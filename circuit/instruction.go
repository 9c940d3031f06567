package circuit

import "github.com/quantumsim/stabsim/gate"

// instrRecord is the arena-indexed storage for one instruction: targets
// and args live in the owning Circuit's shared slices, referenced by
// (offset,length) so instructions stay cheap to copy and stable under
// append, per spec.md §3.
type instrRecord struct {
	gateID    gate.ID
	targetOff int
	targetLen int
	argOff    int
	argLen    int
	tag       string

	// repeatCount > 0 marks this record as a REPEAT block; bodyIdx then
	// indexes into Circuit.bodies for the sub-circuit.
	repeatCount int
	bodyIdx     int
}

// Instruction is a read-only view over one instrRecord's arena slices.
// It is valid only until the owning Circuit is mutated further (an
// Append may reallocate the backing arenas).
type Instruction struct {
	Gate    gate.ID
	Targets []Target
	Args    []float64
	Tag     string

	// RepeatCount and Body are set only when Gate's record has
	// Shape == gate.ShapeRepeatBlock.
	RepeatCount int
	Body        *Circuit
}

// IsRepeat reports whether this instruction is a REPEAT block.
func (in Instruction) IsRepeat() bool { return in.RepeatCount > 0 }
