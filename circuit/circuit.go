// Package circuit implements the Circuit data model (C5): gate
// targets, instructions viewed over shared arenas, and the text format
// spec.md §6 defines for round-tripping them.
package circuit

import (
	"github.com/quantumsim/stabsim/gate"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// Circuit holds a contiguous arena of targets and a contiguous arena of
// args that instructions reference by (offset,length), plus the
// instruction list and the sub-circuits REPEAT blocks point to. Arenas
// keep Append cheap and instructions stable under further appends,
// per spec.md §3.
type Circuit struct {
	targets []Target
	args    []float64
	instrs  []instrRecord
	bodies  []*Circuit
}

// New returns an empty Circuit.
func New() *Circuit { return &Circuit{} }

// NumInstructions returns the number of top-level instructions (REPEAT
// blocks count as one, regardless of their body's length).
func (c *Circuit) NumInstructions() int { return len(c.instrs) }

// At returns a view of the i-th instruction.
func (c *Circuit) At(i int) Instruction { return c.view(c.instrs[i]) }

func (c *Circuit) view(r instrRecord) Instruction {
	in := Instruction{
		Gate:    r.gateID,
		Targets: c.targets[r.targetOff : r.targetOff+r.targetLen],
		Args:    c.args[r.argOff : r.argOff+r.argLen],
		Tag:     r.tag,
	}
	if r.repeatCount > 0 {
		in.RepeatCount = r.repeatCount
		in.Body = c.bodies[r.bodyIdx]
	}
	return in
}

// Append validates targets/args against the gate registry and appends
// a new instruction, fusing into the previous instruction when the
// gate permits it and the gate_id/args/tag match exactly (spec.md
// §4.2's fusion rule).
func (c *Circuit) Append(name string, targets []Target, args []float64, tag string) error {
	rec, ok := gate.Lookup(name)
	if !ok {
		return xerr.New(xerr.KindParse, "unknown gate %q", name)
	}
	return c.appendRecord(rec, targets, args, tag)
}

func (c *Circuit) appendRecord(rec *gate.Record, targets []Target, args []float64, tag string) error {
	if err := validateArgs(rec, args); err != nil {
		return err
	}
	if err := validateTargets(rec, targets); err != nil {
		return err
	}

	if c.tryFuse(rec.ID, targets, args, tag, rec.Category.Has(gate.CatNotFusable)) {
		return nil
	}

	ir := instrRecord{
		gateID:    rec.ID,
		targetOff: len(c.targets),
		targetLen: len(targets),
		argOff:    len(c.args),
		argLen:    len(args),
		tag:       tag,
	}
	c.targets = append(c.targets, targets...)
	c.args = append(c.args, args...)
	c.instrs = append(c.instrs, ir)
	return nil
}

// tryFuse extends the previous instruction's target slice in place if
// it has the identical gate_id, args, and tag, and the gate is
// fusable. Fusion only ever extends the arena's tail, so it is safe
// exactly when the previous instruction's target slice still ends at
// the arena's current end (always true: nothing is appended between
// instructions except via this same path).
func (c *Circuit) tryFuse(id gate.ID, targets []Target, args []float64, tag string, notFusable bool) bool {
	if notFusable || len(c.instrs) == 0 {
		return false
	}
	last := &c.instrs[len(c.instrs)-1]
	if last.repeatCount > 0 || last.gateID != id || last.tag != tag {
		return false
	}
	if !floatsEqual(c.args[last.argOff:last.argOff+last.argLen], args) {
		return false
	}
	c.targets = append(c.targets, targets...)
	last.targetLen += len(targets)
	return true
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AppendRepeatBlock appends a REPEAT n { body } instruction. n must be
// >= 1: a zero-repeat block would make observables that appear only
// inside it ambiguous (spec.md §4.2), so it is rejected outright.
func (c *Circuit) AppendRepeatBlock(n int, body *Circuit, tag string) error {
	if n < 1 {
		return xerr.New(xerr.KindValidation, "REPEAT count must be >= 1, got %d", n)
	}
	ir := instrRecord{
		gateID:      gate.REPEAT,
		repeatCount: n,
		bodyIdx:     len(c.bodies),
		tag:         tag,
	}
	c.bodies = append(c.bodies, body)
	c.instrs = append(c.instrs, ir)
	return nil
}

func validateArgs(rec *gate.Record, args []float64) error {
	n := len(args)
	if n < rec.Args.Min || (rec.Args.Max >= 0 && n > rec.Args.Max) {
		return xerr.New(xerr.KindParse, "%s: expected [%d,%d] args, got %d", rec.Name, rec.Args.Min, rec.Args.Max, n)
	}
	for _, a := range args {
		if rec.Category.Has(gate.CatNoise) && (a < 0 || a > 1) {
			return xerr.New(xerr.KindValidation, "%s: probability %g outside [0,1]", rec.Name, a)
		}
	}
	return nil
}

func validateTargets(rec *gate.Record, targets []Target) error {
	switch rec.Shape {
	case gate.ShapeNone:
		if len(targets) != 0 {
			return xerr.New(xerr.KindParse, "%s: takes no targets", rec.Name)
		}
	case gate.ShapeSingleQubit:
		for _, t := range targets {
			if t.IsRecord() || t.IsSweep() {
				return xerr.New(xerr.KindParse, "%s: target %s is not a qubit target", rec.Name, t)
			}
		}
	case gate.ShapePairs:
		if len(targets)%2 != 0 {
			return xerr.New(xerr.KindParse, "%s: requires an even number of targets, got %d", rec.Name, len(targets))
		}
		for _, t := range targets {
			if t.IsRecord() || t.IsSweep() {
				return xerr.New(xerr.KindParse, "%s: target %s is not a qubit target", rec.Name, t)
			}
		}
	case gate.ShapeProducts:
		if err := validateProductTargets(rec, targets); err != nil {
			return err
		}
	case gate.ShapeRecordList:
		for _, t := range targets {
			if !t.IsRecord() {
				return xerr.New(xerr.KindParse, "%s: target %s must be a rec[-k] reference", rec.Name, t)
			}
		}
	case gate.ShapeRepeatBlock:
		return xerr.New(xerr.KindInternal, "%s: REPEAT must be appended via AppendRepeatBlock", rec.Name)
	}
	return nil
}

// validateProductTargets checks MPP's Pauli-product vector: runs of
// Pauli targets separated by the '*' combiner, no bare qubit/record/
// sweep targets and no empty runs.
func validateProductTargets(rec *gate.Record, targets []Target) error {
	if len(targets) == 0 {
		return nil
	}
	runLen := 0
	for _, t := range targets {
		if t == Combiner {
			if runLen == 0 {
				return xerr.New(xerr.KindParse, "%s: '*' combiner with no preceding Pauli target", rec.Name)
			}
			runLen = 0
			continue
		}
		if !t.IsPauli() {
			return xerr.New(xerr.KindParse, "%s: target %s must be an X/Y/Z Pauli target", rec.Name, t)
		}
		runLen++
	}
	if runLen == 0 {
		return xerr.New(xerr.KindParse, "%s: trailing '*' combiner with no following Pauli target", rec.Name)
	}
	return nil
}

// Concat returns a new Circuit holding c's instructions followed by
// other's, with arenas copied so the result owns independent storage
// (spec.md §4.2's `+` operator).
func (c *Circuit) Concat(other *Circuit) *Circuit {
	out := &Circuit{
		targets: append(append([]Target{}, c.targets...), other.targets...),
		args:    append(append([]float64{}, c.args...), other.args...),
		bodies:  append(append([]*Circuit{}, c.bodies...), other.bodies...),
	}
	out.instrs = make([]instrRecord, 0, len(c.instrs)+len(other.instrs))
	out.instrs = append(out.instrs, c.instrs...)
	bodyShift := len(c.bodies)
	for _, ir := range other.instrs {
		shifted := ir
		shifted.targetOff += len(c.targets)
		shifted.argOff += len(c.args)
		if ir.repeatCount > 0 {
			shifted.bodyIdx += bodyShift
		}
		out.instrs = append(out.instrs, shifted)
	}
	return out
}

// Repeated returns k-fold literal concatenation of c with itself
// (spec.md §4.2's `* k` operator), k >= 0.
func (c *Circuit) Repeated(k int) *Circuit {
	if k < 0 {
		panic("circuit: Repeated count must be >= 0")
	}
	out := New()
	for i := 0; i < k; i++ {
		out = out.Concat(c)
	}
	return out
}

// Flatten materializes the circuit with every REPEAT block expanded
// inline, recursively.
func (c *Circuit) Flatten() *Circuit {
	out := New()
	c.Each(true, func(in Instruction) error {
		out.appendRaw(in.Gate, in.Targets, in.Args, in.Tag)
		return nil
	})
	return out
}

func (c *Circuit) appendRaw(id gate.ID, targets []Target, args []float64, tag string) {
	ir := instrRecord{
		gateID:    id,
		targetOff: len(c.targets),
		targetLen: len(targets),
		argOff:    len(c.args),
		argLen:    len(args),
		tag:       tag,
	}
	c.targets = append(c.targets, targets...)
	c.args = append(c.args, args...)
	c.instrs = append(c.instrs, ir)
}

// Each visits every instruction in order. When expandLoops is true,
// REPEAT bodies are visited inline (repeatCount times each) and no
// Instruction with IsRepeat() true is ever passed to visit; when
// false, a REPEAT block is passed once as a single Instruction with
// its Body left unexpanded, matching spec.md §4.2's lazy dual-mode
// iteration.
func (c *Circuit) Each(expandLoops bool, visit func(Instruction) error) error {
	for _, ir := range c.instrs {
		in := c.view(ir)
		if in.IsRepeat() && expandLoops {
			for i := 0; i < in.RepeatCount; i++ {
				if err := in.Body.Each(true, visit); err != nil {
					return err
				}
			}
			continue
		}
		if err := visit(in); err != nil {
			return err
		}
	}
	return nil
}

// Equal compares two circuits over their flattened views, so REPEAT
// block structure and fusion granularity don't affect the result
// (spec.md §4.2: "Equality is defined over the flattened view.").
func (c *Circuit) Equal(other *Circuit) bool {
	a, b := flattenToSlice(c), flattenToSlice(other)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !instructionsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// flattenToSlice lists c's instructions with REPEAT blocks expanded,
// fusing each one into the previous entry under the same rule tryFuse
// applies, so the result does not depend on how the text was split.
func flattenToSlice(c *Circuit) []Instruction {
	var out []Instruction
	c.Each(true, func(in Instruction) error {
		if n := len(out); n > 0 && !gate.ByID(in.Gate).Category.Has(gate.CatNotFusable) &&
			out[n-1].Gate == in.Gate && out[n-1].Tag == in.Tag && floatsEqual(out[n-1].Args, in.Args) {
			out[n-1].Targets = append(append([]Target{}, out[n-1].Targets...), in.Targets...)
			return nil
		}
		out = append(out, in)
		return nil
	})
	return out
}

func instructionsEqual(a, b Instruction) bool {
	if a.Gate != b.Gate || a.Tag != b.Tag {
		return false
	}
	if len(a.Targets) != len(b.Targets) || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Targets {
		if a.Targets[i] != b.Targets[i] {
			return false
		}
	}
	return floatsEqual(a.Args, b.Args)
}

