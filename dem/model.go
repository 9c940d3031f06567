package dem

import (
	"sort"

	"github.com/quantumsim/stabsim/internal/xerr"
)

// Kind distinguishes the five DEM instruction forms spec.md §3 names.
type Kind int

const (
	KindError Kind = iota
	KindDetector
	KindLogicalObservable
	KindShiftDetectors
	KindRepeatBlock
)

// Instruction is one line of a DetectorErrorModel. Unlike circuit's
// Instruction, a DEM Instruction owns its Targets/Args slices directly
// rather than viewing a shared arena: a DEM is built incrementally,
// one error at a time, by the analyzer's backward pass rather than
// bulk-copied from parsed text, so the arena-with-offset/length
// indirection circuit.Circuit needs would be premature generality
// here (see DESIGN.md).
type Instruction struct {
	Kind        Kind
	Probability float64   // KindError
	Targets     []Target  // KindError, KindDetector, KindLogicalObservable
	Args        []float64 // KindDetector coords, KindShiftDetectors shift tuple
	RepeatCount int       // KindRepeatBlock
	Body        *Model    // KindRepeatBlock
}

// Model is a DetectorErrorModel: a sequence of Instructions.
type Model struct {
	instrs []Instruction
}

// New returns an empty Model.
func New() *Model { return &Model{} }

// NumInstructions returns the number of top-level instructions.
func (m *Model) NumInstructions() int { return len(m.instrs) }

// At returns the i-th top-level instruction.
func (m *Model) At(i int) Instruction { return m.instrs[i] }

// AddError appends an error(p) instruction. targets are canonicalized
// first (sorted, XOR-deduplicated within each '^'-separated
// component, per spec.md §4.5's symmetric-difference error
// bookkeeping). If an existing error instruction already has the
// identical canonical target set, the two are merged into one using
// the independent-error combination rule p_new = p_a + p_b - 2 p_a p_b
// instead of appending a duplicate line.
func (m *Model) AddError(p float64, targets []Target) error {
	if p < 0 || p > 1 {
		return xerr.New(xerr.KindValidation, "error probability %g outside [0,1]", p)
	}
	canon := CanonicalizeTargets(targets)
	if len(canon) == 0 {
		return nil // fully cancelled out; contributes no detector flips
	}
	for i := range m.instrs {
		in := &m.instrs[i]
		if in.Kind != KindError || !targetsEqual(in.Targets, canon) {
			continue
		}
		in.Probability = in.Probability + p - 2*in.Probability*p
		return nil
	}
	m.instrs = append(m.instrs, Instruction{Kind: KindError, Probability: p, Targets: canon})
	return nil
}

// AddErrorRaw appends an error(p) instruction with targets taken
// verbatim — no canonicalization, no merge-with-duplicate search. A
// DistanceSearch result is a literal chain of edges a caller already
// built deliberately (e.g. a `p=1` path reconstructed from a BFS
// predecessor chain); running it through AddError's merge-by-identical-
// target-set rule would be wrong there (distinct edges in the chain
// may legitimately share a target list across separate calls without
// being "the same error" to merge).
func (m *Model) AddErrorRaw(p float64, targets []Target) error {
	if p < 0 || p > 1 {
		return xerr.New(xerr.KindValidation, "error probability %g outside [0,1]", p)
	}
	cp := make([]Target, len(targets))
	copy(cp, targets)
	m.instrs = append(m.instrs, Instruction{Kind: KindError, Probability: p, Targets: cp})
	return nil
}

// AddDetector appends a detector(args) metadata instruction.
func (m *Model) AddDetector(args []float64, targets []Target) error {
	for _, t := range targets {
		if !t.IsDetector() {
			return xerr.New(xerr.KindValidation, "detector instruction target %s is not a detector", t)
		}
	}
	m.instrs = append(m.instrs, Instruction{Kind: KindDetector, Args: args, Targets: targets})
	return nil
}

// AddLogicalObservable appends a logical_observable instruction.
func (m *Model) AddLogicalObservable(t Target) error {
	if !t.IsObservable() {
		return xerr.New(xerr.KindValidation, "logical_observable target %s is not an observable", t)
	}
	m.instrs = append(m.instrs, Instruction{Kind: KindLogicalObservable, Targets: []Target{t}})
	return nil
}

// AddShiftDetectors appends a shift_detectors(args) k instruction.
func (m *Model) AddShiftDetectors(args []float64, k int) error {
	if k < 0 {
		return xerr.New(xerr.KindValidation, "shift_detectors count must be >= 0, got %d", k)
	}
	m.instrs = append(m.instrs, Instruction{Kind: KindShiftDetectors, Args: args, RepeatCount: k})
	return nil
}

// AddRepeatBlock appends a repeat k { body } instruction. k must be >= 1.
func (m *Model) AddRepeatBlock(k int, body *Model) error {
	if k < 1 {
		return xerr.New(xerr.KindValidation, "DEM repeat count must be >= 1, got %d", k)
	}
	m.instrs = append(m.instrs, Instruction{Kind: KindRepeatBlock, RepeatCount: k, Body: body})
	return nil
}

// Each visits every instruction. When expandLoops is true, repeat
// blocks are inlined (their body visited RepeatCount times) instead of
// passed through as a single KindRepeatBlock instruction.
func (m *Model) Each(expandLoops bool, visit func(Instruction) error) error {
	for _, in := range m.instrs {
		if in.Kind == KindRepeatBlock && expandLoops {
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

// CanonicalizeTargets sorts and XOR-deduplicates the targets within
// each '^'-separated run: a target appearing an even number of times
// cancels out entirely (matching the Pauli-frame XOR bookkeeping
// spec.md §4.5 uses for X/Z sensitivity sets), then non-empty runs are
// rejoined with Separator. A run that fully cancels is dropped, and if
// every run cancels the result is an empty slice.
func CanonicalizeTargets(targets []Target) []Target {
	var out []Target
	start := 0
	flush := func(run []Target) {
		dedup := xorDedup(run)
		if len(dedup) == 0 {
			return
		}
		if len(out) > 0 {
			out = append(out, Separator)
		}
		out = append(out, dedup...)
	}
	for i, t := range targets {
		if t.IsSeparator() {
			flush(targets[start:i])
			start = i + 1
		}
	}
	flush(targets[start:])
	return out
}

func xorDedup(run []Target) []Target {
	if len(run) == 0 {
		return nil
	}
	counts := make(map[Target]int, len(run))
	for _, t := range run {
		counts[t]++
	}
	out := make([]Target, 0, len(run))
	for t, n := range counts {
		if n%2 == 1 {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func targetsEqual(a, b []Target) bool {
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
