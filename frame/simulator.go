// Package frame implements the batched Pauli-frame simulator (C7):
// propagating many independent noisy shots of a stabilizer circuit in
// lockstep using the bitword/bittable packed-bit layer. See rng.go for
// the RNG, gates.go for the per-gate conjugation rules, dispatch.go
// for the gate.ID-keyed handler table, and stats.go for the up-front
// sizing pass every FrameSimulator run requires.
package frame

import (
	"github.com/quantumsim/stabsim/bittable"
	"github.com/quantumsim/stabsim/bitword"
	"github.com/quantumsim/stabsim/circuit"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// FrameSimulator propagates batch independent Pauli frames through a
// circuit. Its x/z tables are sized once from a CircuitStats pass
// (spec.md §5's "allocate large buffers once, from precomputed sizes")
// and never reallocated mid-run.
type FrameSimulator struct {
	numQubits int
	batch     int // rounded up to a whole number of SIMD words
	shots     int // caller-requested shot count <= batch

	x, z *bittable.BitTable

	rng  *RNG
	opts Options

	measTable    *bittable.BitTable // numMeasurements x batch, measurement-major
	measCount    int
	detTable     *bittable.BitTable // numDetectors x batch
	detCount     int
	obsRows      map[int]*bitword.BitVector
	numObsHint   int
}

// New allocates a FrameSimulator sized to run c for the given number
// of shots.
func New(c *circuit.Circuit, shots int, opts Options) (*FrameSimulator, error) {
	if shots <= 0 {
		return nil, xerr.New(xerr.KindValidation, "frame: shots must be positive, got %d", shots)
	}
	stats, err := Analyze(c)
	if err != nil {
		return nil, err
	}
	batch := roundUpBatch(shots)
	fs := &FrameSimulator{
		numQubits:  stats.NumQubits,
		batch:      batch,
		shots:      shots,
		x:          bittable.New(stats.NumQubits, batch),
		z:          bittable.New(stats.NumQubits, batch),
		rng:        NewRNG(opts.seedOrRandom()),
		opts:       opts,
		measTable:  bittable.New(stats.NumMeasurements, batch),
		detTable:   bittable.New(stats.NumDetectors, batch),
		obsRows:    make(map[int]*bitword.BitVector),
		numObsHint: stats.NumObservables,
	}
	return fs, nil
}

func roundUpBatch(shots int) int {
	bits := bitword.Bits()
	if bits <= 0 {
		bits = 64
	}
	return ((shots + bits - 1) / bits) * bits
}

// NumQubits returns the qubit-table height.
func (fs *FrameSimulator) NumQubits() int { return fs.numQubits }

// Shots returns the number of logical shots (<= the padded batch width).
func (fs *FrameSimulator) Shots() int { return fs.shots }

func (fs *FrameSimulator) xRow(q int) *bitword.BitVector { return fs.x.Row(q) }
func (fs *FrameSimulator) zRow(q int) *bitword.BitVector { return fs.z.Row(q) }

// Run executes c to completion (REPEAT blocks always expand: a frame
// simulator produces concrete per-shot outcomes regardless of how the
// program text was looped, unlike the error analyzer's DEM output
// where loop structure is sometimes worth preserving) and returns the
// sampled measurement/detector/observable tables.
func (fs *FrameSimulator) Run(c *circuit.Circuit) (*Result, error) {
	err := c.Each(true, func(in circuit.Instruction) error {
		h := dispatchTable[in.Gate]
		if h == nil {
			xerr.Internal("frame: no handler registered for gate %v", in.Gate)
		}
		return h(fs, in)
	})
	if err != nil {
		return nil, err
	}
	res, err := fs.buildResult()
	if err != nil {
		return nil, err
	}
	if fs.opts.shouldStream(int64(res.Shots) * int64(res.NumMeasurements)) {
		if fs.opts.Sink == nil {
			return nil, xerr.New(xerr.KindValidation, "frame: streaming requested but Options.Sink is nil")
		}
		for s := 0; s < res.Shots; s++ {
			if err := fs.opts.Sink.WriteShot(s, res.Measurements.Row(s)); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// recordMeasurement appends one measurement-record row (outcome is the
// already-sampled bits in src) and returns its absolute index.
func (fs *FrameSimulator) recordMeasurement(src *bitword.BitVector) int {
	idx := fs.measCount
	fs.measTable.Row(idx).XorAssign(src)
	fs.measCount++
	return idx
}

// resolveRecordTarget turns a rec[-k] Target into an absolute
// measurement-table row index.
func (fs *FrameSimulator) resolveRecordTarget(t circuit.Target) (int, error) {
	k := t.Value()
	idx := fs.measCount - k
	if idx < 0 || idx >= fs.measCount {
		return 0, xerr.New(xerr.KindValidation, "frame: rec[-%d] out of range at measurement %d", k, fs.measCount)
	}
	return idx, nil
}

func (fs *FrameSimulator) buildResult() (*Result, error) {
	shotMajorMeas := fs.measTable.Transpose()
	shotMajorDet := fs.detTable.Transpose()

	obsTable := bittable.New(fs.numObsHint, fs.batch)
	for id, row := range fs.obsRows {
		if id < 0 || id >= fs.numObsHint {
			continue
		}
		obsTable.Row(id).XorAssign(row)
	}
	shotMajorObs := obsTable.Transpose()

	return &Result{
		Shots:           fs.shots,
		NumMeasurements: fs.measTable.Major(),
		NumDetectors:    fs.detTable.Major(),
		NumObservables:  fs.numObsHint,
		Measurements:    shotMajorMeas,
		Detectors:       shotMajorDet,
		Observables:     shotMajorObs,
	}, nil
}
