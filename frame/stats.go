package frame

import (
	"github.com/quantumsim/stabsim/circuit"
	"github.com/quantumsim/stabsim/gate"
)

// CircuitStats is a precomputed pass over a circuit giving the table
// sizes a FrameSimulator needs at construction time, so its large
// buffers (the x/z frame tables, the measurement record) are allocated
// once rather than grown incrementally (spec.md §5's resource-
// discipline requirement).
type CircuitStats struct {
	NumQubits       int
	NumMeasurements int
	NumDetectors    int
	NumObservables  int
}

// Analyze walks c (expanding REPEAT blocks, since table sizes must
// account for every executed measurement, not just the unrolled
// program text) and returns the sizes needed to run it.
func Analyze(c *circuit.Circuit) (CircuitStats, error) {
	var s CircuitStats
	maxObs := -1
	err := c.Each(true, func(in circuit.Instruction) error {
		for _, t := range in.Targets {
			if t == circuit.Combiner {
				continue
			}
			if t.IsRecord() || t.IsSweep() {
				continue
			}
			if q := t.Value(); q+1 > s.NumQubits {
				s.NumQubits = q + 1
			}
		}
		rec := gate.ByID(in.Gate)
		switch in.Gate {
		case gate.DETECTOR:
			s.NumDetectors++
		case gate.OBSERVABLE_INCLUDE:
			if len(in.Args) > 0 {
				if k := int(in.Args[0]); k > maxObs {
					maxObs = k
				}
			}
		}
		if rec.Category.Has(gate.CatProducesResults) {
			s.NumMeasurements += resultCount(in)
		}
		return nil
	})
	if err != nil {
		return CircuitStats{}, err
	}
	s.NumObservables = maxObs + 1
	return s, nil
}

// resultCount is the number of measurement-record bits one instruction
// produces: one per target for ordinary measuring/heralding gates, but
// one per '*'-joined product for MPP.
func resultCount(in circuit.Instruction) int {
	if in.Gate != gate.MPP {
		return len(in.Targets)
	}
	n := 0
	for _, t := range in.Targets {
		if t == circuit.Combiner {
			n--
		} else {
			n++
		}
	}
	return n
}
