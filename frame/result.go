package frame

import (
	"github.com/quantumsim/stabsim/bittable"
	"github.com/quantumsim/stabsim/recio"
)

// Result is the sampled output of a FrameSimulator run: three
// shots-major tables (measurements, detectors, observables), each
// produced from this package's internal measurement-major storage via
// bittable.Transpose.
type Result struct {
	Shots           int
	NumMeasurements int
	NumDetectors    int
	NumObservables  int

	Measurements *bittable.BitTable // Shots x NumMeasurements
	Detectors    *bittable.BitTable // Shots x NumDetectors
	Observables  *bittable.BitTable // Shots x NumObservables
}

// MeasurementRecord copies Measurements into a recio.MeasurementRecord,
// the public round-trippable sample container spec.md §6's five text
// and binary formats operate on.
func (r *Result) MeasurementRecord() *recio.MeasurementRecord {
	rec := recio.NewMeasurementRecord(r.Shots, r.NumMeasurements)
	for s := 0; s < r.Shots; s++ {
		rec.Row(s).XorAssign(r.Measurements.Row(s))
	}
	return rec
}

// DetectorRecord copies Detectors into a recio.MeasurementRecord,
// reusing the same round-trippable container for detector samples.
func (r *Result) DetectorRecord() *recio.MeasurementRecord {
	rec := recio.NewMeasurementRecord(r.Shots, r.NumDetectors)
	for s := 0; s < r.Shots; s++ {
		rec.Row(s).XorAssign(r.Detectors.Row(s))
	}
	return rec
}

// ObservableRecord copies Observables into a recio.MeasurementRecord.
func (r *Result) ObservableRecord() *recio.MeasurementRecord {
	rec := recio.NewMeasurementRecord(r.Shots, r.NumObservables)
	for s := 0; s < r.Shots; s++ {
		rec.Row(s).XorAssign(r.Observables.Row(s))
	}
	return rec
}
