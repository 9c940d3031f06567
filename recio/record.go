package recio

import (
	"github.com/quantumsim/stabsim/bittable"
	"github.com/quantumsim/stabsim/bitword"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// Sink receives finalized shot rows during streaming flush. Errors
// from a sink (e.g. an I/O failure on the underlying writer) propagate
// to the caller of Flush/MaybeFlush unswallowed, per spec.md §7's
// streaming-write error policy.
type Sink interface {
	WriteShot(globalShot int, row *bitword.BitVector) error
}

// MeasurementRecord is a shots x num_measurements BitTable (spec.md
// §3) plus an emission cursor for streaming mode: once the in-memory
// window fills to flushThreshold rows, the window is flushed through
// sink one row at a time and the cursor advances the logical shot
// base, so the live table never grows past the window size.
type MeasurementRecord struct {
	table           *bittable.BitTable
	numMeasurements int
	windowShots     int
	filled          int // rows written in the current window, [0, windowShots]
	base            int // logical shot index of window row 0
	sink            Sink
	flushThreshold  int // 0 disables auto-flush (whole record held in memory)
}

// NewMeasurementRecord allocates a record that holds all `shots` rows
// in memory and never streams.
func NewMeasurementRecord(shots, numMeasurements int) *MeasurementRecord {
	return &MeasurementRecord{
		table:           bittable.New(shots, numMeasurements),
		numMeasurements: numMeasurements,
		windowShots:     shots,
	}
}

// NewStreamingMeasurementRecord allocates a record that keeps only a
// windowShots-row buffer in memory, flushing full rows through sink
// once flushThreshold rows have accumulated (flushThreshold <=
// windowShots). Pass ForceStreaming-style callers a small threshold to
// exercise the streaming path on small inputs.
func NewStreamingMeasurementRecord(windowShots, numMeasurements, flushThreshold int, sink Sink) (*MeasurementRecord, error) {
	if flushThreshold <= 0 || flushThreshold > windowShots {
		return nil, xerr.New(xerr.KindValidation, "flushThreshold must be in (0,%d], got %d", windowShots, flushThreshold)
	}
	if sink == nil {
		return nil, xerr.New(xerr.KindValidation, "streaming record requires a non-nil sink")
	}
	return &MeasurementRecord{
		table:           bittable.New(windowShots, numMeasurements),
		numMeasurements: numMeasurements,
		windowShots:     windowShots,
		sink:            sink,
		flushThreshold:  flushThreshold,
	}, nil
}

// NumMeasurements returns the row width.
func (r *MeasurementRecord) NumMeasurements() int { return r.numMeasurements }

// Set records the outcome of measurement index `col` for the shot
// currently at local row `localShot` (0-based within the live
// window). Callers driving many shots through a streaming record call
// MaybeFlush after completing each shot.
func (r *MeasurementRecord) Set(localShot, col int, v bool) {
	r.table.Set(localShot, col, v)
	if localShot+1 > r.filled {
		r.filled = localShot + 1
	}
}

// Row returns a live view of local row localShot.
func (r *MeasurementRecord) Row(localShot int) *bitword.BitVector {
	return r.table.Row(localShot)
}

// MaybeFlush flushes the window through sink once filled rows reach
// flushThreshold, advancing the logical base and resetting the
// in-memory window for reuse. A no-op for non-streaming records
// (flushThreshold == 0) or when the window isn't yet full.
func (r *MeasurementRecord) MaybeFlush() error {
	if r.sink == nil || r.filled < r.flushThreshold {
		return nil
	}
	return r.Flush()
}

// Flush forces a flush of every filled row in the current window
// through sink, regardless of flushThreshold.
func (r *MeasurementRecord) Flush() error {
	if r.sink == nil {
		return xerr.New(xerr.KindInternal, "Flush called on a non-streaming MeasurementRecord")
	}
	for i := 0; i < r.filled; i++ {
		if err := r.sink.WriteShot(r.base+i, r.table.Row(i)); err != nil {
			return err
		}
	}
	r.base += r.filled
	r.filled = 0
	r.table.Clear()
	return nil
}

// Base returns the logical shot index of the window's first row.
func (r *MeasurementRecord) Base() int { return r.base }
