package recio

import (
	"bufio"
	"io"
	"strings"

	"github.com/quantumsim/stabsim/bitword"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// BufferedWriter accumulates every shot's encoded row in memory and
// renders the whole batch with String()/Bytes() in one call — the
// teacher's `Reader` (decode everything up front, for small/medium
// blocks) shape, applied here to encoding rather than decoding.
type BufferedWriter struct {
	format Format
	n      int
	prefix []byte
	lines  []string
	raw    []byte // FormatB8 only
}

// NewBufferedWriter returns a writer for n-bit shots in the given
// format. prefix customizes FormatDets token letters (nil defaults
// every bit to 'M').
func NewBufferedWriter(format Format, n int, prefix []byte) *BufferedWriter {
	return &BufferedWriter{format: format, n: n, prefix: prefix}
}

// WriteShot appends one shot's encoded row to the buffer.
func (w *BufferedWriter) WriteShot(globalShot int, row *bitword.BitVector) error {
	if w.format == FormatB8 {
		w.raw = append(w.raw, EncodeB8(w.n, row)...)
		return nil
	}
	line, err := EncodeText(w.format, w.n, row, w.prefix)
	if err != nil {
		return err
	}
	w.lines = append(w.lines, line)
	return nil
}

// String renders every written shot, one per line (FormatB8 panics:
// use Bytes instead, since b8 has no line structure).
func (w *BufferedWriter) String() string {
	if w.format == FormatB8 {
		panic("recio: BufferedWriter.String is not defined for FormatB8, use Bytes")
	}
	return strings.Join(w.lines, "\n") + "\n"
}

// Bytes returns the raw packed bytes for FormatB8 (each shot's bytes
// back-to-back), or the text form as bytes for any other format.
func (w *BufferedWriter) Bytes() []byte {
	if w.format == FormatB8 {
		return w.raw
	}
	return []byte(w.String())
}

// StreamWriter implements Sink by encoding each shot directly to an
// io.Writer as it arrives, so the writer itself never holds the whole
// batch in memory — the teacher's `SlimReader` "decode on the fly,
// constant footprint" shape, mirrored here for encoding instead of
// decoding. FrameSimulator's streaming mode (spec.md §4.4) writes to it
// from a result it has already built in full.
type StreamWriter struct {
	w      *bufio.Writer
	format Format
	n      int
	prefix []byte
}

// NewStreamWriter wraps dst for incremental per-shot encoding.
func NewStreamWriter(dst io.Writer, format Format, n int, prefix []byte) *StreamWriter {
	return &StreamWriter{w: bufio.NewWriter(dst), format: format, n: n, prefix: prefix}
}

// WriteShot encodes and writes one shot's row, implementing Sink.
func (w *StreamWriter) WriteShot(globalShot int, row *bitword.BitVector) error {
	if w.format == FormatB8 {
		_, err := w.w.Write(EncodeB8(w.n, row))
		return err
	}
	line, err := EncodeText(w.format, w.n, row, w.prefix)
	if err != nil {
		return err
	}
	if _, err := w.w.WriteString(line); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush flushes any buffered bytes to the underlying io.Writer.
func (w *StreamWriter) Flush() error { return w.w.Flush() }

var _ Sink = (*BufferedWriter)(nil)
var _ Sink = (*StreamWriter)(nil)

// sliceSink collects shot rows in memory, for tests and small
// programmatic consumers that want []*bitword.BitVector rather than
// an encoded byte stream.
type sliceSink struct{ rows []*bitword.BitVector }

func (s *sliceSink) WriteShot(globalShot int, row *bitword.BitVector) error {
	cloned := row.Clone()
	if globalShot < len(s.rows) {
		s.rows[globalShot] = cloned
		return nil
	}
	if globalShot != len(s.rows) {
		return xerr.New(xerr.KindInternal, "sliceSink: out-of-order shot %d, expected %d", globalShot, len(s.rows))
	}
	s.rows = append(s.rows, cloned)
	return nil
}
