package recio

import (
	"bufio"
	"io"

	"github.com/quantumsim/stabsim/bitword"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// Reader decodes every shot of a text-format sample stream up front
// into memory, mirroring the teacher's `Reader.Load` (decode-all,
// random access afterward) rather than the streaming `SlimReader`
// shape `StreamWriter` mirrors on the encode side.
type Reader struct {
	format Format
	n      int
	rows   []*bitword.BitVector
	pos    int
}

// NewReader reads every line of src as one n-bit shot in the given
// text format (FormatB8 is not supported here: use ReadB8).
func NewReader(src io.Reader, format Format, n int) (*Reader, error) {
	if format == FormatB8 {
		return nil, xerr.New(xerr.KindValidation, "NewReader does not support FormatB8, use ReadB8")
	}
	r := &Reader{format: format, n: n}
	sc := bufio.NewScanner(src)
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, 16*1024*1024)
	for sc.Scan() {
		row, err := DecodeText(format, n, sc.Text())
		if err != nil {
			return nil, err
		}
		r.rows = append(r.rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// ReadB8 reads shots from the raw packed b8 byte stream, ceil(n/8)
// bytes each, stopping when fewer than a full row remains.
func ReadB8(src io.Reader, n int) (*Reader, error) {
	r := &Reader{format: FormatB8, n: n}
	rowBytes := (n + 7) / 8
	buf := make([]byte, rowBytes)
	for {
		_, err := io.ReadFull(src, buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := DecodeB8(n, buf)
		if err != nil {
			return nil, err
		}
		r.rows = append(r.rows, row)
	}
	return r, nil
}

// Len returns the number of shots decoded.
func (r *Reader) Len() int { return len(r.rows) }

// Shot returns the i-th decoded shot's bit vector.
func (r *Reader) Shot(i int) *bitword.BitVector {
	if i < 0 || i >= len(r.rows) {
		panic("recio: shot index out of range")
	}
	return r.rows[i]
}

// Reset rewinds sequential iteration to the first shot.
func (r *Reader) Reset() { r.pos = 0 }

// Next returns the next shot in sequence, or (nil, false) when
// exhausted.
func (r *Reader) Next() (*bitword.BitVector, bool) {
	if r.pos >= len(r.rows) {
		return nil, false
	}
	row := r.rows[r.pos]
	r.pos++
	return row, true
}
