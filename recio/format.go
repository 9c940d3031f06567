// Package recio implements the five measurement sample formats spec.md
// §6 defines (01, b8, hits, dets, r8) plus MeasurementRecord (C6), the
// batched shots x num_measurements table with a streaming emission
// cursor. All five formats are round-trip equivalent for a given
// sample length n.
package recio

import (
	"strconv"
	"strings"

	"github.com/mhr3/streamvbyte"
	"github.com/quantumsim/stabsim/bitword"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// Format identifies one of the five measurement sample encodings.
type Format int

const (
	Format01 Format = iota
	FormatB8
	FormatHits
	FormatDets
	FormatR8
)

// EncodeText renders one shot's n-bit outcome vector in the given text
// format (01, hits, dets, or r8; use EncodeB8 for the binary format).
// prefix supplies the per-bit token letter for FormatDets (pass nil to
// default every bit to 'M', the measurement-record token); other
// formats ignore it.
func EncodeText(format Format, n int, bits *bitword.BitVector, prefix []byte) (string, error) {
	switch format {
	case Format01:
		return encode01(n, bits), nil
	case FormatHits:
		return encodeHitsText(n, bits), nil
	case FormatDets:
		return encodeDets(n, bits, prefix), nil
	case FormatR8:
		return encodeR8(n, bits), nil
	default:
		return "", xerr.New(xerr.KindValidation, "format %d has no text encoding", format)
	}
}

// DecodeText parses one shot's text-format sample into a freshly
// allocated n-bit BitVector.
func DecodeText(format Format, n int, s string) (*bitword.BitVector, error) {
	switch format {
	case Format01:
		return decode01(n, s)
	case FormatHits:
		return decodeHitsText(n, s)
	case FormatDets:
		return decodeDets(n, s)
	case FormatR8:
		return decodeR8(n, s)
	default:
		return nil, xerr.New(xerr.KindValidation, "format %d has no text decoding", format)
	}
}

func newVector(n int) *bitword.BitVector { return bitword.NewBitVector(n) }

func encode01(n int, bits *bitword.BitVector) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		if bits.At(i).Get() {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func decode01(n int, s string) (*bitword.BitVector, error) {
	if len(s) != n {
		return nil, xerr.New(xerr.KindParse, "01 sample: expected %d chars, got %d", n, len(s))
	}
	v := newVector(n)
	for i := 0; i < n; i++ {
		switch s[i] {
		case '1':
			v.At(i).Set(true)
		case '0':
		default:
			return nil, xerr.New(xerr.KindParse, "01 sample: invalid char %q at %d", s[i], i)
		}
	}
	return v, nil
}

// EncodeB8 packs one shot's n-bit outcome into raw little-endian bytes,
// ceil(n/8) of them, matching spec.md §6's b8 format.
func EncodeB8(n int, bits *bitword.BitVector) []byte {
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if bits.At(i).Get() {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// DecodeB8 unpacks a b8-format byte slice into an n-bit BitVector.
func DecodeB8(n int, buf []byte) (*bitword.BitVector, error) {
	need := (n + 7) / 8
	if len(buf) < need {
		return nil, xerr.New(xerr.KindParse, "b8 sample: need %d bytes, got %d", need, len(buf))
	}
	v := newVector(n)
	for i := 0; i < n; i++ {
		if buf[i/8]&(1<<uint(i%8)) != 0 {
			v.At(i).Set(true)
		}
	}
	return v, nil
}

func hitIndices(n int, bits *bitword.BitVector) []int {
	var idx []int
	for i := 0; i < n; i++ {
		if bits.At(i).Get() {
			idx = append(idx, i)
		}
	}
	return idx
}

func encodeHitsText(n int, bits *bitword.BitVector) string {
	idx := hitIndices(n, bits)
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func decodeHitsText(n int, s string) (*bitword.BitVector, error) {
	v := newVector(n)
	if s == "" {
		return v, nil
	}
	for _, tok := range strings.Split(s, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || i < 0 || i >= n {
			return nil, xerr.New(xerr.KindParse, "hits sample: invalid index %q", tok)
		}
		v.At(i).Set(true)
	}
	return v, nil
}

// EncodeHitsBinary packs a shot's set-bit indices as a StreamVByte
// stream of ascending deltas, the compact wire form backing the
// `hits` format for bulk transport (text hits is the spec.md §6
// human-readable rendering of the same index set).
func EncodeHitsBinary(n int, bits *bitword.BitVector) []byte {
	idx := hitIndices(n, bits)
	deltas := make([]uint32, len(idx))
	prev := 0
	for i, v := range idx {
		deltas[i] = uint32(v - prev)
		prev = v
	}
	return streamvbyte.EncodeUint32(deltas, nil)
}

// DecodeHitsBinary reverses EncodeHitsBinary given the shot length n
// and the number of set bits the stream carries.
func DecodeHitsBinary(n, numHits int, encoded []byte) (*bitword.BitVector, error) {
	if numHits == 0 {
		return newVector(n), nil
	}
	deltas := streamvbyte.DecodeUint32(encoded, numHits, nil)
	v := newVector(n)
	cur := 0
	for _, d := range deltas {
		cur += int(d)
		if cur < 0 || cur >= n {
			return nil, xerr.New(xerr.KindParse, "hits binary sample: index %d out of range", cur)
		}
		v.At(cur).Set(true)
	}
	return v, nil
}

func encodeDets(n int, bits *bitword.BitVector, prefix []byte) string {
	var parts []string
	for i := 0; i < n; i++ {
		if !bits.At(i).Get() {
			continue
		}
		p := byte('M')
		if prefix != nil && i < len(prefix) {
			p = prefix[i]
		}
		parts = append(parts, string(p)+strconv.Itoa(i))
	}
	return strings.Join(parts, " ")
}

func decodeDets(n int, s string) (*bitword.BitVector, error) {
	v := newVector(n)
	if strings.TrimSpace(s) == "" {
		return v, nil
	}
	for _, tok := range strings.Fields(s) {
		if len(tok) < 2 {
			return nil, xerr.New(xerr.KindParse, "dets sample: invalid token %q", tok)
		}
		i, err := strconv.Atoi(tok[1:])
		if err != nil || i < 0 || i >= n {
			return nil, xerr.New(xerr.KindParse, "dets sample: invalid token %q", tok)
		}
		v.At(i).Set(true)
	}
	return v, nil
}

// encodeR8 renders the zero-run lengths between successive set bits:
// the gap before the first 1, then the gap between each pair of
// consecutive 1s. The trailing zero run after the last 1 is not
// stored (n, supplied separately at decode, recovers it).
func encodeR8(n int, bits *bitword.BitVector) string {
	idx := hitIndices(n, bits)
	parts := make([]string, len(idx))
	prev := -1
	for i, v := range idx {
		parts[i] = strconv.Itoa(v - prev - 1)
		prev = v
	}
	return strings.Join(parts, ",")
}

func decodeR8(n int, s string) (*bitword.BitVector, error) {
	v := newVector(n)
	s = strings.TrimSpace(s)
	if s == "" {
		return v, nil
	}
	pos := -1
	for _, tok := range strings.Split(s, ",") {
		gap, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || gap < 0 {
			return nil, xerr.New(xerr.KindParse, "r8 sample: invalid run length %q", tok)
		}
		pos += gap + 1
		if pos < 0 || pos >= n {
			return nil, xerr.New(xerr.KindParse, "r8 sample: index %d out of range", pos)
		}
		v.At(pos).Set(true)
	}
	return v, nil
}
