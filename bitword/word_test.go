package bitword

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randomWord(r *rand.Rand) Word {
	w := New()
	for i := range w {
		w[i] = r.Uint64()
	}
	return w
}

func TestWordXorSelfIsZero(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	a := randomWord(r)
	dst := New()
	dst.Xor(a, a)
	assert.True(t, dst.IsZero())
}

func TestWordAndSelfIsSelf(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	a := randomWord(r)
	dst := New()
	dst.And(a, a)
	assert.True(t, dst.Equal(a))
}

func TestWordAndNotMatchesDefinition(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	a, b := randomWord(r), randomWord(r)
	got := New()
	got.AndNot(a, b)

	want := New()
	notA := New()
	notA.Not(a)
	want.And(notA, b)
	assert.True(t, got.Equal(want))
}

func TestWordPopCount(t *testing.T) {
	w := BroadcastByte(0xFF)
	assert.Equal(t, Bits(), w.PopCount())

	z := New()
	assert.Equal(t, 0, z.PopCount())
}

func TestWordShiftLanesOverflowZeros(t *testing.T) {
	w := BroadcastU64(^uint64(0))
	got := New()
	got.ShiftLanesLeft(w, 64)
	assert.True(t, got.IsZero())
	got.ShiftLanesRight(w, 64)
	assert.True(t, got.IsZero())
}

func TestBroadcastPatternsRepeatAcrossLanes(t *testing.T) {
	b := BroadcastByte(0xAB)
	for _, lane := range b {
		for i := 0; i < 8; i++ {
			assert.Equal(t, byte(0xAB), byte(lane>>(8*i)))
		}
	}

	u32 := BroadcastU32(0x01020304)
	for _, lane := range u32 {
		assert.Equal(t, uint32(0x01020304), uint32(lane))
		assert.Equal(t, uint32(0x01020304), uint32(lane>>32))
	}
}

func TestInterleave8Tile128RoundTrips(t *testing.T) {
	if Lanes < 2 {
		t.Skip("interleave requires at least one 128-bit tile")
	}
	r := rand.New(rand.NewSource(4))
	a, b := randomWord(r), randomWord(r)
	lo, hi := Interleave8Tile128(a, b)

	// Reconstructing a/b from lo/hi byte-by-byte must recover the inputs:
	// lo holds a0,b0,a1,b1,... for the low 8 bytes of each tile, hi the
	// high 8 bytes.
	for tile := 0; tile+1 < len(a); tile += 2 {
		var abytes, bbytes [16]byte
		for i := 0; i < 2; i++ {
			putLE64(abytes[i*8:], a[tile+i])
			putLE64(bbytes[i*8:], b[tile+i])
		}
		var lobytes, hibytes [16]byte
		putLE64(lobytes[0:8], lo[tile])
		putLE64(lobytes[8:16], lo[tile+1])
		putLE64(hibytes[0:8], hi[tile])
		putLE64(hibytes[8:16], hi[tile+1])

		for i := 0; i < 8; i++ {
			assert.Equal(t, abytes[i], lobytes[2*i])
			assert.Equal(t, bbytes[i], lobytes[2*i+1])
			assert.Equal(t, abytes[i+8], hibytes[2*i])
			assert.Equal(t, bbytes[i+8], hibytes[2*i+1])
		}
	}
}
