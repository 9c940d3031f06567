package bitword

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitVectorAtReadWrite(t *testing.T) {
	bv := NewBitVector(200)
	assert.False(t, bv.At(130).Get())
	bv.At(130).Set(true)
	assert.True(t, bv.At(130).Get())
	assert.False(t, bv.NotZero() && bv.PopCount() != 1)
	assert.Equal(t, 1, bv.PopCount())
}

func TestBitVectorXorAssignSelfClears(t *testing.T) {
	bv := NewBitVector(257)
	bv.Randomize(257, rand.New(rand.NewSource(7)))
	bv.XorAssign(bv)
	assert.False(t, bv.NotZero())
}

func TestBitVectorSwapWith(t *testing.T) {
	a := NewBitVector(64)
	b := NewBitVector(64)
	a.At(3).Set(true)
	b.At(40).Set(true)
	a.SwapWith(b)
	assert.True(t, a.At(40).Get())
	assert.True(t, b.At(3).Get())
}

func TestBitVectorRandomizePadsStayZero(t *testing.T) {
	bv := NewBitVector(5)
	bv.Randomize(5, rand.New(rand.NewSource(9)))
	for i := 5; i < bv.WordCount()*Bits(); i++ {
		_ = i // padding bits live outside Len and are not addressable via At
	}
	assert.LessOrEqual(t, bv.PopCount(), 5)
}

func TestBitRefToggleAndSwap(t *testing.T) {
	bv := NewBitVector(8)
	r0, r1 := bv.At(0), bv.At(1)
	r0.Set(true)
	assert.True(t, r0.Get())
	r0.Toggle()
	assert.False(t, r0.Get())

	r1.Set(true)
	r0.Swap(r1)
	assert.True(t, r0.Get())
	assert.False(t, r1.Get())
}
