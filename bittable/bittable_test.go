package bittable

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randomTable(r *rand.Rand, major, minor int) *BitTable {
	t := New(major, minor)
	for row := 0; row < major; row++ {
		for col := 0; col < minor; col++ {
			t.Set(row, col, r.Intn(2) == 1)
		}
	}
	return t
}

func TestTransposeSquareIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for _, n := range []int{1, 7, 64, 65, 128, 200} {
		tbl := randomTable(r, n, n)
		once := tbl.Transpose()
		twice := once.Transpose()
		assert.True(t, tbl.Equal(twice), "size %d", n)
	}
}

func TestTransposeRectangular(t *testing.T) {
	r := rand.New(rand.NewSource(12))
	for _, dims := range [][2]int{{3, 5}, {64, 1}, {1, 64}, {70, 130}, {129, 5}} {
		tbl := randomTable(r, dims[0], dims[1])
		tr := tbl.Transpose()
		assert.Equal(t, dims[1], tr.Major())
		assert.Equal(t, dims[0], tr.Minor())
		for row := 0; row < dims[0]; row++ {
			for col := 0; col < dims[1]; col++ {
				assert.Equal(t, tbl.Get(row, col), tr.Get(col, row))
			}
		}
		back := tr.Transpose()
		assert.True(t, tbl.Equal(back))
	}
}

func TestTransposeInPlaceMatchesOutOfPlace(t *testing.T) {
	for _, n := range []int{1, 63, 64, 65, 191, 256} {
		tbl := randomTable(rand.New(rand.NewSource(13)), n, n)
		want := tbl.Transpose()

		inplace := randomTable(rand.New(rand.NewSource(13)), n, n) // same seed => same data
		inplace.TransposeInPlace()

		assert.True(t, want.Equal(inplace), "size %d", n)
	}
}

func TestTransposeInPlaceRejectsNonSquare(t *testing.T) {
	tbl := New(4, 8)
	assert.Panics(t, func() { tbl.TransposeInPlace() })
}

func TestRowViewAliasesTable(t *testing.T) {
	tbl := New(10, 200)
	row := tbl.Row(3)
	row.At(150).Set(true)
	assert.True(t, tbl.Get(3, 150))

	tbl.Set(3, 7, true)
	assert.True(t, row.At(7).Get())
}

func TestBitTablePaddingStaysZero(t *testing.T) {
	tbl := New(5, 5)
	tbl.Set(0, 0, true)
	tr := tbl.Transpose()
	assert.Equal(t, 1, tr.Row(0).PopCount())
	back := tr.Transpose()
	assert.True(t, tbl.Equal(back))
	assert.Equal(t, 1, back.Row(0).PopCount())
	assert.Equal(t, 5, back.Major())
	assert.Equal(t, 5, back.Minor())
}
