package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupResolvesAliases(t *testing.T) {
	r, ok := Lookup("cnot")
	assert.True(t, ok)
	assert.Equal(t, CX, r.ID)

	r, ok = Lookup("H_XZ")
	assert.True(t, ok)
	assert.Equal(t, H, r.ID)

	_, ok = Lookup("NOT_A_GATE")
	assert.False(t, ok)
}

func TestEveryIDHasARecord(t *testing.T) {
	for id := Invalid + 1; int(id) < NumIDs; id++ {
		r := ByID(id)
		assert.NotNil(t, r)
		assert.Equal(t, id, r.ID)
	}
}

func TestCategoryFlags(t *testing.T) {
	r, _ := Lookup("M")
	assert.True(t, r.Category.Has(CatMeasurement))
	assert.True(t, r.Category.Has(CatProducesResults))
	assert.False(t, r.Category.Has(CatResets))

	r, _ = Lookup("MR")
	assert.True(t, r.Category.Has(CatResets))

	r, _ = Lookup("REPEAT")
	assert.True(t, r.Category.Has(CatIsBlock))
	assert.True(t, r.Category.Has(CatNotFusable))
}

func TestByIDRejectsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { ByID(Invalid) })
	assert.Panics(t, func() { ByID(ID(NumIDs)) })
}
