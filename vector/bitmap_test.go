package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmapAllValidByDefault(t *testing.T) {
	b := NewBitmap(10)
	assert.True(t, b.AllValid())
	for i := uint32(0); i < 10; i++ {
		assert.True(t, b.IsValid(i))
	}
}

func TestBitmapSetInvalid(t *testing.T) {
	b := NewBitmap(70) // spans more than one uint64 word
	b.SetInvalid(0)
	b.SetInvalid(63)
	b.SetInvalid(64)
	b.SetInvalid(69)
	assert.False(t, b.AllValid())
	for _, i := range []uint32{0, 63, 64, 69} {
		assert.False(t, b.IsValid(i), "row %d", i)
	}
	for _, i := range []uint32{1, 2, 62, 65, 68} {
		assert.True(t, b.IsValid(i), "row %d", i)
	}
}

func TestBitmapSetValidUndoesSetInvalid(t *testing.T) {
	b := NewBitmap(4)
	b.SetInvalid(1)
	b.SetValid(1)
	assert.True(t, b.IsValid(1))
}

func TestBitmapGrowPreservesBitsAndDefaultsNewRowsValid(t *testing.T) {
	b := NewBitmap(4)
	b.SetInvalid(2)
	b.Grow(8)
	assert.Equal(t, uint32(8), b.Len())
	assert.False(t, b.IsValid(2))
	for _, i := range []uint32{0, 1, 3, 4, 5, 6, 7} {
		assert.True(t, b.IsValid(i))
	}
}

func TestBitmapGatherResolvesSelection(t *testing.T) {
	b := NewBitmap(5)
	b.SetInvalid(3)
	out := b.Gather([]uint32{4, 3, 0})
	assert.True(t, out.IsValid(0))
	assert.False(t, out.IsValid(1))
	assert.True(t, out.IsValid(2))
}

func TestBitmapGatherAllValidShortCircuits(t *testing.T) {
	b := NewBitmap(5)
	out := b.Gather([]uint32{4, 3, 0})
	assert.True(t, out.AllValid())
}
