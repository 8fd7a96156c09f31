package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brimdata/coldata/coltype"
)

func newVarchar(values []string, nullAt map[int]bool) *Varchar {
	var data []byte
	offsets := []uint32{0}
	valid := NewBitmap(uint32(len(values)))
	for i, v := range values {
		if nullAt[i] {
			valid.SetInvalid(uint32(i))
		} else {
			data = append(data, v...)
		}
		offsets = append(offsets, uint32(len(data)))
	}
	return NewVarchar(coltype.Varchar, offsets, data, valid)
}

func TestVarcharValue(t *testing.T) {
	v := newVarchar([]string{"", "short", "longer string"}, nil)
	assert.Equal(t, "", string(v.Value(0)))
	assert.Equal(t, "short", string(v.Value(1)))
	assert.Equal(t, "longer string", string(v.Value(2)))
	assert.Equal(t, uint32(3), v.Len())
}

func TestVarcharGatherRespectsSelection(t *testing.T) {
	v := newVarchar([]string{"a", "b", "c"}, nil)
	gathered := v.gather([]uint32{2, 0}, NewBitmap(2)).(*Varchar)
	assert.Equal(t, "c", string(gathered.Value(0)))
	assert.Equal(t, "a", string(gathered.Value(1)))
}
