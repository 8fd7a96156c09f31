package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brimdata/coldata/coltype"
)

func TestStructGatherAppliesSelectionToEveryField(t *testing.T) {
	typ := coltype.NewTypeStruct(
		coltype.Field{Name: "n", Type: coltype.Int32},
		coltype.Field{Name: "s", Type: coltype.Varchar},
	)
	ints := &Fixed[int32]{Typ: coltype.Int32, Values: []int32{1, 2, 3}, Valid: NewBitmap(3)}
	strs := newVarchar([]string{"a", "b", "c"}, nil)
	st := NewStruct(typ, []Any{ints, strs}, 3, NewBitmap(3))

	gathered := st.gather([]uint32{2, 0}, NewBitmap(2)).(*Struct)
	require.Equal(t, uint32(2), gathered.Len())
	gInts := gathered.Fields[0].(*Fixed[int32])
	gStrs := gathered.Fields[1].(*Varchar)
	assert.Equal(t, []int32{3, 1}, gInts.Values)
	assert.Equal(t, "c", string(gStrs.Value(0)))
	assert.Equal(t, "a", string(gStrs.Value(1)))
}
