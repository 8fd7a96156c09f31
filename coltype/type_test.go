package coltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeSizeFixedWidth(t *testing.T) {
	cases := []struct {
		phys PhysicalType
		size int
	}{
		{BOOL, 1}, {INT8, 1}, {UINT8, 1},
		{INT16, 2}, {UINT16, 2},
		{INT32, 4}, {UINT32, 4}, {FLOAT, 4},
		{INT64, 8}, {UINT64, 8}, {DOUBLE, 8}, {INTERVAL, 8},
		{INT128, 16}, {LIST, 16}, {VARCHAR, 16},
	}
	for _, c := range cases {
		assert.Equal(t, c.size, c.phys.TypeSize(), c.phys.String())
	}
}

func TestTypeSizeStructPanics(t *testing.T) {
	assert.Panics(t, func() { STRUCT.TypeSize() })
}

func TestChildTypesList(t *testing.T) {
	lt := NewTypeList(Int32)
	children := ChildTypes(lt)
	require.Len(t, children, 1)
	assert.Equal(t, Int32, children[0])
}

func TestChildTypesStruct(t *testing.T) {
	st := NewTypeStruct(
		Field{Name: "a", Type: Int32},
		Field{Name: "b", Type: Varchar},
	)
	children := ChildTypes(st)
	require.Len(t, children, 2)
	assert.Equal(t, Int32, children[0])
	assert.Equal(t, Varchar, children[1])
}

func TestChildTypesPrimitiveIsNil(t *testing.T) {
	assert.Nil(t, ChildTypes(Int32))
}

func TestTypeStructString(t *testing.T) {
	st := NewTypeStruct(Field{Name: "a", Type: Int32}, Field{Name: "b", Type: Varchar})
	assert.Equal(t, "struct(a: int32, b: varchar)", st.String())
}
