package vector

import "github.com/brimdata/coldata/coltype"

// Int128 is a 128-bit signed integer, stored as a high/low pair since Go has
// no native int128. It backs the INT128 physical type.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Fixed is the vector kind for every physical type whose values are a
// uniform Go value copied element-wise: BOOL, INT8..INT64, INT128,
// UINT8..UINT64, FLOAT, DOUBLE, and INTERVAL. One generic type replaces
// what used to be a family of near-identical Int/Uint/Float/Bool vectors,
// since none of them need anything beyond storage and positional copy.
type Fixed[T any] struct {
	Typ    coltype.Type
	Values []T
	Valid  Bitmap
}

func NewFixed[T any](typ coltype.Type, values []T, valid Bitmap) *Fixed[T] {
	return &Fixed[T]{Typ: typ, Values: values, Valid: valid}
}

func (f *Fixed[T]) Type() coltype.Type { return f.Typ }
func (f *Fixed[T]) Len() uint32        { return uint32(len(f.Values)) }
func (f *Fixed[T]) validity() Bitmap   { return f.Valid }

func (f *Fixed[T]) gather(sel []uint32, valid Bitmap) Any {
	values := make([]T, len(sel))
	for i, idx := range sel {
		values[i] = f.Values[idx]
	}
	return &Fixed[T]{Typ: f.Typ, Values: values, Valid: valid}
}
