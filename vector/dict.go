package vector

import "github.com/brimdata/coldata/coltype"

// Dict is a dictionary-encoded vector: Index[i] names the slot in Values
// that row i takes its value from, and Valid carries per-row nullability
// independent of the dictionary (a null row's Index entry is unused).
type Dict struct {
	Values Any
	Index  []uint32
	Valid  Bitmap
}

func NewDict(values Any, index []uint32, valid Bitmap) *Dict {
	return &Dict{Values: values, Index: index, Valid: valid}
}

func (d *Dict) Type() coltype.Type { return d.Values.Type() }
func (d *Dict) Len() uint32        { return uint32(len(d.Index)) }
