package vector

import "github.com/brimdata/coldata/coltype"

// List is the flat vector kind for LIST<T>: per-row (offset, length) pairs
// into a single child vector holding every element of every row, matching
// the original Array vector's Offsets/Values shape.
type List struct {
	Typ    *coltype.TypeList
	Offset []uint32
	Length []uint32
	Values Any
	Valid  Bitmap
}

func NewList(typ *coltype.TypeList, offset, length []uint32, values Any, valid Bitmap) *List {
	return &List{Typ: typ, Offset: offset, Length: length, Values: values, Valid: valid}
}

func (l *List) Type() coltype.Type { return l.Typ }
func (l *List) Len() uint32        { return uint32(len(l.Offset)) }
func (l *List) validity() Bitmap   { return l.Valid }

func (l *List) gather(sel []uint32, valid Bitmap) Any {
	offset := make([]uint32, len(sel))
	length := make([]uint32, len(sel))
	var childSel []uint32
	var pos uint32
	for i, idx := range sel {
		offset[i] = pos
		length[i] = l.Length[idx]
		for j := uint32(0); j < l.Length[idx]; j++ {
			childSel = append(childSel, l.Offset[idx]+j)
		}
		pos += l.Length[idx]
	}
	values := l.Values.(gatherable).gather(childSel, Validity(l.Values).Gather(childSel))
	return &List{Typ: l.Typ, Offset: offset, Length: length, Values: values, Valid: valid}
}
