package vector

import "github.com/brimdata/coldata/coltype"

// Varchar is the flat vector kind for VARCHAR: an offsets/bytes pair like
// the original String/Bytes vectors, merged into one since the engine does
// not distinguish text from binary once it is inside a batch -- only the
// logical Type on the column does, and that stays with the caller.
type Varchar struct {
	Typ     coltype.Type
	Offsets []uint32 // len(Offsets) == Len()+1
	Data    []byte
	Valid   Bitmap
}

func NewVarchar(typ coltype.Type, offsets []uint32, data []byte, valid Bitmap) *Varchar {
	return &Varchar{Typ: typ, Offsets: offsets, Data: data, Valid: valid}
}

func (v *Varchar) Type() coltype.Type { return v.Typ }
func (v *Varchar) Len() uint32        { return uint32(len(v.Offsets) - 1) }
func (v *Varchar) validity() Bitmap   { return v.Valid }

func (v *Varchar) Value(slot uint32) []byte {
	return v.Data[v.Offsets[slot]:v.Offsets[slot+1]]
}

func (v *Varchar) gather(sel []uint32, valid Bitmap) Any {
	offsets := make([]uint32, len(sel)+1)
	var data []byte
	for i, idx := range sel {
		data = append(data, v.Value(idx)...)
		offsets[i+1] = uint32(len(data))
	}
	return &Varchar{Typ: v.Typ, Offsets: offsets, Data: data, Valid: valid}
}
