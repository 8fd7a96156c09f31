package vector

import "github.com/brimdata/coldata/coltype"

// Struct is the flat vector kind for STRUCT(field...): one child vector per
// field, all sharing the parent's row numbering, matching the original
// Record vector's Fields/length shape. The struct itself carries no payload
// beyond validity -- its "value" at a row is just whatever its fields hold.
type Struct struct {
	Typ    *coltype.TypeStruct
	Fields []Any
	length uint32
	Valid  Bitmap
}

func NewStruct(typ *coltype.TypeStruct, fields []Any, length uint32, valid Bitmap) *Struct {
	return &Struct{Typ: typ, Fields: fields, length: length, Valid: valid}
}

func (s *Struct) Type() coltype.Type { return s.Typ }
func (s *Struct) Len() uint32        { return s.length }
func (s *Struct) validity() Bitmap   { return s.Valid }

func (s *Struct) gather(sel []uint32, valid Bitmap) Any {
	fields := make([]Any, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = f.(gatherable).gather(sel, Validity(f).Gather(sel))
	}
	return &Struct{Typ: s.Typ, Fields: fields, length: uint32(len(sel)), Valid: valid}
}
