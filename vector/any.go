// Package vector is the per-column, in-batch representation consumed and
// produced by the columnar append/scan engine in package coldata. It plays
// the role the spec calls "Input batch" and "Output batch": per-column
// uniform access as a (data, selection, validity) triple, with Const and
// Dict standing in for constant and dictionary-encoded sources and View
// standing in for an arbitrary selection vector.
package vector

import "github.com/brimdata/coldata/coltype"

// Any is implemented by every vector kind, flat or encoded.
type Any interface {
	Type() coltype.Type
	Len() uint32
}

// UnifiedFormat is the canonicalized view of a source vector: a flat vector
// reachable by indexing through Sel (nil Sel means identity, i.e. row i of
// the unified view is row i of Flat), plus a validity mask already resolved
// to the unified row numbering. It decouples every copy routine from
// whether the caller's vector was flat, constant, dictionary-encoded, or a
// view over another vector.
type UnifiedFormat struct {
	Flat  Any
	Sel   []uint32 // nil means Sel[i] == i
	Valid Bitmap
}

// Index returns the row in Flat that unified row i refers to.
func (u UnifiedFormat) Index(i uint32) uint32 {
	if u.Sel == nil {
		return i
	}
	return u.Sel[i]
}

// ToUnifiedFormat canonicalizes v into a UnifiedFormat covering its full
// length. Complex (LIST/STRUCT) vectors must already be flat -- callers
// force them flat before calling this, since nested copy needs direct
// child access and cannot operate through a selection vector.
func ToUnifiedFormat(v Any) UnifiedFormat {
	switch v := v.(type) {
	case *Const:
		sel := make([]uint32, v.Len())
		valid := NewBitmap(v.Len())
		if v.Null {
			for i := range sel {
				valid.SetInvalid(uint32(i))
			}
		}
		return UnifiedFormat{Flat: v.Value, Sel: sel, Valid: valid}
	case *Dict:
		inner := ToUnifiedFormat(v.Values)
		sel := make([]uint32, len(v.Index))
		for i, tag := range v.Index {
			sel[i] = inner.Index(uint32(tag))
		}
		valid := NewBitmap(uint32(len(v.Index)))
		for i, tag := range v.Index {
			if !v.Valid.IsValid(uint32(i)) || !inner.Valid.IsValid(uint32(tag)) {
				valid.SetInvalid(uint32(i))
			}
		}
		return UnifiedFormat{Flat: inner.Flat, Sel: sel, Valid: valid}
	case *View:
		inner := ToUnifiedFormat(v.Base)
		sel := make([]uint32, len(v.Index))
		for i, idx := range v.Index {
			sel[i] = inner.Index(idx)
		}
		return UnifiedFormat{Flat: inner.Flat, Sel: sel, Valid: inner.Valid.Gather(v.Index)}
	default:
		return UnifiedFormat{Flat: v, Sel: nil, Valid: Validity(v)}
	}
}

// Validity returns the validity bitmap of a flat vector kind. It panics for
// Const/Dict/View, which must be resolved with ToUnifiedFormat first.
func Validity(v Any) Bitmap {
	switch v := v.(type) {
	case validityHolder:
		return v.validity()
	default:
		panic("vector: Validity called on non-flat vector")
	}
}

type validityHolder interface {
	validity() Bitmap
}

// IsComplex reports whether a type's vector needs to be forced flat before
// it can be copied, because nested copy requires direct child access.
func IsComplex(t coltype.Type) bool {
	switch t.Physical() {
	case coltype.LIST, coltype.STRUCT:
		return true
	default:
		return false
	}
}

// gatherable is implemented by every flat vector kind so Flatten can
// materialize a selection/validity pair into a fresh, self-contained
// vector without a type switch over every possible element type.
type gatherable interface {
	gather(sel []uint32, valid Bitmap) Any
}

// Flatten forces v into one of the flat kinds (Fixed, Varchar, List,
// Struct), materializing any Const/Dict/View wrapper. Complex columns must
// be flattened before Append can dispatch child copies directly.
func Flatten(v Any) Any {
	u := ToUnifiedFormat(v)
	if u.Sel == nil {
		return u.Flat
	}
	return u.Flat.(gatherable).gather(u.Sel, u.Valid)
}
