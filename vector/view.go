package vector

import "github.com/brimdata/coldata/coltype"

// View is a selection vector over Base: row i of the view is row Index[i]
// of Base. It is the general case ToUnifiedFormat resolves everything down
// to; Const and Dict are more specific encodings handled separately.
type View struct {
	Base  Any
	Index []uint32
}

func NewView(base Any, index []uint32) *View {
	return &View{Base: base, Index: index}
}

func (v *View) Type() coltype.Type { return v.Base.Type() }
func (v *View) Len() uint32        { return uint32(len(v.Index)) }
