package vector

import "github.com/brimdata/coldata/coltype"

// Const is a constant vector: every one of its Len rows is the same single
// value (or all null), represented as a length-1 backing vector so it can
// be canonicalized the same way as any other source.
type Const struct {
	Value Any // length-1 vector holding the constant
	Null  bool
	count uint32
}

func NewConst(value Any, null bool, count uint32) *Const {
	return &Const{Value: value, Null: null, count: count}
}

func (c *Const) Type() coltype.Type { return c.Value.Type() }
func (c *Const) Len() uint32        { return c.count }
