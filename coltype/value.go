package coltype

import (
	"bytes"
	"fmt"
	"math"

	"github.com/kr/text"
)

// Value is the row-wise representation the row view materializes a vector
// slot into. It exists only for equality checks and pretty printing; the
// append/scan hot path never constructs one. Two Values of BOOL/INT*/UINT*
// compare by their numeric bits, VARCHAR by bytes, LIST and STRUCT
// recursively by their Elements.
type Value struct {
	Typ      Type
	Null     bool
	Bool     bool
	Int      int64
	Uint     uint64
	Float    float64
	Bytes    []byte
	Elements []Value // LIST children or STRUCT field values, in order
}

func NullValue(t Type) Value {
	return Value{Typ: t, Null: true}
}

func (v Value) Type() Type {
	return v.Typ
}

func (v Value) IsNull() bool {
	return v.Null
}

func (v Value) String() string {
	if v.Null {
		return "null"
	}
	switch v.Typ.Physical() {
	case BOOL:
		return fmt.Sprintf("%v", v.Bool)
	case INT8, INT16, INT32, INT64, INT128, INTERVAL:
		return fmt.Sprintf("%d", v.Int)
	case UINT8, UINT16, UINT32, UINT64:
		return fmt.Sprintf("%d", v.Uint)
	case FLOAT, DOUBLE:
		return fmt.Sprintf("%v", v.Float)
	case VARCHAR:
		return string(v.Bytes)
	case LIST:
		s := "["
		for i, e := range v.Elements {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + "]"
	case STRUCT:
		s := "{"
		for i, e := range v.Elements {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + "}"
	default:
		return "<invalid>"
	}
}

// Pretty renders v the way a debugger wants it: LIST and STRUCT elements
// each get their own line, indented one level deeper than their parent.
// Unlike String, which stays flat, Pretty is only ever used for humans
// inspecting a RowCollection by hand.
func (v Value) Pretty() string {
	if v.Null {
		return "null"
	}
	switch v.Typ.Physical() {
	case LIST, STRUCT:
		open, close := "[", "]"
		if v.Typ.Physical() == STRUCT {
			open, close = "{", "}"
		}
		if len(v.Elements) == 0 {
			return open + close
		}
		var body bytes.Buffer
		for _, e := range v.Elements {
			body.WriteString(e.Pretty())
			body.WriteString("\n")
		}
		indented := text.Indent(body.String(), "  ")
		return open + "\n" + indented + close
	default:
		return v.String()
	}
}

// ValuesEqual is the canonical value-equality predicate used by the
// result-equality helper: it treats two NULLs of the same column as equal,
// which is the semantics ResultEquals needs and plain == cannot give for
// the LIST/STRUCT cases.
func ValuesEqual(a, b Value) bool {
	if a.Null != b.Null {
		return false
	}
	if a.Null {
		return true
	}
	switch a.Typ.Physical() {
	case BOOL:
		return a.Bool == b.Bool
	case INT8, INT16, INT32, INT64, INT128, INTERVAL:
		return a.Int == b.Int
	case UINT8, UINT16, UINT32, UINT64:
		return a.Uint == b.Uint
	case FLOAT, DOUBLE:
		return a.Float == b.Float || (math.IsNaN(a.Float) && math.IsNaN(b.Float))
	case VARCHAR:
		return bytes.Equal(a.Bytes, b.Bytes)
	case LIST, STRUCT:
		if len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !ValuesEqual(a.Elements[i], b.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
