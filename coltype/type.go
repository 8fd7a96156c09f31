// Package coltype is the logical type system consumed by the columnar
// append/scan engine in package coldata. It plays the same role in this
// module that the zed logical-type package plays for the rest of the
// original codebase: the engine never switches on a concrete Go type, it
// asks a Type for its PhysicalType and dispatches from there.
package coltype

import "fmt"

// PhysicalType is the closed set of physical representations the copy
// dispatcher and vector store know how to lay out. Any Type whose
// PhysicalType falls outside this set is a collaborator bug, not a runtime
// condition, and callers should treat it as an internal error.
type PhysicalType int

const (
	BOOL PhysicalType = iota
	INT8
	INT16
	INT32
	INT64
	INT128
	UINT8
	UINT16
	UINT32
	UINT64
	FLOAT
	DOUBLE
	INTERVAL
	VARCHAR
	LIST
	STRUCT
)

func (p PhysicalType) String() string {
	switch p {
	case BOOL:
		return "BOOL"
	case INT8:
		return "INT8"
	case INT16:
		return "INT16"
	case INT32:
		return "INT32"
	case INT64:
		return "INT64"
	case INT128:
		return "INT128"
	case UINT8:
		return "UINT8"
	case UINT16:
		return "UINT16"
	case UINT32:
		return "UINT32"
	case UINT64:
		return "UINT64"
	case FLOAT:
		return "FLOAT"
	case DOUBLE:
		return "DOUBLE"
	case INTERVAL:
		return "INTERVAL"
	case VARCHAR:
		return "VARCHAR"
	case LIST:
		return "LIST"
	case STRUCT:
		return "STRUCT"
	default:
		return fmt.Sprintf("PhysicalType(%d)", int(p))
	}
}

// TypeSize returns the fixed per-row byte width of a physical type as laid
// out in a vector buffer: 16 bytes for LIST, since a row is a list_entry_t
// (offset, length) pair, and it panics for STRUCT, which has no payload of
// its own in the parent vector -- only validity.
func (p PhysicalType) TypeSize() int {
	switch p {
	case BOOL, INT8, UINT8:
		return 1
	case INT16, UINT16:
		return 2
	case INT32, UINT32, FLOAT:
		return 4
	case INT64, UINT64, DOUBLE, INTERVAL:
		return 8
	case INT128:
		return 16
	case VARCHAR:
		return 16 // inlined string_t layout: length + prefix/pointer
	case LIST:
		return 16 // list_entry_t{offset, length}, both uint64
	default:
		panic("coltype: type " + p.String() + " has no fixed size")
	}
}

// Type is a logical type: it is what the copy dispatcher asks about to
// decide how to lay out and copy a column, and what the row view consults
// to materialize and compare individual values.
type Type interface {
	// Physical returns the physical representation the engine must use
	// to store values of this type.
	Physical() PhysicalType
	String() string
}

type primitiveType struct {
	phys PhysicalType
	name string
}

func (t *primitiveType) Physical() PhysicalType { return t.phys }
func (t *primitiveType) String() string         { return t.name }

var (
	Bool     Type = &primitiveType{BOOL, "bool"}
	Int8     Type = &primitiveType{INT8, "int8"}
	Int16    Type = &primitiveType{INT16, "int16"}
	Int32    Type = &primitiveType{INT32, "int32"}
	Int64    Type = &primitiveType{INT64, "int64"}
	Int128   Type = &primitiveType{INT128, "int128"}
	Uint8    Type = &primitiveType{UINT8, "uint8"}
	Uint16   Type = &primitiveType{UINT16, "uint16"}
	Uint32   Type = &primitiveType{UINT32, "uint32"}
	Uint64   Type = &primitiveType{UINT64, "uint64"}
	Float32  Type = &primitiveType{FLOAT, "float"}
	Float64  Type = &primitiveType{DOUBLE, "double"}
	Interval Type = &primitiveType{INTERVAL, "interval"}
	Varchar  Type = &primitiveType{VARCHAR, "varchar"}
)

// TypeList is a LIST<Child> logical type.
type TypeList struct {
	Child Type
}

func NewTypeList(child Type) *TypeList { return &TypeList{Child: child} }

func (t *TypeList) Physical() PhysicalType { return LIST }
func (t *TypeList) String() string         { return "list<" + t.Child.String() + ">" }

// Field is one named, typed member of a TypeStruct.
type Field struct {
	Name string
	Type Type
}

// TypeStruct is a STRUCT(field...) logical type with ordered, named fields.
type TypeStruct struct {
	Fields []Field
}

func NewTypeStruct(fields ...Field) *TypeStruct { return &TypeStruct{Fields: fields} }

func (t *TypeStruct) Physical() PhysicalType { return STRUCT }

func (t *TypeStruct) String() string {
	s := "struct("
	for i, f := range t.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + ": " + f.Type.String()
	}
	return s + ")"
}

// ChildTypes returns the ordered child types of a LIST or STRUCT type, or
// nil for anything else. The copy dispatcher in package coldata does not
// call it; it reads TypeList.Child and TypeStruct.Fields directly.
func ChildTypes(t Type) []Type {
	switch t := t.(type) {
	case *TypeList:
		return []Type{t.Child}
	case *TypeStruct:
		out := make([]Type, len(t.Fields))
		for i, f := range t.Fields {
			out[i] = f.Type
		}
		return out
	default:
		return nil
	}
}
