package vector

import "github.com/brimdata/coldata/coltype"

// Batch is a row group presented column-wise: the unit Append consumes and
// Scan produces. Every column's Len() must agree; Batch itself does not
// enforce that beyond Size(), which trusts column 0.
type Batch struct {
	Types   []coltype.Type
	Columns []Any
}

func NewBatch(types []coltype.Type, columns []Any) *Batch {
	return &Batch{Types: types, Columns: columns}
}

// Size returns the row count of the batch, or 0 if it has no columns.
func (b *Batch) Size() uint32 {
	if len(b.Columns) == 0 {
		return 0
	}
	return b.Columns[0].Len()
}

func (b *Batch) ColumnCount() int {
	return len(b.Columns)
}

// Reset clears the batch's columns so it can be reused as a scan output
// buffer without reallocating the Batch itself.
func (b *Batch) Reset() {
	b.Columns = b.Columns[:0]
}
