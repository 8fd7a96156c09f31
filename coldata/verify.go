package coldata

import (
	"go.uber.org/zap"

	"github.com/brimdata/coldata/coltype"
)

// Verify checks the collection's structural invariants: every segment's
// chunk counts sum to that segment's own count, and every segment's count
// sums to the collection total. It is meant for debug builds and property
// tests, not the append/scan hot path -- see the design notes'
// compile-time-gate guidance, which this package honors by leaving the
// call to Verify optional rather than forcing it into every operation.
func (col *Collection) Verify() error {
	var total uint64
	for si, seg := range col.segments {
		var segTotal uint64
		for ci, chunk := range seg.chunks {
			segTotal += uint64(chunk.Count)
			if ci != len(seg.chunks)-1 && chunk.Count != seg.width {
				err := newError(InternalError, "segment %d chunk %d is not full but is not the last chunk", si, ci)
				col.log.Warn("coldata: verify failed", zap.String("segment_id", seg.ID.String()), zap.Error(err))
				return err
			}
		}
		if segTotal != seg.count {
			err := newError(InternalError, "segment %d: chunk counts sum to %d, segment.count is %d", si, segTotal, seg.count)
			col.log.Warn("coldata: verify failed", zap.String("segment_id", seg.ID.String()), zap.Error(err))
			return err
		}
		total += seg.count
	}
	if total != col.count {
		err := newError(InternalError, "segment counts sum to %d, collection.count is %d", total, col.count)
		col.log.Warn("coldata: verify failed", zap.Error(err))
		return err
	}
	return nil
}

// ResultEquals compares a and b column-by-column, row-by-row, using value
// equality that treats two NULLs as equal. The source this package is
// grounded on famously compares its "left" operand to itself here; this
// implementation compares left to right, per the corrected contract.
func ResultEquals(a, b *Collection) (bool, error) {
	if a.RowCount() != b.RowCount() {
		return false, nil
	}
	if len(a.types) != len(b.types) {
		return false, nil
	}
	for i := range a.types {
		if a.types[i].Physical() != b.types[i].Physical() {
			return false, nil
		}
	}
	aRows, err := a.GetRows()
	if err != nil {
		return false, err
	}
	bRows, err := b.GetRows()
	if err != nil {
		return false, err
	}
	for row := 0; row < aRows.Len(); row++ {
		for col := range a.types {
			left := aRows.Value(row, col)
			right := bRows.Value(row, col)
			if !coltype.ValuesEqual(left, right) {
				return false, nil
			}
		}
	}
	return true, nil
}
