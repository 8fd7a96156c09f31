package coldata_test

import (
	"github.com/brimdata/coldata/coldata"
	"github.com/brimdata/coldata/colbuf"
	"github.com/brimdata/coldata/coltype"
	"github.com/brimdata/coldata/vector"
)

// newTestCollection builds a Collection over a fresh in-memory allocator,
// the shape every test in this package starts from.
func newTestCollection(types []coltype.Type, opts ...coldata.Option) *coldata.Collection {
	alloc := colbuf.NewAllocator(colbuf.NewRawHeapManager(0), nil)
	col, err := coldata.NewCollection(types, alloc, opts...)
	if err != nil {
		panic(err)
	}
	return col
}

// int32Column builds a Fixed[int32] vector.Any with nulls at the given
// positions.
func int32Column(values []int32, nullAt ...int) vector.Any {
	valid := vector.NewBitmap(uint32(len(values)))
	for _, i := range nullAt {
		valid.SetInvalid(uint32(i))
	}
	return vector.NewFixed[int32](coltype.Int32, values, valid)
}

func int64Column(values []int64, nullAt ...int) vector.Any {
	valid := vector.NewBitmap(uint32(len(values)))
	for _, i := range nullAt {
		valid.SetInvalid(uint32(i))
	}
	return vector.NewFixed[int64](coltype.Int64, values, valid)
}

func varcharColumn(values []string, nullAt ...int) vector.Any {
	isNull := make(map[int]bool, len(nullAt))
	for _, i := range nullAt {
		isNull[i] = true
	}
	var data []byte
	offsets := make([]uint32, 0, len(values)+1)
	offsets = append(offsets, 0)
	valid := vector.NewBitmap(uint32(len(values)))
	for i, v := range values {
		if isNull[i] {
			valid.SetInvalid(uint32(i))
		} else {
			data = append(data, v...)
		}
		offsets = append(offsets, uint32(len(data)))
	}
	return vector.NewVarchar(coltype.Varchar, offsets, data, valid)
}

// listInt32Column builds a LIST<INT32> vector.Any where rows is a slice of
// element slices; a nil element slice at index i, when i is also listed in
// nullAt, becomes a null row instead of an empty list.
func listInt32Column(rows [][]int32, nullAt ...int) vector.Any {
	isNull := make(map[int]bool, len(nullAt))
	for _, i := range nullAt {
		isNull[i] = true
	}
	var allValues []int32
	offset := make([]uint32, len(rows))
	length := make([]uint32, len(rows))
	valid := vector.NewBitmap(uint32(len(rows)))
	for i, row := range rows {
		offset[i] = uint32(len(allValues))
		if isNull[i] {
			valid.SetInvalid(uint32(i))
			continue
		}
		length[i] = uint32(len(row))
		allValues = append(allValues, row...)
	}
	values := int32Column(allValues)
	return vector.NewList(coltype.NewTypeList(coltype.Int32), offset, length, values, valid)
}

// scanAll drains col sequentially and returns every scanned batch, one per
// chunk, in scan order.
func scanAll(col *coldata.Collection) []*vector.Batch {
	var state coldata.ScanState
	col.InitializeScan(&state, coldata.ScanProperties{})
	defer state.Close()
	var batches []*vector.Batch
	for {
		var batch *vector.Batch
		ok, err := col.Scan(&state, &batch)
		if err != nil {
			panic(err)
		}
		if !ok {
			break
		}
		batches = append(batches, batch)
	}
	return batches
}
