package coldata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brimdata/coldata/coldata"
	"github.com/brimdata/coldata/coltype"
	"github.com/brimdata/coldata/vector"
)

// S1 -- Integers, single chunk.
func TestIntegersSingleChunk(t *testing.T) {
	col := newTestCollection([]coltype.Type{coltype.Int32})
	batch := vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column([]int32{1, 2, 3, 0, 5}, 3)})
	require.NoError(t, col.Append(batch))

	assert.EqualValues(t, 5, col.RowCount())

	batches := scanAll(col)
	require.Len(t, batches, 1)
	out := batches[0].Columns[0].(*vector.Fixed[int32])
	require.EqualValues(t, 5, out.Len())
	assert.Equal(t, []int32{1, 2, 3, 0, 5}, out.Values)
	for i := uint32(0); i < 5; i++ {
		assert.Equal(t, i != 3, out.Valid.IsValid(i), "row %d", i)
	}
}

// S2 -- Chunk rollover.
func TestChunkRollover(t *testing.T) {
	const width = 1024
	col := newTestCollection([]coltype.Type{coltype.Int64}, coldata.WithVectorWidth(width))

	values := make([]int64, 2500)
	for i := range values {
		values[i] = int64(i)
	}
	batch := vector.NewBatch([]coltype.Type{coltype.Int64}, []vector.Any{int64Column(values)})
	require.NoError(t, col.Append(batch))

	require.NoError(t, col.Verify())
	assert.EqualValues(t, 2500, col.RowCount())
	require.Equal(t, 3, col.ChunkCount())

	wantSizes := []uint32{1024, 1024, 452}
	var out []int64
	for i := 0; i < col.ChunkCount(); i++ {
		var chunk *vector.Batch
		require.NoError(t, col.FetchChunk(i, &chunk))
		assert.EqualValues(t, wantSizes[i], chunk.Size(), "chunk %d", i)
		out = append(out, chunk.Columns[0].(*vector.Fixed[int64]).Values...)
	}
	assert.Equal(t, values, out)
}

// Property 1 -- row conservation.
func TestRowConservation(t *testing.T) {
	col := newTestCollection([]coltype.Type{coltype.Int32}, coldata.WithVectorWidth(8))
	total := uint64(0)
	for _, n := range []int{3, 8, 1, 17} {
		values := make([]int32, n)
		for i := range values {
			values[i] = int32(i)
		}
		require.NoError(t, col.Append(vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column(values)})))
		total += uint64(n)
		assert.Equal(t, total, col.RowCount())
	}
	var scanned uint64
	for _, b := range scanAll(col) {
		scanned += uint64(b.Size())
	}
	assert.Equal(t, col.RowCount(), scanned)
}

// Property 2 -- order preservation.
func TestOrderPreservation(t *testing.T) {
	col := newTestCollection([]coltype.Type{coltype.Int32}, coldata.WithVectorWidth(4))
	values := []int32{9, 1, 4, 2, 7, 0, 8, 3, 6, 5}
	require.NoError(t, col.Append(vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column(values)})))

	var out []int32
	for _, b := range scanAll(col) {
		out = append(out, b.Columns[0].(*vector.Fixed[int32]).Values...)
	}
	assert.Equal(t, values, out)
}

// Property 5 -- chunk boundary correctness for k*width + r rows, r == 0.
func TestChunkBoundaryExactMultiple(t *testing.T) {
	col := newTestCollection([]coltype.Type{coltype.Int32}, coldata.WithVectorWidth(4))
	values := make([]int32, 12)
	require.NoError(t, col.Append(vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column(values)})))
	require.Equal(t, 3, col.ChunkCount())
	for i := 0; i < 3; i++ {
		var chunk *vector.Batch
		require.NoError(t, col.FetchChunk(i, &chunk))
		assert.EqualValues(t, 4, chunk.Size())
	}
}

func TestAppendAfterSealFails(t *testing.T) {
	col := newTestCollection([]coltype.Type{coltype.Int32})
	other := newTestCollection([]coltype.Type{coltype.Int32})
	require.NoError(t, other.Append(vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column([]int32{1})})))
	clone := other.Clone() // seals other
	_ = clone

	err := other.Append(vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column([]int32{2})}))
	require.Error(t, err)
	var cerr *coldata.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, coldata.InvalidState, cerr.Kind)
	_ = col
}

func TestAppendSchemaMismatch(t *testing.T) {
	col := newTestCollection([]coltype.Type{coltype.Int32, coltype.Varchar})
	err := col.Append(vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column([]int32{1})}))
	require.Error(t, err)
	var cerr *coldata.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, coldata.SchemaMismatch, cerr.Kind)
}

func TestResetReturnsToUnsealedEmptyState(t *testing.T) {
	col := newTestCollection([]coltype.Type{coltype.Int32})
	require.NoError(t, col.Append(vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column([]int32{1, 2, 3})})))
	col.Reset()
	assert.EqualValues(t, 0, col.RowCount())
	assert.Equal(t, 0, col.ChunkCount())
	require.NoError(t, col.Append(vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column([]int32{4})})))
	assert.EqualValues(t, 1, col.RowCount())
}

// Property 7 -- combine associativity.
func TestCombineAssociativity(t *testing.T) {
	build := func(vals ...int32) *coldata.Collection {
		c := newTestCollection([]coltype.Type{coltype.Int32}, coldata.WithVectorWidth(4))
		require.NoError(t, c.Append(vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column(vals)})))
		return c
	}
	flatten := func(c *coldata.Collection) []int32 {
		var out []int32
		for _, b := range scanAll(c) {
			out = append(out, b.Columns[0].(*vector.Fixed[int32]).Values...)
		}
		return out
	}

	a1, b1, c1 := build(1, 2), build(3, 4, 5), build(6)
	require.NoError(t, a1.Combine(b1))
	require.NoError(t, a1.Combine(c1))
	left := flatten(a1)

	a2, b2, c2 := build(1, 2), build(3, 4, 5), build(6)
	require.NoError(t, b2.Combine(c2))
	require.NoError(t, a2.Combine(b2))
	right := flatten(a2)

	assert.Equal(t, left, right)
}

func TestCombineSchemaMismatch(t *testing.T) {
	a := newTestCollection([]coltype.Type{coltype.Int32})
	b := newTestCollection([]coltype.Type{coltype.Varchar})
	err := a.Combine(b)
	require.Error(t, err)
	var cerr *coldata.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, coldata.SchemaMismatch, cerr.Kind)
}

// Property 8 -- idempotent initialize.
func TestIdempotentInitializeScan(t *testing.T) {
	col := newTestCollection([]coltype.Type{coltype.Int32}, coldata.WithVectorWidth(4))
	require.NoError(t, col.Append(vector.NewBatch([]coltype.Type{coltype.Int32}, []vector.Any{int32Column([]int32{1, 2, 3, 4, 5, 6})})))

	first := scanAll(col)
	second := scanAll(col)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Columns[0].(*vector.Fixed[int32]).Values, second[i].Columns[0].(*vector.Fixed[int32]).Values)
	}
}
