package coldata

import (
	"go.uber.org/zap"

	"github.com/brimdata/coldata/colbuf"
	"github.com/brimdata/coldata/coltype"
	"github.com/brimdata/coldata/internal/collog"
	"github.com/brimdata/coldata/vector"
)

// Collection is the root aggregate: an ordered list of Segments sharing
// one schema, one allocator, and one schema-specialized CopyFunction tree
// built once at construction. Invariant: count equals the sum of every
// segment's count; once sealed, no further appends are permitted.
type Collection struct {
	types    []coltype.Type
	width    uint32
	alloc    *colbuf.Allocator
	copyFns  []CopyFunction
	segments []*Segment
	count    uint64
	sealed   bool
	log      *zap.Logger
}

// Option configures a Collection at construction.
type Option func(*Collection)

// WithVectorWidth overrides DefaultVectorWidth. Most callers never need
// this; it exists for the chunk-boundary tests that want a small width to
// exercise rollover without appending thousands of rows.
func WithVectorWidth(width uint32) Option {
	return func(col *Collection) { col.width = width }
}

// WithLogger attaches a structured logger for segment-lifecycle and
// verify-failure events. The zero Collection logs nothing: the hot
// append/scan path never pays for logging unless a caller asks for it.
func WithLogger(log *zap.Logger) Option {
	return func(col *Collection) { col.log = log }
}

// NewCollection builds a Collection over schema types, allocating storage
// through alloc. It builds one CopyFunction per column, recursing into
// LIST/STRUCT children, so an UnsupportedType physical type is rejected
// up front rather than mid-append.
func NewCollection(types []coltype.Type, alloc *colbuf.Allocator, opts ...Option) (*Collection, error) {
	col := &Collection{types: types, alloc: alloc, width: DefaultVectorWidth, log: collog.Nop()}
	for _, opt := range opts {
		opt(col)
	}
	copyFns := make([]CopyFunction, len(types))
	for i, t := range types {
		cf, err := buildCopyFunction(t)
		if err != nil {
			return nil, err
		}
		copyFns[i] = cf
	}
	col.copyFns = copyFns
	return col, nil
}

// Types returns the collection's schema.
func (col *Collection) Types() []coltype.Type { return col.types }

// VectorWidth returns the configured maximum rows per vector/chunk.
func (col *Collection) VectorWidth() uint32 { return col.width }

// RowCount returns the total number of rows appended across every segment.
func (col *Collection) RowCount() uint64 { return col.count }

// ColumnCount returns the number of columns in the schema.
func (col *Collection) ColumnCount() int { return len(col.types) }

// ChunkCount returns the total number of chunks across every segment.
func (col *Collection) ChunkCount() int {
	var n int
	for _, seg := range col.segments {
		n += seg.chunkCount()
	}
	return n
}

// FetchChunk materializes the chunk at the given global index (counting
// chunks across every segment in order) into out.
func (col *Collection) FetchChunk(index int, out **vector.Batch) (err error) {
	defer recoverPanic(&err)
	ids := make([]int, len(col.types))
	for i := range ids {
		ids[i] = i
	}
	for _, seg := range col.segments {
		if index < seg.chunkCount() {
			batch, err := seg.ReadChunk(seg.chunks[index], col.copyFns, ids)
			if err != nil {
				return err
			}
			*out = batch
			return nil
		}
		index -= seg.chunkCount()
	}
	return newError(InvalidState, "chunk index out of range")
}

// Reset discards every segment, returning the collection to its
// just-constructed, unsealed state while keeping its schema and allocator.
func (col *Collection) Reset() {
	col.segments = nil
	col.count = 0
	col.sealed = false
}

// Combine takes exclusive ownership of other's segments, appending them to
// col and sealing other. It is single-threaded: callers must not append to
// or scan other concurrently with the call.
func (col *Collection) Combine(other *Collection) error {
	if len(other.types) != len(col.types) {
		return newError(SchemaMismatch, "combine: %d columns vs %d", len(other.types), len(col.types))
	}
	for i := range col.types {
		if other.types[i].Physical() != col.types[i].Physical() {
			return newError(SchemaMismatch, "combine: column %d: %s vs %s", i, other.types[i], col.types[i])
		}
	}
	col.segments = append(col.segments, other.segments...)
	col.count += other.count
	other.segments = nil
	other.count = 0
	other.sealed = true
	return nil
}

// Clone returns a second Collection over the same segments and allocator,
// sealing col in the process. Both collections are read-only afterward:
// this is the "copy a Collection" optimization the data model describes,
// avoiding a deep copy when the source is about to be retired anyway.
func (col *Collection) Clone() *Collection {
	col.sealed = true
	clone := &Collection{
		types:    col.types,
		width:    col.width,
		alloc:    col.alloc,
		copyFns:  col.copyFns,
		segments: col.segments,
		count:    col.count,
		sealed:   true,
		log:      col.log,
	}
	return clone
}
