package coldata

import (
	"github.com/segmentio/ksuid"

	"github.com/brimdata/coldata/colbuf"
	"github.com/brimdata/coldata/coltype"
	"github.com/brimdata/coldata/vector"
)

// VectorMetadata describes one physical buffer holding up to the
// segment's vector width rows of one column's values (component C).
// NextData links to a continuation vector within the same column chain
// (used when a list's child vector overflows the width); ChildIndex and
// ChildFields link to nested element/field chains for LIST and STRUCT
// respectively. Storage is the concrete write buffer -- a *fixedStorage[T],
// *stringStorage, *listStorage, or nil for STRUCT, which carries only
// validity.
type VectorMetadata struct {
	Block       colbuf.BlockID
	Count       uint32
	NextData    VectorDataIndex
	ChildIndex  VectorDataIndex
	ChildFields []VectorDataIndex
	Valid       vector.Bitmap
	Storage     any
}

// ChunkMetaData holds one head VectorDataIndex per top-level column, plus
// the row count materialized in this chunk (component D).
type ChunkMetaData struct {
	Columns []VectorDataIndex
	Count   uint32
}

// Segment is an ordered list of chunks plus a string heap, with its own
// arena-indexed vector-metadata store. It is the unit Combine moves
// wholesale between collections. ID is a stable, log-friendly identifier
// with no bearing on any operation's result -- purely so a Verify failure
// or a debug log line can name which segment is at fault.
type Segment struct {
	ID     ksuid.KSUID
	types  []coltype.Type
	width  uint32
	alloc  *colbuf.Allocator
	heap   *StringHeap
	arena  []*VectorMetadata
	chunks []*ChunkMetaData
	count  uint64
}

func newSegment(types []coltype.Type, width uint32, alloc *colbuf.Allocator) *Segment {
	return &Segment{
		ID:    ksuid.New(),
		types: types,
		width: width,
		alloc: alloc,
		heap:  newStringHeap(alloc),
	}
}

// vec returns the VectorMetadata at idx. It is a stable pointer: arena
// holds *VectorMetadata, not VectorMetadata, specifically so that growing
// arena (another allocateVector call happening while a caller still holds
// a pointer returned from an earlier vec call, as the list copy variant
// does for its parent vector while allocating the child backbone) moves
// only the pointers, never the pointed-to structs.
func (seg *Segment) vec(idx VectorDataIndex) *VectorMetadata {
	return seg.arena[idx]
}

// vectorBufferSize computes the byte size a vector's backing block should
// reserve: VECTOR_WIDTH * typesize + bitmap_bytes, per the vector-store
// contract. STRUCT has no payload of its own, just validity.
func vectorBufferSize(phys coltype.PhysicalType, width uint32) int {
	bitmapBytes := int((width + 7) / 8)
	if phys == coltype.STRUCT {
		return bitmapBytes
	}
	return int(width)*phys.TypeSize() + bitmapBytes
}

// allocateVector reserves a new VectorMetadata for cf's column, linking it
// from prev.NextData when prev is valid, and recursively allocating field
// vectors for STRUCT. A LIST's child chain is not allocated here; the list
// copy function allocates it on first copy.
func (seg *Segment) allocateVector(cf CopyFunction, prev VectorDataIndex) (VectorDataIndex, error) {
	size := vectorBufferSize(cf.Physical(), seg.width)
	block, err := seg.alloc.Allocate(size)
	if err != nil {
		return InvalidIndex, wrapError(OutOfMemory, err, "allocating vector for column %s", cf.Type())
	}
	if uint64(len(seg.arena))+1 >= uint64(InvalidIndex) {
		internalErrorf("vector arena overflow past InvalidIndex")
	}
	idx := VectorDataIndex(len(seg.arena))
	seg.arena = append(seg.arena, &VectorMetadata{
		Block:      block,
		NextData:   InvalidIndex,
		ChildIndex: InvalidIndex,
		Storage:    cf.NewStorage(seg.width),
	})
	if prev != InvalidIndex {
		seg.arena[prev].NextData = idx
	}
	switch cf.Physical() {
	case coltype.LIST:
		// The child chain is allocated lazily on first copy (see
		// listCopyFunction.Copy), not here: an empty list column should
		// not need to reserve a child vector it may never fill.
	case coltype.STRUCT:
		children := cf.Children()
		fields := make([]VectorDataIndex, len(children))
		for i, child := range children {
			fh, err := seg.allocateVector(child, InvalidIndex)
			if err != nil {
				return InvalidIndex, err
			}
			fields[i] = fh
		}
		seg.arena[idx].ChildFields = fields
	}
	return idx, nil
}

// chainRowCount sums Count across a vector's overflow chain -- used by
// list copy to find where new child rows should land.
func (seg *Segment) chainRowCount(cf CopyFunction, head VectorDataIndex) (uint64, error) {
	var total uint64
	for idx := head; idx != InvalidIndex; {
		vm := seg.vec(idx)
		total += uint64(vm.Count)
		idx = vm.NextData
	}
	return total, nil
}

// appendChildChain appends count rows of src, starting at srcOffset, to
// the chain headed by head, allocating and linking continuation vectors
// as each one fills. This is the overflow mechanism list-child copies
// rely on; top-level columns never call it because the append engine
// never lets their take exceed remaining room in the chunk's single
// vector.
func (seg *Segment) appendChildChain(cf CopyFunction, head VectorDataIndex, src vector.UnifiedFormat, srcOffset, count uint32) error {
	tailIdx := head
	for seg.vec(tailIdx).NextData != InvalidIndex {
		tailIdx = seg.vec(tailIdx).NextData
	}
	remaining := count
	offset := srcOffset
	for remaining > 0 {
		tail := seg.vec(tailIdx)
		room := seg.width - tail.Count
		if room == 0 {
			newIdx, err := seg.allocateVector(cf, tailIdx)
			if err != nil {
				return err
			}
			tailIdx = newIdx
			tail = seg.vec(tailIdx)
			room = seg.width
		}
		take := remaining
		if take > room {
			take = room
		}
		if err := cf.Copy(seg, tail, src, offset, take); err != nil {
			return err
		}
		offset += take
		remaining -= take
	}
	return nil
}

// AllocateNewChunk materializes a new chunk with one head vector per
// top-level column, recursively establishing empty field-vector chains
// for STRUCT columns. LIST child chains are allocated on first copy.
func (seg *Segment) AllocateNewChunk(copyFns []CopyFunction) (*ChunkMetaData, error) {
	cols := make([]VectorDataIndex, len(copyFns))
	for i, cf := range copyFns {
		idx, err := seg.allocateVector(cf, InvalidIndex)
		if err != nil {
			return nil, err
		}
		cols[i] = idx
	}
	chunk := &ChunkMetaData{Columns: cols}
	seg.chunks = append(seg.chunks, chunk)
	return chunk, nil
}

// InitializeChunkState primes pins's pin cache with every block reachable
// from chunk's columns, including nested child/field chains, the way a
// real scan would want its working set pinned before it starts reading.
func (seg *Segment) InitializeChunkState(chunk *ChunkMetaData, pins *colbuf.PinCache) error {
	for _, head := range chunk.Columns {
		if err := seg.pinChain(head, pins); err != nil {
			return err
		}
	}
	return nil
}

func (seg *Segment) pinChain(head VectorDataIndex, pins *colbuf.PinCache) error {
	for idx := head; idx != InvalidIndex; {
		vm := seg.vec(idx)
		if _, err := pins.Pin(vm.Block); err != nil {
			return wrapError(OutOfMemory, err, "pinning vector block")
		}
		if vm.ChildIndex != InvalidIndex {
			if err := seg.pinChain(vm.ChildIndex, pins); err != nil {
				return err
			}
		}
		for _, f := range vm.ChildFields {
			if err := seg.pinChain(f, pins); err != nil {
				return err
			}
		}
		idx = vm.NextData
	}
	return nil
}

// ReadChunk reconstitutes a batch view of chunk's selected columns by
// materializing each one's vector chain through its CopyFunction.
func (seg *Segment) ReadChunk(chunk *ChunkMetaData, copyFns []CopyFunction, columnIDs []int) (*vector.Batch, error) {
	types := make([]coltype.Type, len(columnIDs))
	cols := make([]vector.Any, len(columnIDs))
	for i, col := range columnIDs {
		cf := copyFns[col]
		v, err := cf.Materialize(seg, chunk.Columns[col])
		if err != nil {
			return nil, err
		}
		types[i] = cf.Type()
		cols[i] = v
	}
	return vector.NewBatch(types, cols), nil
}

func (seg *Segment) chunkCount() int { return len(seg.chunks) }
func (seg *Segment) rowCount() uint64 { return seg.count }
