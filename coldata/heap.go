package coldata

import "github.com/brimdata/coldata/colbuf"

// heapBlockSize is the size of each block the StringHeap requests from the
// allocator as it grows. A single long value may still exceed it, in which
// case the heap allocates a dedicated block sized to fit that one value.
const heapBlockSize = 256 * 1024

// HeapRef is a stable reference to a blob stored in a segment's
// StringHeap: the block it landed in and its byte range within that
// block's pinned data. It plays the role of the embedded pointer+length
// the spec describes for non-inlined strings.
type HeapRef struct {
	Block  colbuf.BlockID
	Offset uint32
	Length uint32
}

// StringHeap is the append-only, per-segment allocator for out-of-line
// string and blob bytes (component B). Values short enough to fit in a
// StringSlot's inline bytes never reach it; AddBlob is only called for the
// rest.
type StringHeap struct {
	alloc *colbuf.Allocator
	tail  colbuf.BlockID
	data  []byte // pinned bytes of tail, kept pinned for the segment's life
	used  uint32
}

func newStringHeap(alloc *colbuf.Allocator) *StringHeap {
	return &StringHeap{alloc: alloc, tail: 0}
}

// AddBlob copies b into the heap and returns a reference to it. The heap
// retains its own copy; the caller's slice may be reused afterward.
func (h *StringHeap) AddBlob(b []byte) (HeapRef, error) {
	need := uint32(len(b))
	if h.tail == 0 || h.used+need > uint32(len(h.data)) {
		if err := h.grow(need); err != nil {
			return HeapRef{}, err
		}
	}
	off := h.used
	copy(h.data[off:], b)
	h.used += need
	return HeapRef{Block: h.tail, Offset: off, Length: need}, nil
}

func (h *StringHeap) grow(minSize uint32) error {
	size := heapBlockSize
	if minSize > uint32(size) {
		size = int(minSize)
	}
	block, err := h.alloc.Allocate(size)
	if err != nil {
		return wrapError(OutOfMemory, err, "string heap: allocating %d-byte block", size)
	}
	data, err := h.alloc.Pin(block)
	if err != nil {
		return wrapError(OutOfMemory, err, "string heap: pinning new block")
	}
	h.tail = block
	h.data = data
	h.used = 0
	return nil
}

// Fetch returns the bytes a HeapRef points to. It is only valid for
// references into the heap that produced it.
func (h *StringHeap) Fetch(ref HeapRef) []byte {
	if ref.Block == h.tail {
		return h.data[ref.Offset : ref.Offset+ref.Length]
	}
	// A ref into a retired (non-tail) block: re-pin on demand. The pin is
	// released immediately since heap storage doesn't track handles for
	// blocks other than the current tail -- fine for a RawHeapManager,
	// which never evicts; an LRU-backed heap would need to keep every
	// block pinned for the segment's life instead.
	data, err := h.alloc.Pin(ref.Block)
	if err != nil {
		internalErrorf("string heap: fetching retired block: %v", err)
	}
	defer h.alloc.Unpin(ref.Block)
	out := make([]byte, ref.Length)
	copy(out, data[ref.Offset:ref.Offset+ref.Length])
	return out
}
