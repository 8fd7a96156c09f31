// Package colbuf is the block-level buffer manager the columnar engine
// treats as an external collaborator: something it allocates from, pins,
// and releases, but never implements itself. BufferManager is the seam;
// RawHeapManager and LRUBufferManager are the two backends this module
// ships, chosen the way the original engine's storage layer picks between
// an in-memory buffer pool and one that can page blocks out.
package colbuf

import "fmt"

// BlockID names a single fixed-size allocation inside a BufferManager. Zero
// is never returned by a successful Allocate, so it doubles as the "no
// block" sentinel the way the original engine's INVALID_INDEX does for
// chunk links.
type BlockID uint64

//go:generate mockgen -source=manager.go -destination=mock_manager_test.go -package=colbuf

// BufferManager is the collaborator interface package coldata allocates
// vector and heap storage through. Every block returned by Allocate has a
// fixed size fixed at allocation time; Pin returns a byte slice of exactly
// that size, valid until the matching Unpin.
type BufferManager interface {
	// Allocate reserves a new block of the given size and returns its id.
	// The block is unpinned; callers must Pin it before touching its bytes.
	Allocate(size int) (BlockID, error)

	// Pin returns the backing bytes for block, loading it back into memory
	// if the backend had evicted it. Callers must call Unpin exactly once
	// per successful Pin.
	Pin(block BlockID) ([]byte, error)

	// Unpin releases a reference taken by Pin. It never frees the block.
	Unpin(block BlockID)

	// Release frees block permanently. Blocks must not be pinned when
	// Release is called.
	Release(block BlockID)
}

// OutOfMemoryError reports that a BufferManager could not satisfy an
// allocation within its configured capacity.
type OutOfMemoryError struct {
	Requested int
	Capacity  int64
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("colbuf: out of memory: requested %d bytes, capacity %d bytes", e.Requested, e.Capacity)
}
