package coldata

// VectorDataIndex names a VectorMetadata record within a segment's
// arena-backed vector store (component C). It replaces a pointer with an
// index so a whole segment, and its internal link structure, can move
// during Combine without walking and rewriting pointers.
type VectorDataIndex uint32

// ListEntry is the (offset, length) pair a LIST column stores per row,
// pointing into its child vector chain. Arithmetic on these fields is
// unsigned per the copy dispatcher's numeric-semantics rule.
type ListEntry struct {
	Offset uint64
	Length uint64
}

// StringSlot is the per-row storage for a VARCHAR/blob value: either the
// value itself, when it fits in InlineThreshold bytes, or a reference into
// the owning segment's StringHeap.
type StringSlot struct {
	Length   uint32
	Inline   [InlineThreshold]byte
	HeapRef  HeapRef
	OnHeap   bool
}

// fixedStorage is the write buffer for a FIXED-layout column: one T per
// row, capacity VECTOR_WIDTH, grown in place by the copy dispatcher. It is
// the storage-side counterpart of vector.Fixed[T] -- the same element
// types, but owned by a VectorMetadata rather than presented to a caller.
type fixedStorage[T any] struct {
	values []T
}

func newFixedStorage[T any](width uint32) *fixedStorage[T] {
	return &fixedStorage[T]{values: make([]T, 0, width)}
}

func (s *fixedStorage[T]) count() uint32 { return uint32(len(s.values)) }

// stringStorage is the write buffer for a VARCHAR column: one StringSlot
// per row, inline or heap-backed.
type stringStorage struct {
	slots []StringSlot
}

func newStringStorage(width uint32) *stringStorage {
	return &stringStorage{slots: make([]StringSlot, 0, width)}
}

func (s *stringStorage) count() uint32 { return uint32(len(s.slots)) }

// listStorage is the write buffer for a LIST column's own (offset, length)
// entries. The element values live in the child vector chain reachable
// through the owning VectorMetadata's ChildIndex, not here.
type listStorage struct {
	entries []ListEntry
}

func newListStorage(width uint32) *listStorage {
	return &listStorage{entries: make([]ListEntry, 0, width)}
}

func (s *listStorage) count() uint32 { return uint32(len(s.entries)) }
