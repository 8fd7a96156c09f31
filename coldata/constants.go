package coldata

// DefaultVectorWidth is the row capacity of a vector (and therefore a
// chunk) when a Collection is not given an explicit width. DuckDB's
// STANDARD_VECTOR_SIZE defaults to 2048; callers exercising chunk-boundary
// behavior (see the package's boundary tests) construct a Collection with
// a smaller width instead of relying on this constant.
const DefaultVectorWidth = 2048

// InvalidIndex is the arena-index sentinel meaning "no link": an unset
// NextData or ChildIndex, or an absent chain head. It mirrors the source
// behavior's INVALID_INDEX -- reaching it via overflow is a fatal
// InternalError, never a legitimate value.
const InvalidIndex VectorDataIndex = ^VectorDataIndex(0)

// InlineThreshold is the maximum byte length of a VARCHAR/blob value that
// is stored inline in its vector slot instead of being routed through the
// segment's string heap.
const InlineThreshold = 12
