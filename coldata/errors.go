package coldata

import "fmt"

// Kind classifies the errors the engine can surface, matching the closed
// set of failure modes a caller needs to branch on: schema problems,
// misuse of a sealed or uninitialized collection, an unsupported physical
// type reaching the copy dispatcher, memory exhaustion, and broken
// invariants caught by Verify.
type Kind int

const (
	SchemaMismatch Kind = iota
	InvalidState
	UnsupportedType
	OutOfMemory
	InternalError
)

func (k Kind) String() string {
	switch k {
	case SchemaMismatch:
		return "SchemaMismatch"
	case InvalidState:
		return "InvalidState"
	case UnsupportedType:
		return "UnsupportedType"
	case OutOfMemory:
		return "OutOfMemory"
	case InternalError:
		return "InternalError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error type every exported operation returns. Callers
// distinguish failure modes with errors.As and Kind, not string matching.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, e.g. an *colbuf.OutOfMemoryError
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("coldata: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("coldata: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// internalErrorf panics with an *Error of kind InternalError. It is used
// for invariants that must never be false if the rest of the package is
// correct (a copy dispatcher handed a source vector of the wrong concrete
// type, the vector arena growing past InvalidIndex). The panic still
// happens -- so a debug build's stack trace points at the violated
// invariant -- but the entry points that run copy dispatchers or
// Materialize calls (AppendWithState, Scan, FetchChunk, and the parallel
// scan's per-chunk step) recover it via recoverPanic, matching the error
// table's "abort in debug, surface in release" contract instead of
// crashing the caller outright. InitializeAppend and RowCollection.Value
// do not recover it.
func internalErrorf(format string, args ...any) {
	panic(newError(InternalError, format, args...))
}

// recoverPanic recovers a panic raised by internalErrorf into *errp. A
// panic value that isn't an *Error is re-raised unchanged: this package
// only converts its own invariant violations into errors, not arbitrary
// runtime panics (nil deref, index out of range) that indicate a bug
// recoverPanic has no business hiding.
func recoverPanic(errp *error) {
	if r := recover(); r != nil {
		e, ok := r.(*Error)
		if !ok {
			panic(r)
		}
		*errp = e
	}
}
