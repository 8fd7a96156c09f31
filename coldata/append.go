package coldata

import (
	"go.uber.org/zap"

	"github.com/brimdata/coldata/colbuf"
	"github.com/brimdata/coldata/vector"
)

// AppendState is the per-append-session handle passed to Append: it
// tracks which segment and chunk rows are currently landing in, plus the
// pin cache for the chunk currently being written. A Collection may reuse
// one AppendState across many calls to amortize the bookkeeping of
// finding "the current chunk" each time.
type AppendState struct {
	col     *Collection
	seg     *Segment
	chunk   *ChunkMetaData
	pins    *colbuf.PinCache
	sources []vector.UnifiedFormat // reused per-column canonicalized-source slots
}

// Close releases every handle state's pin cache is holding. It is safe,
// but unnecessary, to call on a zero AppendState.
func (state *AppendState) Close() {
	if state.pins != nil {
		state.pins.Clear()
	}
}

// InitializeAppend prepares state to receive rows for col, creating col's
// first segment and chunk if none exists yet.
func (col *Collection) InitializeAppend(state *AppendState) error {
	if col.sealed {
		return newError(InvalidState, "cannot append to a sealed collection")
	}
	state.col = col
	state.pins = colbuf.NewPinCache(col.alloc)
	if len(col.segments) == 0 {
		if err := col.newSegment(); err != nil {
			return err
		}
	}
	state.seg = col.segments[len(col.segments)-1]
	if len(state.seg.chunks) == 0 {
		chunk, err := state.seg.AllocateNewChunk(col.copyFns)
		if err != nil {
			return err
		}
		state.chunk = chunk
	} else {
		state.chunk = state.seg.chunks[len(state.seg.chunks)-1]
	}
	if err := state.seg.InitializeChunkState(state.chunk, state.pins); err != nil {
		return err
	}
	state.sources = make([]vector.UnifiedFormat, len(col.types))
	return nil
}

func (col *Collection) newSegment() error {
	seg := newSegment(col.types, col.width, col.alloc)
	col.segments = append(col.segments, seg)
	col.log.Info("coldata: segment created", zap.String("segment_id", seg.ID.String()))
	return nil
}

// Append appends the rows of batch to col using a fresh, throwaway
// AppendState. Callers doing many appends should hold their own
// AppendState and call AppendWithState instead, to avoid re-priming a pin
// cache on every call.
func (col *Collection) Append(batch *vector.Batch) error {
	var state AppendState
	if err := col.InitializeAppend(&state); err != nil {
		return err
	}
	defer state.Close()
	return col.AppendWithState(&state, batch)
}

// AppendWithState appends batch's rows to col through state. The batch's
// column types must equal col's schema.
func (col *Collection) AppendWithState(state *AppendState, batch *vector.Batch) (err error) {
	defer recoverPanic(&err)
	if col.sealed {
		return newError(InvalidState, "cannot append to a sealed collection")
	}
	if len(batch.Columns) != len(col.types) {
		return newError(SchemaMismatch, "batch has %d columns, collection has %d", len(batch.Columns), len(col.types))
	}
	for i, c := range batch.Columns {
		if c.Type().Physical() != col.types[i].Physical() {
			return newError(SchemaMismatch, "column %d: batch type %s, collection type %s", i, c.Type(), col.types[i])
		}
	}

	flat := make([]vector.Any, len(batch.Columns))
	for i, c := range batch.Columns {
		if vector.IsComplex(col.types[i]) {
			flat[i] = vector.Flatten(c)
		} else {
			flat[i] = c
		}
		state.sources[i] = vector.ToUnifiedFormat(flat[i])
	}

	n := batch.Size()
	var offset uint32
	for offset < n {
		take := n - offset
		if room := col.width - state.chunk.Count; take > room {
			take = room
		}
		for i, cf := range col.copyFns {
			vm := state.seg.vec(state.chunk.Columns[i])
			if err := cf.Copy(state.seg, vm, state.sources[i], offset, take); err != nil {
				return err
			}
		}
		state.chunk.Count += take
		state.seg.count += uint64(take)
		offset += take

		if offset < n {
			chunk, err := state.seg.AllocateNewChunk(col.copyFns)
			if err != nil {
				return err
			}
			state.pins.Clear()
			state.chunk = chunk
			if err := state.seg.InitializeChunkState(state.chunk, state.pins); err != nil {
				return err
			}
		}
	}
	col.count += uint64(n)
	return nil
}
