package coldata

import (
	"sync"

	"github.com/brimdata/coldata/colbuf"
	"github.com/brimdata/coldata/vector"
	"golang.org/x/sync/errgroup"
)

// ScanProperties adjusts scan behavior. The zero value is the common case:
// keep every pinned block alive for the scan's lifetime.
type ScanProperties struct {
	// AllowZeroCopy permits the scan to hand back vector.Any values that
	// alias the collection's own storage rather than copies. It is
	// informational here -- every Materialize call in this package
	// already returns fresh slices -- and exists so callers written
	// against the contract don't need special-casing later.
	AllowZeroCopy bool
}

// ScanState is a sequential scan cursor: a pin cache, a (segment, chunk)
// position, and the running row index, plus which columns to materialize.
type ScanState struct {
	pins       *colbuf.PinCache
	segmentIdx int
	chunkIdx   int
	currentRow uint64
	nextRow    uint64
	columnIDs  []int
	properties ScanProperties
}

// InitializeScan resets state to the start of col, scanning every column.
func (col *Collection) InitializeScan(state *ScanState, properties ScanProperties) {
	ids := make([]int, len(col.types))
	for i := range ids {
		ids[i] = i
	}
	col.InitializeScanColumns(state, ids, properties)
}

// InitializeScanColumns is InitializeScan restricted to columnIDs.
func (col *Collection) InitializeScanColumns(state *ScanState, columnIDs []int, properties ScanProperties) {
	state.segmentIdx = 0
	state.chunkIdx = 0
	state.currentRow = 0
	state.nextRow = 0
	state.columnIDs = columnIDs
	state.properties = properties
	state.pins = colbuf.NewPinCache(col.alloc)
}

// nextScanIndex advances state past any exhausted segments and returns the
// next (segmentIdx, chunkIdx, rowIdx) to scan, or ok=false when the cursor
// has passed the last chunk of the last segment. It clears state's pin
// cache on every segment boundary it crosses.
func (col *Collection) nextScanIndex(state *ScanState) (segmentIdx, chunkIdx int, rowIdx uint64, ok bool) {
	rowIdx = state.nextRow
	state.currentRow = state.nextRow
	if state.segmentIdx >= len(col.segments) {
		return 0, 0, 0, false
	}
	for state.chunkIdx >= col.segments[state.segmentIdx].chunkCount() {
		state.chunkIdx = 0
		state.segmentIdx++
		state.pins.Clear()
		if state.segmentIdx >= len(col.segments) {
			return 0, 0, 0, false
		}
	}
	seg := col.segments[state.segmentIdx]
	state.nextRow += uint64(seg.chunks[state.chunkIdx].Count)
	segmentIdx = state.segmentIdx
	chunkIdx = state.chunkIdx
	state.chunkIdx++
	return segmentIdx, chunkIdx, rowIdx, true
}

// Scan reads the next chunk into out. It returns false once the cursor has
// passed every chunk of every segment.
func (col *Collection) Scan(state *ScanState, out **vector.Batch) (ok bool, err error) {
	defer recoverPanic(&err)
	var segmentIdx, chunkIdx int
	segmentIdx, chunkIdx, _, ok = col.nextScanIndex(state)
	if !ok {
		return false, nil
	}
	seg := col.segments[segmentIdx]
	chunk := seg.chunks[chunkIdx]
	if err := seg.InitializeChunkState(chunk, state.pins); err != nil {
		return false, err
	}
	batch, err := seg.ReadChunk(chunk, col.copyFns, state.columnIDs)
	if err != nil {
		return false, err
	}
	*out = batch
	return true, nil
}

// Close releases state's pinned handles.
func (state *ScanState) Close() {
	if state.pins != nil {
		state.pins.Clear()
	}
}

// ParallelScanState is the cursor N workers share during a parallel scan:
// the same sequential ScanState, protected by a mutex for the index
// reservation step only. Scanning itself -- pinning blocks and copying
// into the output batch -- happens outside the lock.
type ParallelScanState struct {
	mu    sync.Mutex
	state ScanState
}

// InitializeParallelScan resets a ParallelScanState the way InitializeScan
// resets a ScanState.
func (col *Collection) InitializeParallelScan(state *ParallelScanState, properties ScanProperties) {
	col.InitializeScan(&state.state, properties)
}

// LocalScanState is a worker's thread-local handle into a parallel scan:
// its own pin cache plus the last segment index it observed, so it knows
// when to clear its cache on a segment boundary it crosses independently
// of every other worker.
type LocalScanState struct {
	pins              *colbuf.PinCache
	currentSegmentIdx int
	currentRow        uint64
}

// InitializeLocalScan prepares lstate for use against col.
func (col *Collection) InitializeLocalScan(lstate *LocalScanState) {
	lstate.pins = colbuf.NewPinCache(col.alloc)
	lstate.currentSegmentIdx = -1
	lstate.currentRow = 0
}

// ScanParallel reserves the next chunk under pstate's mutex, then scans it
// outside the lock using lstate's pin cache. No two workers are ever
// handed the same chunk; every chunk is handed to exactly one.
func (col *Collection) ScanParallel(pstate *ParallelScanState, lstate *LocalScanState, out **vector.Batch) (bool, error) {
	var segmentIdx, chunkIdx int
	var rowIdx uint64
	var ok bool
	pstate.mu.Lock()
	segmentIdx, chunkIdx, rowIdx, ok = col.nextScanIndex(&pstate.state)
	pstate.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, col.scanAtIndex(pstate, lstate, out, segmentIdx, chunkIdx, rowIdx)
}

func (col *Collection) scanAtIndex(pstate *ParallelScanState, lstate *LocalScanState, out **vector.Batch, segmentIdx, chunkIdx int, rowIdx uint64) (err error) {
	defer recoverPanic(&err)
	if segmentIdx != lstate.currentSegmentIdx {
		lstate.pins.Clear()
		lstate.currentSegmentIdx = segmentIdx
	}
	seg := col.segments[segmentIdx]
	chunk := seg.chunks[chunkIdx]
	if err := seg.InitializeChunkState(chunk, lstate.pins); err != nil {
		return err
	}
	batch, err := seg.ReadChunk(chunk, col.copyFns, pstate.state.columnIDs)
	if err != nil {
		return err
	}
	*out = batch
	lstate.currentRow = rowIdx
	return nil
}

// CloseLocal releases lstate's pinned handles.
func (lstate *LocalScanState) CloseLocal() {
	if lstate.pins != nil {
		lstate.pins.Clear()
	}
}

// ScanParallelWorkers runs a parallel scan across workers goroutines, each
// with its own LocalScanState, handing every resulting batch to fn.
// fn may be called concurrently from different workers and must be safe
// for that; batch delivery order across workers is unspecified, matching
// the underlying scan's own ordering guarantee.
func (col *Collection) ScanParallelWorkers(workers int, properties ScanProperties, fn func(*vector.Batch) error) error {
	if workers < 1 {
		workers = 1
	}
	var pstate ParallelScanState
	col.InitializeParallelScan(&pstate, properties)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var lstate LocalScanState
			col.InitializeLocalScan(&lstate)
			defer lstate.CloseLocal()
			for {
				var batch *vector.Batch
				ok, err := col.ScanParallel(&pstate, &lstate, &batch)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if err := fn(batch); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}
