package colbuf

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pbnjay/memory"
	"go.uber.org/zap"
)

// LRUBufferManager is a BufferManager backed by a bounded in-memory cache:
// blocks beyond the configured number of entries are evicted from the cache
// and re-added from the backing map on the next Pin. The backing map holds
// the same byte slices the cache does, so eviction drops only the cache
// entry, never the bytes.
//
// Pin counts are kept in a separate map that the LRU cache never consults,
// so a pinned block can be evicted from the cache like any other. A slice
// returned by Pin stays valid after such an eviction, because the backing
// map still holds it.
type LRUBufferManager struct {
	mu      sync.Mutex
	cache   *lru.Cache[BlockID, []byte]
	backing map[BlockID][]byte
	pins    map[BlockID]int32
	nextID  BlockID
	log     *zap.Logger
}

// NewLRUBufferManager returns an LRUBufferManager holding up to entries
// blocks in its warm cache. If entries <= 0, a default is derived from the
// host's total memory the way a real buffer pool would size itself off
// available RAM rather than a fixed constant.
func NewLRUBufferManager(entries int, log *zap.Logger) (*LRUBufferManager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if entries <= 0 {
		entries = defaultLRUEntries()
	}
	c, err := lru.New[BlockID, []byte](entries)
	if err != nil {
		return nil, err
	}
	return &LRUBufferManager{
		cache:   c,
		backing: make(map[BlockID][]byte),
		pins:    make(map[BlockID]int32),
		log:     log,
	}, nil
}

// defaultLRUEntries picks a cache size proportional to the host's total
// memory, on the theory that a bigger machine can afford to keep more
// blocks warm before falling back to backing storage.
func defaultLRUEntries() int {
	total := memory.TotalMemory()
	if total == 0 {
		return 1024
	}
	entries := int(total / (4 << 20)) // one entry per 4MiB of RAM
	if entries < 64 {
		return 64
	}
	if entries > 1 << 16 {
		return 1 << 16
	}
	return entries
}

func (m *LRUBufferManager) Allocate(size int) (BlockID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.backing[id] = make([]byte, size)
	m.cache.Add(id, m.backing[id])
	return id, nil
}

func (m *LRUBufferManager) Pin(block BlockID) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.cache.Get(block)
	if !ok {
		data, ok = m.backing[block]
		if !ok {
			return nil, &InvalidBlockError{Block: block}
		}
		m.log.Debug("colbuf: reloading evicted block", zap.Uint64("block", uint64(block)))
		m.cache.Add(block, data)
	}
	m.pins[block]++
	return data, nil
}

func (m *LRUBufferManager) Unpin(block BlockID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pins[block] > 0 {
		m.pins[block]--
	}
}

func (m *LRUBufferManager) Release(block BlockID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Remove(block)
	delete(m.backing, block)
	delete(m.pins, block)
}
