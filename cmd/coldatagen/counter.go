package main

import "sync"

// lockedCounter accumulates a running total across ScanParallelWorkers'
// concurrently invoked callback.
type lockedCounter struct {
	mu  sync.Mutex
	sum uint64
}

func (c *lockedCounter) add(n uint64) {
	c.mu.Lock()
	c.sum += n
	c.mu.Unlock()
}

func (c *lockedCounter) value() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sum
}
