package cache

import (
	"context"
	"sync"
)

// MemoryCache keeps the slot in process memory. It does not survive a restart
// and is meant for tests and local development.
type MemoryCache struct {
	mu   sync.RWMutex
	data []byte
	set  bool
}

// NewMemoryCache creates a new empty in-memory slot
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Read returns a copy of the slot contents
func (c *MemoryCache) Read(ctx context.Context) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.set {
		return nil, false, nil
	}
	return append([]byte(nil), c.data...), true, nil
}

// Write replaces the slot contents
func (c *MemoryCache) Write(ctx context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = append([]byte(nil), data...)
	c.set = true
	return nil
}
