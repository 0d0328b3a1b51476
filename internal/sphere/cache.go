package sphere

import (
	"sync"

	"sphereview/internal/mathutil"
)

// Cache memoizes generated point sets keyed on count only, since rotation
// is applied afterwards. Returned slices are shared and must not be mutated.
type Cache struct {
	mu    sync.RWMutex
	items map[int][]mathutil.Vec3
}

// NewCache creates an empty point cache.
func NewCache() *Cache {
	return &Cache{items: make(map[int][]mathutil.Vec3)}
}

// Points returns the point set for count, generating it on first use.
func (c *Cache) Points(count int) []mathutil.Vec3 {
	if count <= 0 {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if pts, ok := c.items[count]; ok {
		c.mu.RUnlock()
		return pts
	}
	c.mu.RUnlock()

	pts := Generate(count)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[count]; ok {
		return existing
	}
	c.items[count] = pts
	return pts
}

// Len returns the number of cached point sets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
