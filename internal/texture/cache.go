package texture

import (
	"image"
	"image/color"
	"sync"

	"sphereview/internal/monitoring"
)

// Resolver returns the sprite for an element index.
type Resolver interface {
	Resolve(element int) *image.NRGBA
}

// Cache is a concurrency-safe sprite cache over an Index. Elements whose
// sprite cannot be loaded fall back to the default disc.
type Cache struct {
	mu       sync.RWMutex
	items    map[string]*image.NRGBA
	index    *Index
	fallback *image.NRGBA
}

// NewCache creates a cache backed by index, falling back to a disc of the
// given size and color. index may be nil.
func NewCache(index *Index, size int, c color.NRGBA) *Cache {
	return &Cache{
		items:    make(map[string]*image.NRGBA),
		index:    index,
		fallback: Disc(size, c),
	}
}

// Resolve loads and caches the sprite for an element.
func (c *Cache) Resolve(element int) *image.NRGBA {
	path, ok := c.index.PathFor(element)
	if !ok {
		return c.fallback
	}

	// Fast path: read lock
	c.mu.RLock()
	if img, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadSprite(path)
	if err != nil {
		monitoring.Logf("texture: %v, using disc", err)
		img = c.fallback
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.items[path]; exists {
		return existing
	}
	c.items[path] = img
	return img
}
