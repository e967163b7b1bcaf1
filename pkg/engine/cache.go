package engine

import "sync"

// Cache is an opt-in compile-once store keyed by template identity. Entries
// are immutable Trees, so cached values can be handed to concurrent renders
// without coordination and never need teardown.
type Cache struct {
	mu    sync.RWMutex
	trees map[string]*Tree
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{trees: make(map[string]*Tree)}
}

// Parse returns the tree cached under key, compiling source on first use.
// Parse failures are not cached; a corrected source under the same key will
// compile on the next call.
func (c *Cache) Parse(key, source string) (*Tree, error) {
	c.mu.RLock()
	if tree, ok := c.trees[key]; ok {
		c.mu.RUnlock()
		return tree, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if tree, ok := c.trees[key]; ok {
		return tree, nil
	}

	tree, err := Parse(source)
	if err != nil {
		return nil, err
	}
	c.trees[key] = tree
	return tree, nil
}

// Get reports the cached tree for key, if any.
func (c *Cache) Get(key string) (*Tree, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tree, ok := c.trees[key]
	return tree, ok
}

// Len reports how many compiled templates the cache holds.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.trees)
}
