package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// attributeEntry holds the attribute names of one product type.
type attributeEntry struct {
	names []string
	built time.Time
}

// AttributeCache caches product type attribute names per type id.
type AttributeCache struct {
	loader AttributeLoader
	ttl    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]attributeEntry
	sf      singleflight.Group
}

// NewAttributeCache creates a cache in front of loader. A zero ttl disables caching.
func NewAttributeCache(loader AttributeLoader, ttl time.Duration) *AttributeCache {
	return &AttributeCache{
		loader:  loader,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]attributeEntry),
	}
}

func (c *AttributeCache) expired(e attributeEntry) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(e.built) > c.ttl
}

// ProductTypeAttributes returns the cached names, loading them on a miss. Concurrent misses for
// the same type share one load.
func (c *AttributeCache) ProductTypeAttributes(ctx context.Context, productTypeID string) ([]string, error) {
	c.mu.RLock()
	entry, ok := c.entries[productTypeID]
	c.mu.RUnlock()
	if ok && !c.expired(entry) {
		return entry.names, nil
	}

	result, err, _ := c.sf.Do(productTypeID, func() (interface{}, error) {
		c.mu.RLock()
		entry, ok := c.entries[productTypeID]
		c.mu.RUnlock()
		if ok && !c.expired(entry) {
			return entry.names, nil
		}

		names, err := c.loader.ProductTypeAttributes(ctx, productTypeID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[productTypeID] = attributeEntry{names: names, built: c.now()}
		c.mu.Unlock()

		return names, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]string), nil
}

// Invalidate drops the entry for one product type.
func (c *AttributeCache) Invalidate(productTypeID string) {
	c.mu.Lock()
	delete(c.entries, productTypeID)
	c.mu.Unlock()
}
