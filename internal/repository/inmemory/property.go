package inmemory

import (
	"sync"
	"time"

	propertydomain "rental-app-go/internal/domain/property"
)

// PropertyCache is a process-local TTL cache for the property
// directory's read path.
type PropertyCache struct {
	mu    sync.RWMutex
	items map[string]propertyItem
}

type propertyItem struct {
	value     propertydomain.Property
	expiresAt time.Time
}

func NewPropertyCache() *PropertyCache {
	return &PropertyCache{items: make(map[string]propertyItem)}
}

func (c *PropertyCache) Get(propertyID string) (*propertydomain.Property, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[propertyID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[propertyID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, propertyID)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *PropertyCache) Set(propertyID string, p *propertydomain.Property, ttl time.Duration) {
	if p == nil || ttl <= 0 {
		c.Delete(propertyID)
		return
	}

	c.mu.Lock()
	c.items[propertyID] = propertyItem{
		value:     *p,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *PropertyCache) Delete(propertyID string) {
	c.mu.Lock()
	delete(c.items, propertyID)
	c.mu.Unlock()
}
