package introspect

import (
	"sync"
	"time"

	"github.com/turugol/quiniela/internal/domain/user"
)

type cachedPrincipal struct {
	principal user.Principal
	expiresAt time.Time
}

// principalCache holds verified principals keyed by token hash. It is
// bounded: once full it sheds expired entries, then an arbitrary one.
type principalCache struct {
	mu         sync.RWMutex
	items      map[string]cachedPrincipal
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newPrincipalCache(ttl time.Duration, maxEntries int) *principalCache {
	return &principalCache{
		items:      make(map[string]cachedPrincipal),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *principalCache) Get(key string) (user.Principal, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return user.Principal{}, false
	}
	if !item.expiresAt.After(c.now()) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return user.Principal{}, false
	}

	return item.principal, true
}

func (c *principalCache) Set(key string, principal user.Principal) {
	if c.ttl <= 0 {
		return
	}

	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		for k, item := range c.items {
			if !item.expiresAt.After(now) {
				delete(c.items, k)
			}
		}
		for k := range c.items {
			if len(c.items) < c.maxEntries {
				break
			}
			delete(c.items, k)
		}
	}

	c.items[key] = cachedPrincipal{
		principal: principal,
		expiresAt: now.Add(c.ttl),
	}
}
