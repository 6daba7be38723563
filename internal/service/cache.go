package service

import (
	"context"
	"sync"
	"time"

	"github.com/mlowery/punchin/internal/domain"
)

// DefaultOpenSessionTTL bounds how stale the tray/status display of the
// running session may be. Tick timers read through the cache so the
// database is not hit once per second.
const DefaultOpenSessionTTL = 3 * time.Second

// OpenSessionCache memoizes the "what is currently running" lookup for a
// short TTL. It caches absence too: idle is the common state. Every
// session-mutating operation must call Invalidate, which the Tracker does;
// the repository itself knows nothing about this cache.
type OpenSessionCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	cached    *domain.Session
	fetchedAt time.Time
	primed    bool
}

// NewOpenSessionCache creates a cache with the given TTL; a non-positive
// TTL falls back to DefaultOpenSessionTTL.
func NewOpenSessionCache(ttl time.Duration) *OpenSessionCache {
	if ttl <= 0 {
		ttl = DefaultOpenSessionTTL
	}
	return &OpenSessionCache{ttl: ttl, now: time.Now}
}

// Get returns the cached open session when fresh, otherwise calls fetch and
// caches its result. Fetch errors are returned without poisoning the cache.
func (c *OpenSessionCache) Get(ctx context.Context, fetch func(context.Context) (*domain.Session, error)) (*domain.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.primed && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.cached, nil
	}

	s, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.cached = s
	c.fetchedAt = c.now()
	c.primed = true
	return s, nil
}

// Invalidate drops the cached value so the next Get refetches.
func (c *OpenSessionCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
	c.primed = false
}
