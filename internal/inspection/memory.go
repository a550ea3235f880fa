package inspection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"predictive-guardian/internal/domain"
)

type memoryEntry struct {
	insp      domain.Inspection
	expiresAt time.Time
}

// MemoryCache is the Cache used when Redis is not configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) SaveInspection(_ context.Context, insp *domain.Inspection, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, id)
		}
	}
	c.entries[insp.ID] = memoryEntry{insp: *insp, expiresAt: now.Add(ttl)}
	return nil
}

func (c *MemoryCache) GetInspection(_ context.Context, id string) (*domain.Inspection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok || c.now().After(e.expiresAt) {
		return nil, fmt.Errorf("inspection %s: %w", id, ErrNotFound)
	}
	insp := e.insp
	return &insp, nil
}
