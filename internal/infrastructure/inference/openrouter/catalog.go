package openrouter

import (
	"sync"
	"time"

	"chapter-api/internal/domain/model"
)

// CatalogState distinguishes a successfully loaded model catalog from one
// that could not be fetched. Validation is permissive while unavailable, so
// the aggregator's own API stays the final arbiter of model ids.
type CatalogState int

const (
	CatalogUnavailable CatalogState = iota
	CatalogLoaded
)

func (s CatalogState) String() string {
	if s == CatalogLoaded {
		return "loaded"
	}
	return "unavailable"
}

// catalog caches the aggregator's live model list.
type catalog struct {
	mu        sync.RWMutex
	state     CatalogState
	models    []model.ModelID
	byID      map[string]model.ModelID
	fetchedAt time.Time
	ttl       time.Duration
}

func newCatalog(ttl time.Duration) *catalog {
	return &catalog{ttl: ttl}
}

func (c *catalog) snapshot() (CatalogState, []model.ModelID) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	models := make([]model.ModelID, len(c.models))
	copy(models, c.models)
	return c.state, models
}

func (c *catalog) lookup(id string) (model.ModelID, CatalogState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.byID[id]
	return m, c.state, ok
}

func (c *catalog) stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == CatalogUnavailable || time.Since(c.fetchedAt) > c.ttl
}

func (c *catalog) store(models []model.ModelID) {
	byID := make(map[string]model.ModelID, len(models))
	for _, m := range models {
		byID[m.Value()] = m
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = CatalogLoaded
	c.models = models
	c.byID = byID
	c.fetchedAt = time.Now()
}

// markUnavailable reverts to the unavailable state only when nothing was
// ever loaded. A stale catalog beats no catalog.
func (c *catalog) markUnavailable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.models == nil {
		c.state = CatalogUnavailable
	}
}
