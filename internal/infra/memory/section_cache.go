package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"humorpedia-web/internal/domain"
)

// SectionLoader fetches the full section tree from the content source.
type SectionLoader interface {
	LoadSections(ctx context.Context) ([]domain.SectionNode, error)
}

// SectionCache holds the section tree for the navigation menu. The tree
// changes rarely and is requested on every page, so one TTL entry is enough.
type SectionCache struct {
	loader SectionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu        sync.RWMutex
	tree      []domain.SectionNode
	expiresAt time.Time
}

func NewSectionCache(loader SectionLoader, ttl time.Duration) *SectionCache {
	return &SectionCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
	}
}

func (c *SectionCache) LoadSections(ctx context.Context) ([]domain.SectionNode, error) {
	now := c.clock()

	c.mu.RLock()
	if c.tree != nil && c.expiresAt.After(now) {
		tree := c.tree
		c.mu.RUnlock()
		return tree, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("sections", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.tree != nil && c.expiresAt.After(now) {
			tree := c.tree
			c.mu.RUnlock()
			return tree, nil
		}
		c.mu.RUnlock()

		tree, err := c.loader.LoadSections(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.tree = tree
		c.expiresAt = now.Add(c.ttl)
		c.mu.Unlock()
		return tree, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.SectionNode), nil
}
