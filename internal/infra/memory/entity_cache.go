package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"humorpedia-web/internal/domain"
)

// EntityLoader fetches content documents from a backing source (the content
// API or a local snapshot).
type EntityLoader interface {
	LoadEntity(ctx context.Context, contentType domain.ContentType, slug string) (domain.Entity, error)
}

// EntityCache caches content documents with TTL to avoid repeated source
// hits. Concurrent misses for the same document collapse into one load.
type EntityCache struct {
	loader EntityLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	// OnLookup, when set, observes every cache probe.
	OnLookup func(hit bool)

	mu    sync.RWMutex
	cache map[string]cachedEntity
}

type cachedEntity struct {
	entity    domain.Entity
	expiresAt time.Time
}

func NewEntityCache(loader EntityLoader, ttl time.Duration) *EntityCache {
	return &EntityCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedEntity),
	}
}

func (c *EntityCache) LoadEntity(ctx context.Context, contentType domain.ContentType, slug string) (domain.Entity, error) {
	key := string(contentType) + "/" + slug
	now := c.clock()

	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if ok && entry.expiresAt.After(now) {
		c.lookup(true)
		return entry.entity, nil
	}
	c.lookup(false)

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.entity, nil
		}
		c.mu.RUnlock()

		entity, err := c.loader.LoadEntity(ctx, contentType, slug)
		if err != nil {
			return domain.Entity{}, err
		}

		c.mu.Lock()
		c.cache[key] = cachedEntity{
			entity:    entity,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return entity, nil
	})
	if err != nil {
		return domain.Entity{}, err
	}
	return result.(domain.Entity), nil
}

func (c *EntityCache) lookup(hit bool) {
	if c.OnLookup != nil {
		c.OnLookup(hit)
	}
}

func (c *EntityCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticLoader serves a fixed set of documents. Useful for tests, demos and
// running without any backing source.
type StaticLoader struct {
	entities map[string]domain.Entity
}

func NewStaticLoader(entities ...domain.Entity) *StaticLoader {
	byKey := make(map[string]domain.Entity, len(entities))
	for _, e := range entities {
		byKey[string(e.ContentType)+"/"+e.Slug] = e
	}
	return &StaticLoader{entities: byKey}
}

func (l *StaticLoader) LoadEntity(_ context.Context, contentType domain.ContentType, slug string) (domain.Entity, error) {
	if e, ok := l.entities[string(contentType)+"/"+slug]; ok {
		return e, nil
	}
	return domain.Entity{}, domain.ErrNotFound
}
