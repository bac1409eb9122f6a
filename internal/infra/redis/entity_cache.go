package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"humorpedia-web/internal/domain"
)

// EntityLoader fetches content documents from a backing source (the content
// API or a local snapshot).
type EntityLoader interface {
	LoadEntity(ctx context.Context, contentType domain.ContentType, slug string) (domain.Entity, error)
}

// EntityCache caches whole content documents in Redis as JSON under
// content:{type}:{slug} and falls back to a loader on cache miss. A Redis
// outage degrades to loading straight from the source.
type EntityCache struct {
	client *redis.Client
	loader EntityLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand

	// OnLookup, when set, observes every cache probe.
	OnLookup func(hit bool)
}

func NewEntityCache(client *redis.Client, loader EntityLoader, ttl time.Duration) *EntityCache {
	return &EntityCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *EntityCache) LoadEntity(ctx context.Context, contentType domain.ContentType, slug string) (domain.Entity, error) {
	key := c.key(contentType, slug)

	if e, ok := c.cached(ctx, key); ok {
		c.lookup(true)
		return e, nil
	}
	c.lookup(false)

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if e, ok := c.cached(ctx, key); ok {
			return e, nil
		}

		entity, err := c.loader.LoadEntity(ctx, contentType, slug)
		if err != nil {
			return domain.Entity{}, err
		}

		if raw, err := json.Marshal(entity); err == nil {
			// best-effort cache write
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return entity, nil
	})
	if err != nil {
		return domain.Entity{}, err
	}
	return result.(domain.Entity), nil
}

func (c *EntityCache) cached(ctx context.Context, key string) (domain.Entity, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return domain.Entity{}, false
	}
	var e domain.Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return domain.Entity{}, false
	}
	return e, true
}

func (c *EntityCache) key(contentType domain.ContentType, slug string) string {
	return "content:" + string(contentType) + ":" + slug
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
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
