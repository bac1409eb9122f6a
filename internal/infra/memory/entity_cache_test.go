package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"humorpedia-web/internal/domain"
)

func TestEntityCacheCaches(t *testing.T) {
	loader := &countingLoader{
		EntityLoader: NewStaticLoader(samplePerson()),
	}
	cache := NewEntityCache(loader, time.Minute)

	if _, err := cache.LoadEntity(context.Background(), domain.TypePerson, "ivan-urgant"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := cache.LoadEntity(context.Background(), domain.TypePerson, "ivan-urgant"); err != nil {
		t.Fatalf("load 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestEntityCacheExpires(t *testing.T) {
	loader := &countingLoader{
		EntityLoader: NewStaticLoader(samplePerson()),
	}
	cache := NewEntityCache(loader, time.Minute)

	now := time.Now()
	cache.clock = func() time.Time { return now }

	if _, err := cache.LoadEntity(context.Background(), domain.TypePerson, "ivan-urgant"); err != nil {
		t.Fatalf("load: %v", err)
	}

	// jitter adds at most 10%, so two TTLs are past any expiry
	now = now.Add(2 * time.Minute)
	if _, err := cache.LoadEntity(context.Background(), domain.TypePerson, "ivan-urgant"); err != nil {
		t.Fatalf("load after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.calls)
	}
}

func TestEntityCacheDoesNotCacheErrors(t *testing.T) {
	loader := &countingLoader{
		EntityLoader: NewStaticLoader(),
	}
	cache := NewEntityCache(loader, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := cache.LoadEntity(context.Background(), domain.TypePerson, "missing")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	}
	if loader.calls != 2 {
		t.Fatalf("expected misses to reach the loader, calls %d", loader.calls)
	}
}

func TestEntityCacheLookupHook(t *testing.T) {
	cache := NewEntityCache(NewStaticLoader(samplePerson()), time.Minute)

	var hits, misses int
	cache.OnLookup = func(hit bool) {
		if hit {
			hits++
		} else {
			misses++
		}
	}

	for i := 0; i < 3; i++ {
		if _, err := cache.LoadEntity(context.Background(), domain.TypePerson, "ivan-urgant"); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	if misses != 1 || hits != 2 {
		t.Fatalf("hits=%d misses=%d, want 2/1", hits, misses)
	}
}

func TestStaticLoader(t *testing.T) {
	loader := NewStaticLoader(samplePerson())

	e, err := loader.LoadEntity(context.Background(), domain.TypePerson, "ivan-urgant")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if e.Title != "Иван Ургант" {
		t.Fatalf("title = %q", e.Title)
	}

	if _, err := loader.LoadEntity(context.Background(), domain.TypeShow, "ivan-urgant"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

type countingLoader struct {
	EntityLoader
	calls int
}

func (l *countingLoader) LoadEntity(ctx context.Context, contentType domain.ContentType, slug string) (domain.Entity, error) {
	l.calls++
	return l.EntityLoader.LoadEntity(ctx, contentType, slug)
}

func samplePerson() domain.Entity {
	return domain.Entity{
		ID:          "p1",
		ContentType: domain.TypePerson,
		Title:       "Иван Ургант",
		Slug:        "ivan-urgant",
		Status:      "published",
		Modules: []domain.Module{
			{
				Type: domain.ModuleTextBlock,
				Data: json.RawMessage(`{"title":"Биография","content":"<p>Текст</p>"}`),
			},
		},
	}
}
