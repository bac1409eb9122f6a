package memory

import (
	"context"
	"testing"
	"time"

	"humorpedia-web/internal/domain"
)

type countingSectionLoader struct {
	calls int
	tree  []domain.SectionNode
}

func (l *countingSectionLoader) LoadSections(context.Context) ([]domain.SectionNode, error) {
	l.calls++
	return l.tree, nil
}

func TestSectionCacheCaches(t *testing.T) {
	loader := &countingSectionLoader{
		tree: []domain.SectionNode{{Title: "Люди", FullPath: "people"}},
	}
	cache := NewSectionCache(loader, time.Minute)

	now := time.Now()
	cache.clock = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		tree, err := cache.LoadSections(context.Background())
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(tree) != 1 || tree[0].FullPath != "people" {
			t.Fatalf("unexpected tree: %+v", tree)
		}
	}
	if loader.calls != 1 {
		t.Fatalf("expected one load, got %d", loader.calls)
	}

	now = now.Add(2 * time.Minute)
	if _, err := cache.LoadSections(context.Background()); err != nil {
		t.Fatalf("load after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload, got %d", loader.calls)
	}
}
