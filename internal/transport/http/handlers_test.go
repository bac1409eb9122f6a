package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"humorpedia-web/internal/app"
	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/infra/memory"
	"humorpedia-web/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.New("test", "error")
}

// testRouter wires the full router the way the server assembly does, minus
// metrics so test binaries can build routers freely.
func testRouter(pages *app.PageService, search *app.SearchService, quizzes *app.QuizService) http.Handler {
	log := testLogger()
	return NewRouter(RouterConfig{
		Pages:     NewPageHandler(pages, log),
		Search:    NewSearchHandler(search, log),
		QuizWS:    NewQuizWSHandler(quizzes, log),
		SuggestWS: NewSuggestWSHandler(search, log, 10*time.Millisecond),
		Log:       log,
	})
}

func personEntity(t *testing.T) domain.Entity {
	t.Helper()
	text, err := json.Marshal(domain.TextBlockData{Title: "Биография", Content: "Родился в Санкт-Петербурге."})
	if err != nil {
		t.Fatalf("marshal text block: %v", err)
	}
	return domain.Entity{
		ID:          "p1",
		ContentType: domain.TypePerson,
		Title:       "Иван Ургант",
		Slug:        "ivan-urgant",
		Status:      "published",
		Modules: []domain.Module{
			{Type: domain.ModuleTextBlock, Order: 1, Data: text},
		},
	}
}

type fakeLister struct {
	gotType domain.ContentType
	gotOpts domain.ListOptions
	result  domain.ListResult
	err     error
}

func (f *fakeLister) List(_ context.Context, contentType domain.ContentType, opts domain.ListOptions) (domain.ListResult, error) {
	f.gotType = contentType
	f.gotOpts = opts
	return f.result, f.err
}

type staticSections struct {
	tree []domain.SectionNode
}

func (s *staticSections) LoadSections(context.Context) ([]domain.SectionNode, error) {
	return s.tree, nil
}

type fakeSectionSource struct {
	entity   domain.Entity
	children domain.SectionChildren
	gotPath  string
}

func (f *fakeSectionSource) SectionByPath(_ context.Context, fullPath string) (domain.Entity, error) {
	f.gotPath = fullPath
	return f.entity, nil
}

func (f *fakeSectionSource) SectionChildren(context.Context, string, int, int) (domain.SectionChildren, error) {
	return f.children, nil
}

func newPageServer(t *testing.T, lister app.ContentLister, source app.SectionSource) *httptest.Server {
	t.Helper()
	entities := memory.NewEntityCache(memory.NewStaticLoader(personEntity(t)), time.Minute)
	sections := &staticSections{tree: sampleTree()}
	pages := app.NewPageService(entities, sections, lister, source, testLogger())
	search := app.NewSearchService(nil, 5)
	quizzes := app.NewQuizService(memory.NewSessionStore(time.Minute), entities)

	server := httptest.NewServer(testRouter(pages, search, quizzes))
	t.Cleanup(server.Close)
	return server
}

func sampleTree() []domain.SectionNode {
	return []domain.SectionNode{
		{
			ID: "s1", Title: "Телевизионные шоу", MenuTitle: "ТВ-шоу",
			Slug: "shows", FullPath: "shows", InMainMenu: true,
			Children: []domain.SectionNode{
				{ID: "s2", Title: "Вечерние", Slug: "late-night", FullPath: "shows/late-night"},
			},
		},
		{ID: "s3", Title: "Черновики", Slug: "drafts", FullPath: "drafts"},
	}
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestPageEndpoint(t *testing.T) {
	server := newPageServer(t, nil, nil)

	var page app.Page
	status := getJSON(t, server.URL+"/api/pages/people/ivan-urgant", &page)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if page.Title != "Иван Ургант" || page.ContentType != domain.TypePerson {
		t.Fatalf("unexpected page: %+v", page)
	}
	if len(page.Blocks) != 1 || page.Blocks[0].Kind != domain.ModuleTextBlock {
		t.Fatalf("unexpected blocks: %+v", page.Blocks)
	}
}

func TestPageEndpointNotFound(t *testing.T) {
	server := newPageServer(t, nil, nil)

	var body errorBody
	if status := getJSON(t, server.URL+"/api/pages/people/missing", &body); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if body.Error != "not found" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestPageEndpointUnknownCollection(t *testing.T) {
	server := newPageServer(t, nil, nil)

	var body errorBody
	if status := getJSON(t, server.URL+"/api/pages/animals/cat", &body); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if body.Error != "unknown collection" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestListEndpointParsesFilters(t *testing.T) {
	lister := &fakeLister{result: domain.ListResult{Total: 3, Items: []json.RawMessage{
		json.RawMessage(`{"title":"КВН"}`),
	}}}
	server := newPageServer(t, lister, nil)

	var result domain.ListResult
	url := server.URL + "/api/pages/articles?skip=10&limit=5&tag=%D1%8E%D0%BC%D0%BE%D1%80&letter=%D0%90&search=%D1%83%D1%80&status=draft"
	if status := getJSON(t, url, &result); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if lister.gotType != domain.TypeArticle {
		t.Fatalf("expected article list, got %s", lister.gotType)
	}
	want := domain.ListOptions{Skip: 10, Limit: 5, Status: "draft", Tag: "юмор", Search: "ур", Letter: "А"}
	if lister.gotOpts != want {
		t.Fatalf("unexpected options: %+v", lister.gotOpts)
	}
	if result.Total != 3 || len(result.Items) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestListEndpointDefaults(t *testing.T) {
	lister := &fakeLister{}
	server := newPageServer(t, lister, nil)

	var result domain.ListResult
	if status := getJSON(t, server.URL+"/api/pages/news", &result); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	want := domain.ListOptions{Skip: 0, Limit: 20, Status: "published"}
	if lister.gotOpts != want {
		t.Fatalf("unexpected options: %+v", lister.gotOpts)
	}
}

func TestMenuEndpoint(t *testing.T) {
	server := newPageServer(t, nil, nil)

	var menu []app.MenuItem
	if status := getJSON(t, server.URL+"/api/menu", &menu); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(menu) != 1 || menu[0].Title != "ТВ-шоу" || menu[0].Path != "shows" {
		t.Fatalf("unexpected menu: %+v", menu)
	}
	if len(menu[0].Children) != 1 || menu[0].Children[0].Path != "shows/late-night" {
		t.Fatalf("unexpected children: %+v", menu[0].Children)
	}
}

func TestSectionsEndpoint(t *testing.T) {
	server := newPageServer(t, nil, nil)

	var tree []domain.SectionNode
	if status := getJSON(t, server.URL+"/api/sections", &tree); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(tree) != 2 {
		t.Fatalf("expected full tree, got %+v", tree)
	}
}

func TestSectionPageEndpoint(t *testing.T) {
	source := &fakeSectionSource{
		entity: domain.Entity{
			ID: "s2", ContentType: domain.TypeSection,
			Title: "Вечерние шоу", Slug: "late-night",
		},
		children: domain.SectionChildren{
			Total:  4,
			Parent: domain.SectionRef{ID: "s2", Title: "Вечерние шоу", FullPath: "shows/late-night"},
		},
	}
	server := newPageServer(t, nil, source)

	var sp app.SectionPage
	if status := getJSON(t, server.URL+"/api/sections/shows/late-night", &sp); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if source.gotPath != "shows/late-night" {
		t.Fatalf("expected path shows/late-night, got %q", source.gotPath)
	}
	if sp.Page.Title != "Вечерние шоу" || sp.Children.Total != 4 {
		t.Fatalf("unexpected section page: %+v", sp)
	}
}

func TestHealthz(t *testing.T) {
	server := newPageServer(t, nil, nil)

	var body map[string]string
	if status := getJSON(t, server.URL+"/healthz", &body); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
