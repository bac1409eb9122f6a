package render

import (
	"testing"

	"humorpedia-web/internal/domain"
)

func TestRenderTextBlock(t *testing.T) {
	mods := []domain.Module{
		mod(domain.ModuleTextBlock, 0, nil, `{"title":"Биография","content":"<p class=\\\"intro\\\">text<\\/p>"}`),
	}

	blocks := Render(domain.TypePerson, mods)
	if len(blocks) != 1 {
		t.Fatalf("expected one block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Kind != domain.ModuleTextBlock || b.Title != "Биография" {
		t.Fatalf("unexpected block header: %+v", b)
	}
	body, ok := b.Body.(TextBody)
	if !ok {
		t.Fatalf("expected TextBody, got %T", b.Body)
	}
	if body.Text.Content != `<p class="intro">text</p>` {
		t.Fatalf("unexpected normalized content: %q", body.Text.Content)
	}
	if !body.Text.HTML {
		t.Fatalf("expected content detected as HTML")
	}
}

func TestRenderModuleTitleOverridesPayloadTitle(t *testing.T) {
	m := mod(domain.ModuleTextBlock, 0, nil, `{"title":"from data","content":"hi"}`)
	m.Title = "from module"

	blocks := Render(domain.TypeArticle, []domain.Module{m})
	if len(blocks) != 1 || blocks[0].Title != "from module" {
		t.Fatalf("expected module title to win, got %+v", blocks)
	}
}

func TestRenderPlainTextStaysLiteral(t *testing.T) {
	mods := []domain.Module{
		mod(domain.ModuleTextBlock, 0, nil, `{"content":"Line1\\nLine2"}`),
	}

	blocks := Render(domain.TypeArticle, mods)
	body := blocks[0].Body.(TextBody)
	if body.Text.Content != "Line1\nLine2" {
		t.Fatalf("expected real newline, got %q", body.Text.Content)
	}
	if body.Text.HTML {
		t.Fatalf("plain text must not be flagged as HTML")
	}
}

func TestRenderUnknownTypeFallsBackToText(t *testing.T) {
	mods := []domain.Module{
		mod("legacy_html", 0, nil, `{"title":"Старый блок","content":"<p>ok</p>"}`),
		mod("mystery_widget", 1, nil, `{"config":{"x":1}}`),
	}

	blocks := Render(domain.TypeWiki, mods)
	if len(blocks) != 1 {
		t.Fatalf("expected only the text-bearing module to render, got %d", len(blocks))
	}
	if blocks[0].Kind != domain.ModuleTextBlock || blocks[0].Title != "Старый блок" {
		t.Fatalf("expected generic text block, got %+v", blocks[0])
	}
}

func TestRenderSkipsQuizModules(t *testing.T) {
	mods := []domain.Module{
		mod(domain.ModuleQuizQuestions, 0, nil, `{"questions":[{"id":1,"question":"?","options":[]}]}`),
		mod(domain.ModuleQuizResults, 1, nil, `{"results":[{"min_score":0,"max_score":10,"title":"ok"}]}`),
		mod(domain.ModuleTextBlock, 2, nil, `{"content":"intro"}`),
	}

	blocks := Render(domain.TypeQuiz, mods)
	if len(blocks) != 1 || blocks[0].Kind != domain.ModuleTextBlock {
		t.Fatalf("expected quiz data skipped on content pages, got %+v", blocks)
	}
}

func TestRenderTimelineAnchorsUseNormalizedIndices(t *testing.T) {
	mods := []domain.Module{
		mod(domain.ModuleTimeline, 2, nil, `{"title":"Хронология","events":[{"year":1999,"title":"Дебют"},{"year":2005,"title":"Финал"}]}`),
		mod(domain.ModuleHeroCard, 0, nil, `{"photo":"/img/p.jpg"}`),
		mod(domain.ModuleTextBlock, 1, hidden(), `{"content":"hidden"}`),
	}

	blocks := Render(domain.TypePerson, mods)
	if len(blocks) != 2 {
		t.Fatalf("expected hero and timeline, got %d", len(blocks))
	}
	// Normalized order: hero (0), timeline (1). Hidden module takes no index.
	tl, ok := blocks[1].Body.(TimelineBody)
	if !ok {
		t.Fatalf("expected TimelineBody, got %T", blocks[1].Body)
	}
	if tl.Events[0].Anchor != "timeline-1-0" || tl.Events[1].Anchor != "timeline-1-1" {
		t.Fatalf("unexpected anchors: %q %q", tl.Events[0].Anchor, tl.Events[1].Anchor)
	}
}

func TestRenderTimelineAcceptsItemsKey(t *testing.T) {
	mods := []domain.Module{
		mod(domain.ModuleTimeline, 0, nil, `{"items":[{"year":2010,"title":"Старт"}]}`),
	}

	blocks := Render(domain.TypePerson, mods)
	if len(blocks) != 1 {
		t.Fatalf("expected timeline block, got %d", len(blocks))
	}
	tl := blocks[0].Body.(TimelineBody)
	if len(tl.Events) != 1 || tl.Events[0].Year != 2010 {
		t.Fatalf("expected items entries rendered, got %+v", tl.Events)
	}
}

func TestRenderTableOfContentsModule(t *testing.T) {
	mods := []domain.Module{
		mod(domain.ModuleTableOfContents, 0, nil, `{}`),
		mod(domain.ModuleTextBlock, 1, nil, `{"title":"История","content":"..."}`),
	}

	blocks := Render(domain.TypeArticle, mods)
	if len(blocks) != 2 {
		t.Fatalf("expected toc and text block, got %d", len(blocks))
	}
	toc, ok := blocks[0].Body.(TOCBody)
	if !ok {
		t.Fatalf("expected TOCBody, got %T", blocks[0].Body)
	}
	if len(toc.Entries) != 1 || toc.Entries[0].Label != "История" {
		t.Fatalf("unexpected toc entries: %+v", toc.Entries)
	}

	// Without any titled sections the panel renders nothing.
	empty := Render(domain.TypeArticle, []domain.Module{
		mod(domain.ModuleTableOfContents, 0, nil, `{}`),
	})
	if len(empty) != 0 {
		t.Fatalf("expected no blocks for empty toc, got %+v", empty)
	}
}

func TestRenderEmptyModuleList(t *testing.T) {
	if blocks := Render(domain.TypePerson, nil); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
}
