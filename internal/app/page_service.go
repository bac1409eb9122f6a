// Package app wires content sources, caches and the quiz engine into the use
// cases the transport layer exposes.
package app

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/logging"
	"humorpedia-web/internal/render"
)

const defaultWidgetLimit = 5

// EntityRepository loads content documents through whatever cache chain is
// configured.
type EntityRepository interface {
	LoadEntity(ctx context.Context, contentType domain.ContentType, slug string) (domain.Entity, error)
}

// SectionRepository provides the section tree.
type SectionRepository interface {
	LoadSections(ctx context.Context) ([]domain.SectionNode, error)
}

// ContentLister fetches paginated content lists.
type ContentLister interface {
	List(ctx context.Context, contentType domain.ContentType, opts domain.ListOptions) (domain.ListResult, error)
}

// SectionSource fetches section documents and their children.
type SectionSource interface {
	SectionByPath(ctx context.Context, fullPath string) (domain.Entity, error)
	SectionChildren(ctx context.Context, sectionID string, skip, limit int) (domain.SectionChildren, error)
}

// Page is the rendered page payload served to the frontend.
type Page struct {
	ID          string                     `json:"id"`
	ContentType domain.ContentType         `json:"content_type"`
	Title       string                     `json:"title"`
	Slug        string                     `json:"slug"`
	Tags        []string                   `json:"tags,omitempty"`
	Blocks      []render.Block             `json:"blocks"`
	Contents    []render.TOCEntry          `json:"contents,omitempty"`
	Fields      map[string]json.RawMessage `json:"fields,omitempty"`
}

// MenuItem is one navigation entry derived from the section tree.
type MenuItem struct {
	Title    string     `json:"title"`
	Path     string     `json:"path"`
	Children []MenuItem `json:"children,omitempty"`
}

// SectionPage is a section document plus the listing of its direct children.
type SectionPage struct {
	Page     Page                   `json:"page"`
	Children domain.SectionChildren `json:"children"`
}

// PageService renders content documents into page payloads. lister and
// source may be nil when the service runs on static data only; widget
// hydration and section pages degrade accordingly.
type PageService struct {
	entities EntityRepository
	sections SectionRepository
	lister   ContentLister
	source   SectionSource
	log      *logging.Logger
}

func NewPageService(entities EntityRepository, sections SectionRepository, lister ContentLister, source SectionSource, log *logging.Logger) *PageService {
	return &PageService{
		entities: entities,
		sections: sections,
		lister:   lister,
		source:   source,
		log:      log,
	}
}

// Page loads one document and renders it.
func (s *PageService) Page(ctx context.Context, contentType domain.ContentType, slug string) (Page, error) {
	e, err := s.entities.LoadEntity(ctx, contentType, slug)
	if err != nil {
		return Page{}, err
	}
	return s.buildPage(ctx, e), nil
}

// List returns a page of content cards. Unless the caller filters otherwise,
// only published documents are listed.
func (s *PageService) List(ctx context.Context, contentType domain.ContentType, opts domain.ListOptions) (domain.ListResult, error) {
	if s.lister == nil {
		return domain.ListResult{}, domain.ErrNotFound
	}
	if opts.Status == "" {
		opts.Status = "published"
	}
	return s.lister.List(ctx, contentType, opts)
}

// Menu builds the main navigation from the section tree. Top-level entries
// honor the in_main_menu flag; a listed section brings its whole subtree.
func (s *PageService) Menu(ctx context.Context) ([]MenuItem, error) {
	tree, err := s.sections.LoadSections(ctx)
	if err != nil {
		return nil, err
	}

	var items []MenuItem
	for _, n := range tree {
		if !n.InMainMenu {
			continue
		}
		items = append(items, MenuItem{
			Title:    n.MenuTitleOrTitle(),
			Path:     n.FullPath,
			Children: childItems(n.Children),
		})
	}
	return items, nil
}

// Sections returns the raw section tree.
func (s *PageService) Sections(ctx context.Context) ([]domain.SectionNode, error) {
	return s.sections.LoadSections(ctx)
}

// SectionPage loads a section by path and renders it together with its
// children listing. The page build and the children fetch run concurrently;
// a failed children fetch degrades the page instead of failing it.
func (s *PageService) SectionPage(ctx context.Context, fullPath string, skip, limit int) (SectionPage, error) {
	if s.source == nil {
		return SectionPage{}, domain.ErrNotFound
	}
	e, err := s.source.SectionByPath(ctx, fullPath)
	if err != nil {
		return SectionPage{}, err
	}

	var sp SectionPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sp.Page = s.buildPage(gctx, e)
		return nil
	})
	if e.ID != "" && showsChildren(e) {
		g.Go(func() error {
			children, err := s.source.SectionChildren(gctx, e.ID, skip, limit)
			if err != nil {
				s.log.WithField("section", fullPath).Warnf("children load failed: %v", err)
				return nil
			}
			sp.Children = children
			return nil
		})
	}
	_ = g.Wait()
	return sp, nil
}

func (s *PageService) buildPage(ctx context.Context, e domain.Entity) Page {
	blocks := render.Render(e.ContentType, e.Modules)
	s.hydrateWidgets(ctx, blocks)

	return Page{
		ID:          e.ID,
		ContentType: e.ContentType,
		Title:       e.Title,
		Slug:        e.Slug,
		Tags:        e.Tags,
		Blocks:      blocks,
		Contents:    render.TableOfContents(e.ContentType, e.Modules),
		Fields:      e.Fields,
	}
}

// hydrateWidgets fills list-backed widget blocks with their cards. Widgets
// load concurrently, and a failed widget never takes the page down.
func (s *PageService) hydrateWidgets(ctx context.Context, blocks []render.Block) {
	if s.lister == nil {
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range blocks {
		contentType, ok := widgetSource(blocks[i].Kind)
		if !ok {
			continue
		}
		body, ok := blocks[i].Body.(render.WidgetBody)
		if !ok {
			continue
		}

		i, kind, body := i, blocks[i].Kind, body
		g.Go(func() error {
			limit := body.Limit
			if limit <= 0 {
				limit = defaultWidgetLimit
			}
			result, err := s.lister.List(ctx, contentType, domain.ListOptions{
				Limit:  limit,
				Tag:    body.Tag,
				Status: "published",
			})
			if err != nil {
				s.log.WithField("widget", kind).Warnf("widget load failed: %v", err)
				return nil
			}
			body.Items = result.Items
			blocks[i].Body = body
			return nil
		})
	}
	_ = g.Wait()
}

// widgetSource maps widget kinds to the content type backing them.
func widgetSource(kind string) (domain.ContentType, bool) {
	switch kind {
	case domain.ModuleBestArticles:
		return domain.TypeArticle, true
	case domain.ModuleInteresting:
		return domain.TypeWiki, true
	default:
		return "", false
	}
}

func childItems(nodes []domain.SectionNode) []MenuItem {
	var items []MenuItem
	for _, n := range nodes {
		items = append(items, MenuItem{
			Title:    n.MenuTitleOrTitle(),
			Path:     n.FullPath,
			Children: childItems(n.Children),
		})
	}
	return items
}

// showsChildren reads the section's show_children_list flag, defaulting to
// true.
func showsChildren(e domain.Entity) bool {
	raw, ok := e.Fields["show_children_list"]
	if !ok {
		return true
	}
	var show bool
	if err := json.Unmarshal(raw, &show); err != nil {
		return true
	}
	return show
}
