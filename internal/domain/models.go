package domain

import (
	"encoding/json"
	"fmt"
)

// ContentType identifies the kind of page a document describes.
type ContentType string

const (
	TypePerson  ContentType = "person"
	TypeTeam    ContentType = "team"
	TypeShow    ContentType = "show"
	TypeArticle ContentType = "article"
	TypeNews    ContentType = "news"
	TypeQuiz    ContentType = "quiz"
	TypeWiki    ContentType = "wiki"
	TypeSection ContentType = "section"
)

// collections maps content types to the upstream API collection segments.
var collections = map[ContentType]string{
	TypePerson:  "people",
	TypeTeam:    "teams",
	TypeShow:    "shows",
	TypeArticle: "articles",
	TypeNews:    "news",
	TypeQuiz:    "quizzes",
	TypeWiki:    "wiki",
}

// Collection returns the upstream collection segment for the type, e.g.
// "people" for person pages.
func (t ContentType) Collection() string {
	if c, ok := collections[t]; ok {
		return c
	}
	return string(t)
}

// ParseCollection resolves a URL collection segment ("people", "quizzes")
// back to its content type.
func ParseCollection(segment string) (ContentType, bool) {
	for t, c := range collections {
		if c == segment || string(t) == segment {
			return t, true
		}
	}
	return "", false
}

// Entity is a single content document fetched from the CMS. The envelope
// fields the pipeline needs are decoded; every other field stays in Fields
// verbatim so page payloads can pass upstream data through untouched.
type Entity struct {
	ID          string
	ContentType ContentType
	Title       string
	Slug        string
	Status      string
	Tags        []string
	Modules     []Module

	// Fields holds the raw document minus its modules array.
	Fields map[string]json.RawMessage
}

// DecodeEntity parses an upstream content document.
func DecodeEntity(data []byte) (Entity, error) {
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Entity{}, fmt.Errorf("decode entity: %w", err)
	}

	e := Entity{Fields: doc}
	e.ID = stringField(doc, "_id")
	if e.ID == "" {
		e.ID = stringField(doc, "id")
	}
	e.ContentType = ContentType(stringField(doc, "content_type"))
	e.Title = stringField(doc, "title")
	e.Slug = stringField(doc, "slug")
	e.Status = stringField(doc, "status")

	if raw, ok := doc["tags"]; ok {
		_ = json.Unmarshal(raw, &e.Tags)
	}
	if raw, ok := doc["modules"]; ok {
		if err := json.Unmarshal(raw, &e.Modules); err != nil {
			return Entity{}, fmt.Errorf("decode modules: %w", err)
		}
		delete(doc, "modules")
	}
	return e, nil
}

// EncodeEntity renders the entity back into upstream document form, the
// inverse of DecodeEntity. Envelope fields win over stale Fields entries.
func EncodeEntity(e Entity) ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(e.Fields)+7)
	for k, v := range e.Fields {
		doc[k] = v
	}

	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		doc[key] = raw
		return nil
	}
	if e.ID != "" {
		if err := set("_id", e.ID); err != nil {
			return nil, err
		}
	}
	if e.ContentType != "" {
		if err := set("content_type", e.ContentType); err != nil {
			return nil, err
		}
	}
	if e.Title != "" {
		if err := set("title", e.Title); err != nil {
			return nil, err
		}
	}
	if e.Slug != "" {
		if err := set("slug", e.Slug); err != nil {
			return nil, err
		}
	}
	if e.Status != "" {
		if err := set("status", e.Status); err != nil {
			return nil, err
		}
	}
	if len(e.Tags) > 0 {
		if err := set("tags", e.Tags); err != nil {
			return nil, err
		}
	}
	modules := e.Modules
	if modules == nil {
		modules = []Module{}
	}
	if err := set("modules", modules); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func stringField(doc map[string]json.RawMessage, key string) string {
	raw, ok := doc[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// ListOptions are the common filters accepted by list endpoints.
type ListOptions struct {
	Skip   int
	Limit  int
	Status string
	Tag    string
	Search string
	Letter string
}

// ListResult is the paginated envelope returned by upstream list endpoints.
// Items stay raw; list cards never carry modules.
type ListResult struct {
	Items []json.RawMessage `json:"items"`
	Total int               `json:"total"`
	Skip  int               `json:"skip"`
	Limit int               `json:"limit"`
}

// SearchResults groups raw search hits by content type.
type SearchResults map[string][]json.RawMessage

// Suggestion is a single autocomplete hit.
type Suggestion struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
}

// SectionNode is one node of the sections tree used for navigation menus.
type SectionNode struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	MenuTitle  string        `json:"menu_title,omitempty"`
	Slug       string        `json:"slug"`
	FullPath   string        `json:"full_path"`
	Order      int           `json:"order"`
	InMainMenu bool          `json:"in_main_menu"`
	Children   []SectionNode `json:"children,omitempty"`
}

// MenuTitleOrTitle returns the short menu label when one is set.
func (n SectionNode) MenuTitleOrTitle() string {
	if n.MenuTitle != "" {
		return n.MenuTitle
	}
	return n.Title
}

// SectionRef is the parent stub returned alongside section children.
type SectionRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	FullPath string `json:"full_path"`
}

// SectionChildren is the paginated listing of a section's direct children.
type SectionChildren struct {
	Items  []json.RawMessage `json:"items"`
	Total  int               `json:"total"`
	Skip   int               `json:"skip"`
	Limit  int               `json:"limit"`
	Parent SectionRef        `json:"parent"`
}
