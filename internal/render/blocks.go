package render

import (
	"encoding/json"

	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/richtext"
)

// Block is one rendered unit of a page. Kind mirrors the module type names so
// clients dispatch the same way the page builder does; Body holds the
// kind-specific payload.
type Block struct {
	Kind   string `json:"kind"`
	Anchor string `json:"anchor,omitempty"`
	Title  string `json:"title,omitempty"`
	Body   any    `json:"body"`
}

// RichText is display content after normalization. HTML content is inserted
// as markup; plain content is shown literally with newlines as line breaks.
type RichText struct {
	Content string `json:"content"`
	HTML    bool   `json:"html"`
}

// NewRichText normalizes raw CMS content and classifies it.
func NewRichText(s string) RichText {
	n := richtext.Normalize(s)
	return RichText{Content: n, HTML: richtext.IsHTML(n)}
}

// HeroCardBody is the lead card of a page: photo plus quick facts.
type HeroCardBody struct {
	Photo       string            `json:"photo,omitempty"`
	PhotoAlt    string            `json:"photo_alt,omitempty"`
	Facts       []domain.Fact     `json:"facts,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
}

// TextBody is a titled prose section.
type TextBody struct {
	Text RichText `json:"text"`
}

// TimelineEntry is one event of a timeline block. Anchor is the positional
// element id shared with the table of contents.
type TimelineEntry struct {
	Year        int    `json:"year,omitempty"`
	Month       int    `json:"month,omitempty"`
	Date        string `json:"date,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Link        string `json:"link,omitempty"`
	Type        string `json:"type,omitempty"`
	Anchor      string `json:"anchor"`
}

// TimelineBody is an ordered list of dated events.
type TimelineBody struct {
	Events []TimelineEntry `json:"events"`
}

// TagsBody lists the page's tags.
type TagsBody struct {
	Tags []string `json:"tags"`
}

// TableBody is a data table; rows stay raw and are addressed by column key.
type TableBody struct {
	Columns        []domain.TableColumn `json:"columns"`
	Rows           []json.RawMessage    `json:"rows"`
	Sortable       bool                 `json:"sortable,omitempty"`
	HighlightRules map[string]string    `json:"highlight_rules,omitempty"`
}

// GalleryBody is an image gallery.
type GalleryBody struct {
	Items []domain.GalleryImage `json:"items"`
}

// VideoBody is an embedded video.
type VideoBody struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// QuoteBody is a pull quote.
type QuoteBody struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
	Source string `json:"source,omitempty"`
}

// TeamMembersBody lists a team's lineup.
type TeamMembersBody struct {
	Members []domain.TeamMember `json:"members"`
}

// TVAppearancesBody is the broadcast history table of a team.
type TVAppearancesBody struct {
	Appearances []domain.TVAppearance `json:"appearances"`
}

// GamesBody lists a team's games.
type GamesBody struct {
	Games []domain.GameEntry `json:"games"`
}

// EpisodesBody lists a show's episodes.
type EpisodesBody struct {
	Episodes []domain.Episode `json:"episodes"`
}

// ParticipantsBody lists a show's participants.
type ParticipantsBody struct {
	Participants []domain.ShowParticipant `json:"participants"`
}

// WidgetBody carries the display configuration of self-loading widgets
// (best_articles, interesting, random_page). Items are hydrated by the page
// service for list-backed widgets; random_page stays a client-side link.
type WidgetBody struct {
	Limit int               `json:"limit,omitempty"`
	Tag   string            `json:"tag,omitempty"`
	Items []json.RawMessage `json:"items,omitempty"`
}

// TOCBody is the rendered table of contents panel.
type TOCBody struct {
	Entries []TOCEntry `json:"entries"`
}
