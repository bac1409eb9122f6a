package domain

import "encoding/json"

// Module type names as stored by the CMS page builder.
const (
	ModuleHeroCard        = "hero_card"
	ModuleTextBlock       = "text_block"
	ModuleTimeline        = "timeline"
	ModuleTags            = "tags"
	ModuleTable           = "table"
	ModuleGallery         = "gallery"
	ModuleVideo           = "video"
	ModuleQuote           = "quote"
	ModuleTeamMembers     = "team_members"
	ModuleTVAppearances   = "tv_appearances"
	ModuleGamesList       = "games_list"
	ModuleEpisodesList    = "episodes_list"
	ModuleParticipants    = "participants"
	ModuleBestArticles    = "best_articles"
	ModuleInteresting     = "interesting"
	ModuleRandomPage      = "random_page"
	ModuleQuizQuestions   = "quiz_questions"
	ModuleQuizResults     = "quiz_results"
	ModuleTableOfContents = "table_of_contents"
)

// Module is one building block of a page. The CMS defaults a missing order to
// zero and a missing visible flag to shown.
type Module struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Order   int             `json:"order"`
	Title   string          `json:"title,omitempty"`
	Visible *bool           `json:"visible,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Shown reports whether the module should be rendered. Only an explicit
// visible=false hides a module.
func (m Module) Shown() bool {
	return m.Visible == nil || *m.Visible
}

// Fact is a single label/value pair on a hero card.
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Link  string `json:"link,omitempty"`
}

// HeroCardData is the payload of a hero_card module.
type HeroCardData struct {
	Photo       string            `json:"photo,omitempty"`
	PhotoAlt    string            `json:"photo_alt,omitempty"`
	Facts       []Fact            `json:"facts,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
}

// TextBlockData is the payload of a text_block module.
type TextBlockData struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// TimelineEvent is a single timeline entry.
type TimelineEvent struct {
	Year        int    `json:"year,omitempty"`
	Month       int    `json:"month,omitempty"`
	Date        string `json:"date,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Link        string `json:"link,omitempty"`
	Type        string `json:"type,omitempty"`
}

// TimelineData is the payload of a timeline module. Migrated documents store
// entries under "events", hand-authored ones under "items"; both are accepted.
type TimelineData struct {
	Title  string          `json:"title,omitempty"`
	Events []TimelineEvent `json:"events,omitempty"`
	Items  []TimelineEvent `json:"items,omitempty"`
}

// Entries returns whichever entry list the document carries.
func (d TimelineData) Entries() []TimelineEvent {
	if len(d.Events) > 0 {
		return d.Events
	}
	return d.Items
}

// TagsData is the payload of a tags module.
type TagsData struct {
	Tags []string `json:"tags"`
}

// TableColumn describes one column of a table module.
type TableColumn struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Sortable  bool   `json:"sortable,omitempty"`
	Highlight bool   `json:"highlight,omitempty"`
	Width     string `json:"width,omitempty"`
}

// TableData is the payload of a table module. Rows stay raw; cell values are
// addressed by column key on the client.
type TableData struct {
	Title          string            `json:"title,omitempty"`
	Columns        []TableColumn     `json:"columns"`
	Rows           []json.RawMessage `json:"rows"`
	Sortable       bool              `json:"sortable,omitempty"`
	HighlightRules map[string]string `json:"highlight_rules,omitempty"`
}

// GalleryImage is a single gallery entry.
type GalleryImage struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Alt       string `json:"alt,omitempty"`
	Caption   string `json:"caption,omitempty"`
}

// GalleryData is the payload of a gallery module.
type GalleryData struct {
	Title string         `json:"title,omitempty"`
	Items []GalleryImage `json:"items"`
}

// VideoData is the payload of a video module.
type VideoData struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// QuoteData is the payload of a quote module.
type QuoteData struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
	Source string `json:"source,omitempty"`
}

// TeamMember is one entry of a team_members module.
type TeamMember struct {
	PersonID   string `json:"person_id,omitempty"`
	Name       string `json:"name"`
	Role       string `json:"role,omitempty"`
	JoinedYear int    `json:"joined_year,omitempty"`
	LeftYear   int    `json:"left_year,omitempty"`
	Active     *bool  `json:"active,omitempty"`
	Photo      string `json:"photo,omitempty"`
}

// TeamMembersData is the payload of a team_members module.
type TeamMembersData struct {
	Title   string       `json:"title,omitempty"`
	Members []TeamMember `json:"members"`
}

// TVAppearance is one broadcast row of a tv_appearances module.
type TVAppearance struct {
	Date     string   `json:"date,omitempty"`
	Season   string   `json:"season,omitempty"`
	League   string   `json:"league,omitempty"`
	Episode  string   `json:"episode,omitempty"`
	Result   string   `json:"result,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	VideoURL string   `json:"video_url,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// TVAppearancesData is the payload of a tv_appearances module.
type TVAppearancesData struct {
	Title       string         `json:"title,omitempty"`
	Appearances []TVAppearance `json:"appearances"`
}

// GameEntry is one row of a games_list module.
type GameEntry struct {
	Date     string `json:"date,omitempty"`
	Opponent string `json:"opponent,omitempty"`
	League   string `json:"league,omitempty"`
	Result   string `json:"result,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

// GamesListData is the payload of a games_list module.
type GamesListData struct {
	Title string      `json:"title,omitempty"`
	Games []GameEntry `json:"games"`
}

// Episode is one entry of an episodes_list module.
type Episode struct {
	Season      int      `json:"season,omitempty"`
	Episode     int      `json:"episode,omitempty"`
	Title       string   `json:"title,omitempty"`
	AirDate     string   `json:"air_date,omitempty"`
	Guests      []string `json:"guests,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"`
	Description string   `json:"description,omitempty"`
}

// EpisodesListData is the payload of an episodes_list module.
type EpisodesListData struct {
	Title    string    `json:"title,omitempty"`
	Episodes []Episode `json:"episodes"`
}

// ShowParticipant is one entry of a participants module.
type ShowParticipant struct {
	PersonID      string `json:"person_id,omitempty"`
	Name          string `json:"name"`
	Role          string `json:"role,omitempty"`
	FromYear      int    `json:"from_year,omitempty"`
	ToYear        int    `json:"to_year,omitempty"`
	EpisodesCount int    `json:"episodes_count,omitempty"`
}

// ParticipantsData is the payload of a participants module.
type ParticipantsData struct {
	Title        string            `json:"title,omitempty"`
	Participants []ShowParticipant `json:"participants"`
}

// WidgetData covers the self-loading widgets (best_articles, interesting,
// random_page): the payload is display configuration, filled client-side.
type WidgetData struct {
	Title string `json:"title,omitempty"`
	Limit int    `json:"limit,omitempty"`
	Tag   string `json:"tag,omitempty"`
}
