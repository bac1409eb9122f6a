package render

import (
	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/richtext"
)

// Render produces the block list for a page. Hidden modules are dropped and
// the rest ordered first, so block positions match anchor indices. Modules
// that cannot render (unknown type without text content, malformed payload,
// quiz data on a content page) are skipped without error.
func Render(entityType domain.ContentType, mods []domain.Module) []Block {
	mods = NormalizeAndFilter(mods)
	blocks := make([]Block, 0, len(mods))
	for i := range mods {
		if b, ok := renderModule(entityType, mods, i); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func renderModule(entityType domain.ContentType, mods []domain.Module, idx int) (Block, bool) {
	m := mods[idx]
	switch m.Type {
	case domain.ModuleHeroCard:
		d, ok := decodePayload[domain.HeroCardData](m)
		if !ok {
			return Block{}, false
		}
		return newBlock(m, idx, "", HeroCardBody{
			Photo:       d.Photo,
			PhotoAlt:    d.PhotoAlt,
			Facts:       d.Facts,
			SocialLinks: d.SocialLinks,
		}), true

	case domain.ModuleTextBlock:
		d, ok := decodePayload[domain.TextBlockData](m)
		if !ok {
			return Block{}, false
		}
		return newBlock(m, idx, d.Title, TextBody{Text: NewRichText(d.Content)}), true

	case domain.ModuleTimeline:
		d, ok := decodePayload[domain.TimelineData](m)
		if !ok {
			return Block{}, false
		}
		src := d.Entries()
		events := make([]TimelineEntry, 0, len(src))
		for j, ev := range src {
			events = append(events, TimelineEntry{
				Year:        ev.Year,
				Month:       ev.Month,
				Date:        ev.Date,
				Title:       ev.Title,
				Description: richtext.Normalize(ev.Description),
				Image:       ev.Image,
				Link:        ev.Link,
				Type:        ev.Type,
				Anchor:      EventAnchor(idx, j),
			})
		}
		return newBlock(m, idx, d.Title, TimelineBody{Events: events}), true

	case domain.ModuleTags:
		d, ok := decodePayload[domain.TagsData](m)
		if !ok || len(d.Tags) == 0 {
			return Block{}, false
		}
		return newBlock(m, idx, "", TagsBody{Tags: d.Tags}), true

	case domain.ModuleTable:
		d, ok := decodePayload[domain.TableData](m)
		if !ok {
			return Block{}, false
		}
		return newBlock(m, idx, d.Title, TableBody{
			Columns:        d.Columns,
			Rows:           d.Rows,
			Sortable:       d.Sortable,
			HighlightRules: d.HighlightRules,
		}), true

	case domain.ModuleGallery:
		d, ok := decodePayload[domain.GalleryData](m)
		if !ok || len(d.Items) == 0 {
			return Block{}, false
		}
		return newBlock(m, idx, d.Title, GalleryBody{Items: d.Items}), true

	case domain.ModuleVideo:
		d, ok := decodePayload[domain.VideoData](m)
		if !ok || d.URL == "" {
			return Block{}, false
		}
		return newBlock(m, idx, d.Title, VideoBody{URL: d.URL, Caption: d.Caption}), true

	case domain.ModuleQuote:
		d, ok := decodePayload[domain.QuoteData](m)
		if !ok || d.Text == "" {
			return Block{}, false
		}
		return newBlock(m, idx, "", QuoteBody{
			Text:   richtext.Normalize(d.Text),
			Author: d.Author,
			Source: d.Source,
		}), true

	case domain.ModuleTeamMembers:
		d, ok := decodePayload[domain.TeamMembersData](m)
		if !ok {
			return Block{}, false
		}
		return newBlock(m, idx, d.Title, TeamMembersBody{Members: d.Members}), true

	case domain.ModuleTVAppearances:
		d, ok := decodePayload[domain.TVAppearancesData](m)
		if !ok {
			return Block{}, false
		}
		return newBlock(m, idx, d.Title, TVAppearancesBody{Appearances: d.Appearances}), true

	case domain.ModuleGamesList:
		d, ok := decodePayload[domain.GamesListData](m)
		if !ok {
			return Block{}, false
		}
		return newBlock(m, idx, d.Title, GamesBody{Games: d.Games}), true

	case domain.ModuleEpisodesList:
		d, ok := decodePayload[domain.EpisodesListData](m)
		if !ok {
			return Block{}, false
		}
		eps := make([]domain.Episode, len(d.Episodes))
		copy(eps, d.Episodes)
		for i := range eps {
			eps[i].Description = richtext.Normalize(eps[i].Description)
		}
		return newBlock(m, idx, d.Title, EpisodesBody{Episodes: eps}), true

	case domain.ModuleParticipants:
		d, ok := decodePayload[domain.ParticipantsData](m)
		if !ok {
			return Block{}, false
		}
		return newBlock(m, idx, d.Title, ParticipantsBody{Participants: d.Participants}), true

	case domain.ModuleBestArticles, domain.ModuleInteresting, domain.ModuleRandomPage:
		d, _ := decodePayload[domain.WidgetData](m)
		return newBlock(m, idx, d.Title, WidgetBody{Limit: d.Limit, Tag: d.Tag}), true

	case domain.ModuleQuizQuestions, domain.ModuleQuizResults:
		// Quiz data is consumed by the quiz engine, not rendered inline.
		return Block{}, false

	case domain.ModuleTableOfContents:
		entries := TableOfContents(entityType, mods)
		if len(entries) == 0 {
			return Block{}, false
		}
		return newBlock(m, idx, "", TOCBody{Entries: entries}), true

	default:
		// Unknown module types degrade to a plain text section when they
		// carry text content; anything else renders nothing.
		d, ok := decodePayload[domain.TextBlockData](m)
		if !ok || d.Content == "" {
			return Block{}, false
		}
		b := newBlock(m, idx, d.Title, TextBody{Text: NewRichText(d.Content)})
		b.Kind = domain.ModuleTextBlock
		return b, true
	}
}

// newBlock assembles a block with the module anchor and resolved title. An
// explicit module title overrides the payload title.
func newBlock(m domain.Module, idx int, dataTitle string, body any) Block {
	title := m.Title
	if title == "" {
		title = dataTitle
	}
	return Block{
		Kind:   m.Type,
		Anchor: ModuleAnchor(idx),
		Title:  title,
		Body:   body,
	}
}
