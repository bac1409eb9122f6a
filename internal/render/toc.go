package render

import "humorpedia-web/internal/domain"

// TOCEntry is one navigation link of the table of contents.
type TOCEntry struct {
	Label  string `json:"label"`
	Year   int    `json:"year,omitempty"`
	Date   string `json:"date,omitempty"`
	Anchor string `json:"anchor"`
}

// TableOfContents builds the navigation list for a page. Person pages
// navigate by career: every event of every timeline module, flattened in
// order and labeled by its date and title. All other pages navigate by
// section: one entry per titled text block. An empty result means the page
// shows no contents panel.
func TableOfContents(entityType domain.ContentType, mods []domain.Module) []TOCEntry {
	mods = NormalizeAndFilter(mods)

	if entityType == domain.TypePerson {
		var entries []TOCEntry
		for i, m := range mods {
			if m.Type != domain.ModuleTimeline {
				continue
			}
			d, ok := decodePayload[domain.TimelineData](m)
			if !ok {
				continue
			}
			for j, ev := range d.Entries() {
				entries = append(entries, TOCEntry{
					Label:  ev.Title,
					Year:   ev.Year,
					Date:   ev.Date,
					Anchor: EventAnchor(i, j),
				})
			}
		}
		return entries
	}

	var entries []TOCEntry
	for i, m := range mods {
		if m.Type != domain.ModuleTextBlock {
			continue
		}
		title := m.Title
		if title == "" {
			if d, ok := decodePayload[domain.TextBlockData](m); ok {
				title = d.Title
			}
		}
		if title == "" {
			continue
		}
		entries = append(entries, TOCEntry{Label: title, Anchor: ModuleAnchor(i)})
	}
	return entries
}
