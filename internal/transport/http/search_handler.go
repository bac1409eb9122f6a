package http

import (
	"net/http"
	"strings"

	"humorpedia-web/internal/app"
	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/logging"
)

// SearchHandler serves cross-type search and autocomplete.
type SearchHandler struct {
	search *app.SearchService
	log    *logging.Logger
}

func NewSearchHandler(search *app.SearchService, log *logging.Logger) *SearchHandler {
	return &SearchHandler{search: search, log: log}
}

// Search handles GET /api/search?q=...&types=people,articles&limit=20.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	results, err := h.search.Search(r.Context(), q.Get("q"), parseTypes(q.Get("types")), intParam(q.Get("limit"), 0))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if results == nil {
		results = domain.SearchResults{}
	}
	writeJSON(w, http.StatusOK, results)
}

// Suggest handles GET /api/suggest?q=... with a small flat hit list.
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	items, err := h.search.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if items == nil {
		items = []domain.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestBody{Items: items})
}

type suggestBody struct {
	Items []domain.Suggestion `json:"items"`
}

// parseTypes splits a comma-separated types filter, dropping tokens that name
// no known content type.
func parseTypes(raw string) []domain.ContentType {
	if raw == "" {
		return nil
	}
	var types []domain.ContentType
	for _, token := range strings.Split(raw, ",") {
		if t, ok := domain.ParseCollection(strings.TrimSpace(token)); ok {
			types = append(types, t)
		}
	}
	return types
}
