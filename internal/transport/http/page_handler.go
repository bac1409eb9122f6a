package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"humorpedia-web/internal/app"
	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/logging"
)

// PageHandler serves rendered pages, lists and navigation.
type PageHandler struct {
	pages *app.PageService
	log   *logging.Logger
}

func NewPageHandler(pages *app.PageService, log *logging.Logger) *PageHandler {
	return &PageHandler{pages: pages, log: log}
}

// Page handles GET /api/pages/{collection}/{slug}.
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	contentType, ok := domain.ParseCollection(chi.URLParam(r, "collection"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown collection"})
		return
	}

	page, err := h.pages.Page(r.Context(), contentType, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// List handles GET /api/pages/{collection}.
func (h *PageHandler) List(w http.ResponseWriter, r *http.Request) {
	contentType, ok := domain.ParseCollection(chi.URLParam(r, "collection"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown collection"})
		return
	}

	q := r.URL.Query()
	opts := domain.ListOptions{
		Skip:   intParam(q.Get("skip"), 0),
		Limit:  intParam(q.Get("limit"), 20),
		Status: q.Get("status"),
		Tag:    q.Get("tag"),
		Search: q.Get("search"),
		Letter: q.Get("letter"),
	}

	result, err := h.pages.List(r.Context(), contentType, opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Menu handles GET /api/menu.
func (h *PageHandler) Menu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.pages.Menu(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if menu == nil {
		menu = []app.MenuItem{}
	}
	writeJSON(w, http.StatusOK, menu)
}

// Sections handles GET /api/sections.
func (h *PageHandler) Sections(w http.ResponseWriter, r *http.Request) {
	tree, err := h.pages.Sections(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if tree == nil {
		tree = []domain.SectionNode{}
	}
	writeJSON(w, http.StatusOK, tree)
}

// SectionPage handles GET /api/sections/{path...}; the path is the section's
// full path, e.g. shows/late-night.
func (h *PageHandler) SectionPage(w http.ResponseWriter, r *http.Request) {
	fullPath := chi.URLParam(r, "*")
	if fullPath == "" {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}

	q := r.URL.Query()
	sp, err := h.pages.SectionPage(r.Context(), fullPath, intParam(q.Get("skip"), 0), intParam(q.Get("limit"), 50))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
