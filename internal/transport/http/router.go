// Package http exposes the frontend-facing HTTP and WebSocket API.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"humorpedia-web/internal/logging"
	"humorpedia-web/internal/metrics"
)

// RouterConfig collects the handlers the router mounts.
type RouterConfig struct {
	Pages     *PageHandler
	Search    *SearchHandler
	QuizWS    *QuizWSHandler
	SuggestWS *SuggestWSHandler
	Log       *logging.Logger
	Metrics   *metrics.Metrics
}

// NewRouter assembles the chi router with the standard middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(cfg.Log))
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(metrics.Middleware(cfg.Metrics))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", cfg.Pages.Menu)
		r.Get("/sections", cfg.Pages.Sections)
		r.Get("/sections/*", cfg.Pages.SectionPage)
		r.Get("/search", cfg.Search.Search)
		r.Get("/suggest", cfg.Search.Suggest)
		r.Get("/pages/{collection}", cfg.Pages.List)
		r.Get("/pages/{collection}/{slug}", cfg.Pages.Page)
	})

	r.Get("/ws/quiz", cfg.QuizWS.Serve)
	r.Get("/ws/suggest", cfg.SuggestWS.Serve)

	return r
}
