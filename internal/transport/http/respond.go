package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/logging"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Anything unexpected is
// reported as a bad gateway: this service fronts the content API, so unknown
// failures are almost always upstream ones.
func writeError(w http.ResponseWriter, log *logging.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, domain.ErrQueryTooShort):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		log.Warnf("request failed: %v", err)
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "content source unavailable"})
	}
}
