// Package render turns the module list of a content document into the
// ordered block list a page displays, and derives the table of contents
// from the same list.
package render

import (
	"encoding/json"
	"sort"

	"humorpedia-web/internal/domain"
)

// NormalizeAndFilter drops hidden modules and orders the rest by their order
// value ascending. The sort is stable so editors can rely on document order
// for ties, and the whole pass is idempotent.
func NormalizeAndFilter(mods []domain.Module) []domain.Module {
	out := make([]domain.Module, 0, len(mods))
	for _, m := range mods {
		if m.Shown() {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// decodePayload unmarshals a module's data payload. A missing or malformed
// payload reports false; callers skip the module rather than fail the page.
func decodePayload[T any](m domain.Module) (T, bool) {
	var d T
	if len(m.Data) == 0 {
		return d, false
	}
	if err := json.Unmarshal(m.Data, &d); err != nil {
		return d, false
	}
	return d, true
}
