package app

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"

	"humorpedia-web/internal/domain"
)

// MinQueryLength is the shortest accepted search query, matching the
// upstream validation.
const MinQueryLength = 2

const defaultSuggestLimit = 5

// Searcher queries the content API's cross-type search.
type Searcher interface {
	Search(ctx context.Context, query string, types []domain.ContentType, limit int) (domain.SearchResults, error)
}

// SearchService validates queries and shapes search results. source may be
// nil when no content API is configured; searches then come back empty.
type SearchService struct {
	source       Searcher
	suggestLimit int
}

func NewSearchService(source Searcher, suggestLimit int) *SearchService {
	if suggestLimit <= 0 {
		suggestLimit = defaultSuggestLimit
	}
	return &SearchService{source: source, suggestLimit: suggestLimit}
}

// Search runs a cross-type search. Queries shorter than MinQueryLength are
// rejected before they reach the network.
func (s *SearchService) Search(ctx context.Context, query string, types []domain.ContentType, limit int) (domain.SearchResults, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, domain.ErrQueryTooShort
	}
	if s.source == nil {
		return domain.SearchResults{}, nil
	}
	return s.source.Search(ctx, query, types, limit)
}

// Suggest returns a small flat list of autocomplete hits across all types.
func (s *SearchService) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	results, err := s.Search(ctx, query, nil, s.suggestLimit)
	if err != nil {
		return nil, err
	}

	var suggestions []domain.Suggestion
	for contentType, items := range results {
		for _, raw := range items {
			var hit struct {
				Title string `json:"title"`
				Slug  string `json:"slug"`
			}
			if err := json.Unmarshal(raw, &hit); err != nil || hit.Title == "" {
				continue
			}
			suggestions = append(suggestions, domain.Suggestion{
				ContentType: contentType,
				Title:       hit.Title,
				Slug:        hit.Slug,
			})
		}
	}

	// map iteration order is random; sort for stable output
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Title != suggestions[j].Title {
			return suggestions[i].Title < suggestions[j].Title
		}
		return suggestions[i].ContentType < suggestions[j].ContentType
	})
	if len(suggestions) > s.suggestLimit {
		suggestions = suggestions[:s.suggestLimit]
	}
	return suggestions, nil
}
