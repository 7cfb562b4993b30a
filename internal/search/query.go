package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultLimit caps how many decks a title search returns.
const DefaultLimit = 10

// Search finds decks whose titles match q, newest-first. A limit of 0
// falls back to DefaultLimit. The returned slice holds deck IDs in
// result order.
func (s *DeckIndex) Search(ctx context.Context, q string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultLimit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildTitleQuery(q), limit, 0, false)
	searchRequest.SortBy([]string{"-created_at"})

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	ids := make([]string, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		ids = append(ids, hit.ID)
	}

	return ids, nil
}

// buildTitleQuery constructs the Bleve query for a title search:
// term match, fuzzy match for typo tolerance, and a prefix query so
// partially typed titles still hit.
func buildTitleQuery(q string) query.Query {
	textQueries := []query.Query{}

	titleMatch := bleve.NewMatchQuery(q)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)
	textQueries = append(textQueries, titleMatch)

	fuzzyQuery := bleve.NewFuzzyQuery(q)
	fuzzyQuery.SetFuzziness(1)
	fuzzyQuery.SetField("title")
	fuzzyQuery.SetBoost(0.8)
	textQueries = append(textQueries, fuzzyQuery)

	if len(q) >= 2 {
		prefixQuery := bleve.NewPrefixQuery(strings.ToLower(q))
		prefixQuery.SetField("title")
		prefixQuery.SetBoost(0.5)
		textQueries = append(textQueries, prefixQuery)
	}

	return bleve.NewDisjunctionQuery(textQueries...)
}
