package port

import (
	"context"

	"bitbot/internal/core/domain"
)

type Searcher interface {
	// Search runs a web search and returns a bounded list of results.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}
