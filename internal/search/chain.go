package search

import (
	"context"
	"log/slog"
)

// Chain tries a primary searcher and falls back to a secondary one when
// the primary errors or comes back empty. It lets a keyed Serper account
// degrade to the keyless DuckDuckGo API at runtime instead of only at
// startup.
type Chain struct {
	primary  Searcher
	fallback Searcher
}

func NewChain(primary, fallback Searcher) *Chain {
	return &Chain{primary: primary, fallback: fallback}
}

func (c *Chain) Search(ctx context.Context, query string, limit int) ([]Snippet, error) {
	snippets, err := c.primary.Search(ctx, query, limit)
	if err == nil && len(snippets) > 0 {
		return snippets, nil
	}
	if err != nil {
		slog.Debug("primary search failed, trying fallback", "error", err)
	}
	return c.fallback.Search(ctx, query, limit)
}
