// Package search queries external web search backends for product facts
// that the local knowledge base does not cover.
package search

import (
	"context"
	"strings"

	"golang.org/x/net/html"
)

// Snippet is a single search result reduced to displayable text.
type Snippet struct {
	Title  string
	Text   string
	Source string
}

// Searcher runs a web query and returns the most relevant snippets.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Snippet, error)
}

// stripHTML drops markup from snippet text. Search APIs occasionally
// return fragments with <b> highlighting and entity escapes.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}
