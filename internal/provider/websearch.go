package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plywoodstudio/faqbot/internal/composer"
	"github.com/plywoodstudio/faqbot/internal/llm"
	"github.com/plywoodstudio/faqbot/internal/search"
)

const searchResultLimit = 5

// Questions about specifications, comparisons, and market facts benefit
// from live search. Everything else is served faster by local knowledge.
var searchTriggers = []string{
	"thickness",
	"grade",
	"price",
	"cost",
	"rate",
	"difference between",
	"compare",
	" vs ",
	"versus",
	"waterproof",
	"water resistant",
	"warranty",
	"which is better",
	"best plywood",
	"specification",
}

// NeedsSearch reports whether the question asks for the kind of factual
// detail worth a live web lookup.
func NeedsSearch(question string) bool {
	lower := strings.ToLower(question)
	for _, trigger := range searchTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// snippetFooter closes a raw-snippet answer when no backend is around to
// synthesize one.
const snippetFooter = "For exact prices, stock, and recommendations, please " +
	"contact Plywood Studio directly."

// WebSearch answers with a generative backend grounded in live search
// snippets. Without a backend it returns the formatted snippets directly.
type WebSearch struct {
	searcher search.Searcher
	composer *composer.Composer
	chatter  llm.Chatter
	model    string
}

func NewWebSearch(searcher search.Searcher, comp *composer.Composer, chatter llm.Chatter, model string) *WebSearch {
	return &WebSearch{
		searcher: searcher,
		composer: comp,
		chatter:  chatter,
		model:    model,
	}
}

func (w *WebSearch) Name() string { return "websearch" }

func (w *WebSearch) Eligible(question string) bool {
	return w.searcher != nil && NeedsSearch(question)
}

func (w *WebSearch) Answer(ctx context.Context, question string) (string, error) {
	snippets, err := w.searcher.Search(ctx, question, searchResultLimit)
	if err != nil {
		return "", fmt.Errorf("web search: %w", err)
	}
	if len(snippets) == 0 {
		return "", fmt.Errorf("%w: search returned no snippets", ErrNoAnswer)
	}

	if w.chatter == nil {
		return snippetAnswer(snippets), nil
	}

	prompt := w.composer.ComposeSearch(question, snippets)
	answer, err := w.chatter.Chat(ctx, w.model, prompt)
	if err != nil {
		slog.Debug("search synthesis failed, returning raw snippets", "error", err)
		return snippetAnswer(snippets), nil
	}
	if !acceptable(answer) {
		slog.Debug("search synthesis rejected by quality check, returning raw snippets", "length", len(answer))
		return snippetAnswer(snippets), nil
	}
	return answer, nil
}

// snippetAnswer formats search results into a reply of their own, with a
// footer steering the customer to the store for anything the web cannot
// answer.
func snippetAnswer(snippets []search.Snippet) string {
	var b strings.Builder
	b.WriteString("Here's what I found:\n\n")
	for _, s := range snippets {
		if s.Title != "" {
			b.WriteString("- ")
			b.WriteString(s.Title)
			b.WriteString(": ")
		} else {
			b.WriteString("- ")
		}
		b.WriteString(s.Text)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(snippetFooter)
	return b.String()
}
